package service

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"workideas/config"
)

// MaxQuestionLength 问题的最大长度（字符）
const MaxQuestionLength = 1000

var (
	// ErrEmptyQuestion 问题为空或只有空白字符
	ErrEmptyQuestion = errors.New("empty question")
	// ErrQuestionTooLong 问题超过长度限制
	ErrQuestionTooLong = errors.New("question too long")
)

// advisorPrompt 固定的系统提示词：学术项目顾问
const advisorPrompt = "Você é um assistente especializado em sugestões de projetos acadêmicos. " +
	"Sua função é ajudar estudantes universitários a desenvolver ideias criativas e viáveis " +
	"para trabalhos de conclusão de curso (TCC), artigos científicos, projetos de pesquisa e trabalhos acadêmicos.\n\n" +
	"IMPORTANTE:\n" +
	"- Forneça sugestões práticas e inovadoras\n" +
	"- Inclua sempre: título do projeto, objetivos principais, metodologia sugerida e resultados esperados\n" +
	"- Adapte suas sugestões ao nível universitário\n" +
	"- Use linguagem clara e profissional\n" +
	"- Sugira de 2 a 3 ideias quando apropriado\n\n"

// AIErrorKind 上游调用失败的分类
type AIErrorKind string

const (
	AIErrTransport        AIErrorKind = "transport"
	AIErrInvalidAPIKey    AIErrorKind = "invalid_api_key"
	AIErrRateLimited      AIErrorKind = "rate_limited"
	AIErrAccessDenied     AIErrorKind = "access_denied"
	AIErrProvider         AIErrorKind = "provider"
	AIErrUnknown          AIErrorKind = "unknown"
	AIErrUnexpectedFormat AIErrorKind = "unexpected_format"
)

// AIError 上游调用错误
type AIError struct {
	Kind       AIErrorKind
	StatusCode int
	Detail     string // 底层错误或服务端返回的原始信息
}

func (e *AIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("gemini %s (status %d): %s", e.Kind, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("gemini %s (status %d)", e.Kind, e.StatusCode)
}

// UserMessage 面向用户的提示
func (e *AIError) UserMessage() string {
	switch e.Kind {
	case AIErrTransport:
		return "Erro na comunicação com a API Gemini: " + e.Detail
	case AIErrInvalidAPIKey:
		return "Chave da API Gemini inválida. Verifique o arquivo .env"
	case AIErrRateLimited:
		return "Limite de requisições excedido. Tente novamente em alguns minutos."
	case AIErrAccessDenied:
		return "Acesso negado. Verifique se a API Key está ativa no Google Cloud."
	case AIErrProvider:
		return e.Detail
	case AIErrUnexpectedFormat:
		return "Resposta da IA em formato inesperado. Tente novamente."
	default:
		return "Erro desconhecido"
	}
}

// Asker 向 AI 提问
type Asker interface {
	Ask(ctx context.Context, question string) (string, error)
}

// ValidateQuestion 去除首尾空白并校验问题
func ValidateQuestion(question string) (string, error) {
	q := strings.TrimSpace(question)
	if q == "" {
		return "", ErrEmptyQuestion
	}
	if utf8.RuneCountInString(q) > MaxQuestionLength {
		return "", ErrQuestionTooLong
	}
	return q, nil
}

// GeminiClient Gemini generateContent 客户端
type GeminiClient struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

// NewGeminiClient 创建 Gemini 客户端
// 单次请求：30 秒超时，最多 10 次重定向，仅 HTTP/1.1，不重试
func NewGeminiClient(cfg *config.GeminiConfig) *GeminiClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	maxRedirects := cfg.MaxRedirects

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ForceAttemptHTTP2 = false
	transport.TLSNextProto = make(map[string]func(string, *tls.Conn) http.RoundTripper)

	return &GeminiClient{
		apiKey:   cfg.APIKey,
		endpoint: fmt.Sprintf("%s/models/%s:generateContent", strings.TrimRight(cfg.BaseURL, "/"), cfg.Model),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type generationConfig struct {
	Temperature     float64  `json:"temperature"`
	TopK            int      `json:"topK"`
	TopP            float64  `json:"topP"`
	MaxOutputTokens int      `json:"maxOutputTokens"`
	StopSequences   []string `json:"stopSequences"`
}

type safetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type generateContentRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
	SafetySettings   []safetySetting  `json:"safetySettings"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text *string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type geminiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// buildRequest 构建请求体：系统提示词 + 学生问题作为唯一的文本片段
func buildRequest(question string) generateContentRequest {
	return generateContentRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: advisorPrompt + "Pergunta do aluno: " + question}}},
		},
		GenerationConfig: generationConfig{
			Temperature:     0.7,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: 2000,
			StopSequences:   []string{},
		},
		SafetySettings: []safetySetting{
			{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
			{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
			{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
			{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
		},
	}
}

// Ask 校验问题后调用一次 Gemini，返回去除首尾空白的回答
func (g *GeminiClient) Ask(ctx context.Context, question string) (string, error) {
	q, err := ValidateQuestion(question)
	if err != nil {
		return "", err
	}

	jsonData, err := json.Marshal(buildRequest(q))
	if err != nil {
		return "", fmt.Errorf("构建请求失败: %w", err)
	}

	reqURL := g.endpoint + "?key=" + url.QueryEscape(g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("创建请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", &AIError{Kind: AIErrTransport, Detail: transportDetail(err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &AIError{Kind: AIErrTransport, StatusCode: resp.StatusCode, Detail: transportDetail(err)}
	}

	if resp.StatusCode != http.StatusOK {
		return "", classifyError(resp.StatusCode, body)
	}

	var decoded generateContentResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", &AIError{Kind: AIErrUnexpectedFormat, StatusCode: resp.StatusCode, Detail: err.Error()}
	}
	if len(decoded.Candidates) == 0 ||
		len(decoded.Candidates[0].Content.Parts) == 0 ||
		decoded.Candidates[0].Content.Parts[0].Text == nil {
		return "", &AIError{Kind: AIErrUnexpectedFormat, StatusCode: resp.StatusCode}
	}

	return strings.TrimSpace(*decoded.Candidates[0].Content.Parts[0].Text), nil
}

// classifyError 先按 HTTP 状态码分类，状态码无法区分时再看服务端信息
func classifyError(status int, body []byte) *AIError {
	var payload geminiErrorResponse
	_ = json.Unmarshal(body, &payload)
	message := payload.Error.Message

	switch {
	case status == http.StatusTooManyRequests:
		return &AIError{Kind: AIErrRateLimited, StatusCode: status, Detail: message}
	case status == http.StatusForbidden:
		return &AIError{Kind: AIErrAccessDenied, StatusCode: status, Detail: message}
	case strings.Contains(message, "API key"):
		return &AIError{Kind: AIErrInvalidAPIKey, StatusCode: status, Detail: message}
	case message != "":
		return &AIError{Kind: AIErrProvider, StatusCode: status, Detail: message}
	default:
		return &AIError{Kind: AIErrUnknown, StatusCode: status}
	}
}

// transportDetail 去掉 *url.Error 中的请求地址，避免把 API key 带进错误信息
func transportDetail(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err.Error()
	}
	return err.Error()
}
