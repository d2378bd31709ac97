package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenSigner_SignAndParse(t *testing.T) {
	signer := NewTokenSigner("secret-a", time.Hour)

	token, err := signer.Sign("sess-123", time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	id, err := signer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "sess-123", id)
}

func TestTokenSigner_Rejects(t *testing.T) {
	signer := NewTokenSigner("secret-a", time.Hour)

	// 空字符串
	_, err := signer.Parse("")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// 格式错误
	_, err = signer.Parse("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// 其他密钥签发
	other := NewTokenSigner("secret-b", time.Hour)
	token, err := other.Sign("sess-1", time.Now())
	require.NoError(t, err)
	_, err = signer.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// 超过绝对有效期
	old, err := signer.Sign("sess-2", time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	_, err = signer.Parse(old)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// 会话 ID 为空
	empty, err := signer.Sign("", time.Now())
	require.NoError(t, err)
	_, err = signer.Parse(empty)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
