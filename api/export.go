package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"workideas/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportCSV 导出历史记录为 CSV
// @Summary 导出历史记录 (CSV)
// @Tags 导出
// @Produce text/csv
// @Success 200 {file} file "CSV 文件"
// @Failure 401 {object} ChatResponse "未登录或会话过期"
// @Failure 500 {object} Response "服务器错误"
// @Router /export/csv [get]
func (h *DashboardHandler) ExportCSV(c *gin.Context) {
	list, ok := h.load(c)
	if !ok {
		return
	}

	buf := new(bytes.Buffer)
	// BOM，便于 Excel 正确识别 UTF-8
	buf.WriteString("\xEF\xBB\xBF")

	writer := csv.NewWriter(buf)
	if err := writer.Write([]string{"ID", "Data", "Pergunta", "Resposta"}); err != nil {
		InternalError(c, "Erro ao gerar CSV.")
		return
	}
	for _, item := range list {
		row := []string{
			strconv.FormatUint(uint64(item.ID), 10),
			item.CreatedAt.In(h.loc).Format(TimestampLayout),
			item.Question,
			item.Answer,
		}
		if err := writer.Write(row); err != nil {
			InternalError(c, "Erro ao gerar CSV.")
			return
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		InternalError(c, "Erro ao gerar CSV.")
		return
	}

	filename := fmt.Sprintf("historico_%s.csv", time.Now().In(h.loc).Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportExcel 导出历史记录为 Excel
// @Summary 导出历史记录 (Excel)
// @Tags 导出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file "Excel 文件"
// @Failure 401 {object} ChatResponse "未登录或会话过期"
// @Failure 500 {object} Response "服务器错误"
// @Router /export/excel [get]
func (h *DashboardHandler) ExportExcel(c *gin.Context) {
	list, ok := h.load(c)
	if !ok {
		return
	}

	f, err := buildHistoryWorkbook(list, h.loc)
	if err != nil {
		log.Printf("[export] 生成 Excel 失败: %v", err)
		InternalError(c, "Erro ao gerar Excel.")
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("historico_%s.xlsx", time.Now().In(h.loc).Format("20060102"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		log.Printf("[export] 写入 Excel 失败: %v", err)
	}
}

const historySheet = "Historico"

func buildHistoryWorkbook(list []models.Interaction, loc *time.Location) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", historySheet); err != nil {
		f.Close()
		return nil, err
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"667EEA"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	textStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})

	f.SetColWidth(historySheet, "A", "A", 8)
	f.SetColWidth(historySheet, "B", "B", 20)
	f.SetColWidth(historySheet, "C", "C", 50)
	f.SetColWidth(historySheet, "D", "D", 80)

	headers := []string{"ID", "Data", "Pergunta", "Resposta"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(historySheet, cell, header)
		f.SetCellStyle(historySheet, cell, cell, headerStyle)
	}

	for i, item := range list {
		row := i + 2
		f.SetCellValue(historySheet, fmt.Sprintf("A%d", row), item.ID)
		f.SetCellValue(historySheet, fmt.Sprintf("B%d", row), item.CreatedAt.In(loc).Format(TimestampLayout))
		f.SetCellValue(historySheet, fmt.Sprintf("C%d", row), item.Question)
		f.SetCellValue(historySheet, fmt.Sprintf("D%d", row), item.Answer)
		f.SetCellStyle(historySheet, fmt.Sprintf("C%d", row), fmt.Sprintf("D%d", row), textStyle)
	}
	return f, nil
}
