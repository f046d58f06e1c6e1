package xls

import (
	"bytes"
	"fmt"
	"strings"

	exls "github.com/extrame/xls"

	"tstidx/pkg/logger"
)

// OfficeXlsParser 旧版Excel解析器，每行一行文本，单元格以tab分隔
type OfficeXlsParser struct{}

func (p *OfficeXlsParser) Parse(filePath string) ([]byte, error) {
	file, err := exls.Open(filePath, "utf-8")
	if err != nil {
		return []byte{}, fmt.Errorf("open xls %s: %w", filePath, err)
	}

	var content bytes.Buffer
	for sheetIndex := 0; sheetIndex < file.NumSheets(); sheetIndex++ {
		sheet := file.GetSheet(sheetIndex)
		if sheet == nil {
			continue
		}
		logger.DebugLogger.Printf("xls sheet %d: %s", sheetIndex, sheet.Name)

		// MaxRow为最大行号，闭区间
		for rowIndex := 0; rowIndex <= int(sheet.MaxRow); rowIndex++ {
			row := sheet.Row(rowIndex)
			if row == nil {
				continue
			}
			content.WriteString(joinRow(row.LastCol(), row.Col))
		}
	}
	return content.Bytes(), nil
}

// joinRow 拼接非空单元格，空行返回空串
func joinRow(lastCol int, col func(int) string) string {
	var cells []string
	for i := 0; i < lastCol; i++ {
		if v := strings.TrimSpace(col(i)); v != "" {
			cells = append(cells, v)
		}
	}
	if len(cells) == 0 {
		return ""
	}
	return strings.Join(cells, "\t") + "\n"
}
