package plaintxt

import (
	"fmt"
	"os"
)

// TextPlainParser 纯文本（txt/csv/json/词表），自动识别编码并转为UTF-8
type TextPlainParser struct{}

func (p *TextPlainParser) Parse(filePath string) ([]byte, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return []byte{}, fmt.Errorf("read text file '%s': %w", filePath, err)
	}
	return DecodeText(raw)
}
