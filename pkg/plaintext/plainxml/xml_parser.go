package plainxml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"tstidx/pkg/logger"
)

// TextXMLParser 提取XML字符数据，每段一行
type TextXMLParser struct{}

var (
	invisibleCharsRegex = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F\x{200B}\x{200C}\x{200D}\x{200E}\x{200F}\x{FEFF}]`)
	whitespaceRegex     = regexp.MustCompile(`[\s\x{A0}\x{2000}-\x{200A}\x{202F}\x{205F}\x{3000}]+`)
)

func (p *TextXMLParser) ParseXml(xmlContent []byte) ([]byte, error) {
	decoder := xml.NewDecoder(bytes.NewReader(xmlContent))
	decoder.Strict = false
	decoder.AutoClose = xml.HTMLAutoClose
	// 非UTF-8声明的文档按原样读取
	decoder.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		logger.Logger.Printf("xml declares charset %s, read as-is", charset)
		return input, nil
	}

	var segments []string
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return []byte{}, fmt.Errorf("xml decode error: %w", err)
		}

		if t, ok := token.(xml.CharData); ok {
			text := invisibleCharsRegex.ReplaceAllString(string(t), "")
			text = strings.TrimSpace(whitespaceRegex.ReplaceAllString(text, " "))
			if text != "" {
				segments = append(segments, text)
			}
		}
	}

	return []byte(strings.Join(segments, "\n")), nil
}

func (p *TextXMLParser) Parse(filePath string) ([]byte, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return []byte{}, fmt.Errorf("read xml file '%s': %w", filePath, err)
	}
	return p.ParseXml(content)
}
