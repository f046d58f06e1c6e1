package odt

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"tstidx/pkg/logger"
)

const textNamespace = "urn:oasis:names:tc:opendocument:xmlns:text:1.0"

// OfficeOdtParser ODT文档解析器
type OfficeOdtParser struct{}

// Parse 提取content.xml中的段落和标题，每段一行
func (p *OfficeOdtParser) Parse(filePath string) ([]byte, error) {
	zipReader, err := zip.OpenReader(filePath)
	if err != nil {
		return []byte{}, fmt.Errorf("open odt %s: %w", filePath, err)
	}
	defer zipReader.Close()

	for _, file := range zipReader.File {
		if file.Name != "content.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return []byte{}, fmt.Errorf("open content.xml: %w", err)
		}
		defer rc.Close()
		return parseContentXml(rc)
	}
	return []byte{}, errors.New("content.xml not found in odt")
}

// parseContentXml text:p/text:h可以嵌套（如注释、文本框内），按最外层段落换行
func parseContentXml(r io.Reader) ([]byte, error) {
	decoder := xml.NewDecoder(r)

	var textBuffer bytes.Buffer
	var para strings.Builder
	depth := 0
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return []byte{}, fmt.Errorf("decode content.xml: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Space != textNamespace {
				continue
			}
			switch t.Name.Local {
			case "p", "h":
				depth++
			case "s":
				para.WriteString(strings.Repeat(" ", spaceCount(t)))
			case "tab":
				para.WriteString("\t")
			case "line-break":
				para.WriteString("\n")
			}
		case xml.EndElement:
			if t.Name.Space != textNamespace || (t.Name.Local != "p" && t.Name.Local != "h") {
				continue
			}
			if depth--; depth == 0 {
				if line := strings.TrimSpace(para.String()); line != "" {
					textBuffer.WriteString(line)
					textBuffer.WriteString("\n")
				}
				para.Reset()
			}
		case xml.CharData:
			if depth > 0 {
				para.Write(t)
			}
		}
	}

	logger.DebugLogger.Printf("odt text length: %d", textBuffer.Len())
	return textBuffer.Bytes(), nil
}

// spaceCount text:s的text:c属性，缺省为1
func spaceCount(t xml.StartElement) int {
	for _, attr := range t.Attr {
		if attr.Name.Local == "c" {
			if n, err := strconv.Atoi(attr.Value); err == nil && n > 0 {
				return n
			}
		}
	}
	return 1
}
