package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"tstidx/pkg/logger"
)

// WordprocessingML命名空间
const wNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

type OfficeDocxParser struct{}

// Parse 提取DOCX正文，每个段落（含表格单元格内段落）一行
func (p *OfficeDocxParser) Parse(filename string) ([]byte, error) {
	zipReader, err := zip.OpenReader(filename)
	if err != nil {
		return []byte{}, fmt.Errorf("open docx %s: %w", filename, err)
	}
	defer zipReader.Close()

	docFile, err := findDocumentXml(zipReader.File)
	if err != nil {
		return []byte{}, err
	}

	rc, err := docFile.Open()
	if err != nil {
		return []byte{}, fmt.Errorf("open document.xml: %w", err)
	}
	defer rc.Close()

	return parseDocumentXml(rc)
}

func findDocumentXml(files []*zip.File) (*zip.File, error) {
	for _, file := range files {
		if file.Name == "word/document.xml" {
			return file, nil
		}
	}
	return nil, errors.New("word/document.xml not found in docx")
}

// parseDocumentXml 流式读取w:t文本，w:p结束时换行
func parseDocumentXml(r io.Reader) ([]byte, error) {
	decoder := xml.NewDecoder(r)

	var textBuffer bytes.Buffer
	var para strings.Builder
	inText := false
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return []byte{}, fmt.Errorf("decode document.xml: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Space != wNamespace {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				para.WriteString("\t")
			case "br", "cr":
				para.WriteString("\n")
			}
		case xml.EndElement:
			if t.Name.Space != wNamespace {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if line := strings.TrimSpace(para.String()); line != "" {
					textBuffer.WriteString(line)
					textBuffer.WriteString("\n")
				}
				para.Reset()
			}
		case xml.CharData:
			if inText {
				para.Write(t)
			}
		}
	}

	logger.DebugLogger.Printf("docx text length: %d", textBuffer.Len())
	return textBuffer.Bytes(), nil
}
