package pdf

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"regexp"
	"strings"

	ledongthucpdf "github.com/ledongthuc/pdf"
	pdfcpu "github.com/pdfcpu/pdfcpu/pkg/api"
	rscpdf "github.com/rsc/pdf"

	"tstidx/pkg/compressfile"
	"tstidx/pkg/logger"
	"tstidx/pkg/plaintext/plaintxt"
)

// OfficePdfParser 依次尝试 ledongthuc/pdf、rsc/pdf、pdfcpu，取第一个有文本的结果
type OfficePdfParser struct{}

// 内容流中的字面字符串 (…)，允许转义
var literalRegex = regexp.MustCompile(`\(((?:\\.|[^\\)])*)\)`)

func (p *OfficePdfParser) Parse(filePath string) ([]byte, error) {
	text, err := p.parseWithLedongthuc(filePath)
	if err == nil && len(bytes.TrimSpace(text)) > 0 {
		return text, nil
	}
	logger.Logger.Printf("ledongthuc/pdf failed: %v, try rsc/pdf", err)

	text, err = p.parseWithRscPdf(filePath)
	if err == nil && len(bytes.TrimSpace(text)) > 0 {
		return text, nil
	}
	logger.Logger.Printf("rsc/pdf failed: %v, try pdfcpu", err)

	text, err = p.parseWithPdfcpu(filePath)
	if err != nil {
		return []byte{}, fmt.Errorf("extract pdf %s: %w", filePath, err)
	}
	return text, nil
}

func (p *OfficePdfParser) parseWithLedongthuc(filePath string) (out []byte, err error) {
	// 畸形文件可能触发库内panic
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("ledongthuc/pdf panic: %v", r)
		}
	}()

	f, r, err := ledongthucpdf.Open(filePath)
	if err != nil {
		return []byte{}, err
	}
	defer f.Close()

	var textBuilder bytes.Buffer
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			logger.Logger.Printf("page %d text extraction failed: %v", i, err)
			continue
		}
		for _, row := range rows {
			var line strings.Builder
			for _, word := range row.Content {
				line.WriteString(word.S)
			}
			textBuilder.WriteString(line.String())
			textBuilder.WriteString("\n")
		}
	}
	return textBuilder.Bytes(), nil
}

func (p *OfficePdfParser) parseWithRscPdf(filePath string) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("rsc/pdf panic: %v", r)
		}
	}()

	file, err := os.Open(filePath)
	if err != nil {
		return []byte{}, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return []byte{}, err
	}

	reader, err := rscpdf.NewReader(file, info.Size())
	if err != nil {
		return []byte{}, err
	}

	var textBuilder bytes.Buffer
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		// 同一基线的文本片段拼成一行
		lastY := math.NaN()
		for _, text := range page.Content().Text {
			if !math.IsNaN(lastY) && math.Abs(text.Y-lastY) > 1 {
				textBuilder.WriteString("\n")
			}
			textBuilder.WriteString(text.S)
			lastY = text.Y
		}
		textBuilder.WriteString("\n")
	}
	return textBuilder.Bytes(), nil
}

// parseWithPdfcpu 导出各页内容流，再从中取出字面字符串
func (p *OfficePdfParser) parseWithPdfcpu(filePath string) ([]byte, error) {
	tmpDir, err := os.MkdirTemp("", "pdf_extract_")
	if err != nil {
		return []byte{}, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	if err := pdfcpu.ExtractContentFile(filePath, tmpDir, nil, nil); err != nil {
		return []byte{}, fmt.Errorf("pdfcpu extract content: %w", err)
	}

	content, cnt, err := compressfile.WalkDir(tmpDir)
	if err != nil {
		return []byte{}, err
	}
	logger.Logger.Printf("pdfcpu extracted %d content stream(s)", cnt)

	return contentStreamText(content)
}

// contentStreamText 每行内容流操作符中的字面字符串拼成一行
func contentStreamText(content []byte) ([]byte, error) {
	var out bytes.Buffer
	for _, line := range strings.Split(string(content), "\n") {
		matches := literalRegex.FindAllStringSubmatch(line, -1)
		if len(matches) == 0 {
			continue
		}
		var sb strings.Builder
		for _, m := range matches {
			sb.WriteString(unescapeLiteral(m[1]))
		}
		if s := strings.TrimSpace(sb.String()); s != "" {
			out.WriteString(s)
			out.WriteString("\n")
		}
	}
	return plaintxt.DecodeText(out.Bytes())
}

var literalEscapes = strings.NewReplacer(`\(`, "(", `\)`, ")", `\\`, `\`, `\n`, " ", `\r`, " ", `\t`, " ")

func unescapeLiteral(s string) string {
	return literalEscapes.Replace(s)
}
