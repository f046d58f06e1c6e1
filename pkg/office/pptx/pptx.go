package pptx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"tstidx/pkg/logger"
)

var slideNameRe = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// 页码、日期、页眉页脚占位符不是正文
var skipPlaceholders = map[string]bool{"sldNum": true, "dt": true, "ftr": true, "hdr": true}

type OfficePptxParser struct{}

// Parse 按幻灯片编号顺序提取文本，每个段落一行
func (p *OfficePptxParser) Parse(filename string) ([]byte, error) {
	reader, err := zip.OpenReader(filename)
	if err != nil {
		return []byte{}, fmt.Errorf("open pptx %s: %w", filename, err)
	}
	defer reader.Close()

	type numberedSlide struct {
		num  int
		file *zip.File
	}
	var slides []numberedSlide
	for _, file := range reader.File {
		m := slideNameRe.FindStringSubmatch(file.Name)
		if m == nil {
			continue
		}
		num, _ := strconv.Atoi(m[1])
		slides = append(slides, numberedSlide{num: num, file: file})
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].num < slides[j].num })

	var textBuffer bytes.Buffer
	for _, s := range slides {
		content, err := readZipFile(s.file)
		if err != nil {
			return []byte{}, fmt.Errorf("read %s: %w", s.file.Name, err)
		}
		text, err := parseSlideXml(content)
		if err != nil {
			// 单页损坏不影响其他页
			logger.Logger.Printf("skip slide %s: %v", s.file.Name, err)
			continue
		}
		textBuffer.Write(text)
	}

	logger.DebugLogger.Printf("pptx: %d slide(s), %d bytes of text", len(slides), textBuffer.Len())
	return textBuffer.Bytes(), nil
}

func readZipFile(zf *zip.File) ([]byte, error) {
	rc, err := zf.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func parseSlideXml(content []byte) ([]byte, error) {
	var s slideXml
	if err := xml.Unmarshal(content, &s); err != nil {
		return nil, err
	}

	var textBuffer bytes.Buffer
	for _, sp := range s.Shapes {
		if sp.Placeholder != nil && skipPlaceholders[sp.Placeholder.Type] {
			logger.DebugLogger.Printf("skip placeholder: %s", sp.Placeholder.Type)
			continue
		}
		for _, para := range sp.Paras {
			var line strings.Builder
			for _, r := range para.Runs {
				line.WriteString(r.Text)
			}
			if text := strings.TrimSpace(line.String()); text != "" {
				textBuffer.WriteString(text)
				textBuffer.WriteString("\n")
			}
		}
	}
	return textBuffer.Bytes(), nil
}

// slideXml p:sld，只保留文本相关节点
type slideXml struct {
	Shapes []shape `xml:"cSld>spTree>sp"`
}

type shape struct {
	Placeholder *placeholder `xml:"nvSpPr>nvPr>ph"`
	Paras       []paragraph  `xml:"txBody>p"`
}

type placeholder struct {
	Type string `xml:"type,attr"`
}

// paragraph a:p，a:r和a:fld都带a:t
type paragraph struct {
	Runs []textRun `xml:",any"`
}

type textRun struct {
	XMLName xml.Name
	Text    string `xml:"t"`
}
