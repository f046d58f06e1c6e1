package plainhtml

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// TextHTMLParser 提取HTML可见文本，每个块级元素一行
type TextHTMLParser struct{}

var (
	invisibleCharsRegex = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F\x{200B}\x{200C}\x{200D}\x{200E}\x{200F}\x{FEFF}]`)
	whitespaceRegex     = regexp.MustCompile(`[ \t\r\x{A0}\x{2000}-\x{200A}\x{202F}\x{205F}\x{3000}]+`)
)

// 不输出内容的标签
var skipTags = map[string]bool{
	"script": true, "style": true, "head": true, "meta": true, "link": true, "noscript": true, "template": true,
}

// 结束后换行的块级标签
var blockTags = map[string]bool{
	"p": true, "div": true, "li": true, "tr": true, "td": true, "th": true, "dt": true, "dd": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"option": true, "section": true, "article": true, "blockquote": true, "pre": true,
}

// ParseHtml 从HTML内容中提取文本
func (p *TextHTMLParser) ParseHtml(htmlContent []byte) ([]byte, error) {
	doc, err := html.Parse(bytes.NewReader(htmlContent))
	if err != nil {
		return []byte{}, fmt.Errorf("html parse error: %w", err)
	}

	var sb strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			sb.WriteString(n.Data)
			return
		case html.ElementNode:
			if skipTags[n.Data] {
				return
			}
			if n.Data == "br" {
				sb.WriteString("\n")
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}

		if n.Type == html.ElementNode && blockTags[n.Data] {
			sb.WriteString("\n")
		}
	}
	extractText(doc)

	return []byte(p.processExtractedText(sb.String())), nil
}

// processExtractedText 过滤不可见字符，每行内规范空白，去掉空行
func (p *TextHTMLParser) processExtractedText(rawText string) string {
	rawText = invisibleCharsRegex.ReplaceAllString(rawText, "")

	var lines []string
	for _, line := range strings.Split(rawText, "\n") {
		line = strings.TrimSpace(whitespaceRegex.ReplaceAllString(line, " "))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func (p *TextHTMLParser) Parse(filePath string) ([]byte, error) {
	fileContent, err := os.ReadFile(filePath)
	if err != nil {
		return []byte{}, fmt.Errorf("read html file '%s': %w", filePath, err)
	}
	return p.ParseHtml(fileContent)
}
