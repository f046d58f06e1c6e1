package plainmd

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"tstidx/pkg/logger"
)

// TextMarkdownParser 提取Markdown纯文本，每个块一行
type TextMarkdownParser struct{}

var (
	invisibleCharsRegex = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F\x{200B}-\x{200F}\x{FEFF}]`)
	whitespaceRegex     = regexp.MustCompile(`[ \t\f\v\x{A0}\x{2000}-\x{200A}\x{3000}]+`)
)

// ParseMd 遍历goldmark AST提取文本
func (p *TextMarkdownParser) ParseMd(content []byte) (string, error) {
	md := goldmark.New()
	rootNode := md.Parser().Parse(text.NewReader(content))

	var sb strings.Builder
	err := ast.Walk(rootNode, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if node.Type() == ast.TypeBlock {
				sb.WriteString("\n")
			}
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Text:
			sb.Write(n.Segment.Value(content))
			if n.SoftLineBreak() || n.HardLineBreak() {
				sb.WriteString("\n")
			}
		case *ast.String:
			sb.Write(n.Value)
		case *ast.CodeBlock, *ast.FencedCodeBlock:
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				sb.Write(seg.Value(content))
			}
			return ast.WalkSkipChildren, nil
		case *ast.HTMLBlock, *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		case *ast.AutoLink:
			sb.Write(n.Label(content))
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return "", err
	}

	logger.DebugLogger.Printf("markdown raw text: %q", sb.String())
	return p.processExtractedText(sb.String()), nil
}

// processExtractedText 移除不可见字符并规范空白，去掉空行
func (p *TextMarkdownParser) processExtractedText(rawText string) string {
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

func (p *TextMarkdownParser) Parse(filePath string) ([]byte, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return []byte{}, fmt.Errorf("read markdown file '%s': %w", filePath, err)
	}

	data, err := p.ParseMd(content)
	if err != nil {
		return []byte{}, fmt.Errorf("parse markdown file '%s': %w", filePath, err)
	}
	return []byte(data), nil
}
