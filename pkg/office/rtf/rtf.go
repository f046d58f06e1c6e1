package rtf

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"tstidx/pkg/logger"
)

var ErrNotRtf = errors.New("not an rtf document")

// 不输出正文的目标组
var skipDestinations = map[string]bool{
	"fonttbl": true, "colortbl": true, "stylesheet": true, "info": true,
	"pict": true, "object": true, "themedata": true, "listtable": true,
	"listoverridetable": true, "rsidtbl": true, "xmlnstbl": true, "datastore": true,
	"latentstyles": true, "colorschememapping": true, "generator": true,
	"header": true, "headerl": true, "headerr": true, "footer": true, "footerl": true, "footerr": true,
}

// OfficeRtfParser RTF文件解析器
type OfficeRtfParser struct{}

func (p *OfficeRtfParser) Parse(filename string) ([]byte, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return []byte{}, fmt.Errorf("read rtf %s: %w", filename, err)
	}
	if !bytes.HasPrefix(bytes.TrimSpace(content), []byte(`{\rtf`)) {
		return []byte{}, fmt.Errorf("%s: %w", filename, ErrNotRtf)
	}

	text := extractText(content)
	logger.DebugLogger.Printf("rtf text length: %d", len(text))
	return []byte(text), nil
}

// groupState 每个{}组继承外层状态
type groupState struct {
	skip bool
	uc   int // \uN之后需要跳过的替代字符数
}

// extractor 按字节扫描RTF，\'hh和普通字节先按cp1252累积，遇到\u或控制输出时再解码
type extractor struct {
	out     strings.Builder
	ansi    []byte
	stack   []groupState
	pending int // 还需跳过的替代字符数
}

func extractText(data []byte) string {
	e := &extractor{stack: []groupState{{uc: 1}}}
	for i := 0; i < len(data); {
		switch c := data[i]; c {
		case '{':
			e.stack = append(e.stack, e.cur())
			i++
		case '}':
			if len(e.stack) > 1 {
				e.stack = e.stack[:len(e.stack)-1]
			}
			i++
		case '\\':
			i = e.control(data, i)
		case '\r', '\n':
			i++
		default:
			e.char(c)
			i++
		}
	}
	e.flush()
	return e.out.String()
}

func (e *extractor) cur() groupState {
	return e.stack[len(e.stack)-1]
}

func (e *extractor) char(c byte) {
	if e.pending > 0 {
		e.pending--
		return
	}
	if !e.cur().skip {
		e.ansi = append(e.ansi, c)
	}
}

func (e *extractor) write(s string) {
	if e.cur().skip {
		return
	}
	e.flush()
	e.out.WriteString(s)
}

func (e *extractor) flush() {
	if len(e.ansi) == 0 {
		return
	}
	text, err := charmap.Windows1252.NewDecoder().Bytes(e.ansi)
	if err != nil {
		text = e.ansi
	}
	e.out.Write(text)
	e.ansi = e.ansi[:0]
}

// control 处理data[i]处的控制符，返回下一个位置
func (e *extractor) control(data []byte, i int) int {
	if i+1 >= len(data) {
		return len(data)
	}

	switch next := data[i+1]; {
	case next == '\'':
		if i+4 > len(data) {
			return len(data)
		}
		if b, err := strconv.ParseUint(string(data[i+2:i+4]), 16, 8); err == nil {
			e.char(byte(b))
		}
		return i + 4
	case next == '*':
		e.stack[len(e.stack)-1].skip = true
		return i + 2
	case next == '\\' || next == '{' || next == '}':
		e.char(next)
		return i + 2
	case next == '~':
		e.write(" ")
		return i + 2
	case next == '_':
		e.write("-")
		return i + 2
	case next == '\r' || next == '\n':
		e.write("\n")
		return i + 2
	case isLetter(next):
	default:
		return i + 2
	}

	j := i + 1
	for j < len(data) && isLetter(data[j]) {
		j++
	}
	word := string(data[i+1 : j])

	k := j
	if k < len(data) && data[k] == '-' {
		k++
	}
	for k < len(data) && data[k] >= '0' && data[k] <= '9' {
		k++
	}
	param, hasParam := 0, false
	if k > j {
		if n, err := strconv.Atoi(string(data[j:k])); err == nil {
			param, hasParam = n, true
		}
	}
	if k < len(data) && data[k] == ' ' {
		k++
	}

	e.word(word, param, hasParam)
	if word == "bin" && hasParam && param > 0 {
		k += param
	}
	return k
}

func (e *extractor) word(word string, param int, hasParam bool) {
	if skipDestinations[word] {
		e.stack[len(e.stack)-1].skip = true
		return
	}

	switch word {
	case "par", "line", "row", "sect", "page":
		e.write("\n")
	case "tab", "cell":
		e.write("\t")
	case "uc":
		if hasParam && param >= 0 {
			e.stack[len(e.stack)-1].uc = param
		}
	case "u":
		if !hasParam {
			return
		}
		if param < 0 {
			param += 0x10000
		}
		e.write(string(rune(param)))
		e.pending = e.cur().uc
	}
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
