package internal

import (
	"errors"
	"fmt"
	"os"
)

// ErrNoParser 没有任何可用的解析器
var ErrNoParser = errors.New("no parser registered for file type")

// FileParser 语料文件解析器，输出UTF-8文本
type FileParser interface {
	Parse(filePath string) ([]byte, error)
}

var parsers = make(map[int]FileParser)

// RawFileParser 未识别类型按原始字节读取
type RawFileParser struct{}

func (p *RawFileParser) Parse(filePath string) ([]byte, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return []byte{}, err
	}
	return data, nil
}

// RegisterParser 注册文件类型解析器，重复注册忽略
func RegisterParser(fileType int, parser FileParser) {
	if _, exists := parsers[fileType]; exists {
		fmt.Fprintf(os.Stderr, "warning: file type %d already registered, ignored\n", fileType)
		return
	}
	parsers[fileType] = parser
}

// GetParser 获取指定文件类型的解析器，未注册时退回原始读取
func GetParser(fileType int) (FileParser, error) {
	if parser, exists := parsers[fileType]; exists {
		return parser, nil
	}
	if parser, exists := parsers[FileTypeOther]; exists {
		return parser, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrNoParser, fileType)
}

func init() {
	RegisterParser(FileTypeOther, &RawFileParser{})
}
