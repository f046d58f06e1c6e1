package ole

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf16"

	"github.com/richardlehane/mscfb"
	"golang.org/x/text/encoding/charmap"

	"tstidx/pkg/logger"
)

// 旧版Office复合文档（doc/ppt）：只做文本提取，不解析排版结构

const (
	streamWordDocument = "WordDocument"
	streamTable0       = "0Table"
	streamTable1       = "1Table"
	streamPowerPoint   = "PowerPoint Document"

	recordHeaderLen = 8
	recVerContainer = 0xF

	rtTextCharsAtom = 0x0FA0 // UTF-16LE
	rtTextBytesAtom = 0x0FA8 // 8位，高字节省略
	rtCStringAtom   = 0x0FBA // UTF-16LE
)

var ErrNoTextStream = errors.New("no WordDocument or PowerPoint Document stream")

type OfficeOleParser struct{}

func (p *OfficeOleParser) Parse(filePath string) ([]byte, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return []byte{}, fmt.Errorf("open ole file %s: %w", filePath, err)
	}
	defer file.Close()

	doc, err := mscfb.New(file)
	if err != nil {
		return []byte{}, fmt.Errorf("read compound file %s: %w", filePath, err)
	}

	streams := make(map[string][]byte)
	for _, entry := range doc.File {
		logger.DebugLogger.Printf("ole stream: %s (%d bytes)", entry.Name, entry.Size)
		switch entry.Name {
		case streamWordDocument, streamTable0, streamTable1, streamPowerPoint:
		default:
			continue
		}

		buf := make([]byte, entry.Size)
		if _, err := io.ReadFull(entry, buf); err != nil {
			return []byte{}, fmt.Errorf("read %s stream: %w", entry.Name, err)
		}
		streams[entry.Name] = buf
	}

	var lines []string
	switch {
	case streams[streamPowerPoint] != nil:
		lines = pptTextRecords(streams[streamPowerPoint])
	case streams[streamWordDocument] != nil:
		lines, err = wordDocumentText(streams)
		if err != nil {
			return []byte{}, fmt.Errorf("%s: %w", filePath, err)
		}
	default:
		return []byte{}, ErrNoTextStream
	}
	logger.Logger.Printf("ole %s: %d text fragment(s)", filePath, len(lines))
	return []byte(strings.Join(lines, "\n")), nil
}

// pptTextRecords 顺序扫描PowerPoint Document流中的记录
// 容器记录只跳过头部进入子记录，文本原子记录解码后输出
func pptTextRecords(stream []byte) []string {
	var lines []string
	pos := 0
	for pos+recordHeaderLen <= len(stream) {
		verInstance := binary.LittleEndian.Uint16(stream[pos:])
		recType := binary.LittleEndian.Uint16(stream[pos+2:])
		recLen := int(binary.LittleEndian.Uint32(stream[pos+4:]))
		pos += recordHeaderLen

		if verInstance&0x000F == recVerContainer {
			continue
		}
		if recLen < 0 || pos+recLen > len(stream) {
			logger.DebugLogger.Printf("ppt record 0x%04X overruns stream at %d", recType, pos)
			break
		}

		data := stream[pos : pos+recLen]
		switch recType {
		case rtTextCharsAtom, rtCStringAtom:
			lines = appendLines(lines, decodeUTF16LE(data))
		case rtTextBytesAtom:
			text, err := charmap.Windows1252.NewDecoder().Bytes(data)
			if err == nil {
				lines = appendLines(lines, string(text))
			}
		}
		pos += recLen
	}
	return lines
}

func decodeUTF16LE(data []byte) string {
	u := make([]uint16, len(data)/2)
	for i := range u {
		u[i] = binary.LittleEndian.Uint16(data[2*i:])
	}
	return string(utf16.Decode(u))
}

// appendLines PPT用\r分段，按段拆成多行
func appendLines(lines []string, text string) []string {
	for _, l := range strings.FieldsFunc(text, func(r rune) bool { return r == '\r' || r == '\n' || r == '\v' }) {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
