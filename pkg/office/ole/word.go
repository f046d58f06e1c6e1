package ole

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"tstidx/pkg/logger"
)

// Word 97-2003正文：FIB -> 表流中的CLX -> 分段表(PlcPcd) -> WordDocument流中的文本片段

const (
	wIdentWord = 0xA5EC

	fibFlagsOffset   = 0x0A
	fibWhichTblStm   = 0x0200 // 1=1Table, 0=0Table
	fibBaseLen       = 32
	fcClxIndex       = 66 // rgFcLcb中的uint32下标
	lcbClxIndex      = 67
	clxtPrc          = 0x01
	clxtPcdt         = 0x02
	pcdLen           = 8
	pcdFcCompressed  = 0x40000000
	pcdFcMask        = 0x3FFFFFFF
	maxPieceTableLen = 1 << 24
)

var ErrNotWordDocument = errors.New("not a Word 97-2003 document")

// piece 一段连续文本，compressed时每字符1字节(cp1252)，否则UTF-16LE
type piece struct {
	cpStart, cpEnd uint32
	fc             uint32
	compressed     bool
}

// byteRange 片段在WordDocument流中的字节区间
func (p piece) byteRange() (start, end uint64) {
	n := uint64(p.cpEnd - p.cpStart)
	if p.compressed {
		start = uint64(p.fc / 2)
		return start, start + n
	}
	start = uint64(p.fc)
	return start, start + 2*n
}

func wordDocumentText(streams map[string][]byte) ([]string, error) {
	wd := streams[streamWordDocument]
	tableName, fcClx, lcbClx, err := parseFib(wd)
	if err != nil {
		return nil, err
	}

	table, ok := streams[tableName]
	if !ok {
		return nil, fmt.Errorf("missing %s stream", tableName)
	}
	if uint64(fcClx)+uint64(lcbClx) > uint64(len(table)) {
		return nil, fmt.Errorf("clx [%d,+%d) outside %s stream (%d bytes)", fcClx, lcbClx, tableName, len(table))
	}

	pieces, err := parsePieceTable(table[fcClx : fcClx+lcbClx])
	if err != nil {
		return nil, err
	}
	logger.DebugLogger.Printf("word: table %s, %d piece(s)", tableName, len(pieces))

	var sb strings.Builder
	for i, p := range pieces {
		start, end := p.byteRange()
		if end > uint64(len(wd)) {
			return nil, fmt.Errorf("piece %d [%d,%d) outside WordDocument stream (%d bytes)", i, start, end, len(wd))
		}
		data := wd[start:end]
		if p.compressed {
			text, err := charmap.Windows1252.NewDecoder().Bytes(data)
			if err != nil {
				return nil, fmt.Errorf("decode piece %d: %w", i, err)
			}
			sb.Write(text)
		} else {
			sb.WriteString(decodeUTF16LE(data))
		}
	}
	return wordLines(sb.String()), nil
}

// parseFib 读取FIB，返回表流名称和CLX位置
func parseFib(wd []byte) (string, uint32, uint32, error) {
	if len(wd) < fibBaseLen+2 || binary.LittleEndian.Uint16(wd) != wIdentWord {
		return "", 0, 0, ErrNotWordDocument
	}

	tableName := streamTable0
	if binary.LittleEndian.Uint16(wd[fibFlagsOffset:])&fibWhichTblStm != 0 {
		tableName = streamTable1
	}

	// FibBase | csw fibRgW | cslw fibRgLw | cbRgFcLcb fibRgFcLcbBlob
	pos := fibBaseLen
	csw := int(binary.LittleEndian.Uint16(wd[pos:]))
	pos += 2 + csw*2
	if pos+2 > len(wd) {
		return "", 0, 0, fmt.Errorf("%w: truncated fib", ErrNotWordDocument)
	}
	cslw := int(binary.LittleEndian.Uint16(wd[pos:]))
	pos += 2 + cslw*4
	if pos+2 > len(wd) {
		return "", 0, 0, fmt.Errorf("%w: truncated fib", ErrNotWordDocument)
	}
	cbRgFcLcb := int(binary.LittleEndian.Uint16(wd[pos:]))
	pos += 2
	if cbRgFcLcb*2 <= lcbClxIndex || pos+(lcbClxIndex+1)*4 > len(wd) {
		return "", 0, 0, fmt.Errorf("%w: fib has no clx entry", ErrNotWordDocument)
	}

	fcClx := binary.LittleEndian.Uint32(wd[pos+fcClxIndex*4:])
	lcbClx := binary.LittleEndian.Uint32(wd[pos+lcbClxIndex*4:])
	if lcbClx == 0 {
		return "", 0, 0, fmt.Errorf("%w: empty clx", ErrNotWordDocument)
	}
	return tableName, fcClx, lcbClx, nil
}

// parsePieceTable 跳过RgPrc，解析Pcdt中的PlcPcd
func parsePieceTable(clx []byte) ([]piece, error) {
	pos := 0
	for pos < len(clx) && clx[pos] == clxtPrc {
		if pos+3 > len(clx) {
			return nil, errors.New("truncated prc in clx")
		}
		cbGrpprl := int(int16(binary.LittleEndian.Uint16(clx[pos+1:])))
		if cbGrpprl < 0 {
			return nil, fmt.Errorf("invalid prc size %d", cbGrpprl)
		}
		pos += 3 + cbGrpprl
	}
	if pos+5 > len(clx) || clx[pos] != clxtPcdt {
		return nil, fmt.Errorf("no pcdt at clx offset %d", pos)
	}

	lcb := int(binary.LittleEndian.Uint32(clx[pos+1:]))
	pos += 5
	if lcb < 4 || lcb > maxPieceTableLen || pos+lcb > len(clx) || (lcb-4)%(4+pcdLen) != 0 {
		return nil, fmt.Errorf("invalid PlcPcd size %d", lcb)
	}
	plc := clx[pos : pos+lcb]

	n := (lcb - 4) / (4 + pcdLen)
	pieces := make([]piece, 0, n)
	pcds := plc[(n+1)*4:]
	for i := 0; i < n; i++ {
		cpStart := binary.LittleEndian.Uint32(plc[i*4:])
		cpEnd := binary.LittleEndian.Uint32(plc[(i+1)*4:])
		if cpEnd < cpStart {
			return nil, fmt.Errorf("piece %d: cp %d < %d", i, cpEnd, cpStart)
		}
		fcCompressed := binary.LittleEndian.Uint32(pcds[i*pcdLen+2:])
		pieces = append(pieces, piece{
			cpStart:    cpStart,
			cpEnd:      cpEnd,
			fc:         fcCompressed & pcdFcMask,
			compressed: fcCompressed&pcdFcCompressed != 0,
		})
	}
	return pieces, nil
}

// wordLines 去掉域代码和控制字符，按段落/单元格拆行
func wordLines(text string) []string {
	var sb strings.Builder
	var fields []bool // 栈顶为true表示处于域代码部分
	for _, r := range text {
		switch r {
		case 0x13: // 域开始
			fields = append(fields, true)
			continue
		case 0x14: // 域分隔，之后是域结果
			if n := len(fields); n > 0 {
				fields[n-1] = false
			}
			continue
		case 0x15: // 域结束
			if n := len(fields); n > 0 {
				fields = fields[:n-1]
			}
			continue
		}
		if n := len(fields); n > 0 && fields[n-1] {
			continue
		}

		switch {
		case r == '\t':
			sb.WriteRune(r)
		case r == 0x1E: // 不间断连字符
			sb.WriteRune('-')
		case r == 0x1F: // 可选连字符
		case r < 0x20:
			sb.WriteRune('\n')
		default:
			sb.WriteRune(r)
		}
	}
	return appendLines(nil, sb.String())
}
