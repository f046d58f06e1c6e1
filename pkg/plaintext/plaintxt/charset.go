package plaintxt

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"tstidx/pkg/logger"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// DecodeText 将任意编码的文本转为UTF-8
// 优先BOM，其次合法UTF-8原样返回，最后交给chardet检测
func DecodeText(raw []byte) ([]byte, error) {
	switch {
	case bytes.HasPrefix(raw, bomUTF8):
		return raw[len(bomUTF8):], nil
	case bytes.HasPrefix(raw, bomUTF16LE):
		return decodeWith(unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), raw)
	case bytes.HasPrefix(raw, bomUTF16BE):
		return decodeWith(unicode.UTF16(unicode.BigEndian, unicode.UseBOM), raw)
	case utf8.Valid(raw):
		return raw, nil
	}

	detector := chardet.NewTextDetector()
	result, err := detector.DetectBest(raw)
	if err != nil {
		logger.Logger.Printf("charset detection failed: %v, keep raw bytes", err)
		return raw, nil
	}
	logger.DebugLogger.Printf("detected charset %s (confidence %d)", result.Charset, result.Confidence)

	enc := EncodingFor(result.Charset)
	if enc == nil {
		logger.Logger.Printf("unsupported charset %s, keep raw bytes", result.Charset)
		return raw, nil
	}
	return decodeWith(enc, raw)
}

// EncodingFor 将chardet的字符集名映射为x/text编码，未知返回nil
func EncodingFor(charset string) encoding.Encoding {
	switch strings.ToLower(charset) {
	case "utf-8", "ascii", "us-ascii":
		return encoding.Nop
	case "utf-16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	case "utf-16be":
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	case "gb-18030", "gb18030", "gbk", "gb2312":
		return simplifiedchinese.GB18030
	case "big5":
		return traditionalchinese.Big5
	case "shift_jis":
		return japanese.ShiftJIS
	case "euc-jp":
		return japanese.EUCJP
	case "euc-kr":
		return korean.EUCKR
	case "iso-8859-1":
		return charmap.ISO8859_1
	case "windows-1252":
		return charmap.Windows1252
	case "windows-1251":
		return charmap.Windows1251
	}
	return nil
}

func decodeWith(enc encoding.Encoding, raw []byte) ([]byte, error) {
	decoded, _, err := transform.Bytes(enc.NewDecoder(), raw)
	if err != nil {
		return []byte{}, fmt.Errorf("decode text: %w", err)
	}
	return decoded, nil
}
