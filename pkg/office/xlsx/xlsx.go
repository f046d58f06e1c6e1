package xlsx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"tstidx/pkg/logger"
)

// OfficeXlsxParser XLSX解析器，每行一行文本，单元格以tab分隔
type OfficeXlsxParser struct{}

var sheetNameRegex = regexp.MustCompile(`^sheet(\d+)\.xml$`)

type sharedStringsXml struct {
	Items []stringItem `xml:"si"`
}

// stringItem 共享字符串，纯文本在t中，富文本分散在多个r/t中
type stringItem struct {
	Text string   `xml:"t"`
	Runs []string `xml:"r>t"`
}

func (s stringItem) value() string {
	if len(s.Runs) == 0 {
		return s.Text
	}
	return strings.Join(s.Runs, "")
}

type worksheetXml struct {
	Rows []rowXml `xml:"sheetData>row"`
}

type rowXml struct {
	Cells []cellXml `xml:"c"`
}

type cellXml struct {
	Type   string     `xml:"t,attr"`
	Value  string     `xml:"v"`
	Inline stringItem `xml:"is"`
}

func (p *OfficeXlsxParser) Parse(filename string) ([]byte, error) {
	reader, err := zip.OpenReader(filename)
	if err != nil {
		return []byte{}, fmt.Errorf("open xlsx %s: %w", filename, err)
	}
	defer reader.Close()

	sharedStrings, err := readSharedStrings(reader.File)
	if err != nil {
		// 非致命，只影响共享字符串单元格
		logger.Logger.Printf("read shared strings failed: %v", err)
	}

	var sheetFiles []*zip.File
	for _, file := range reader.File {
		if filepath.Dir(file.Name) == "xl/worksheets" && sheetNameRegex.MatchString(filepath.Base(file.Name)) {
			sheetFiles = append(sheetFiles, file)
		}
	}
	sort.Slice(sheetFiles, func(i, j int) bool {
		return sheetNumber(sheetFiles[i].Name) < sheetNumber(sheetFiles[j].Name)
	})

	var textBuffer bytes.Buffer
	for _, file := range sheetFiles {
		logger.DebugLogger.Printf("xlsx sheet: %s", file.Name)
		if err := readSheet(file, sharedStrings, &textBuffer); err != nil {
			return []byte{}, fmt.Errorf("read sheet %s: %w", file.Name, err)
		}
	}
	return textBuffer.Bytes(), nil
}

func sheetNumber(name string) int {
	m := sheetNameRegex.FindStringSubmatch(filepath.Base(name))
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

func decodeZipXml(file *zip.File, v interface{}) error {
	rc, err := file.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return err
	}
	return xml.Unmarshal(data, v)
}

func readSharedStrings(files []*zip.File) ([]string, error) {
	for _, file := range files {
		if file.Name != "xl/sharedStrings.xml" {
			continue
		}
		var sst sharedStringsXml
		if err := decodeZipXml(file, &sst); err != nil {
			return nil, err
		}
		values := make([]string, len(sst.Items))
		for i, item := range sst.Items {
			values[i] = item.value()
		}
		return values, nil
	}
	return nil, errors.New("xl/sharedStrings.xml not found")
}

func readSheet(file *zip.File, sharedStrings []string, out *bytes.Buffer) error {
	var sheet worksheetXml
	if err := decodeZipXml(file, &sheet); err != nil {
		return err
	}

	for _, row := range sheet.Rows {
		var cells []string
		for _, c := range row.Cells {
			if v := cellValue(c, sharedStrings); v != "" {
				cells = append(cells, v)
			}
		}
		if len(cells) > 0 {
			out.WriteString(strings.Join(cells, "\t"))
			out.WriteString("\n")
		}
	}
	return nil
}

func cellValue(c cellXml, sharedStrings []string) string {
	switch c.Type {
	case "s":
		idx, err := strconv.Atoi(strings.TrimSpace(c.Value))
		if err != nil || idx < 0 || idx >= len(sharedStrings) {
			return ""
		}
		return strings.TrimSpace(sharedStrings[idx])
	case "inlineStr":
		return strings.TrimSpace(c.Inline.value())
	}
	return strings.TrimSpace(c.Value)
}
