package compressfile

import (
	"compress/gzip"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tstidx/internal"
)

type GzFileParser struct{}

func (p *GzFileParser) Parse(filePath string) ([]byte, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return []byte{}, fmt.Errorf("open gz %s: %w", filePath, err)
	}
	defer file.Close()

	gzReader, err := gzip.NewReader(file)
	if err != nil {
		return []byte{}, fmt.Errorf("read gz header: %w", err)
	}
	defer gzReader.Close()

	// tar.gz直接按tar流处理
	lower := strings.ToLower(filePath)
	if strings.HasSuffix(lower, ".tar.gz") || strings.HasSuffix(lower, ".tgz") {
		return parseTarFromReader(gzReader)
	}

	name := gzReader.Header.Name
	if name == "" {
		name = trimSuffixFold(filepath.Base(filePath), ".gz")
	}
	return extractStream(gzReader, name, "gz")
}

func init() {
	internal.RegisterParser(internal.FileTypeGZ, &GzFileParser{})
	internal.RegisterParser(internal.FileTypeTARGZ, &GzFileParser{})
}
