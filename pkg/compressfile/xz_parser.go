package compressfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ulikunitz/xz"

	"tstidx/internal"
)

type XzFileParser struct{}

func (p *XzFileParser) Parse(filePath string) ([]byte, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return []byte{}, fmt.Errorf("open xz %s: %w", filePath, err)
	}
	defer file.Close()

	xzReader, err := xz.NewReader(file)
	if err != nil {
		return []byte{}, fmt.Errorf("read xz header: %w", err)
	}

	name := trimSuffixFold(filepath.Base(filePath), ".xz")
	return extractStream(xzReader, name, "xz")
}

func init() {
	internal.RegisterParser(internal.FileTypeXZ, &XzFileParser{})
}
