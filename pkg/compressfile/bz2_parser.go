package compressfile

import (
	"compress/bzip2"
	"fmt"
	"os"
	"path/filepath"

	"tstidx/internal"
)

type Bz2FileParser struct{}

func (p *Bz2FileParser) Parse(filePath string) ([]byte, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return []byte{}, fmt.Errorf("open bz2 %s: %w", filePath, err)
	}
	defer file.Close()

	name := trimSuffixFold(filepath.Base(filePath), ".bz2")
	return extractStream(bzip2.NewReader(file), name, "bz2")
}

func init() {
	internal.RegisterParser(internal.FileTypeBZ2, &Bz2FileParser{})
}
