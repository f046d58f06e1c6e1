package compressfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nwaples/rardecode"

	"tstidx/internal"
	"tstidx/pkg/logger"
)

type RarFileParser struct{}

func (p *RarFileParser) Parse(filePath string) ([]byte, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return []byte{}, fmt.Errorf("open rar %s: %w", filePath, err)
	}
	defer file.Close()

	reader, err := rardecode.NewReader(file, "")
	if err != nil {
		return []byte{}, fmt.Errorf("read rar: %w", err)
	}

	tmpDir, err := os.MkdirTemp("", "rar_extract_")
	if err != nil {
		return []byte{}, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)
	logger.DebugLogger.Printf("temp dir: %s", tmpDir)

	for {
		hdr, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return []byte{}, fmt.Errorf("read rar entry: %w", err)
		}
		if hdr.IsDir {
			continue
		}

		safePath := filepath.Join(tmpDir, sanitizePath(hdr.Name))
		if err := WriteDstFile(reader, safePath, 0644); err != nil {
			return []byte{}, err
		}
		logger.DebugLogger.Printf("rar entry: %s", hdr.Name)
	}

	content, files, err := WalkDir(tmpDir)
	if err != nil {
		return content, err
	}
	logger.Logger.Printf("rar extracted, %d file(s)", files)
	return content, nil
}

func init() {
	internal.RegisterParser(internal.FileTypeRAR, &RarFileParser{})
}
