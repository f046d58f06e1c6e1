package compressfile

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"

	"tstidx/internal"
	"tstidx/pkg/logger"
)

type ZipFileParser struct{}

func (p *ZipFileParser) Parse(filePath string) ([]byte, error) {
	r, err := zip.OpenReader(filePath)
	if err != nil {
		return []byte{}, fmt.Errorf("open zip %s: %w", filePath, err)
	}
	defer r.Close()

	tmpDir, err := os.MkdirTemp("", "zip_extract_")
	if err != nil {
		return []byte{}, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)
	logger.DebugLogger.Printf("temp dir: %s", tmpDir)

	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		safePath := filepath.Join(tmpDir, sanitizePath(f.Name))
		logger.DebugLogger.Printf("zip entry: %s -> %s", f.Name, safePath)

		rc, err := f.Open()
		if err != nil {
			return []byte{}, fmt.Errorf("open zip entry %s: %w", f.Name, err)
		}
		err = WriteDstFile(rc, safePath, 0644)
		rc.Close()
		if err != nil {
			return []byte{}, err
		}
	}

	content, files, err := WalkDir(tmpDir)
	if err != nil {
		return content, err
	}
	logger.Logger.Printf("zip extracted, %d file(s)", files)
	return content, nil
}

func init() {
	internal.RegisterParser(internal.FileTypeZIP, &ZipFileParser{})
	internal.RegisterParser(internal.FileTypeJAR, &ZipFileParser{})
}
