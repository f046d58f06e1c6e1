package compressfile

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"tstidx/internal"
	"tstidx/pkg/logger"
)

type TarFileParser struct{}

func (p *TarFileParser) Parse(filePath string) ([]byte, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return []byte{}, fmt.Errorf("open tar %s: %w", filePath, err)
	}
	defer file.Close()

	return parseTarFromReader(file)
}

func init() {
	internal.RegisterParser(internal.FileTypeTAR, &TarFileParser{})
}

func parseTarFromReader(reader io.Reader) ([]byte, error) {
	tarReader := tar.NewReader(reader)

	tmpDir, err := os.MkdirTemp("", "tar_extract_")
	if err != nil {
		return []byte{}, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)
	logger.DebugLogger.Printf("temp dir: %s", tmpDir)

	for {
		header, err := tarReader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return []byte{}, fmt.Errorf("read tar: %w", err)
		}

		// 只处理普通文件，目录由WriteDstFile按需创建
		if header.Typeflag != tar.TypeReg {
			continue
		}
		targetPath := filepath.Join(tmpDir, sanitizePath(header.Name))
		if err := WriteDstFile(tarReader, targetPath, 0644); err != nil {
			return []byte{}, err
		}
		logger.DebugLogger.Printf("tar entry: %s", header.Name)
	}

	content, files, err := WalkDir(tmpDir)
	if err != nil {
		return content, err
	}
	logger.Logger.Printf("tar extracted, %d file(s)", files)
	return content, nil
}
