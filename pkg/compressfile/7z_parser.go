package compressfile

import (
	"fmt"
	"os"

	"github.com/gen2brain/go-unarr"

	"tstidx/internal"
	"tstidx/pkg/logger"
)

type SevenZFileParser struct{}

func (p *SevenZFileParser) Parse(filePath string) ([]byte, error) {
	archive, err := unarr.NewArchive(filePath)
	if err != nil {
		return []byte{}, fmt.Errorf("open 7z %s: %w", filePath, err)
	}
	defer archive.Close()

	tmpDir, err := os.MkdirTemp("", "7z_extract_")
	if err != nil {
		return []byte{}, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)
	logger.DebugLogger.Printf("temp dir: %s", tmpDir)

	files, err := archive.Extract(tmpDir)
	if err != nil {
		return []byte{}, fmt.Errorf("extract 7z: %w", err)
	}
	logger.DebugLogger.Printf("7z entries: %v", files)

	content, cnt, err := WalkDir(tmpDir)
	if err != nil {
		return content, err
	}
	logger.Logger.Printf("7z extracted, %d file(s)", cnt)
	return content, nil
}

func init() {
	internal.RegisterParser(internal.FileType7Z, &SevenZFileParser{})
}
