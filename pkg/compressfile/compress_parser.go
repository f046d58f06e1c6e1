package compressfile

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"tstidx/internal"
	"tstidx/pkg/logger"
)

// 压缩包内文件类型不确定：先解压到临时目录，再按扩展名逐个选择解析器

// sanitizePath 防止路径遍历
func sanitizePath(path string) string {
	sanitized := strings.TrimPrefix(filepath.Join("/", path), "/")
	if path != sanitized {
		logger.DebugLogger.Printf("sanitized path: %s -> %s", path, sanitized)
	}
	return sanitized
}

// WriteDstFile 将rc写入safePath，自动创建父目录
func WriteDstFile(rc io.Reader, safePath string, mode fs.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(safePath), 0755); err != nil {
		return fmt.Errorf("create dir for %s: %w", safePath, err)
	}

	dstFile, err := os.OpenFile(safePath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("create file %s: %w", safePath, err)
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, rc); err != nil {
		return fmt.Errorf("copy into %s: %w", safePath, err)
	}
	return nil
}

// WalkDir 遍历解压目录，按类型解析每个文件，文本之间以空行分隔
// 无法识别类型的成员（图片、.DS_Store等）跳过
func WalkDir(tmpDir string) ([]byte, int, error) {
	var buffer bytes.Buffer
	var fileCnt int

	err := filepath.Walk(tmpDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		fileType := internal.GetDynamicFileType(path)
		if fileType == internal.FileTypeOther {
			logger.DebugLogger.Printf("skip member of unknown type: %s", strings.TrimPrefix(path, tmpDir))
			return nil
		}

		parser, err := internal.GetParser(fileType)
		if err != nil {
			return err
		}

		logger.Logger.Printf("parse member: %s", strings.TrimPrefix(path, tmpDir))
		content, err := parser.Parse(path)
		if err != nil {
			return fmt.Errorf("parse member %s: %w", strings.TrimPrefix(path, tmpDir), err)
		}
		fileCnt++

		buffer.Write(content)
		buffer.WriteString("\n\n")
		return nil
	})

	return buffer.Bytes(), fileCnt, err
}

// extractStream 单文件压缩格式（gz/bz2/xz）：解压为name后交给WalkDir
func extractStream(r io.Reader, name, kind string) ([]byte, error) {
	tmpDir, err := os.MkdirTemp("", kind+"_extract_")
	if err != nil {
		return []byte{}, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)
	logger.DebugLogger.Printf("temp dir: %s", tmpDir)

	safePath := filepath.Join(tmpDir, sanitizePath(name))
	if err := WriteDstFile(r, safePath, 0644); err != nil {
		return []byte{}, err
	}

	content, cnt, err := WalkDir(tmpDir)
	if err != nil {
		return content, err
	}
	logger.Logger.Printf("%s extracted, %d file(s)", kind, cnt)
	return content, nil
}

// trimSuffixFold 去掉不区分大小写的后缀，用于推断解压后的文件名
func trimSuffixFold(name, suffix string) string {
	if strings.HasSuffix(strings.ToLower(name), suffix) {
		return name[:len(name)-len(suffix)]
	}
	return name
}
