package internal

import (
	"path/filepath"
	"strings"
)

// 文件类型常量定义
const (
	FileTypeHTML  = 1
	FileTypeTXT   = 2
	FileTypeXML   = 3
	FileTypeJSON  = 4
	FileTypeCSV   = 5
	FileTypeText  = 6 // 其他文本类
	FileTypeMD    = 7
	FileTypeDOC   = 8
	FileTypeDOCX  = 9
	FileTypeXLS   = 10
	FileTypeXLSX  = 11
	FileTypePPT   = 12
	FileTypePDF   = 13
	FileTypePPTX  = 14
	FileTypeODT   = 15
	FileTypeRTF   = 16
	FileTypeTAR   = 18
	FileTypeGZ    = 19
	FileTypeTARGZ = 20
	FileTypeZIP   = 21
	FileType7Z    = 22
	FileTypeRAR   = 23
	FileTypeBZ2   = 24
	FileTypeJAR   = 25
	FileTypeXZ    = 29
	FileTypeOther = 114
)

var suffixMap = map[string]int{
	"html":   FileTypeHTML,
	"htm":    FileTypeHTML,
	"txt":    FileTypeTXT,
	"xml":    FileTypeXML,
	"json":   FileTypeJSON,
	"csv":    FileTypeCSV,
	"md":     FileTypeMD,
	"doc":    FileTypeDOC,
	"docx":   FileTypeDOCX,
	"xls":    FileTypeXLS,
	"xlsx":   FileTypeXLSX,
	"ppt":    FileTypePPT,
	"pptx":   FileTypePPTX,
	"odt":    FileTypeODT,
	"rtf":    FileTypeRTF,
	"pdf":    FileTypePDF,
	"tar":    FileTypeTAR,
	"gz":     FileTypeGZ,
	"tar.gz": FileTypeTARGZ,
	"tgz":    FileTypeTARGZ,
	"zip":    FileTypeZIP,
	"7z":     FileType7Z,
	"rar":    FileTypeRAR,
	"bz2":    FileTypeBZ2,
	"jar":    FileTypeJAR,
	"xz":     FileTypeXZ,
}

// 按纯文本读取的其他后缀（名单、词表等）
var textOtherSuffixes = []string{"tsv", "lst", "list", "dic", "dict", "log", "ini", "yaml", "yml"}

// GetDynamicFileType 根据文件名后缀判断文件类型
func GetDynamicFileType(filename string) int {
	lowerFilename := strings.ToLower(filename)

	ext := strings.TrimPrefix(filepath.Ext(lowerFilename), ".")
	if strings.HasSuffix(lowerFilename, ".tar.gz") {
		ext = "tar.gz"
	}

	if t, ok := suffixMap[ext]; ok {
		return t
	}
	for _, s := range textOtherSuffixes {
		if ext == s {
			return FileTypeText
		}
	}
	return FileTypeOther
}
