package plaintext

import (
	"tstidx/internal"
	"tstidx/pkg/plaintext/plainhtml"
	"tstidx/pkg/plaintext/plainmd"
	"tstidx/pkg/plaintext/plaintxt"
	"tstidx/pkg/plaintext/plainxml"
)

func init() {
	internal.RegisterParser(internal.FileTypeTXT, &plaintxt.TextPlainParser{})
	internal.RegisterParser(internal.FileTypeCSV, &plaintxt.TextPlainParser{})
	internal.RegisterParser(internal.FileTypeJSON, &plaintxt.TextPlainParser{})
	internal.RegisterParser(internal.FileTypeText, &plaintxt.TextPlainParser{})
	internal.RegisterParser(internal.FileTypeXML, &plainxml.TextXMLParser{})
	internal.RegisterParser(internal.FileTypeHTML, &plainhtml.TextHTMLParser{})
	internal.RegisterParser(internal.FileTypeMD, &plainmd.TextMarkdownParser{})
}
