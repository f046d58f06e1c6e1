package docx

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const documentXml = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>Authors</w:t></w:r></w:p>
    <w:p><w:r><w:t xml:space="preserve">Ada </w:t></w:r><w:r><w:t>Lovelace</w:t></w:r></w:p>
    <w:p></w:p>
    <w:tbl><w:tr><w:tc><w:p><w:r><w:t>Grace Hopper</w:t></w:r></w:p></w:tc></w:tr></w:tbl>
  </w:body>
</w:document>`

func writeDocx(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, body := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
}

func TestOfficeDocxParser(t *testing.T) {
	path := filepath.Join(t.TempDir(), "authors.docx")
	writeDocx(t, path, map[string]string{"word/document.xml": documentXml})

	out, err := (&OfficeDocxParser{}).Parse(path)
	require.NoError(t, err)
	assert.Equal(t, "Authors\nAda Lovelace\nGrace Hopper\n", string(out))
}

func TestOfficeDocxParserMissingDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.docx")
	writeDocx(t, path, map[string]string{"word/styles.xml": "<styles/>"})

	_, err := (&OfficeDocxParser{}).Parse(path)
	assert.ErrorContains(t, err, "document.xml")
}
