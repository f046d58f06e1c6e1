package xlsx

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sharedStrings = `<?xml version="1.0" encoding="UTF-8"?>
<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" count="3" uniqueCount="3">
  <si><t>Name</t></si>
  <si><t>Ada Lovelace</t></si>
  <si><r><t>Grace </t></r><r><t>Hopper</t></r></si>
</sst>`

const sheet1 = `<?xml version="1.0" encoding="UTF-8"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
  <sheetData>
    <row r="1"><c r="A1" t="s"><v>0</v></c></row>
    <row r="2"><c r="A2" t="s"><v>1</v></c><c r="B2"><v>1815</v></c></row>
    <row r="3"><c r="A3" t="s"><v>2</v></c></row>
    <row r="4"><c r="A4" t="s"><v>99</v></c></row>
  </sheetData>
</worksheet>`

const sheet2 = `<?xml version="1.0" encoding="UTF-8"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
  <sheetData>
    <row r="1"><c r="A1" t="inlineStr"><is><t>Alan Turing</t></is></c></row>
  </sheetData>
</worksheet>`

func TestOfficeXlsxParser(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.xlsx")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	// sheet10排在sheet2之后
	for name, body := range map[string]string{
		"xl/sharedStrings.xml":      sharedStrings,
		"xl/worksheets/sheet10.xml": sheet2,
		"xl/worksheets/sheet2.xml":  sheet1,
		"xl/worksheets/_rels/x.xml": "<ignored/>",
	} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	out, err := (&OfficeXlsxParser{}).Parse(path)
	require.NoError(t, err)
	assert.Equal(t, "Name\nAda Lovelace\t1815\nGrace Hopper\nAlan Turing\n", string(out))
}

func TestSheetNumber(t *testing.T) {
	assert.Equal(t, 12, sheetNumber("xl/worksheets/sheet12.xml"))
	assert.Equal(t, 0, sheetNumber("xl/worksheets/other.xml"))
}
