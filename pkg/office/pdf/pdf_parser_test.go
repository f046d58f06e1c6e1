package pdf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentStreamText(t *testing.T) {
	stream := "BT\n/F1 12 Tf\n72 712 Td\n(Ada Lovelace) Tj\n0 -14 Td\n[(Grace) -250 (Hopper)] TJ\n(Alan \\(AT\\) Turing) Tj\nET\n"

	out, err := contentStreamText([]byte(stream))
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace\nGraceHopper\nAlan (AT) Turing\n", string(out))
}

func TestContentStreamTextEmpty(t *testing.T) {
	out, err := contentStreamText([]byte("q 1 0 0 1 0 0 cm Q\n"))
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestOfficePdfParserRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("this is not a pdf"), 0o644))

	_, err := (&OfficePdfParser{}).Parse(path)
	assert.Error(t, err)
}
