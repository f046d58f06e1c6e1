package xls

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinRow(t *testing.T) {
	cells := []string{"Ada Lovelace", "", "  1815 ", ""}
	col := func(i int) string { return cells[i] }

	assert.Equal(t, "Ada Lovelace\t1815\n", joinRow(len(cells), col))
	assert.Equal(t, "", joinRow(0, col))
	assert.Equal(t, "", joinRow(2, func(int) string { return " " }))
}
