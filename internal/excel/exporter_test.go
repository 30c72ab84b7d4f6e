package excel

import (
	"strings"
	"testing"

	"github.com/example/conceptbot/internal/display"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportConcepts(t *testing.T) {
	table := display.Table{
		Headers: []string{"Name", "Content"},
		Rows: [][]string{
			{"ATP", "Energy carrier of the cell"},
			{"Osmosis", "Diffusion of water"},
		},
	}

	path, err := ExportConcepts("Biology Chapter 4", table, t.TempDir())
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".xlsx"))
	assert.Contains(t, path, "Biology_Chapter_4")

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Concepts")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Name", "Content"}, rows[0])
	assert.Equal(t, []string{"ATP", "Energy carrier of the cell"}, rows[1])
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "a_b-c", sanitizeName("a b/c"))
	assert.Equal(t, "note", sanitizeName(""))
	assert.Len(t, sanitizeName(strings.Repeat("x", 100)), 40)
}
