package excel

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/example/conceptbot/internal/display"
	"github.com/xuri/excelize/v2"
)

// ExportConcepts writes a formatted concept table to an .xlsx file in dir
// and returns the file path. The note name becomes part of the file name.
func ExportConcepts(noteName string, table display.Table, dir string) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Concepts"
	f.SetSheetName("Sheet1", sheet)

	for i, header := range table.Headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return "", fmt.Errorf("failed to build header cell: %v", err)
		}
		f.SetCellValue(sheet, cell, header)
	}

	for r, row := range table.Rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return "", fmt.Errorf("failed to build cell: %v", err)
			}
			f.SetCellValue(sheet, cell, value)
		}
	}

	name := fmt.Sprintf("concepts_%s_%d.xlsx", sanitizeName(noteName), time.Now().Unix())
	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save export: %v", err)
	}

	return path, nil
}

// sanitizeName strips characters that don't belong in a file name.
func sanitizeName(name string) string {
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-")
	name = replacer.Replace(name)
	if len(name) > 40 {
		name = name[:40]
	}
	if name == "" {
		name = "note"
	}
	return name
}
