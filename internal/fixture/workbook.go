// Package fixture builds small prevalence workbooks for tests.
package fixture

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// Header is the column layout of the published workbook.
var Header = []interface{}{"Word", "Pknown", "Nobs", "Prevalence", "FreqZipfUS"}

// Rows is a handful of real-looking rows, including mixed casing and a duplicate.
var Rows = [][]interface{}{
	{"Abbey", 0.98, 388, 2.05, 3.39},
	{"abbot", 0.95, 406, 1.72, 2.85},
	{"Aardvark", 0.97, 401, 1.92, 1.56},
	{"zygote", 0.81, 390, 0.93, 1.78},
	{"ABBOT", 0.50, 10, 0.12, 0.5},
}

// WriteWorkbook saves rows (first row is the header) to a workbook with a single
// sheet named sheet, and returns its path inside a fresh temp dir.
func WriteWorkbook(t testing.TB, sheet string, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	for r, row := range rows {
		for c, v := range row {
			name, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue(sheet, name, v); err != nil {
				t.Fatalf("set cell %s: %v", name, err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "English_Word_Prevalences.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

// DefaultWorkbook writes Header and Rows to a "Prevalence" sheet.
func DefaultWorkbook(t testing.TB) string {
	t.Helper()
	return WriteWorkbook(t, "Prevalence", append([][]interface{}{Header}, Rows...))
}
