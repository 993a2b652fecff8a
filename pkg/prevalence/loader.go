package prevalence

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the prevalence rows.
const SheetName = "Prevalence"

// Header names looked up in the first row of the sheet.
const (
	colWord       = "Word"
	colPrevalence = "Prevalence"
	colPKnown     = "Pknown"
	colNobs       = "Nobs"
	colFreqZipfUS = "FreqZipfUS"
)

// Load reads the workbook at path into a Table.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := LoadReader(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return t, nil
}

// LoadReader parses an xlsx workbook from r.
func LoadReader(r io.Reader) (*Table, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer wb.Close()

	// Raw values keep full numeric precision instead of the display format.
	rows, err := wb.GetRows(SheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", SheetName, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q has no header row", SheetName)
	}

	cols := make(map[string]int)
	for i, name := range rows[0] {
		name = strings.TrimSpace(name)
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	wordCol, ok := cols[colWord]
	if !ok {
		return nil, fmt.Errorf("sheet %q: missing column %q", SheetName, colWord)
	}
	prevCol, ok := cols[colPrevalence]
	if !ok {
		return nil, fmt.Errorf("sheet %q: missing column %q", SheetName, colPrevalence)
	}

	entries := make([]Entry, 0, len(rows)-1)
	for i, row := range rows[1:] {
		// Spreadsheet rows are 1-based and the header takes row 1.
		rowNum := i + 2

		word := cell(row, wordCol)
		if word == "" {
			continue
		}

		p, err := strconv.ParseFloat(cell(row, prevCol), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid %s for %q: %w", rowNum, colPrevalence, word, err)
		}
		e := Entry{Word: word, Prevalence: p}

		if e.PKnown, err = optionalFloat(row, cols, colPKnown, rowNum); err != nil {
			return nil, err
		}
		n, err := optionalFloat(row, cols, colNobs, rowNum)
		if err != nil {
			return nil, err
		}
		e.Nobs = int(n)
		if e.FreqZipfUS, err = optionalFloat(row, cols, colFreqZipfUS, rowNum); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return NewTable(entries), nil
}

// optionalFloat parses an optional numeric column. An absent column or a blank
// cell reads as zero; any other non-numeric text is an error.
func optionalFloat(row []string, cols map[string]int, name string, rowNum int) (float64, error) {
	c, ok := cols[name]
	if !ok {
		return 0, nil
	}
	v := cell(row, c)
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("row %d: invalid %s %q: %w", rowNum, name, v, err)
	}
	return f, nil
}

// cell returns the trimmed value at column i; GetRows drops trailing empty cells.
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
