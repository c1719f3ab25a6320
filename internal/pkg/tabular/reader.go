// Package tabular reads uploaded spreadsheets (CSV or XLSX) into header-keyed records.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned for file types that cannot be read.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ErrEmpty is returned when the file has no header row.
var ErrEmpty = errors.New("file has no header row")

// Record is one data row. Line is the 1-based line (CSV) or row (XLSX) number
// in the source file. Err is set when the row itself could not be parsed;
// such rows are still returned so the caller can report and skip them.
type Record struct {
	Line   int
	Values map[string]string
	Err    error
}

// Get returns the trimmed value of a column, or "" when absent.
func (r Record) Get(column string) string {
	return strings.TrimSpace(r.Values[column])
}

// Table is a parsed file: the normalized header and the data records in file order.
type Table struct {
	Header  []string
	Records []Record
}

// MissingColumns returns the columns from want that are absent from the header.
func (t *Table) MissingColumns(want ...string) []string {
	present := make(map[string]struct{}, len(t.Header))
	for _, h := range t.Header {
		present[h] = struct{}{}
	}
	var missing []string
	for _, w := range want {
		if _, ok := present[w]; !ok {
			missing = append(missing, w)
		}
	}
	return missing
}

// Read picks a decoder from the file extension: .xlsx goes through excelize,
// everything else is treated as CSV.
func Read(filename string, r io.Reader) (*Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return ReadXLSX(r)
	case ".xls", ".ods", ".pdf", ".zip":
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filename))
	default:
		return ReadCSV(r)
	}
}

// ReadCSV parses comma-separated input whose first line is the header.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headerRow, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	table := &Table{Header: normalizeHeader(headerRow)}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var line int
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				line = parseErr.StartLine
			}
			table.Records = append(table.Records, Record{Line: line, Err: err})
			continue
		}
		line, _ := reader.FieldPos(0)
		table.Records = append(table.Records, Record{Line: line, Values: zip(table.Header, row)})
	}
	return table, nil
}

// ReadXLSX parses the first worksheet of a workbook whose first row is the header.
func ReadXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, ErrEmpty
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, ErrEmpty
	}

	table := &Table{Header: normalizeHeader(rows[0])}
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		table.Records = append(table.Records, Record{Line: i + 2, Values: zip(table.Header, row)})
	}
	return table, nil
}

// normalizeHeader lowercases and trims column names and drops a UTF-8 BOM.
func normalizeHeader(row []string) []string {
	header := make([]string, len(row))
	for i, h := range row {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}
	return header
}

// zip pairs values with header names; short rows leave trailing columns unset,
// extra cells beyond the header are dropped.
func zip(header, row []string) map[string]string {
	values := make(map[string]string, len(header))
	for i, h := range header {
		if h == "" || i >= len(row) {
			continue
		}
		values[h] = row[i]
	}
	return values
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
