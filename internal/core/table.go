package core

// table.go provides CSV loading for the three import datasets.
//
// A Table is an in-memory, row-oriented view of one uploaded CSV file.
// Data rows keep their 1-based CSV position so findings can point a user
// at the exact line in the file they edited: the header occupies row 1,
// so the first data row reports as row 2.

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// HeaderIndex maps column names (lowercase) to their position in a CSV row.
type HeaderIndex map[string]int

// MakeHeaderIndex builds a HeaderIndex from a header row.
// Column names are trimmed and lowercased; a UTF-8 BOM on the first
// column is stripped.
func MakeHeaderIndex(headers []string) HeaderIndex {
	idx := make(HeaderIndex, len(headers))
	for i, h := range headers {
		h = strings.TrimPrefix(h, "")
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

// Table is one loaded CSV dataset: ordered data rows with named fields.
type Table struct {
	Name    string   // Original file name, used in findings
	Headers []string // Header row as read from the file
	Rows    [][]string

	idx HeaderIndex
}

// LoadError is returned when an uploaded file cannot be read as CSV.
// It names the offending file so the message can be surfaced directly
// to the user.
type LoadError struct {
	File   string
	Reason string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.File, e.Reason)
}

// ReadTable parses an uploaded CSV file into a Table.
// The file must carry a .csv extension and contain at least a header row.
// Rows may be ragged; missing trailing cells read as empty fields.
func ReadTable(r io.Reader, filename string) (Table, error) {
	if !strings.HasSuffix(strings.ToLower(filename), ".csv") {
		return Table{}, &LoadError{File: filename, Reason: "must be a CSV"}
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // Ragged rows are handled at cell access
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return Table{}, &LoadError{File: filename, Reason: fmt.Sprintf("could not read CSV: %v", err)}
	}
	if len(records) == 0 {
		return Table{}, &LoadError{File: filename, Reason: "file is empty (no header row)"}
	}

	t := Table{
		Name:    filename,
		Headers: records[0],
		Rows:    records[1:],
	}
	t.idx = MakeHeaderIndex(t.Headers)
	return t, nil
}

// NewTable builds a Table directly from a header row and data rows.
// Used by tests and callers that already hold parsed rows.
func NewTable(name string, headers []string, rows [][]string) Table {
	return Table{
		Name:    name,
		Headers: headers,
		Rows:    rows,
		idx:     MakeHeaderIndex(headers),
	}
}

// HasColumn reports whether the table's header contains the named column.
func (t Table) HasColumn(name string) bool {
	_, ok := t.idx[strings.ToLower(name)]
	return ok
}

// Cell returns the raw value of the named column in the given data row
// (0-based). Missing columns and short rows read as "".
func (t Table) Cell(row int, column string) string {
	pos, ok := t.idx[strings.ToLower(column)]
	if !ok || row < 0 || row >= len(t.Rows) || pos >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][pos]
}

// CSVRow converts a 0-based data row index to the 1-based CSV row number
// shown to users (header row included).
func (t Table) CSVRow(row int) int {
	return row + 2
}

// Len returns the number of data rows in the table.
func (t Table) Len() int {
	return len(t.Rows)
}
