// Package report persists validation error reports as downloadable
// artifacts. Each report is written once under an opaque generated id
// and retrieved later by that id; reports are tabular (one row per
// finding, stable column order) and can be rendered as CSV or as an
// Excel workbook.
package report

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/adyajasola/stocksmart/internal/core"
)

// ErrNotFound is returned when no report exists for an id.
var ErrNotFound = errors.New("error report not found")

// Sink writes and reads error reports under a directory. The canonical
// on-disk format is CSV; the xlsx rendering is derived on demand.
type Sink struct {
	dir string
}

// NewSink creates a report sink rooted at dir, creating it if needed.
func NewSink(dir string) (*Sink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create report dir: %w", err)
	}
	return &Sink{dir: dir}, nil
}

// path maps an id to its on-disk file. Ids are parsed as UUIDs before
// touching the filesystem, which also keeps path traversal out.
func (s *Sink) path(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", ErrNotFound
	}
	return filepath.Join(s.dir, undashed(parsed)+".csv"), nil
}

// undashed renders a UUID without dashes, matching the ids Write hands out.
func undashed(u uuid.UUID) string {
	return strings.ReplaceAll(u.String(), "-", "")
}

// Write persists the full findings list and returns its opaque id.
// Every finding field is serialized, including nil rows (empty cell), in
// core.ReportColumns order.
func (s *Sink) Write(findings core.Findings) (string, error) {
	id := undashed(uuid.New())

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(core.ReportColumns); err != nil {
		return "", fmt.Errorf("write report header: %w", err)
	}
	for _, f := range findings {
		if err := w.Write(f.ReportRow()); err != nil {
			return "", fmt.Errorf("write report row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush report: %w", err)
	}

	file := filepath.Join(s.dir, id+".csv")
	if err := os.WriteFile(file, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("persist report %s: %w", id, err)
	}
	return id, nil
}

// ReadCSV returns the raw CSV bytes of a report, or ErrNotFound.
func (s *Sink) ReadCSV(id string) ([]byte, error) {
	file, err := s.path(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(file)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read report %s: %w", id, err)
	}
	return data, nil
}

// ReadXLSX renders a report as an Excel workbook, or ErrNotFound.
func (s *Sink) ReadXLSX(id string) ([]byte, error) {
	data, err := s.ReadCSV(id)
	if err != nil {
		return nil, err
	}
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse report %s: %w", id, err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Errors"
	f.SetSheetName("Sheet1", sheet)
	for i, record := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, fmt.Errorf("render report %s: %w", id, err)
		}
		if err := f.SetSheetRow(sheet, cell, &record); err != nil {
			return nil, fmt.Errorf("render report %s: %w", id, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render report %s: %w", id, err)
	}
	return buf.Bytes(), nil
}
