package report

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/adyajasola/stocksmart/internal/core"
)

func sampleFindings() core.Findings {
	var f core.Findings
	f.AddDatasetWide("inventory.csv", "*", core.CodeMissingColumns,
		"Missing required columns", "lead_time_days", "Add these columns to header.")
	f.Add("products.csv", 3, "cost", core.CodeBadNumber,
		"cost must be a number", "abc", "")
	return f
}

func TestSink_WriteRead(t *testing.T) {
	sink, err := NewSink(t.TempDir())
	require.NoError(t, err)

	id, err := sink.Write(sampleFindings())
	require.NoError(t, err)
	assert.Len(t, id, 32, "id is an undashed uuid")

	data, err := sink.ReadCSV(id)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, core.ReportColumns, records[0])
	// Dataset-wide finding: row cell is empty, not "0".
	assert.Equal(t, []string{"inventory.csv", "", "*", "MISSING_COLUMNS",
		"Missing required columns", "lead_time_days", "Add these columns to header."}, records[1])
	assert.Equal(t, []string{"products.csv", "3", "cost", "BAD_NUMBER",
		"cost must be a number", "abc", ""}, records[2])
}

func TestSink_ReadXLSX(t *testing.T) {
	sink, err := NewSink(t.TempDir())
	require.NoError(t, err)

	id, err := sink.Write(sampleFindings())
	require.NoError(t, err)

	data, err := sink.ReadXLSX(id)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Errors")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "MISSING_COLUMNS", rows[1][3])
}

func TestSink_UnknownID(t *testing.T) {
	sink, err := NewSink(t.TempDir())
	require.NoError(t, err)

	_, err = sink.ReadCSV("00000000000000000000000000000000")
	assert.ErrorIs(t, err, ErrNotFound)

	// Ids that are not uuids never touch the filesystem.
	_, err = sink.ReadCSV("../../etc/passwd")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = sink.ReadXLSX("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSink_IDsAreUnique(t *testing.T) {
	sink, err := NewSink(t.TempDir())
	require.NoError(t, err)

	a, err := sink.Write(sampleFindings())
	require.NoError(t, err)
	b, err := sink.Write(sampleFindings())
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}
