package core

// findings.go defines the validation finding model.
//
// A Finding is one defect detected during validation, addressed to the
// file, row, and field a user would open to fix it. Findings are
// immutable once created and are collected into an ordered list: dataset
// order (products, inventory, sales), then row order, then rule order.
// Validators append findings and keep going; a single pass surfaces
// every defect in the submission.

import "strconv"

// Finding codes. These are a stable taxonomy consumed by API clients and
// the exported error report; do not rename.
const (
	CodeMissingColumns = "MISSING_COLUMNS" // Dataset-wide, Row is nil
	CodeRequired       = "REQUIRED"        // Empty mandatory field
	CodeBadNumber      = "BAD_NUMBER"      // Value does not parse as a number
	CodeBadInt         = "BAD_INT"         // Value does not parse as an integer (or violates sign)
	CodeOutOfRange     = "OUT_OF_RANGE"    // Parses but violates a bound
	CodePriceLtCost    = "PRICE_LT_COST"   // Cross-field rule: price < cost
	CodeBadDate        = "BAD_DATE"        // Not a strict YYYY-MM-DD calendar day
	CodeUnknownSKU     = "UNKNOWN_SKU"     // sku not present in products
)

// Finding is a single validation defect.
// Row is nil for dataset-wide findings (missing columns); otherwise it is
// the 1-based CSV row number including the header row.
type Finding struct {
	File       string `json:"file"`
	Row        *int   `json:"row"`
	Field      string `json:"field"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Value      string `json:"value"`
	Suggestion string `json:"suggestion"`
}

// Findings is an ordered collection of validation defects.
type Findings []Finding

// Add appends a row-level finding.
func (f *Findings) Add(file string, row int, field, code, message, value, suggestion string) {
	*f = append(*f, Finding{
		File:       file,
		Row:        &row,
		Field:      field,
		Code:       code,
		Message:    message,
		Value:      value,
		Suggestion: suggestion,
	})
}

// AddDatasetWide appends a finding that applies to the whole file rather
// than one row, such as missing required columns.
func (f *Findings) AddDatasetWide(file, field, code, message, value, suggestion string) {
	*f = append(*f, Finding{
		File:       file,
		Field:      field,
		Code:       code,
		Message:    message,
		Value:      value,
		Suggestion: suggestion,
	})
}

// Preview returns the first n findings (or all of them if fewer).
// The full list is only available through the exported report.
func (f Findings) Preview(n int) Findings {
	if len(f) <= n {
		return f
	}
	return f[:n]
}

// ReportColumns is the stable column order of the exported error report.
var ReportColumns = []string{"file", "row", "field", "code", "message", "value", "suggestion"}

// ReportRow serializes one finding in ReportColumns order. A nil Row
// serializes as an empty cell.
func (fd Finding) ReportRow() []string {
	row := ""
	if fd.Row != nil {
		row = strconv.Itoa(*fd.Row)
	}
	return []string{fd.File, row, fd.Field, fd.Code, fd.Message, fd.Value, fd.Suggestion}
}
