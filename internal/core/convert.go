package core

// convert.go provides strict type conversion for CSV cell values.
//
// Unlike a forgiving importer, the validation rules here reject anything
// that does not parse cleanly: a bad number or date should produce a
// finding the user can fix, not a silently coerced value. Dates accept
// exactly one layout (YYYY-MM-DD) so ambiguous inputs like 03/04/2026
// are rejected rather than guessed.

import (
	"strconv"
	"strings"
	"time"
)

// dateLayout is the only accepted calendar format for sales dates.
const dateLayout = "2006-01-02"

// CleanCell trims surrounding whitespace and a UTF-8 BOM from a raw cell.
func CleanCell(s string) string {
	return strings.TrimSpace(strings.TrimPrefix(s, ""))
}

// ParseNumber parses a cell as a float.
func ParseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(CleanCell(s), 64)
	return f, err == nil
}

// ParseInt parses a cell as a base-10 integer. Decimal strings such as
// "3.0" do not parse; integer columns must be written as integers.
func ParseInt(s string) (int, bool) {
	i, err := strconv.Atoi(CleanCell(s))
	return i, err == nil
}

// ParseDate parses a cell as a calendar day in strict YYYY-MM-DD form.
// The returned time is midnight UTC; sales dates carry no time component.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, CleanCell(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate renders a calendar day back into YYYY-MM-DD form.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}
