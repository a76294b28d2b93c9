package core

// validate.go implements the multi-file validation pipeline.
//
// Validation runs in three gated stages:
//  1. Schema: required columns per dataset. Any gap stops the pipeline;
//     row checks never run against a structurally incomplete table since
//     column-keyed access is undefined there.
//  2. Row: per-field type, range, and cross-field rules, applied to every
//     row of every dataset. Rules collect findings and never short-circuit
//     within a row, so one row can contribute several findings.
//  3. Cross-dataset: inventory and sales skus must exist in products.
//
// Row and cross-dataset findings from one pass are reported together.

import (
	"fmt"
	"sort"
	"strings"
)

// MissingColumns returns the sorted set of required columns absent from
// the table's header. Pure function; empty result means the schema is
// complete.
func MissingColumns(t Table, required []string) []string {
	var missing []string
	for _, col := range required {
		if !t.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	sort.Strings(missing)
	return missing
}

// SchemaComplete reports whether all three datasets carry their required
// columns. The commit path uses this as its only admission check.
func SchemaComplete(ts TableSet) bool {
	return len(MissingColumns(ts.Products, RequiredProducts)) == 0 &&
		len(MissingColumns(ts.Inventory, RequiredInventory)) == 0 &&
		len(MissingColumns(ts.Sales, RequiredSales)) == 0
}

// Validate runs the full pipeline over one submission and returns the
// ordered findings list. An empty result means the submission is clean
// and may be committed.
func Validate(ts TableSet) Findings {
	var findings Findings

	if !checkSchemas(ts, &findings) {
		return findings
	}

	validateProductRows(ts.Products, &findings)
	validateInventoryRows(ts.Inventory, &findings)
	validateSaleRows(ts.Sales, &findings)

	checkSKUReferences(ts, &findings)

	return findings
}

// checkSchemas appends MISSING_COLUMNS findings and reports whether row
// validation may proceed.
func checkSchemas(ts TableSet, findings *Findings) bool {
	checks := []struct {
		table    Table
		required []string
	}{
		{ts.Products, RequiredProducts},
		{ts.Inventory, RequiredInventory},
		{ts.Sales, RequiredSales},
	}

	ok := true
	for _, c := range checks {
		if missing := MissingColumns(c.table, c.required); len(missing) > 0 {
			ok = false
			findings.AddDatasetWide(c.table.Name, "*", CodeMissingColumns,
				"Missing required columns",
				strings.Join(missing, ","),
				"Add these columns to header.")
		}
	}
	return ok
}

func validateProductRows(t Table, findings *Findings) {
	for i := range t.Rows {
		row := t.CSVRow(i)

		if CleanCell(t.Cell(i, "sku")) == "" {
			findings.Add(t.Name, row, "sku", CodeRequired,
				"sku is required", "", "Provide a non-empty sku.")
		}

		cost, costOK := ParseNumber(t.Cell(i, "cost"))
		if !costOK {
			findings.Add(t.Name, row, "cost", CodeBadNumber,
				"cost must be a number", t.Cell(i, "cost"), "")
		}

		price, priceOK := ParseNumber(t.Cell(i, "price"))
		if !priceOK {
			findings.Add(t.Name, row, "price", CodeBadNumber,
				"price must be a number", t.Cell(i, "price"), "")
		}

		if costOK && priceOK && price < cost {
			findings.Add(t.Name, row, "price", CodePriceLtCost,
				"price must be >= cost",
				fmt.Sprintf("%g < %g", price, cost),
				"Raise price or correct cost.")
		}
	}
}

func validateInventoryRows(t Table, findings *Findings) {
	for i := range t.Rows {
		row := t.CSVRow(i)

		if n, ok := ParseInt(t.Cell(i, "on_hand")); !ok || n < 0 {
			findings.Add(t.Name, row, "on_hand", CodeBadInt,
				"on_hand must be an integer >= 0", t.Cell(i, "on_hand"), "")
		}

		if n, ok := ParseInt(t.Cell(i, "reorder_point")); !ok || n < 0 {
			findings.Add(t.Name, row, "reorder_point", CodeBadInt,
				"reorder_point must be an integer >= 0", t.Cell(i, "reorder_point"), "")
		}

		if n, ok := ParseInt(t.Cell(i, "lead_time_days")); !ok || n < 1 || n > 90 {
			findings.Add(t.Name, row, "lead_time_days", CodeOutOfRange,
				"lead_time_days must be between 1 and 90",
				t.Cell(i, "lead_time_days"), "Use a value 1-90.")
		}
	}
}

func validateSaleRows(t Table, findings *Findings) {
	for i := range t.Rows {
		row := t.CSVRow(i)

		ts := CleanCell(t.Cell(i, "ts"))
		if _, ok := ParseDate(ts); !ok {
			findings.Add(t.Name, row, "ts", CodeBadDate,
				"ts must be YYYY-MM-DD", ts, "Use ISO like 2026-01-31.")
		}

		if n, ok := ParseInt(t.Cell(i, "units")); !ok || n < 0 {
			findings.Add(t.Name, row, "units", CodeBadInt,
				"units must be an integer >= 0", t.Cell(i, "units"), "")
		}

		if _, ok := ParseNumber(t.Cell(i, "unit_price")); !ok {
			findings.Add(t.Name, row, "unit_price", CodeBadNumber,
				"unit_price must be a number", t.Cell(i, "unit_price"), "")
		}
	}
}

// checkSKUReferences validates referential integrity: every non-empty sku
// in inventory and sales must exist in products. Empty skus are not
// re-reported here; the row rules already cover presence.
func checkSKUReferences(ts TableSet, findings *Findings) {
	known := make(map[string]struct{}, ts.Products.Len())
	for i := range ts.Products.Rows {
		if sku := CleanCell(ts.Products.Cell(i, "sku")); sku != "" {
			known[sku] = struct{}{}
		}
	}

	for _, t := range []Table{ts.Inventory, ts.Sales} {
		for i := range t.Rows {
			sku := CleanCell(t.Cell(i, "sku"))
			if sku == "" {
				continue
			}
			if _, ok := known[sku]; !ok {
				findings.Add(t.Name, t.CSVRow(i), "sku", CodeUnknownSKU,
					"sku not found in products.csv", sku,
					"Fix sku to match products.csv.")
			}
		}
	}
}
