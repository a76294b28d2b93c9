package core

import (
	"reflect"
	"testing"
)

// validTables returns a clean three-dataset submission that passes every
// validation stage. Tests mutate copies of it to introduce defects.
func validTables() TableSet {
	return TableSet{
		Products: NewTable("products.csv",
			[]string{"sku", "name", "category", "cost", "price", "supplier"},
			[][]string{
				{"A1", "Widget", "tools", "5", "10", "Acme"},
				{"B2", "Gadget", "tools", "2.5", "4", "Acme"},
			}),
		Inventory: NewTable("inventory.csv",
			[]string{"sku", "on_hand", "reorder_point", "lead_time_days"},
			[][]string{
				{"A1", "3", "5", "7"},
				{"B2", "20", "4", "14"},
			}),
		Sales: NewTable("sales.csv",
			[]string{"sku", "ts", "units", "unit_price"},
			[][]string{
				{"A1", "2026-08-21", "30", "10"},
				{"B2", "2026-08-22", "2", "4"},
			}),
	}
}

func TestMissingColumns(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		want    []string
	}{
		{"complete", []string{"sku", "on_hand", "reorder_point", "lead_time_days"}, nil},
		{"case insensitive", []string{"SKU", "On_Hand", "REORDER_POINT", "lead_time_days"}, nil},
		{"one missing", []string{"sku", "on_hand", "reorder_point"}, []string{"lead_time_days"}},
		{"sorted output", []string{"reorder_point"}, []string{"lead_time_days", "on_hand", "sku"}},
		{"all missing", []string{}, []string{"lead_time_days", "on_hand", "reorder_point", "sku"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := NewTable("inventory.csv", tt.headers, nil)
			got := MissingColumns(table, RequiredInventory)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MissingColumns() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidate_CleanSubmission(t *testing.T) {
	findings := Validate(validTables())
	if len(findings) != 0 {
		t.Fatalf("Validate() = %d findings, want 0: %+v", len(findings), findings)
	}
}

func TestValidate_MissingColumnsShortCircuit(t *testing.T) {
	ts := validTables()
	// Drop a required column AND plant a row-level defect: the row defect
	// must not be reported because row checks never run on an incomplete
	// schema.
	ts.Inventory = NewTable("inventory.csv",
		[]string{"sku", "on_hand", "reorder_point"},
		[][]string{{"A1", "-3", "5"}})
	ts.Sales.Rows[0][1] = "not-a-date"

	findings := Validate(ts)
	if len(findings) != 1 {
		t.Fatalf("Validate() = %d findings, want 1: %+v", len(findings), findings)
	}

	f := findings[0]
	if f.Code != CodeMissingColumns {
		t.Errorf("Code = %q, want %q", f.Code, CodeMissingColumns)
	}
	if f.Row != nil {
		t.Errorf("Row = %v, want nil for dataset-wide finding", *f.Row)
	}
	if f.File != "inventory.csv" {
		t.Errorf("File = %q, want inventory.csv", f.File)
	}
	if f.Value != "lead_time_days" {
		t.Errorf("Value = %q, want lead_time_days", f.Value)
	}
}

func TestValidate_MissingColumnsAllDatasetsReported(t *testing.T) {
	ts := validTables()
	ts.Products = NewTable("products.csv", []string{"sku", "name"}, nil)
	ts.Sales = NewTable("sales.csv", []string{"sku"}, nil)

	findings := Validate(ts)
	if len(findings) != 2 {
		t.Fatalf("Validate() = %d findings, want 2: %+v", len(findings), findings)
	}
	// Dataset order: products first, then sales.
	if findings[0].File != "products.csv" || findings[1].File != "sales.csv" {
		t.Errorf("finding order = [%s, %s], want [products.csv, sales.csv]",
			findings[0].File, findings[1].File)
	}
}

func TestValidate_ProductRules(t *testing.T) {
	ts := validTables()
	ts.Products.Rows = [][]string{
		{"", "No SKU", "tools", "1", "2", "Acme"},     // row 2: REQUIRED
		{"C3", "Bad cost", "tools", "x", "2", "Acme"}, // row 3: BAD_NUMBER
		{"D4", "Inverted", "tools", "10", "5", "Acme"}, // row 4: PRICE_LT_COST
	}
	ts.Inventory.Rows = nil
	ts.Sales.Rows = nil

	findings := Validate(ts)
	if len(findings) != 3 {
		t.Fatalf("Validate() = %d findings, want 3: %+v", len(findings), findings)
	}

	checks := []struct {
		row   int
		field string
		code  string
	}{
		{2, "sku", CodeRequired},
		{3, "cost", CodeBadNumber},
		{4, "price", CodePriceLtCost},
	}
	for i, want := range checks {
		f := findings[i]
		if f.Row == nil || *f.Row != want.row || f.Field != want.field || f.Code != want.code {
			t.Errorf("finding[%d] = row %v field %q code %q, want row %d field %q code %q",
				i, f.Row, f.Field, f.Code, want.row, want.field, want.code)
		}
		if f.File != "products.csv" {
			t.Errorf("finding[%d].File = %q, want products.csv", i, f.File)
		}
	}
}

func TestValidate_PriceLtCostSkippedWhenUnparseable(t *testing.T) {
	ts := validTables()
	// price does not parse, so the cross-field rule must not fire on top
	// of the BAD_NUMBER finding.
	ts.Products.Rows = [][]string{{"A1", "W", "t", "5", "cheap", "Acme"}}
	ts.Inventory.Rows = ts.Inventory.Rows[:1]
	ts.Sales.Rows = ts.Sales.Rows[:1]

	findings := Validate(ts)
	for _, f := range findings {
		if f.Code == CodePriceLtCost {
			t.Errorf("PRICE_LT_COST emitted for unparseable price: %+v", f)
		}
	}
}

func TestValidate_RowCollectsMultipleFindings(t *testing.T) {
	ts := validTables()
	// Every field of one sales row is broken; all three rules must report.
	ts.Sales.Rows = [][]string{{"A1", "13/01/2026", "-1", "free"}}

	findings := Validate(ts)
	var codes []string
	for _, f := range findings {
		if f.File == "sales.csv" && f.Code != CodeUnknownSKU {
			codes = append(codes, f.Code)
		}
	}
	want := []string{CodeBadDate, CodeBadInt, CodeBadNumber}
	if !reflect.DeepEqual(codes, want) {
		t.Errorf("sales codes = %v, want %v", codes, want)
	}
}

func TestValidate_BadDateRowOffset(t *testing.T) {
	ts := validTables()
	ts.Sales.Rows = [][]string{
		{"A1", "2026-08-21", "1", "10"},
		{"B2", "2026-13-01", "1", "10"}, // second data row = CSV row 3
	}

	findings := Validate(ts)
	if len(findings) != 1 {
		t.Fatalf("Validate() = %d findings, want 1: %+v", len(findings), findings)
	}
	f := findings[0]
	if f.Code != CodeBadDate {
		t.Errorf("Code = %q, want %q", f.Code, CodeBadDate)
	}
	if f.Row == nil || *f.Row != 3 {
		t.Errorf("Row = %v, want 3 (1-based position plus header)", f.Row)
	}
	if f.Value != "2026-13-01" {
		t.Errorf("Value = %q, want 2026-13-01", f.Value)
	}
}

func TestValidate_InventoryCodes(t *testing.T) {
	ts := validTables()
	ts.Inventory.Rows = [][]string{
		{"A1", "-1", "5", "7"},   // negative on_hand: BAD_INT
		{"B2", "3", "5", "0"},    // lead time below range: OUT_OF_RANGE
		{"A1", "3", "5", "91"},   // lead time above range: OUT_OF_RANGE
		{"B2", "3", "5", "many"}, // unparseable lead time: still OUT_OF_RANGE
	}

	findings := Validate(ts)
	var codes []string
	for _, f := range findings {
		codes = append(codes, f.Code)
	}
	want := []string{CodeBadInt, CodeOutOfRange, CodeOutOfRange, CodeOutOfRange}
	if !reflect.DeepEqual(codes, want) {
		t.Errorf("codes = %v, want %v", codes, want)
	}
}

func TestValidate_UnknownSKU(t *testing.T) {
	ts := validTables()
	ts.Inventory.Rows = append(ts.Inventory.Rows, []string{"ZZ", "1", "1", "1"})
	ts.Sales.Rows = append(ts.Sales.Rows, []string{"QQ", "2026-08-23", "1", "1"})

	findings := Validate(ts)
	if len(findings) != 2 {
		t.Fatalf("Validate() = %d findings, want 2: %+v", len(findings), findings)
	}
	if findings[0].File != "inventory.csv" || findings[0].Value != "ZZ" {
		t.Errorf("finding[0] = %+v, want UNKNOWN_SKU ZZ in inventory.csv", findings[0])
	}
	if findings[1].File != "sales.csv" || findings[1].Value != "QQ" {
		t.Errorf("finding[1] = %+v, want UNKNOWN_SKU QQ in sales.csv", findings[1])
	}
	for _, f := range findings {
		if f.Code != CodeUnknownSKU {
			t.Errorf("Code = %q, want %q", f.Code, CodeUnknownSKU)
		}
	}
}

func TestValidate_EmptySKUNotDoubleReported(t *testing.T) {
	ts := validTables()
	// An empty sku in sales is not an UNKNOWN_SKU; referential checks
	// only cover non-empty skus.
	ts.Sales.Rows = [][]string{{"", "2026-08-21", "1", "10"}}

	findings := Validate(ts)
	for _, f := range findings {
		if f.Code == CodeUnknownSKU {
			t.Errorf("UNKNOWN_SKU emitted for empty sku: %+v", f)
		}
	}
}

func TestValidate_SKUWhitespaceTrimmedForMatching(t *testing.T) {
	ts := validTables()
	ts.Products.Rows = [][]string{{" A1 ", "Widget", "tools", "5", "10", "Acme"}}
	ts.Inventory.Rows = [][]string{{"A1", "3", "5", "7"}}
	ts.Sales.Rows = [][]string{{"A1 ", "2026-08-21", "1", "10"}}

	if findings := Validate(ts); len(findings) != 0 {
		t.Errorf("Validate() = %+v, want no findings for whitespace-only sku differences", findings)
	}
}

func TestFindingsPreview(t *testing.T) {
	var findings Findings
	for i := 0; i < 30; i++ {
		findings.Add("products.csv", i+2, "sku", CodeRequired, "sku is required", "", "")
	}

	if got := len(findings.Preview(25)); got != 25 {
		t.Errorf("Preview(25) len = %d, want 25", got)
	}
	if got := len(findings.Preview(100)); got != 30 {
		t.Errorf("Preview(100) len = %d, want 30", got)
	}
}
