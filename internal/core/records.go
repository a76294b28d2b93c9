package core

// records.go converts validated tables into typed records for the store.
//
// The commit path does not re-run row validation, so conversion here is
// strict: a cell that fails to parse aborts the build with an error
// naming the file, row, and field. Callers are expected to have run
// Validate first, which makes these errors unreachable in practice.

import "fmt"

func cellError(t Table, row int, field, want string) error {
	return fmt.Errorf("%s row %d: %s is not a valid %s: %q",
		t.Name, t.CSVRow(row), field, want, t.Cell(row, field))
}

// BuildProducts converts a schema-complete products table into records.
func BuildProducts(t Table) ([]ProductRecord, error) {
	out := make([]ProductRecord, 0, t.Len())
	for i := range t.Rows {
		cost, ok := ParseNumber(t.Cell(i, "cost"))
		if !ok {
			return nil, cellError(t, i, "cost", "number")
		}
		price, ok := ParseNumber(t.Cell(i, "price"))
		if !ok {
			return nil, cellError(t, i, "price", "number")
		}
		out = append(out, ProductRecord{
			SKU:      CleanCell(t.Cell(i, "sku")),
			Name:     CleanCell(t.Cell(i, "name")),
			Category: CleanCell(t.Cell(i, "category")),
			Cost:     cost,
			Price:    price,
			Supplier: CleanCell(t.Cell(i, "supplier")),
		})
	}
	return out, nil
}

// BuildInventory converts a schema-complete inventory table into records.
func BuildInventory(t Table) ([]InventoryRecord, error) {
	out := make([]InventoryRecord, 0, t.Len())
	for i := range t.Rows {
		onHand, ok := ParseInt(t.Cell(i, "on_hand"))
		if !ok {
			return nil, cellError(t, i, "on_hand", "integer")
		}
		reorder, ok := ParseInt(t.Cell(i, "reorder_point"))
		if !ok {
			return nil, cellError(t, i, "reorder_point", "integer")
		}
		leadTime, ok := ParseInt(t.Cell(i, "lead_time_days"))
		if !ok {
			return nil, cellError(t, i, "lead_time_days", "integer")
		}
		out = append(out, InventoryRecord{
			SKU:          CleanCell(t.Cell(i, "sku")),
			OnHand:       onHand,
			ReorderPoint: reorder,
			LeadTimeDays: leadTime,
		})
	}
	return out, nil
}

// BuildSales converts a schema-complete sales table into records.
func BuildSales(t Table) ([]SaleRecord, error) {
	out := make([]SaleRecord, 0, t.Len())
	for i := range t.Rows {
		date, ok := ParseDate(t.Cell(i, "ts"))
		if !ok {
			return nil, cellError(t, i, "ts", "date (YYYY-MM-DD)")
		}
		units, ok := ParseInt(t.Cell(i, "units"))
		if !ok {
			return nil, cellError(t, i, "units", "integer")
		}
		unitPrice, ok := ParseNumber(t.Cell(i, "unit_price"))
		if !ok {
			return nil, cellError(t, i, "unit_price", "number")
		}
		out = append(out, SaleRecord{
			SKU:       CleanCell(t.Cell(i, "sku")),
			Date:      date,
			Units:     units,
			UnitPrice: unitPrice,
		})
	}
	return out, nil
}
