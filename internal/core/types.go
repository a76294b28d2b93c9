// Package core provides the business logic for the StockSmart import
// pipeline: CSV dataset loading, multi-file validation, and the commit
// path into the persistent store. This package has no HTTP dependencies
// and is exercised directly by the web layer.
package core

import "time"

// Dataset identifies one of the three import files.
type Dataset string

const (
	DatasetProducts  Dataset = "products"
	DatasetInventory Dataset = "inventory"
	DatasetSales     Dataset = "sales"
)

// Required column sets per dataset. Column matching is case-insensitive.
var (
	RequiredProducts  = []string{"sku", "name", "category", "cost", "price", "supplier"}
	RequiredInventory = []string{"sku", "on_hand", "reorder_point", "lead_time_days"}
	RequiredSales     = []string{"sku", "ts", "units", "unit_price"}
)

// ProductRecord is the catalog entry for one sku. Products are the
// authoritative source of sku existence; inventory and sales rows must
// reference a sku defined here.
type ProductRecord struct {
	SKU      string  `json:"sku"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Cost     float64 `json:"cost"`
	Price    float64 `json:"price"`
	Supplier string  `json:"supplier"`
}

// InventoryRecord is the point-in-time stock position for one sku.
type InventoryRecord struct {
	SKU          string `json:"sku"`
	OnHand       int    `json:"on_hand"`
	ReorderPoint int    `json:"reorder_point"`
	LeadTimeDays int    `json:"lead_time_days"`
}

// SaleRecord is one day of sales for one sku. At most one record exists
// per (sku, date); later duplicates are discarded on commit, not merged.
type SaleRecord struct {
	SKU       string    `json:"sku"`
	Date      time.Time `json:"ts"` // Calendar day, midnight UTC
	Units     int       `json:"units"`
	UnitPrice float64   `json:"unit_price"`
}

// TableSet groups the three datasets of one import submission.
type TableSet struct {
	Products  Table
	Inventory Table
	Sales     Table
}

// Summary reports per-dataset row counts for a submission.
type Summary struct {
	ProductsRows  int `json:"products_rows"`
	InventoryRows int `json:"inventory_rows"`
	SalesRows     int `json:"sales_rows"`
}

// Summary returns the data row counts of the set.
func (ts TableSet) Summary() Summary {
	return Summary{
		ProductsRows:  ts.Products.Len(),
		InventoryRows: ts.Inventory.Len(),
		SalesRows:     ts.Sales.Len(),
	}
}
