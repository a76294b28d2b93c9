package core

// commit.go implements the commit coordinator.
//
// Commit trusts that callers validated the submission first: its only
// admission check is schema completeness, refused outright when any
// required column is missing. All three writes run inside a single store
// transaction, so a failed statement leaves nothing partially applied.

import (
	"context"
	"errors"
	"time"
)

// ErrSchemaIncomplete is returned by Commit when any dataset is missing
// required columns. Commit performs no row-level validation of its own.
var ErrSchemaIncomplete = errors.New("missing required columns, run validate first")

// Store is the persistence contract the import and analytics paths rely
// on. Replace* upserts by sku (all mutable fields replaced on conflict);
// AddSales inserts with (sku, ts) duplicates silently discarded, first
// committed row wins, and returns the count actually inserted.
//
// WithTx runs fn against a transaction-scoped Store; any error rolls the
// whole transaction back. Implementations: internal/store.Postgres for
// production, internal/store.Memory for tests.
type Store interface {
	ReplaceProducts(ctx context.Context, rows []ProductRecord) (int, error)
	ReplaceInventory(ctx context.Context, rows []InventoryRecord) (int, error)
	AddSales(ctx context.Context, rows []SaleRecord) (int, error)
	WithTx(ctx context.Context, fn func(Store) error) error

	Products(ctx context.Context) ([]ProductRecord, error)
	InventoryLevels(ctx context.Context) ([]InventoryRecord, error)
	SalesSince(ctx context.Context, from time.Time) ([]SaleRecord, error)
}

// CommitResult reports what a commit saved. SalesAttempted counts rows
// submitted, not rows inserted: duplicate (sku, ts) rows are absorbed
// silently and the caller is not told how many were dropped. Downstream
// consumers rely on the count matching the input row count, so this is a
// documented contract, not an oversight.
type CommitResult struct {
	ProductsUpserted  int `json:"products_upserted"`
	InventoryUpserted int `json:"inventory_upserted"`
	SalesAttempted    int `json:"sales_attempted"`
}

// Commit upserts a structurally valid submission into the store in one
// transaction.
func Commit(ctx context.Context, s Store, ts TableSet) (CommitResult, error) {
	if !SchemaComplete(ts) {
		return CommitResult{}, ErrSchemaIncomplete
	}

	products, err := BuildProducts(ts.Products)
	if err != nil {
		return CommitResult{}, err
	}
	inventory, err := BuildInventory(ts.Inventory)
	if err != nil {
		return CommitResult{}, err
	}
	sales, err := BuildSales(ts.Sales)
	if err != nil {
		return CommitResult{}, err
	}

	err = s.WithTx(ctx, func(tx Store) error {
		if _, err := tx.ReplaceProducts(ctx, products); err != nil {
			return err
		}
		if _, err := tx.ReplaceInventory(ctx, inventory); err != nil {
			return err
		}
		if _, err := tx.AddSales(ctx, sales); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return CommitResult{}, err
	}

	return CommitResult{
		ProductsUpserted:  len(products),
		InventoryUpserted: len(inventory),
		SalesAttempted:    len(sales),
	}, nil
}
