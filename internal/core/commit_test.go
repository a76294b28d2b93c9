package core_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adyajasola/stocksmart/internal/core"
	"github.com/adyajasola/stocksmart/internal/store"
)

func commitTables() core.TableSet {
	return core.TableSet{
		Products: core.NewTable("products.csv",
			[]string{"sku", "name", "category", "cost", "price", "supplier"},
			[][]string{{"A1", "Widget", "tools", "5", "10", "Acme"}}),
		Inventory: core.NewTable("inventory.csv",
			[]string{"sku", "on_hand", "reorder_point", "lead_time_days"},
			[][]string{{"A1", "3", "5", "7"}}),
		Sales: core.NewTable("sales.csv",
			[]string{"sku", "ts", "units", "unit_price"},
			[][]string{
				{"A1", "2026-08-21", "30", "10"},
				{"A1", "2026-08-21", "99", "12"}, // duplicate (sku, ts)
				{"A1", "2026-08-22", "2", "10"},
			}),
	}
}

func TestCommit(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()

	result, err := core.Commit(ctx, mem, commitTables())
	require.NoError(t, err)

	assert.Equal(t, 1, result.ProductsUpserted)
	assert.Equal(t, 1, result.InventoryUpserted)
	// Attempted counts submitted rows, including the duplicate.
	assert.Equal(t, 3, result.SalesAttempted)

	sales, err := mem.SalesSince(ctx, time.Time{})
	require.NoError(t, err)
	require.Len(t, sales, 2, "duplicate (sku, ts) row must be discarded")

	// First-committed row wins for the duplicated day.
	assert.Equal(t, 30, sales[0].Units)
	assert.Equal(t, 10.0, sales[0].UnitPrice)
}

func TestCommit_RefusesIncompleteSchema(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()

	ts := commitTables()
	ts.Inventory = core.NewTable("inventory.csv", []string{"sku", "on_hand"}, nil)

	_, err := core.Commit(ctx, mem, ts)
	require.ErrorIs(t, err, core.ErrSchemaIncomplete)

	// No partial effect: nothing was written.
	products, err := mem.Products(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestCommit_Idempotent(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()

	first, err := core.Commit(ctx, mem, commitTables())
	require.NoError(t, err)
	second, err := core.Commit(ctx, mem, commitTables())
	require.NoError(t, err)

	assert.Equal(t, first, second)

	products, err := mem.Products(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)

	inventory, err := mem.InventoryLevels(ctx)
	require.NoError(t, err)
	require.Len(t, inventory, 1)

	sales, err := mem.SalesSince(ctx, time.Time{})
	require.NoError(t, err)
	assert.Len(t, sales, 2)
}

func TestCommit_UpsertReplacesMutableFields(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()

	_, err := core.Commit(ctx, mem, commitTables())
	require.NoError(t, err)

	updated := commitTables()
	updated.Products.Rows[0] = []string{"A1", "Widget v2", "hardware", "6", "12", "Bolt Inc"}
	updated.Inventory.Rows[0] = []string{"A1", "8", "4", "10"}
	_, err = core.Commit(ctx, mem, updated)
	require.NoError(t, err)

	products, err := mem.Products(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, core.ProductRecord{
		SKU: "A1", Name: "Widget v2", Category: "hardware",
		Cost: 6, Price: 12, Supplier: "Bolt Inc",
	}, products[0])

	inventory, err := mem.InventoryLevels(ctx)
	require.NoError(t, err)
	require.Len(t, inventory, 1)
	assert.Equal(t, 8, inventory[0].OnHand)
}

func TestCommit_UnparseableCellAborts(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()

	ts := commitTables()
	ts.Sales.Rows[0][1] = "yesterday"

	_, err := core.Commit(ctx, mem, ts)
	require.Error(t, err)
	assert.False(t, errors.Is(err, core.ErrSchemaIncomplete))
	assert.Contains(t, err.Error(), "sales.csv")
}
