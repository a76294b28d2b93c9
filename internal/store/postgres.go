// Package store provides implementations of the core.Store persistence
// contract: a PostgreSQL store for production and an in-memory store for
// tests and the analytics engine's test fixtures.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adyajasola/stocksmart/internal/core"
)

// DBTX is the subset of pgx operations the store needs.
// Satisfied by both *pgxpool.Pool and pgx.Tx, which lets the same query
// methods run inside or outside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// Postgres is the production core.Store backed by PostgreSQL.
type Postgres struct {
	db   DBTX
	pool *pgxpool.Pool // nil when scoped to a transaction
}

// NewPostgres creates a Postgres store on top of a connection pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{db: pool, pool: pool}
}

// EnsureSchema creates the three tables and their unique constraints if
// they do not exist yet. Run once at startup.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
			sku VARCHAR(64) NOT NULL UNIQUE,
			name VARCHAR(200) NOT NULL DEFAULT '',
			category VARCHAR(100) NOT NULL DEFAULT '',
			cost DOUBLE PRECISION NOT NULL DEFAULT 0,
			price DOUBLE PRECISION NOT NULL DEFAULT 0,
			supplier VARCHAR(120) NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS inventory (
			id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
			sku VARCHAR(64) NOT NULL UNIQUE,
			on_hand INTEGER NOT NULL DEFAULT 0,
			reorder_point INTEGER NOT NULL DEFAULT 0,
			lead_time_days INTEGER NOT NULL DEFAULT 1
		)`,
		`CREATE TABLE IF NOT EXISTS sales (
			id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
			sku VARCHAR(64) NOT NULL,
			ts DATE NOT NULL,
			units INTEGER NOT NULL DEFAULT 0,
			unit_price DOUBLE PRECISION NOT NULL DEFAULT 0,
			CONSTRAINT uq_sales_sku_ts UNIQUE (sku, ts)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sales_ts ON sales (ts)`,
	}
	for _, stmt := range ddl {
		if _, err := p.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// WithTx runs fn against a transaction-scoped store. When the receiver is
// already transaction-scoped, fn joins the existing transaction.
func (p *Postgres) WithTx(ctx context.Context, fn func(core.Store) error) error {
	if p.pool == nil {
		return fn(p)
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // No-op after commit

	if err := fn(&Postgres{db: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// ReplaceProducts upserts products by sku, replacing all mutable fields
// on conflict. Returns the number of rows submitted; upsert succeeds per
// row by construction.
func (p *Postgres) ReplaceProducts(ctx context.Context, rows []core.ProductRecord) (int, error) {
	b := &pgx.Batch{}
	for _, r := range rows {
		b.Queue(`INSERT INTO products (sku, name, category, cost, price, supplier)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (sku) DO UPDATE SET
				name = EXCLUDED.name,
				category = EXCLUDED.category,
				cost = EXCLUDED.cost,
				price = EXCLUDED.price,
				supplier = EXCLUDED.supplier`,
			r.SKU, r.Name, r.Category, r.Cost, r.Price, r.Supplier)
	}
	if err := p.sendBatch(ctx, b); err != nil {
		return 0, fmt.Errorf("upsert products: %w", err)
	}
	return len(rows), nil
}

// ReplaceInventory upserts inventory levels by sku.
func (p *Postgres) ReplaceInventory(ctx context.Context, rows []core.InventoryRecord) (int, error) {
	b := &pgx.Batch{}
	for _, r := range rows {
		b.Queue(`INSERT INTO inventory (sku, on_hand, reorder_point, lead_time_days)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (sku) DO UPDATE SET
				on_hand = EXCLUDED.on_hand,
				reorder_point = EXCLUDED.reorder_point,
				lead_time_days = EXCLUDED.lead_time_days`,
			r.SKU, r.OnHand, r.ReorderPoint, r.LeadTimeDays)
	}
	if err := p.sendBatch(ctx, b); err != nil {
		return 0, fmt.Errorf("upsert inventory: %w", err)
	}
	return len(rows), nil
}

// AddSales inserts sales rows, silently skipping (sku, ts) duplicates.
// The first committed row for a day wins. Returns the count actually
// inserted, which callers are free to ignore.
func (p *Postgres) AddSales(ctx context.Context, rows []core.SaleRecord) (int, error) {
	b := &pgx.Batch{}
	for _, r := range rows {
		b.Queue(`INSERT INTO sales (sku, ts, units, unit_price)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (sku, ts) DO NOTHING`,
			r.SKU, r.Date, r.Units, r.UnitPrice)
	}

	results := p.db.SendBatch(ctx, b)
	defer results.Close()

	inserted := 0
	for range rows {
		tag, err := results.Exec()
		if err != nil {
			return inserted, fmt.Errorf("insert sales: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}

// sendBatch executes a batch and drains its results.
func (p *Postgres) sendBatch(ctx context.Context, b *pgx.Batch) error {
	results := p.db.SendBatch(ctx, b)
	defer results.Close()

	for i := 0; i < b.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// Products returns all product records ordered by sku.
func (p *Postgres) Products(ctx context.Context) ([]core.ProductRecord, error) {
	rows, err := p.db.Query(ctx,
		`SELECT sku, name, category, cost, price, supplier FROM products ORDER BY sku`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var out []core.ProductRecord
	for rows.Next() {
		var r core.ProductRecord
		if err := rows.Scan(&r.SKU, &r.Name, &r.Category, &r.Cost, &r.Price, &r.Supplier); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// InventoryLevels returns all inventory records ordered by sku.
func (p *Postgres) InventoryLevels(ctx context.Context) ([]core.InventoryRecord, error) {
	rows, err := p.db.Query(ctx,
		`SELECT sku, on_hand, reorder_point, lead_time_days FROM inventory ORDER BY sku`)
	if err != nil {
		return nil, fmt.Errorf("query inventory: %w", err)
	}
	defer rows.Close()

	var out []core.InventoryRecord
	for rows.Next() {
		var r core.InventoryRecord
		if err := rows.Scan(&r.SKU, &r.OnHand, &r.ReorderPoint, &r.LeadTimeDays); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// SalesSince returns sales on or after the given day, ordered by sku and
// date.
func (p *Postgres) SalesSince(ctx context.Context, from time.Time) ([]core.SaleRecord, error) {
	rows, err := p.db.Query(ctx,
		`SELECT sku, ts, units, unit_price FROM sales WHERE ts >= $1 ORDER BY sku, ts`, from)
	if err != nil {
		return nil, fmt.Errorf("query sales: %w", err)
	}
	defer rows.Close()

	var out []core.SaleRecord
	for rows.Next() {
		var r core.SaleRecord
		if err := rows.Scan(&r.SKU, &r.Date, &r.Units, &r.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
