package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/adyajasola/stocksmart/internal/core"
)

// Memory is an in-memory core.Store used by tests. It mirrors the
// Postgres conflict semantics: products and inventory replace on sku,
// sales keep the first committed row per (sku, ts).
//
// WithTx provides mutual exclusion but no rollback; a failed commit in a
// test should assert on the error, not on partial state.
type Memory struct {
	mu        sync.RWMutex
	products  map[string]core.ProductRecord
	inventory map[string]core.InventoryRecord
	sales     map[string]core.SaleRecord // keyed by sku + "\x00" + date
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		products:  make(map[string]core.ProductRecord),
		inventory: make(map[string]core.InventoryRecord),
		sales:     make(map[string]core.SaleRecord),
	}
}

func saleKey(sku string, date time.Time) string {
	return sku + "\x00" + core.FormatDate(date)
}

func (m *Memory) ReplaceProducts(ctx context.Context, rows []core.ProductRecord) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range rows {
		m.products[r.SKU] = r
	}
	return len(rows), nil
}

func (m *Memory) ReplaceInventory(ctx context.Context, rows []core.InventoryRecord) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range rows {
		m.inventory[r.SKU] = r
	}
	return len(rows), nil
}

func (m *Memory) AddSales(ctx context.Context, rows []core.SaleRecord) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inserted := 0
	for _, r := range rows {
		key := saleKey(r.SKU, r.Date)
		if _, exists := m.sales[key]; exists {
			continue
		}
		m.sales[key] = r
		inserted++
	}
	return inserted, nil
}

func (m *Memory) WithTx(ctx context.Context, fn func(core.Store) error) error {
	return fn(m)
}

func (m *Memory) Products(ctx context.Context) ([]core.ProductRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]core.ProductRecord, 0, len(m.products))
	for _, r := range m.products {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out, nil
}

func (m *Memory) InventoryLevels(ctx context.Context) ([]core.InventoryRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]core.InventoryRecord, 0, len(m.inventory))
	for _, r := range m.inventory {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out, nil
}

func (m *Memory) SalesSince(ctx context.Context, from time.Time) ([]core.SaleRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []core.SaleRecord
	for _, r := range m.sales {
		if !r.Date.Before(from) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SKU != out[j].SKU {
			return out[i].SKU < out[j].SKU
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}
