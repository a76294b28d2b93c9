// Package analytics computes operational KPIs and stock-out alerts from
// the persisted dataset. It consumes the store read-only and never
// revalidates: the import pipeline guarantees the data it sees.
package analytics

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/adyajasola/stocksmart/internal/core"
)

// Window and limit bounds. Out-of-range request values are clamped, not
// rejected, matching the query parameter contract.
const (
	MinWindowDays = 1
	MaxWindowDays = 365
	MinAlertLimit = 1
	MaxAlertLimit = 200
)

// KpiSnapshot is the derived dashboard summary for one time window.
// Never persisted; rebuilt in full per request.
type KpiSnapshot struct {
	WindowDays     int     `json:"window_days"`
	Revenue        float64 `json:"revenue"`
	Units          int     `json:"units"`
	GrossMarginPct float64 `json:"gross_margin_pct"`
	LowStockSKUs   int     `json:"low_stock_skus"`
	StockoutRisk   int     `json:"stockout_risk_skus"`
}

// AlertEntry is one ranked reorder alert.
type AlertEntry struct {
	SKU           string  `json:"sku"`
	Name          string  `json:"name"`
	Issue         string  `json:"issue"`
	OnHand        int     `json:"on_hand"`
	ReorderPoint  int     `json:"reorder_point"`
	LeadTimeDays  int     `json:"lead_time_days"`
	AvgDailyUnits float64 `json:"avg_daily_units"`
	StockoutDays  float64 `json:"stockout_days"` // Rounded to one decimal
	Action        string  `json:"action"`
}

// ActionCreatePO is the fixed recommended action attached to every alert.
const ActionCreatePO = "Create PO"

// Engine computes KPI snapshots and alert rankings over a core.Store.
type Engine struct {
	store core.Store
	now   func() time.Time // Injectable for tests
}

// NewEngine creates an analytics engine over the given store.
func NewEngine(s core.Store) *Engine {
	return &Engine{store: s, now: time.Now}
}

// WithClock overrides the engine's clock. Tests use this to pin the
// window cutoff to a known day.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// ClampWindow bounds a requested window to [MinWindowDays, MaxWindowDays].
func ClampWindow(days int) int {
	return clamp(days, MinWindowDays, MaxWindowDays)
}

// ClampLimit bounds a requested alert limit to [MinAlertLimit, MaxAlertLimit].
func ClampLimit(limit int) int {
	return clamp(limit, MinAlertLimit, MaxAlertLimit)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// cutoff returns the first day included in the window: current date minus
// windowDays, at midnight UTC. Sales dated on or after it count.
func (e *Engine) cutoff(windowDays int) time.Time {
	y, m, d := e.now().UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return today.AddDate(0, 0, -windowDays)
}

// velocity is the per-sku windowed sales aggregate.
type velocity struct {
	units         int
	avgDailyUnits float64
}

// velocityBySKU aggregates windowed sales per sku. Skus with no sales in
// the window are absent from the map: zero recent velocity is
// non-evaluable for stock-out math, not zero or infinite risk.
func velocityBySKU(sales []core.SaleRecord, windowDays int) map[string]velocity {
	bysku := make(map[string]velocity)
	for _, s := range sales {
		v := bysku[s.SKU]
		v.units += s.Units
		bysku[s.SKU] = v
	}
	for sku, v := range bysku {
		v.avgDailyUnits = float64(v.units) / float64(windowDays)
		bysku[sku] = v
	}
	return bysku
}

// Snapshot computes the KPI summary for the given window.
func (e *Engine) Snapshot(ctx context.Context, windowDays int) (KpiSnapshot, error) {
	windowDays = ClampWindow(windowDays)

	sales, err := e.store.SalesSince(ctx, e.cutoff(windowDays))
	if err != nil {
		return KpiSnapshot{}, fmt.Errorf("load sales: %w", err)
	}
	products, err := e.store.Products(ctx)
	if err != nil {
		return KpiSnapshot{}, fmt.Errorf("load products: %w", err)
	}
	inventory, err := e.store.InventoryLevels(ctx)
	if err != nil {
		return KpiSnapshot{}, fmt.Errorf("load inventory: %w", err)
	}

	snap := KpiSnapshot{WindowDays: windowDays}

	for _, s := range sales {
		snap.Units += s.Units
		snap.Revenue += float64(s.Units) * s.UnitPrice
	}

	// Margin is computed over sales joined to products by sku; a sale
	// without a product row contributes to revenue above but not here.
	costBySKU := make(map[string]float64, len(products))
	for _, p := range products {
		costBySKU[p.SKU] = p.Cost
	}
	var joinedRevenue, grossProfit float64
	for _, s := range sales {
		cost, ok := costBySKU[s.SKU]
		if !ok {
			continue
		}
		joinedRevenue += float64(s.Units) * s.UnitPrice
		grossProfit += float64(s.Units) * (s.UnitPrice - cost)
	}
	if joinedRevenue > 0 {
		snap.GrossMarginPct = round2(grossProfit / joinedRevenue * 100)
	}

	// Stock is a point-in-time quantity; the low-stock count ignores the
	// time window entirely.
	byVelocity := velocityBySKU(sales, windowDays)
	for _, inv := range inventory {
		if inv.OnHand <= inv.ReorderPoint {
			snap.LowStockSKUs++
		}
		v, ok := byVelocity[inv.SKU]
		if !ok || v.avgDailyUnits <= 0 {
			continue
		}
		if float64(inv.OnHand)/v.avgDailyUnits <= float64(inv.LeadTimeDays) {
			snap.StockoutRisk++
		}
	}

	return snap, nil
}

// Alerts ranks positive-velocity skus by projected days to stock-out and
// classifies the top candidates.
//
// The limit cuts the candidate list before classification, so the final
// alert count can be smaller than limit even when qualifying skus exist
// beyond the cutoff. Deliberate: the ranking surfaces the most urgent
// skus first, and a sku near the top of the sort can still carry no
// issue at all.
func (e *Engine) Alerts(ctx context.Context, windowDays, limit int) ([]AlertEntry, error) {
	windowDays = ClampWindow(windowDays)
	limit = ClampLimit(limit)

	sales, err := e.store.SalesSince(ctx, e.cutoff(windowDays))
	if err != nil {
		return nil, fmt.Errorf("load sales: %w", err)
	}
	products, err := e.store.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	inventory, err := e.store.InventoryLevels(ctx)
	if err != nil {
		return nil, fmt.Errorf("load inventory: %w", err)
	}

	nameBySKU := make(map[string]string, len(products))
	for _, p := range products {
		nameBySKU[p.SKU] = p.Name
	}
	byVelocity := velocityBySKU(sales, windowDays)

	type candidate struct {
		inv          core.InventoryRecord
		name         string
		avgDaily     float64
		stockoutDays float64
	}

	var candidates []candidate
	for _, inv := range inventory {
		v, ok := byVelocity[inv.SKU]
		if !ok || v.avgDailyUnits <= 0 {
			continue
		}
		name, ok := nameBySKU[inv.SKU]
		if !ok {
			continue
		}
		candidates = append(candidates, candidate{
			inv:          inv,
			name:         name,
			avgDaily:     v.avgDailyUnits,
			stockoutDays: float64(inv.OnHand) / v.avgDailyUnits,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].stockoutDays != candidates[j].stockoutDays {
			return candidates[i].stockoutDays < candidates[j].stockoutDays
		}
		return candidates[i].inv.SKU < candidates[j].inv.SKU
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	alerts := make([]AlertEntry, 0, len(candidates))
	for _, c := range candidates {
		var issue string
		switch {
		case c.stockoutDays <= float64(c.inv.LeadTimeDays):
			issue = fmt.Sprintf("Stockout risk in ~%.1f days (lead %dd)", c.stockoutDays, c.inv.LeadTimeDays)
		case c.inv.OnHand <= c.inv.ReorderPoint:
			issue = "Low stock (below reorder point)"
		default:
			continue
		}
		alerts = append(alerts, AlertEntry{
			SKU:           c.inv.SKU,
			Name:          c.name,
			Issue:         issue,
			OnHand:        c.inv.OnHand,
			ReorderPoint:  c.inv.ReorderPoint,
			LeadTimeDays:  c.inv.LeadTimeDays,
			AvgDailyUnits: c.avgDaily,
			StockoutDays:  round1(c.stockoutDays),
			Action:        ActionCreatePO,
		})
	}
	return alerts, nil
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
