// Package report folds purchase/sale entries into derived metrics.
// Semua fungsi pure: input slice read-only, output struktur baru, tanpa
// query database - supaya bisa di-unit-test tanpa backend.
package report

import (
	"sort"

	"go-retail-ws/internal/model"

	"github.com/google/uuid"
)

// Metric selects the ranking key for TopProducts.
type Metric string

const (
	ByQuantity Metric = "quantity" // dashboard widget
	ByRevenue  Metric = "revenue"  // reports
)

// ProductTotal is one product's aggregated sales.
type ProductTotal struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	Revenue   int64     `json:"revenue"`
	Profit    int64     `json:"profit"`
}

// Totals are the financial sums for one period.
type Totals struct {
	TotalIn    int64   `json:"total_in"`    // Σ qty×unit_cost (nhập)
	TotalOut   int64   `json:"total_out"`   // Σ qty×unit_price (bán)
	Profit     int64   `json:"profit"`      // TotalOut − TotalIn
	ProfitRate float64 `json:"profit_rate"` // %, 0 when TotalIn == 0
}

// RecoveryEntry is one product's cost-recovery standing (hồi vốn).
type RecoveryEntry struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Percent   float64   `json:"percent"` // clamped to [0,100]
	Stock     int       `json:"stock"`
}

// BreakdownSlice is one product's share of total purchase cost.
type BreakdownSlice struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Cost      int64     `json:"cost"`
	Percent   float64   `json:"percent"`
}

// PerformanceRow is one product's full in/out/stock picture for a window.
// Stock here is window-local: it only counts the entries passed in, which for
// filtered windows is NOT the authoritative all-time level.
type PerformanceRow struct {
	ProductID  uuid.UUID `json:"product_id"`
	Name       string    `json:"name"`
	Unit       string    `json:"unit"`
	Inflow     int       `json:"inflow"`
	Outflow    int       `json:"outflow"`
	Stock      int       `json:"stock"`
	StockValue int64     `json:"stock_value"`
	Revenue    int64     `json:"revenue"`
	Profit     int64     `json:"profit"`
}

// InventoryLevels computes tồn kho per product:
// Σ purchase.quantity − Σ sale.quantity. Negative levels are preserved -
// they flag a data error and must not be clamped here.
func InventoryLevels(purchases []model.PurchaseEntry, sales []model.SaleEntry) map[uuid.UUID]int {
	levels := make(map[uuid.UUID]int)
	for _, p := range purchases {
		levels[p.ProductID] += p.Quantity
	}
	for _, s := range sales {
		levels[s.ProductID] -= s.Quantity
	}
	return levels
}

// Profit returns the signed profit of one sale. A missing/zero cost means
// "no profit computed", not "pure profit": the result is 0, everywhere.
func Profit(s model.SaleEntry) int64 {
	if s.UnitCost == 0 {
		return 0
	}
	return (s.UnitPrice - s.UnitCost) * int64(s.Quantity)
}

// DisplayProfit is Profit clamped for summary displays: never negative.
func DisplayProfit(s model.SaleEntry) int64 {
	p := Profit(s)
	if p < 0 {
		return 0
	}
	return p
}

// PeriodTotals sums purchases and sales into the period's financials.
func PeriodTotals(purchases []model.PurchaseEntry, sales []model.SaleEntry) Totals {
	var t Totals
	for _, p := range purchases {
		t.TotalIn += p.LineTotal()
	}
	for _, s := range sales {
		t.TotalOut += s.LineTotal()
	}
	t.Profit = t.TotalOut - t.TotalIn
	if t.TotalIn > 0 {
		t.ProfitRate = float64(t.Profit) / float64(t.TotalIn) * 100
	}
	return t
}

// TopProducts groups sales per product and returns at most n entries sorted
// descending by the chosen metric. Only products with positive sold quantity
// are returned. The sort is stable: ties keep first-appearance order.
func TopProducts(sales []model.SaleEntry, n int, metric Metric) []ProductTotal {
	totals := groupSales(sales)

	sort.SliceStable(totals, func(i, j int) bool {
		if metric == ByRevenue {
			return totals[i].Revenue > totals[j].Revenue
		}
		return totals[i].Quantity > totals[j].Quantity
	})

	filtered := make([]ProductTotal, 0, n)
	for _, t := range totals {
		if t.Quantity <= 0 {
			continue
		}
		filtered = append(filtered, t)
		if len(filtered) == n {
			break
		}
	}
	return filtered
}

// RecoveryRanking computes hồi vốn per product from full-history entries:
// min(revenue/cost × 100, 100), 0 when cost is zero. Products with neither a
// positive percent nor positive stock are excluded, so a product with revenue
// but no recorded cost never appears in the ranking.
func RecoveryRanking(purchases []model.PurchaseEntry, sales []model.SaleEntry) []RecoveryEntry {
	type acc struct {
		name    string
		cost    int64
		revenue int64
	}
	order := []uuid.UUID{}
	byProduct := make(map[uuid.UUID]*acc)

	get := func(id uuid.UUID, name string) *acc {
		a, ok := byProduct[id]
		if !ok {
			a = &acc{}
			byProduct[id] = a
			order = append(order, id)
		}
		if a.name == "" {
			a.name = name
		}
		return a
	}

	for _, p := range purchases {
		a := get(p.ProductID, p.Product.Name)
		a.cost += p.LineTotal()
	}
	for _, s := range sales {
		a := get(s.ProductID, s.Product.Name)
		a.revenue += s.LineTotal()
	}

	levels := InventoryLevels(purchases, sales)

	entries := make([]RecoveryEntry, 0, len(order))
	for _, id := range order {
		a := byProduct[id]
		percent := 0.0
		if a.cost > 0 {
			percent = float64(a.revenue) / float64(a.cost) * 100
			if percent > 100 {
				percent = 100
			}
		}
		stock := levels[id]
		if percent <= 0 && stock <= 0 {
			continue
		}
		entries = append(entries, RecoveryEntry{
			ProductID: id,
			Name:      a.name,
			Percent:   percent,
			Stock:     stock,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Percent > entries[j].Percent
	})
	return entries
}

// CostBreakdown returns each product's share of the total purchase cost, top
// 6 only. The remainder is dropped, not folded into an "other" slice.
func CostBreakdown(purchases []model.PurchaseEntry) []BreakdownSlice {
	const maxSlices = 6

	order := []uuid.UUID{}
	costs := make(map[uuid.UUID]int64)
	names := make(map[uuid.UUID]string)
	var total int64

	for _, p := range purchases {
		if _, ok := costs[p.ProductID]; !ok {
			order = append(order, p.ProductID)
		}
		costs[p.ProductID] += p.LineTotal()
		if names[p.ProductID] == "" {
			names[p.ProductID] = p.Product.Name
		}
		total += p.LineTotal()
	}
	if total <= 0 {
		return nil
	}

	slices := make([]BreakdownSlice, 0, len(order))
	for _, id := range order {
		slices = append(slices, BreakdownSlice{
			ProductID: id,
			Name:      names[id],
			Cost:      costs[id],
			Percent:   float64(costs[id]) / float64(total) * 100,
		})
	}
	sort.SliceStable(slices, func(i, j int) bool {
		return slices[i].Cost > slices[j].Cost
	})
	if len(slices) > maxSlices {
		slices = slices[:maxSlices]
	}
	return slices
}

// GrowthRate compares two consecutive years' profit. Any non-positive prior
// profit forces the rate to 0 - a deliberate simplification, keep it.
func GrowthRate(currentProfit, priorProfit int64) float64 {
	if priorProfit <= 0 {
		return 0
	}
	return float64(currentProfit-priorProfit) / float64(priorProfit) * 100
}

// MonthlyTotals buckets entries of one year into 12 monthly Totals.
// Entries outside the year are ignored.
func MonthlyTotals(purchases []model.PurchaseEntry, sales []model.SaleEntry, year int) [12]Totals {
	var months [12]Totals
	for _, p := range purchases {
		if p.Date.Year() != year {
			continue
		}
		months[p.Date.Month()-1].TotalIn += p.LineTotal()
	}
	for _, s := range sales {
		if s.Date.Year() != year {
			continue
		}
		months[s.Date.Month()-1].TotalOut += s.LineTotal()
	}
	for i := range months {
		months[i].Profit = months[i].TotalOut - months[i].TotalIn
		if months[i].TotalIn > 0 {
			months[i].ProfitRate = float64(months[i].Profit) / float64(months[i].TotalIn) * 100
		}
	}
	return months
}

// YearTotal folds 12 monthly Totals into one.
func YearTotal(months [12]Totals) Totals {
	var t Totals
	for _, m := range months {
		t.TotalIn += m.TotalIn
		t.TotalOut += m.TotalOut
	}
	t.Profit = t.TotalOut - t.TotalIn
	if t.TotalIn > 0 {
		t.ProfitRate = float64(t.Profit) / float64(t.TotalIn) * 100
	}
	return t
}

// PerformanceRows builds the per-product in/out/stock/revenue/profit table
// from the given window's entries, sorted by stock descending then profit
// descending.
func PerformanceRows(purchases []model.PurchaseEntry, sales []model.SaleEntry) []PerformanceRow {
	order := []uuid.UUID{}
	rows := make(map[uuid.UUID]*PerformanceRow)

	get := func(id uuid.UUID, product model.Product) *PerformanceRow {
		r, ok := rows[id]
		if !ok {
			r = &PerformanceRow{ProductID: id}
			rows[id] = r
			order = append(order, id)
		}
		if r.Name == "" {
			r.Name = product.Name
			r.Unit = product.Unit
		}
		return r
	}

	lastCost := make(map[uuid.UUID]int64)
	for _, p := range purchases {
		r := get(p.ProductID, p.Product)
		r.Inflow += p.Quantity
		lastCost[p.ProductID] = p.UnitCost
	}
	for _, s := range sales {
		r := get(s.ProductID, s.Product)
		r.Outflow += s.Quantity
		r.Revenue += s.LineTotal()
		r.Profit += Profit(s)
	}

	out := make([]PerformanceRow, 0, len(order))
	for _, id := range order {
		r := rows[id]
		r.Stock = r.Inflow - r.Outflow
		r.StockValue = int64(r.Stock) * lastCost[id]
		out = append(out, *r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Stock != out[j].Stock {
			return out[i].Stock > out[j].Stock
		}
		return out[i].Profit > out[j].Profit
	})
	return out
}

func groupSales(sales []model.SaleEntry) []ProductTotal {
	order := []uuid.UUID{}
	byProduct := make(map[uuid.UUID]*ProductTotal)

	for _, s := range sales {
		t, ok := byProduct[s.ProductID]
		if !ok {
			t = &ProductTotal{ProductID: s.ProductID, Name: s.Product.Name}
			byProduct[s.ProductID] = t
			order = append(order, s.ProductID)
		}
		t.Quantity += s.Quantity
		t.Revenue += s.LineTotal()
		t.Profit += Profit(s)
	}

	totals := make([]ProductTotal, 0, len(order))
	for _, id := range order {
		totals = append(totals, *byProduct[id])
	}
	return totals
}
