package report

import (
	"testing"
	"time"

	"go-retail-ws/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	productA = uuid.New()
	productB = uuid.New()
	productC = uuid.New()
)

func purchase(pid uuid.UUID, name string, qty int, cost int64, date time.Time) model.PurchaseEntry {
	return model.PurchaseEntry{
		ProductID: pid,
		Product:   model.Product{Name: name},
		Quantity:  qty,
		UnitCost:  cost,
		Date:      date,
	}
}

func sale(pid uuid.UUID, name string, qty int, cost, price int64, date time.Time) model.SaleEntry {
	return model.SaleEntry{
		ProductID: pid,
		Product:   model.Product{Name: name},
		Quantity:  qty,
		UnitCost:  cost,
		UnitPrice: price,
		Date:      date,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestInventoryLevels(t *testing.T) {
	purchases := []model.PurchaseEntry{
		purchase(productA, "Gạo", 100, 2000, day(2025, 1, 5)),
		purchase(productB, "Đường", 10, 15000, day(2025, 1, 6)),
	}
	sales := []model.SaleEntry{
		sale(productA, "Gạo", 30, 2000, 5000, day(2025, 1, 10)),
		sale(productB, "Đường", 25, 15000, 20000, day(2025, 1, 11)), // oversold
	}

	levels := InventoryLevels(purchases, sales)

	assert.Equal(t, 70, levels[productA])
	// Negative level preserved, not clamped: it signals a data error.
	assert.Equal(t, -15, levels[productB])
}

func TestProfitZeroCostMeansNoProfit(t *testing.T) {
	s := sale(productA, "Gạo", 10, 0, 5000, day(2025, 1, 1))
	assert.Equal(t, int64(0), Profit(s))
	assert.Equal(t, int64(0), DisplayProfit(s))
}

func TestDisplayProfitClampsLoss(t *testing.T) {
	s := sale(productA, "Gạo", 10, 5000, 4000, day(2025, 1, 1))
	assert.Equal(t, int64(-10000), Profit(s))
	assert.Equal(t, int64(0), DisplayProfit(s))
}

func TestPeriodTotalsScenario(t *testing.T) {
	// 100 units @ 2000 purchased, 30 units sold @ 5000 with cost 2000.
	purchases := []model.PurchaseEntry{purchase(productA, "Gạo", 100, 2000, day(2025, 3, 1))}
	sales := []model.SaleEntry{sale(productA, "Gạo", 30, 2000, 5000, day(2025, 3, 15))}

	totals := PeriodTotals(purchases, sales)

	assert.Equal(t, int64(200000), totals.TotalIn)
	assert.Equal(t, int64(150000), totals.TotalOut)
	assert.Equal(t, int64(-50000), totals.Profit)
	assert.InDelta(t, -25.0, totals.ProfitRate, 0.001)

	// Per-sale profit: (5000-2000)×30
	assert.Equal(t, int64(90000), Profit(sales[0]))
}

func TestPeriodTotalsEmptyPurchases(t *testing.T) {
	sales := []model.SaleEntry{sale(productA, "Gạo", 5, 1000, 2000, day(2025, 1, 1))}
	totals := PeriodTotals(nil, sales)

	// ProfitRate must be exactly 0 when TotalIn == 0, never a division error.
	assert.Equal(t, float64(0), totals.ProfitRate)
	assert.Equal(t, int64(10000), totals.Profit)
}

func TestTopProductsAggregatesAndLimits(t *testing.T) {
	sales := []model.SaleEntry{
		sale(productA, "Gạo", 5, 80, 100, day(2025, 1, 1)),
		sale(productB, "Đường", 2, 100, 150, day(2025, 1, 2)),
		sale(productA, "Gạo", 3, 80, 100, day(2025, 1, 3)),
		sale(productC, "Muối", 1, 50, 60, day(2025, 1, 4)),
	}

	top := TopProducts(sales, 2, ByQuantity)

	require.Len(t, top, 2)
	assert.Equal(t, "Gạo", top[0].Name)
	assert.Equal(t, 8, top[0].Quantity)
	assert.Equal(t, int64(800), top[0].Revenue)
	assert.Equal(t, "Đường", top[1].Name)
}

func TestTopProductsByRevenue(t *testing.T) {
	sales := []model.SaleEntry{
		sale(productA, "Gạo", 10, 80, 100, day(2025, 1, 1)),      // revenue 1000
		sale(productB, "Đường", 2, 100, 10000, day(2025, 1, 2)), // revenue 20000
	}

	top := TopProducts(sales, 10, ByRevenue)

	require.Len(t, top, 2)
	assert.Equal(t, "Đường", top[0].Name)
}

func TestTopProductsStableTieBreak(t *testing.T) {
	sales := []model.SaleEntry{
		sale(productA, "Gạo", 5, 80, 100, day(2025, 1, 1)),
		sale(productB, "Đường", 5, 80, 100, day(2025, 1, 2)),
	}

	top := TopProducts(sales, 3, ByQuantity)

	require.Len(t, top, 2)
	// Equal quantities keep first-appearance order.
	assert.Equal(t, "Gạo", top[0].Name)
	assert.Equal(t, "Đường", top[1].Name)
}

func TestRecoveryRankingClampAndExclusion(t *testing.T) {
	purchases := []model.PurchaseEntry{
		purchase(productA, "Gạo", 10, 1000, day(2025, 1, 1)), // cost 10000
	}
	sales := []model.SaleEntry{
		sale(productA, "Gạo", 10, 1000, 2000, day(2025, 1, 5)), // revenue 20000 -> >100%
		sale(productB, "Đường", 1, 0, 1000, day(2025, 1, 6)),   // revenue, zero cost
	}

	ranking := RecoveryRanking(purchases, sales)

	// Product B has percent 0 and stock -1, so it is excluded entirely.
	require.Len(t, ranking, 1)
	assert.Equal(t, "Gạo", ranking[0].Name)
	assert.Equal(t, float64(100), ranking[0].Percent) // clamped
	assert.Equal(t, 0, ranking[0].Stock)
}

func TestRecoveryRankingBounds(t *testing.T) {
	purchases := []model.PurchaseEntry{
		purchase(productA, "Gạo", 10, 1000, day(2025, 1, 1)),
		purchase(productB, "Đường", 5, 2000, day(2025, 1, 2)),
	}
	sales := []model.SaleEntry{
		sale(productA, "Gạo", 3, 1000, 1500, day(2025, 1, 5)),
	}

	for _, e := range RecoveryRanking(purchases, sales) {
		assert.GreaterOrEqual(t, e.Percent, float64(0))
		assert.LessOrEqual(t, e.Percent, float64(100))
	}
}

func TestCostBreakdownTopSixOnly(t *testing.T) {
	var purchases []model.PurchaseEntry
	ids := make([]uuid.UUID, 8)
	for i := range ids {
		ids[i] = uuid.New()
		purchases = append(purchases, purchase(ids[i], "SP", 1, int64(1000*(i+1)), day(2025, 1, 1)))
	}

	slices := CostBreakdown(purchases)

	require.Len(t, slices, 6)
	// Sorted by cost descending; cheapest two dropped, not folded.
	assert.Equal(t, int64(8000), slices[0].Cost)
	assert.Equal(t, int64(3000), slices[5].Cost)

	var sum float64
	for _, s := range slices {
		sum += s.Percent
	}
	assert.Less(t, sum, float64(100))
}

func TestGrowthRate(t *testing.T) {
	assert.InDelta(t, 50.0, GrowthRate(150, 100), 0.001)
	assert.Equal(t, float64(0), GrowthRate(100, 0))
	// Negative prior profit is treated the same as zero.
	assert.Equal(t, float64(0), GrowthRate(100, -50))
}

func TestMonthlyTotalsBucketsByMonth(t *testing.T) {
	purchases := []model.PurchaseEntry{
		purchase(productA, "Gạo", 10, 1000, day(2025, 2, 10)),
		purchase(productA, "Gạo", 10, 1000, day(2024, 2, 10)), // other year, ignored
	}
	sales := []model.SaleEntry{
		sale(productA, "Gạo", 5, 1000, 3000, day(2025, 2, 20)),
		sale(productA, "Gạo", 2, 1000, 3000, day(2025, 11, 1)),
	}

	months := MonthlyTotals(purchases, sales, 2025)

	assert.Equal(t, int64(10000), months[1].TotalIn)
	assert.Equal(t, int64(15000), months[1].TotalOut)
	assert.Equal(t, int64(5000), months[1].Profit)
	assert.Equal(t, int64(6000), months[10].TotalOut)
	assert.Equal(t, int64(0), months[0].TotalIn)

	year := YearTotal(months)
	assert.Equal(t, int64(10000), year.TotalIn)
	assert.Equal(t, int64(21000), year.TotalOut)
}

func TestPerformanceRowsSortedByStockThenProfit(t *testing.T) {
	purchases := []model.PurchaseEntry{
		purchase(productA, "Gạo", 10, 1000, day(2025, 1, 1)),
		purchase(productB, "Đường", 10, 2000, day(2025, 1, 2)),
	}
	sales := []model.SaleEntry{
		sale(productA, "Gạo", 2, 1000, 3000, day(2025, 1, 5)),  // stock 8, profit 4000
		sale(productB, "Đường", 2, 2000, 2500, day(2025, 1, 6)), // stock 8, profit 1000
	}

	rows := PerformanceRows(purchases, sales)

	require.Len(t, rows, 2)
	assert.Equal(t, "Gạo", rows[0].Name) // same stock, higher profit first
	assert.Equal(t, 8, rows[0].Stock)
	assert.Equal(t, int64(8*1000), rows[0].StockValue)
	assert.Equal(t, int64(4000), rows[0].Profit)
	assert.Equal(t, "Đường", rows[1].Name)
}
