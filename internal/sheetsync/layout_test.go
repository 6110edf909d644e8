package sheetsync

import (
	"testing"
	"time"

	"go-retail-ws/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeOffsetsFiftyRows(t *testing.T) {
	// 50 transaction rows place the top-products header at 53, data at 55.
	o := ComputeOffsets(50, 10, 4)

	assert.Equal(t, 53, o.TopHeaderRow)
	assert.Equal(t, 55, o.TopDataRow)
	assert.Equal(t, 53, o.TypeStatsRow)
	assert.Equal(t, 53+10+5, o.PerfHeaderRow)
	assert.Equal(t, o.PerfDataRow+4+3, o.MonthlyHeaderRow)
}

func TestComputeOffsetsFewTopProducts(t *testing.T) {
	// A short top list still reserves 5 rows before the performance table.
	o := ComputeOffsets(10, 2, 1)
	assert.Equal(t, 13+5+5, o.PerfHeaderRow)
}

func TestBuildLedgerRowsChronologicalMerge(t *testing.T) {
	pid := uuid.New()
	purchases := []model.PurchaseEntry{
		{
			Date:      day(2025, 1, 10),
			ProductID: pid,
			Product:   model.Product{Name: "Gạo", Unit: "kg"},
			Quantity:  100,
			UnitCost:  2000,
			Supplier:  "NCC A",
		},
	}
	sales := []model.SaleEntry{
		{
			Date:      day(2025, 1, 5),
			ProductID: pid,
			Product:   model.Product{Name: "Gạo", Unit: "kg"},
			Quantity:  5,
			UnitCost:  1800,
			UnitPrice: 3000,
			Customer:  "Chị Hoa",
		},
		{
			Date:      day(2025, 1, 20),
			ProductID: pid,
			Product:   model.Product{Name: "Gạo", Unit: "kg"},
			Quantity:  3,
			UnitCost:  0, // no cost recorded
			UnitPrice: 3000,
		},
	}

	rows := BuildLedgerRows(purchases, sales)

	require.Len(t, rows, 3)
	assert.Equal(t, TypeOut, rows[0].Type)
	assert.Equal(t, TypeIn, rows[1].Type)
	assert.Equal(t, TypeOut, rows[2].Type)

	// Sale with cost: profit present. Zero-cost sale: blank.
	require.NotNil(t, rows[0].Profit)
	assert.Equal(t, int64((3000-1800)*5), *rows[0].Profit)
	assert.Nil(t, rows[2].Profit)
}

func TestLedgerRowValues(t *testing.T) {
	profit := int64(6000)
	row := LedgerRow{
		Date:         day(2025, 11, 2),
		Type:         TypeOut,
		ProductName:  "Gạo",
		Unit:         "kg",
		Quantity:     5,
		UnitPrice:    3000,
		LineTotal:    15000,
		Profit:       &profit,
		Counterparty: "Chị Hoa",
		Note:         "trả sau",
	}

	values := row.Values(7)

	require.Len(t, values, 12)
	assert.Equal(t, 7, values[0])
	assert.Equal(t, "02/11/2025", values[1])
	assert.Equal(t, TypeOut, values[2])
	assert.Equal(t, int64(15000), values[7])
	assert.Equal(t, int64(6000), values[8])
	assert.Equal(t, 11, values[11]) // Tháng column
}

func TestLedgerRowBlankProfit(t *testing.T) {
	row := LedgerRow{Date: day(2025, 1, 1), Type: TypeIn}
	values := row.Values(1)
	assert.Equal(t, "", values[8])
}

func TestTypeStatsBlock(t *testing.T) {
	rows := []LedgerRow{
		{Type: TypeIn, LineTotal: 200000},
		{Type: TypeOut, LineTotal: 150000},
		{Type: TypeOut, LineTotal: 50000},
	}

	block := TypeStatsBlock(rows)

	require.Len(t, block, 4)
	assert.Equal(t, []interface{}{TypeIn, 1, int64(200000)}, block[2])
	assert.Equal(t, []interface{}{TypeOut, 2, int64(200000)}, block[3])
}

func TestMonthlyBlockFormulas(t *testing.T) {
	block := MonthlyBlock(50)

	require.Len(t, block, 14) // title + labels + 12 months
	jan := block[2]
	assert.Equal(t, "Tháng 1", jan[0])
	// Formulas reference the transaction range by absolute addresses.
	assert.Equal(t, `=SUMIFS($H$2:$H$51,$C$2:$C$51,"NHẬP",$L$2:$L$51,1)`, jan[1])
	assert.Equal(t, `=SUMIFS($H$2:$H$51,$C$2:$C$51,"BÁN",$L$2:$L$51,1)`, jan[2])
	assert.Equal(t, `=SUMIFS($I$2:$I$51,$L$2:$L$51,1)`, jan[3])
}

func TestMonthlyBlockEmptyLedger(t *testing.T) {
	block := MonthlyBlock(0)
	require.Len(t, block, 14)
	assert.Equal(t, 0, block[2][1]) // plain zero, no formula over empty range
}
