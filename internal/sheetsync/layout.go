// Package sheetsync mirrors the shop ledger into a Google Spreadsheet.
// layout.go is pure: row building and offset arithmetic only, so the
// position-dependent layout can be tested without the Sheets API.
package sheetsync

import (
	"fmt"
	"sort"
	"time"

	"go-retail-ws/internal/model"
	"go-retail-ws/internal/report"
	"go-retail-ws/pkg/format"
)

// Transaction type labels as written to the sheet.
const (
	TypeIn  = "NHẬP"
	TypeOut = "BÁN"
)

// The yearly tab keeps its header in row 1; transaction rows start at row 2.
const DataStartRow = 2

// LedgerHeader are the fixed columns A-L of a yearly tab.
var LedgerHeader = []interface{}{
	"STT", "Ngày", "Loại", "Sản phẩm", "Đơn vị", "Số lượng",
	"Đơn giá", "Thành tiền", "Lãi", "Khách/NCC", "Ghi chú", "Tháng",
}

// LedgerRow is one transaction row before it is serialized to the sheet.
type LedgerRow struct {
	Date         time.Time
	CreatedAt    time.Time
	Type         string
	ProductName  string
	Unit         string
	Quantity     int
	UnitPrice    int64
	LineTotal    int64
	Profit       *int64 // nil renders as blank (purchases, zero-cost sales)
	Counterparty string
	Note         string
}

// Values serializes the row for columns A-L. seq is the 1-based STT.
func (r LedgerRow) Values(seq int) []interface{} {
	var profit interface{} = ""
	if r.Profit != nil {
		profit = *r.Profit
	}
	return []interface{}{
		seq,
		format.FormatDate(r.Date),
		r.Type,
		r.ProductName,
		r.Unit,
		r.Quantity,
		r.UnitPrice,
		r.LineTotal,
		profit,
		r.Counterparty,
		r.Note,
		format.Month(r.Date),
	}
}

// ExportValues serializes the row for the downloadable workbook
// (no STT, no Tháng).
func (r LedgerRow) ExportValues() []interface{} {
	var profit interface{} = ""
	if r.Profit != nil {
		profit = *r.Profit
	}
	return []interface{}{
		format.FormatDate(r.Date),
		r.Type,
		r.ProductName,
		r.Unit,
		r.Quantity,
		r.UnitPrice,
		r.LineTotal,
		profit,
		r.Counterparty,
	}
}

// BuildLedgerRows merges purchases and sales into one chronological list.
// The sort is stable; same-date entries keep purchase-before-sale order.
func BuildLedgerRows(purchases []model.PurchaseEntry, sales []model.SaleEntry) []LedgerRow {
	rows := make([]LedgerRow, 0, len(purchases)+len(sales))

	for _, p := range purchases {
		rows = append(rows, LedgerRow{
			Date:         p.Date,
			CreatedAt:    p.CreatedAt,
			Type:         TypeIn,
			ProductName:  p.Product.Name,
			Unit:         p.Product.Unit,
			Quantity:     p.Quantity,
			UnitPrice:    p.UnitCost,
			LineTotal:    p.LineTotal(),
			Counterparty: p.Supplier,
			Note:         p.Note,
		})
	}
	for _, s := range sales {
		row := LedgerRow{
			Date:         s.Date,
			CreatedAt:    s.CreatedAt,
			Type:         TypeOut,
			ProductName:  s.Product.Name,
			Unit:         s.Product.Unit,
			Quantity:     s.Quantity,
			UnitPrice:    s.UnitPrice,
			LineTotal:    s.LineTotal(),
			Counterparty: s.Customer,
			Note:         s.Note,
		}
		if s.UnitCost > 0 {
			profit := report.Profit(s)
			row.Profit = &profit
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date.Before(rows[j].Date)
	})
	return rows
}

// Offsets are the 1-based starting rows of the summary tables, derived from
// how many transaction rows were actually written. The layout is
// position-dependent by design: one fixed writer, no named ranges.
type Offsets struct {
	TopHeaderRow     int // "TOP SẢN PHẨM" title
	TopLabelRow      int // column labels
	TopDataRow       int
	TypeStatsRow     int // same row as TopHeaderRow, placed right of the ledger
	PerfHeaderRow    int
	PerfLabelRow     int
	PerfDataRow      int
	MonthlyHeaderRow int
	MonthlyLabelRow  int
	MonthlyDataRow   int
}

// TypeStatsColumn is where the type-stats block starts, right of columns A-L.
const TypeStatsColumn = "N"

// ComputeOffsets places the summary tables below dataRowCount transaction
// rows. With 50 rows the top-products header lands on row 53 and its data on
// row 55.
func ComputeOffsets(dataRowCount, topCount, perfCount int) Offsets {
	var o Offsets
	o.TopHeaderRow = dataRowCount + 3
	o.TopLabelRow = o.TopHeaderRow + 1
	o.TopDataRow = o.TopHeaderRow + 2
	o.TypeStatsRow = o.TopHeaderRow

	block := topCount
	if block < 5 {
		block = 5
	}
	o.PerfHeaderRow = o.TopHeaderRow + block + 5
	o.PerfLabelRow = o.PerfHeaderRow + 1
	o.PerfDataRow = o.PerfHeaderRow + 2

	o.MonthlyHeaderRow = o.PerfDataRow + perfCount + 3
	o.MonthlyLabelRow = o.MonthlyHeaderRow + 1
	o.MonthlyDataRow = o.MonthlyHeaderRow + 2
	return o
}

// TopProductsBlock renders the top-10-by-quantity table.
func TopProductsBlock(top []report.ProductTotal) [][]interface{} {
	values := [][]interface{}{
		{"TOP SẢN PHẨM BÁN CHẠY"},
		{"Sản phẩm", "Số lượng", "Doanh thu", "Lãi"},
	}
	for _, t := range top {
		values = append(values, []interface{}{t.Name, t.Quantity, t.Revenue, t.Profit})
	}
	return values
}

// TypeStatsBlock renders count and total per transaction type.
func TypeStatsBlock(rows []LedgerRow) [][]interface{} {
	var inCount, outCount int
	var inTotal, outTotal int64
	for _, r := range rows {
		if r.Type == TypeIn {
			inCount++
			inTotal += r.LineTotal
		} else {
			outCount++
			outTotal += r.LineTotal
		}
	}
	return [][]interface{}{
		{"THỐNG KÊ THEO LOẠI"},
		{"Loại", "Số GD", "Tổng tiền"},
		{TypeIn, inCount, inTotal},
		{TypeOut, outCount, outTotal},
	}
}

// PerformanceBlock renders the full per-product performance table.
func PerformanceBlock(perf []report.PerformanceRow) [][]interface{} {
	values := [][]interface{}{
		{"HIỆU QUẢ THEO SẢN PHẨM"},
		{"Sản phẩm", "Đơn vị", "Nhập", "Bán", "Tồn kho", "Giá trị tồn", "Doanh thu", "Lãi"},
	}
	for _, r := range perf {
		values = append(values, []interface{}{
			r.Name, r.Unit, r.Inflow, r.Outflow, r.Stock, r.StockValue, r.Revenue, r.Profit,
		})
	}
	return values
}

// MonthlyBlock renders the 12-month rollup. The per-month cells are SUMIFS
// formulas referencing the transaction-row range by absolute addresses, so
// the sheet recomputes when a row is edited in place. With no transaction
// rows the cells are plain zeroes (an empty range is not addressable).
func MonthlyBlock(dataRowCount int) [][]interface{} {
	values := [][]interface{}{
		{"TỔNG KẾT 12 THÁNG"},
		{"Tháng", "Tổng nhập", "Tổng bán", "Lãi"},
	}

	lastRow := DataStartRow + dataRowCount - 1
	for m := 1; m <= 12; m++ {
		if dataRowCount == 0 {
			values = append(values, []interface{}{fmt.Sprintf("Tháng %d", m), 0, 0, 0})
			continue
		}
		in := fmt.Sprintf(
			`=SUMIFS($H$%d:$H$%d,$C$%d:$C$%d,"%s",$L$%d:$L$%d,%d)`,
			DataStartRow, lastRow, DataStartRow, lastRow, TypeIn, DataStartRow, lastRow, m,
		)
		out := fmt.Sprintf(
			`=SUMIFS($H$%d:$H$%d,$C$%d:$C$%d,"%s",$L$%d:$L$%d,%d)`,
			DataStartRow, lastRow, DataStartRow, lastRow, TypeOut, DataStartRow, lastRow, m,
		)
		profit := fmt.Sprintf(
			`=SUMIFS($I$%d:$I$%d,$L$%d:$L$%d,%d)`,
			DataStartRow, lastRow, DataStartRow, lastRow, m,
		)
		values = append(values, []interface{}{fmt.Sprintf("Tháng %d", m), in, out, profit})
	}
	return values
}

// SummaryTabName is the singleton cross-year rollup tab.
const SummaryTabName = "Tổng hợp"

// SummaryTabValues renders the "Tổng hợp" tab: precomputed monthly totals
// (plain numbers, no formulas) plus a yearly total row.
func SummaryTabValues(year int, months [12]report.Totals) [][]interface{} {
	values := [][]interface{}{
		{fmt.Sprintf("TỔNG HỢP NĂM %d", year)},
		{"Tháng", "Tổng nhập", "Tổng bán", "Lãi"},
	}
	for m, t := range months {
		values = append(values, []interface{}{
			fmt.Sprintf("Tháng %d", m+1), t.TotalIn, t.TotalOut, t.Profit,
		})
	}
	total := report.YearTotal(months)
	values = append(values, []interface{}{"Cả năm", total.TotalIn, total.TotalOut, total.Profit})
	return values
}
