package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go-retail-ws/internal/model"
	"go-retail-ws/internal/sheetsync"
	"go-retail-ws/internal/ws"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func syncFixtures(year int) (*stubPurchaseRepo, *stubSaleRepo) {
	pid := uuid.New()
	product := model.Product{Name: "Gạo", Unit: "kg"}

	purchases := &stubPurchaseRepo{entries: []model.PurchaseEntry{
		{
			Date:      time.Date(year, 1, 5, 0, 0, 0, 0, time.Local),
			ProductID: pid,
			Product:   product,
			Quantity:  100,
			UnitCost:  2000,
			Supplier:  "NCC A",
		},
	}}
	sales := &stubSaleRepo{entries: []model.SaleEntry{
		{
			Date:      time.Date(year, 1, 10, 0, 0, 0, 0, time.Local),
			ProductID: pid,
			Product:   product,
			Quantity:  30,
			UnitCost:  2000,
			UnitPrice: 5000,
			Customer:  "Chị Hoa",
		},
		{
			Date:      time.Date(year, 2, 1, 0, 0, 0, 0, time.Local),
			ProductID: pid,
			Product:   product,
			Quantity:  10,
			UnitCost:  2000,
			UnitPrice: 5000,
		},
	}}
	return purchases, sales
}

func newSyncService(purchases *stubPurchaseRepo, sales *stubSaleRepo, sheets SheetClient, settings *stubSettingsRepo) SyncService {
	return NewSyncService(purchases, sales, settings, sheets, ws.NewHub())
}

func TestSyncYearPhaseOrder(t *testing.T) {
	purchases, sales := syncFixtures(2025)
	sheets := newFakeSheetClient()
	settings := &stubSettingsRepo{}

	svc := newSyncService(purchases, sales, sheets, settings)
	result, err := svc.SyncYear(context.Background(), 2025)

	require.NoError(t, err)
	assert.Equal(t, 3, result.RowsWritten)
	assert.Equal(t, 0, result.RowsFailed)

	// Ensure precedes clear, clear precedes every append.
	require.GreaterOrEqual(t, len(sheets.calls), 6)
	assert.Equal(t, "ensure:2025", sheets.calls[0])
	assert.Equal(t, "clear:2025", sheets.calls[1])
	assert.Equal(t, "update:'2025'!A1", sheets.calls[2])

	// Transaction rows are chronological: purchase 05/01 first.
	rows := sheets.appended["2025"]
	require.Len(t, rows, 3)
	assert.Equal(t, sheetsync.TypeIn, rows[0][2])
	assert.Equal(t, "05/01/2025", rows[0][1])
	assert.Equal(t, sheetsync.TypeOut, rows[1][2])

	// Timestamp touched after the writes.
	assert.True(t, settings.touchCalled)
	require.NotNil(t, settings.lastSynced)
}

func TestSyncYearSummaryOffsets(t *testing.T) {
	purchases, sales := syncFixtures(2025)
	sheets := newFakeSheetClient()

	svc := newSyncService(purchases, sales, sheets, &stubSettingsRepo{})
	_, err := svc.SyncYear(context.Background(), 2025)
	require.NoError(t, err)

	// 3 written rows -> top header at 3+3=6, type stats beside it at N6.
	assert.Contains(t, sheets.ranges, "'2025'!A6")
	assert.Contains(t, sheets.ranges, "'2025'!N6")

	top := sheets.ranges["'2025'!A6"]
	assert.Equal(t, "TOP SẢN PHẨM BÁN CHẠY", top[0][0])

	// Summary tab rewritten with 12 months + total row.
	summary := sheets.ranges[fmt.Sprintf("'%s'!A1", sheetsync.SummaryTabName)]
	require.Len(t, summary, 15) // title + labels + 12 + total
	assert.Equal(t, "Cả năm", summary[14][0])
}

func TestSyncYearBestEffortRows(t *testing.T) {
	purchases, sales := syncFixtures(2025)
	sheets := newFakeSheetClient()
	sheets.appendErrs[2] = errors.New("quota exceeded")

	svc := newSyncService(purchases, sales, sheets, &stubSettingsRepo{})
	result, err := svc.SyncYear(context.Background(), 2025)

	// A failed row is skipped, the pipeline still succeeds.
	require.NoError(t, err)
	assert.Equal(t, 2, result.RowsWritten)
	assert.Equal(t, 1, result.RowsFailed)

	// Offsets follow the written count, not the attempted count.
	assert.Contains(t, sheets.ranges, "'2025'!A5")
}

func TestSyncYearEnsureFailureAborts(t *testing.T) {
	purchases, sales := syncFixtures(2025)
	sheets := newFakeSheetClient()
	sheets.ensureErr = errors.New("permission denied")

	svc := newSyncService(purchases, sales, sheets, &stubSettingsRepo{})
	_, err := svc.SyncYear(context.Background(), 2025)

	require.Error(t, err)
	assert.Empty(t, sheets.appended["2025"])
}

func TestSyncYearTimestampFailureNonFatal(t *testing.T) {
	purchases, sales := syncFixtures(2025)
	sheets := newFakeSheetClient()
	settings := &stubSettingsRepo{touchErr: errors.New("db down")}

	svc := newSyncService(purchases, sales, sheets, settings)
	result, err := svc.SyncYear(context.Background(), 2025)

	// Steps 1-4 are not rolled back; the sync still reports success.
	require.NoError(t, err)
	assert.Equal(t, 3, result.RowsWritten)
}

func TestSyncYearIdempotent(t *testing.T) {
	purchases, sales := syncFixtures(2025)
	sheets := newFakeSheetClient()

	svc := newSyncService(purchases, sales, sheets, &stubSettingsRepo{})
	_, err := svc.SyncYear(context.Background(), 2025)
	require.NoError(t, err)
	first := append([][]interface{}(nil), sheets.appended["2025"]...)

	_, err = svc.SyncYear(context.Background(), 2025)
	require.NoError(t, err)

	// Clear-before-write: the second run leaves an identical row set.
	assert.Equal(t, first, sheets.appended["2025"])
}
