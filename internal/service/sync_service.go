package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"go-retail-ws/internal/model"
	"go-retail-ws/internal/report"
	"go-retail-ws/internal/repository"
	"go-retail-ws/internal/sheetsync"
	"go-retail-ws/internal/ws"

	"golang.org/x/sync/errgroup"
)

// SheetClient is the slice of the spreadsheet API the pipeline needs.
// *sheetsync.Client implements it; tests substitute a recorder.
type SheetClient interface {
	EnsureSheet(ctx context.Context, title string) error
	ClearSheet(ctx context.Context, title string) error
	UpdateRange(ctx context.Context, rangeA1 string, values [][]interface{}) error
	AppendRow(ctx context.Context, title string, row []interface{}) error
	FormatHeader(ctx context.Context, title string) error
}

// SyncResult reports what a sync run wrote.
type SyncResult struct {
	Year        int       `json:"year"`
	RowsWritten int       `json:"rows_written"`
	RowsFailed  int       `json:"rows_failed"`
	SyncedAt    time.Time `json:"synced_at"`
}

type SyncService interface {
	SyncYear(ctx context.Context, year int) (*SyncResult, error)
}

type syncService struct {
	purchaseRepo repository.PurchaseRepository
	saleRepo     repository.SaleRepository
	settingsRepo repository.SettingsRepository
	sheets       SheetClient
	wsHub        *ws.Hub
}

func NewSyncService(
	purRepo repository.PurchaseRepository,
	sRepo repository.SaleRepository,
	setRepo repository.SettingsRepository,
	sheets SheetClient,
	hub *ws.Hub,
) SyncService {
	return &syncService{
		purchaseRepo: purRepo,
		saleRepo:     sRepo,
		settingsRepo: setRepo,
		sheets:       sheets,
		wsHub:        hub,
	}
}

// SyncYear runs the five-phase pipeline against the "<year>" tab, strictly in
// order: ensure tab, clear it, append transaction rows one at a time, write
// the summary tables at offsets computed from the written row count, then
// touch the settings timestamp. Per-row failures are logged and skipped;
// there is no retry and no rollback. Repeating a sync with unchanged data
// yields an identical row set because phase 2 clears before phase 3 writes.
func (s *syncService) SyncYear(ctx context.Context, year int) (*SyncResult, error) {
	if s.sheets == nil {
		return nil, errors.New("spreadsheet sync is not configured")
	}

	start := time.Date(year, 1, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(year, 12, 31, 23, 59, 59, 0, time.Local)

	var (
		purchases []model.PurchaseEntry
		sales     []model.SaleEntry
	)
	var g errgroup.Group
	g.Go(func() error {
		var err error
		purchases, err = s.purchaseRepo.FindByDateRange(start, end)
		return err
	})
	g.Go(func() error {
		var err error
		sales, err = s.saleRepo.FindByDateRange(start, end)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load transactions for %d: %w", year, err)
	}

	rows := sheetsync.BuildLedgerRows(purchases, sales)
	title := strconv.Itoa(year)

	// Phase 1: ensure the tab exists (idempotent create)
	if err := s.sheets.EnsureSheet(ctx, title); err != nil {
		return nil, fmt.Errorf("failed to ensure sheet %s: %w", title, err)
	}

	// Phase 2: clear stale rows so repeated syncs don't accumulate
	if err := s.sheets.ClearSheet(ctx, title); err != nil {
		return nil, fmt.Errorf("failed to clear sheet %s: %w", title, err)
	}

	if err := s.sheets.UpdateRange(ctx, rangeAt(title, "A", 1), [][]interface{}{sheetsync.LedgerHeader}); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	if err := s.sheets.FormatHeader(ctx, title); err != nil {
		log.Printf("sync: failed to format header for %s: %v", title, err)
	}

	// Phase 3: transaction rows, one at a time in chronological order.
	// Best effort: a failed row is logged and skipped.
	written, failed := 0, 0
	for i, row := range rows {
		if err := s.sheets.AppendRow(ctx, title, row.Values(i+1)); err != nil {
			log.Printf("sync: failed to append row %d of %s: %v", i+1, title, err)
			failed++
			continue
		}
		written++
	}

	// Phase 4: summary tables at offsets derived from the written row count
	if err := s.writeSummaries(ctx, title, written, purchases, sales, rows); err != nil {
		return nil, err
	}

	// The cross-year "Tổng hợp" tab is rewritten on every sync with
	// precomputed totals (plain numbers, no formulas).
	if err := s.writeSummaryTab(ctx, year, purchases, sales); err != nil {
		return nil, err
	}

	// Phase 5: timestamp. Failure here does not undo the sync.
	syncedAt := time.Now()
	if err := s.settingsRepo.TouchLastSynced(syncedAt); err != nil {
		log.Printf("sync: failed to update last-synced timestamp: %v", err)
	}

	result := &SyncResult{
		Year:        year,
		RowsWritten: written,
		RowsFailed:  failed,
		SyncedAt:    syncedAt,
	}

	go s.wsHub.PublishEvent("sync_completed", map[string]interface{}{
		"year":         year,
		"rows_written": written,
		"rows_failed":  failed,
	})

	return result, nil
}

func (s *syncService) writeSummaries(
	ctx context.Context,
	title string,
	written int,
	purchases []model.PurchaseEntry,
	sales []model.SaleEntry,
	rows []sheetsync.LedgerRow,
) error {
	top := report.TopProducts(sales, 10, report.ByQuantity)
	perf := report.PerformanceRows(purchases, sales)
	offsets := sheetsync.ComputeOffsets(written, len(top), len(perf))

	if err := s.sheets.UpdateRange(ctx, rangeAt(title, "A", offsets.TopHeaderRow), sheetsync.TopProductsBlock(top)); err != nil {
		return fmt.Errorf("failed to write top products: %w", err)
	}
	if err := s.sheets.UpdateRange(ctx, rangeAt(title, sheetsync.TypeStatsColumn, offsets.TypeStatsRow), sheetsync.TypeStatsBlock(rows)); err != nil {
		return fmt.Errorf("failed to write type stats: %w", err)
	}
	if err := s.sheets.UpdateRange(ctx, rangeAt(title, "A", offsets.PerfHeaderRow), sheetsync.PerformanceBlock(perf)); err != nil {
		return fmt.Errorf("failed to write performance table: %w", err)
	}
	if err := s.sheets.UpdateRange(ctx, rangeAt(title, "A", offsets.MonthlyHeaderRow), sheetsync.MonthlyBlock(written)); err != nil {
		return fmt.Errorf("failed to write monthly rollup: %w", err)
	}
	return nil
}

func (s *syncService) writeSummaryTab(ctx context.Context, year int, purchases []model.PurchaseEntry, sales []model.SaleEntry) error {
	if err := s.sheets.EnsureSheet(ctx, sheetsync.SummaryTabName); err != nil {
		return fmt.Errorf("failed to ensure summary tab: %w", err)
	}
	if err := s.sheets.ClearSheet(ctx, sheetsync.SummaryTabName); err != nil {
		return fmt.Errorf("failed to clear summary tab: %w", err)
	}

	months := report.MonthlyTotals(purchases, sales, year)
	values := sheetsync.SummaryTabValues(year, months)
	if err := s.sheets.UpdateRange(ctx, rangeAt(sheetsync.SummaryTabName, "A", 1), values); err != nil {
		return fmt.Errorf("failed to write summary tab: %w", err)
	}
	return nil
}

func rangeAt(title, column string, row int) string {
	return fmt.Sprintf("'%s'!%s%d", title, column, row)
}
