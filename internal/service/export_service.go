package service

import (
	"errors"
	"fmt"
	"time"

	"go-retail-ws/internal/model"
	"go-retail-ws/internal/repository"
	"go-retail-ws/internal/sheetsync"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"
)

// Export periods.
const (
	ExportMonth = "month"
	ExportYear  = "year"
	ExportAll   = "all"
)

// ExportResult is the downloadable workbook.
type ExportResult struct {
	Filename string
	Data     []byte
}

type ExportService interface {
	Export(period string) (*ExportResult, error)
}

type exportService struct {
	purchaseRepo repository.PurchaseRepository
	saleRepo     repository.SaleRepository
}

func NewExportService(purRepo repository.PurchaseRepository, sRepo repository.SaleRepository) ExportService {
	return &exportService{purchaseRepo: purRepo, saleRepo: sRepo}
}

const exportSheetName = "Giao dịch"

// ExportHeader are the columns of the downloadable workbook.
var ExportHeader = []interface{}{
	"Ngày", "Loại", "Sản phẩm", "Đơn vị", "Số lượng",
	"Đơn giá", "Thành tiền", "Lãi", "Khách/NCC",
}

// Export builds a single-sheet workbook of all transactions in the period,
// merged and sorted by date ascending. No summary tables.
func (s *exportService) Export(period string) (*ExportResult, error) {
	now := time.Now()
	var start time.Time
	switch period {
	case ExportMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case ExportYear:
		start = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	case ExportAll:
		// zero start = whole history
	default:
		return nil, errors.New("invalid period: use month, year or all")
	}

	var (
		purchases []model.PurchaseEntry
		sales     []model.SaleEntry
	)
	var g errgroup.Group
	g.Go(func() error {
		var err error
		if period == ExportAll {
			purchases, err = s.purchaseRepo.FindAll()
		} else {
			purchases, err = s.purchaseRepo.FindByDateRange(start, now)
		}
		return err
	})
	g.Go(func() error {
		var err error
		if period == ExportAll {
			sales, err = s.saleRepo.FindAll()
		} else {
			sales, err = s.saleRepo.FindByDateRange(start, now)
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	rows := sheetsync.BuildLedgerRows(purchases, sales)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(exportSheetName, "A1", &ExportHeader); err != nil {
		return nil, err
	}
	for i, row := range rows {
		values := row.ExportValues()
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(exportSheetName, cell, &values); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to build workbook: %w", err)
	}

	filename := fmt.Sprintf("ban-hang_%s_%s.xlsx", period, now.Format("02-01-2006"))
	return &ExportResult{Filename: filename, Data: buf.Bytes()}, nil
}
