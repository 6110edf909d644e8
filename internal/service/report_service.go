package service

import (
	"errors"
	"log"
	"time"

	"go-retail-ws/internal/model"
	"go-retail-ws/internal/report"
	"go-retail-ws/internal/repository"

	"golang.org/x/sync/errgroup"
)

// Report periods accepted by GetPeriodReport.
const (
	PeriodDay   = "day"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

const (
	dashboardTopN = 3
	reportTopN    = 10
)

// DashboardStats is the overview widget payload.
type DashboardStats struct {
	ProductCount  int64                 `json:"product_count"`
	LowStockCount int                   `json:"low_stock_count"`
	MonthTotals   report.Totals         `json:"month_totals"`
	TopProducts   []report.ProductTotal `json:"top_products"`
}

// PeriodReport is the full report payload for one period.
type PeriodReport struct {
	Period      string                  `json:"period"`
	Totals      report.Totals           `json:"totals"`
	TopProducts []report.ProductTotal   `json:"top_products"`
	Recovery    []report.RecoveryEntry  `json:"recovery"`
	Breakdown   []report.BreakdownSlice `json:"breakdown"`

	// Year period only
	Months     *[12]report.Totals `json:"months,omitempty"`
	GrowthRate *float64           `json:"growth_rate,omitempty"`
}

type ReportService interface {
	GetDashboardStats() (*DashboardStats, error)
	GetPeriodReport(period string) (*PeriodReport, error)
}

type reportService struct {
	productRepo  repository.ProductRepository
	purchaseRepo repository.PurchaseRepository
	saleRepo     repository.SaleRepository
}

func NewReportService(
	pRepo repository.ProductRepository,
	purRepo repository.PurchaseRepository,
	sRepo repository.SaleRepository,
) ReportService {
	return &reportService{
		productRepo:  pRepo,
		purchaseRepo: purRepo,
		saleRepo:     sRepo,
	}
}

// GetDashboardStats fans out the independent reads, waits for all, then
// folds. Read failures are logged and degrade to empty data so the
// dashboard renders "no data" instead of erroring.
func (s *reportService) GetDashboardStats() (*DashboardStats, error) {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var (
		products       []model.Product
		monthPurchases []model.PurchaseEntry
		monthSales     []model.SaleEntry
		allPurchases   []model.PurchaseEntry
		allSales       []model.SaleEntry
	)

	var g errgroup.Group
	g.Go(func() error {
		products = s.fetchProducts()
		return nil
	})
	g.Go(func() error {
		monthPurchases = s.fetchPurchases(monthStart, now)
		return nil
	})
	g.Go(func() error {
		monthSales = s.fetchSales(monthStart, now)
		return nil
	})
	g.Go(func() error {
		allPurchases = s.fetchAllPurchases()
		return nil
	})
	g.Go(func() error {
		allSales = s.fetchAllSales()
		return nil
	})
	_ = g.Wait()

	// Tồn kho dihitung dari full history, bukan window bulan ini
	levels := report.InventoryLevels(allPurchases, allSales)

	lowStock := 0
	for _, p := range products {
		if levels[p.ID] <= p.AlertThreshold {
			lowStock++
		}
	}

	return &DashboardStats{
		ProductCount:  int64(len(products)),
		LowStockCount: lowStock,
		MonthTotals:   report.PeriodTotals(monthPurchases, monthSales),
		TopProducts:   report.TopProducts(monthSales, dashboardTopN, report.ByQuantity),
	}, nil
}

func (s *reportService) GetPeriodReport(period string) (*PeriodReport, error) {
	now := time.Now()
	var start time.Time
	switch period {
	case PeriodDay:
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case PeriodMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case PeriodYear:
		start = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	default:
		return nil, errors.New("invalid period: use day, month or year")
	}

	var (
		purchases    []model.PurchaseEntry
		sales        []model.SaleEntry
		allPurchases []model.PurchaseEntry
		allSales     []model.SaleEntry
	)

	var g errgroup.Group
	g.Go(func() error {
		purchases = s.fetchPurchases(start, now)
		return nil
	})
	g.Go(func() error {
		sales = s.fetchSales(start, now)
		return nil
	})
	g.Go(func() error {
		allPurchases = s.fetchAllPurchases()
		return nil
	})
	g.Go(func() error {
		allSales = s.fetchAllSales()
		return nil
	})
	_ = g.Wait()

	result := &PeriodReport{
		Period:      period,
		Totals:      report.PeriodTotals(purchases, sales),
		TopProducts: report.TopProducts(sales, reportTopN, report.ByRevenue),
		// Hồi vốn selalu dari full history
		Recovery:  report.RecoveryRanking(allPurchases, allSales),
		Breakdown: report.CostBreakdown(purchases),
	}

	if period == PeriodYear {
		months := report.MonthlyTotals(purchases, sales, now.Year())
		result.Months = &months

		priorStart := time.Date(now.Year()-1, 1, 1, 0, 0, 0, 0, now.Location())
		priorEnd := time.Date(now.Year()-1, 12, 31, 23, 59, 59, 0, now.Location())
		priorTotals := report.PeriodTotals(
			s.fetchPurchases(priorStart, priorEnd),
			s.fetchSales(priorStart, priorEnd),
		)
		growth := report.GrowthRate(result.Totals.Profit, priorTotals.Profit)
		result.GrowthRate = &growth
	}

	return result, nil
}

// Fetch helpers: backend errors are logged and turned into empty defaults so
// downstream aggregation degrades gracefully.

func (s *reportService) fetchProducts() []model.Product {
	products, err := s.productRepo.FindAllActive()
	if err != nil {
		log.Printf("report: failed to fetch products: %v", err)
		return nil
	}
	return products
}

func (s *reportService) fetchPurchases(start, end time.Time) []model.PurchaseEntry {
	entries, err := s.purchaseRepo.FindByDateRange(start, end)
	if err != nil {
		log.Printf("report: failed to fetch purchases: %v", err)
		return nil
	}
	return entries
}

func (s *reportService) fetchSales(start, end time.Time) []model.SaleEntry {
	entries, err := s.saleRepo.FindByDateRange(start, end)
	if err != nil {
		log.Printf("report: failed to fetch sales: %v", err)
		return nil
	}
	return entries
}

func (s *reportService) fetchAllPurchases() []model.PurchaseEntry {
	entries, err := s.purchaseRepo.FindAll()
	if err != nil {
		log.Printf("report: failed to fetch purchases: %v", err)
		return nil
	}
	return entries
}

func (s *reportService) fetchAllSales() []model.SaleEntry {
	entries, err := s.saleRepo.FindAll()
	if err != nil {
		log.Printf("report: failed to fetch sales: %v", err)
		return nil
	}
	return entries
}
