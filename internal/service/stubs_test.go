package service

import (
	"context"
	"fmt"
	"time"

	"go-retail-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repo stubs for service tests.

type stubPurchaseRepo struct {
	entries []model.PurchaseEntry
	err     error
}

func (r *stubPurchaseRepo) Create(tx *gorm.DB, entry *model.PurchaseEntry) error { return r.err }
func (r *stubPurchaseRepo) FindAll() ([]model.PurchaseEntry, error)              { return r.entries, r.err }
func (r *stubPurchaseRepo) FindByDateRange(start, end time.Time) ([]model.PurchaseEntry, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []model.PurchaseEntry
	for _, e := range r.entries {
		if !e.Date.Before(start) && !e.Date.After(end) {
			out = append(out, e)
		}
	}
	return out, nil
}
func (r *stubPurchaseRepo) FindByID(id uuid.UUID) (*model.PurchaseEntry, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *stubPurchaseRepo) Count() (int64, error) { return int64(len(r.entries)), r.err }

type stubSaleRepo struct {
	entries []model.SaleEntry
	err     error
}

func (r *stubSaleRepo) Create(tx *gorm.DB, entry *model.SaleEntry) error { return r.err }
func (r *stubSaleRepo) FindAll() ([]model.SaleEntry, error)              { return r.entries, r.err }
func (r *stubSaleRepo) FindByDateRange(start, end time.Time) ([]model.SaleEntry, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []model.SaleEntry
	for _, e := range r.entries {
		if !e.Date.Before(start) && !e.Date.After(end) {
			out = append(out, e)
		}
	}
	return out, nil
}
func (r *stubSaleRepo) FindByID(id uuid.UUID) (*model.SaleEntry, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *stubSaleRepo) Count() (int64, error) { return int64(len(r.entries)), r.err }

type stubProductRepo struct {
	products []model.Product
	err      error
}

func (r *stubProductRepo) Create(product *model.Product) error          { return r.err }
func (r *stubProductRepo) FindAllActive() ([]model.Product, error)      { return r.products, r.err }
func (r *stubProductRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	for i := range r.products {
		if r.products[i].ID == id {
			return &r.products[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (r *stubProductRepo) Update(product *model.Product) error               { return r.err }
func (r *stubProductRepo) Deactivate(id uuid.UUID, updatedBy string) error   { return r.err }
func (r *stubProductRepo) UpdateLastPurchasePrice(tx *gorm.DB, id uuid.UUID, price int64, updatedBy string) error {
	return r.err
}
func (r *stubProductRepo) CountActive() (int64, error) { return int64(len(r.products)), r.err }

type stubSettingsRepo struct {
	settings    model.AppSettings
	lastSynced  *time.Time
	touchErr    error
	touchCalled bool
}

func (r *stubSettingsRepo) Get() (*model.AppSettings, error) {
	s := r.settings
	return &s, nil
}
func (r *stubSettingsRepo) Update(settings *model.AppSettings) error { return nil }
func (r *stubSettingsRepo) TouchLastSynced(at time.Time) error {
	r.touchCalled = true
	if r.touchErr != nil {
		return r.touchErr
	}
	r.lastSynced = &at
	return nil
}

// fakeSheetClient records every call the pipeline makes, in order.
type fakeSheetClient struct {
	calls      []string
	ranges     map[string][][]interface{}
	appended   map[string][][]interface{}
	ensureErr  error
	clearErr   error
	updateErr  error
	appendErrs map[int]error // 1-based row seq -> error
	appendSeq  int
}

func newFakeSheetClient() *fakeSheetClient {
	return &fakeSheetClient{
		ranges:     make(map[string][][]interface{}),
		appended:   make(map[string][][]interface{}),
		appendErrs: make(map[int]error),
	}
}

func (f *fakeSheetClient) EnsureSheet(ctx context.Context, title string) error {
	f.calls = append(f.calls, "ensure:"+title)
	return f.ensureErr
}

func (f *fakeSheetClient) ClearSheet(ctx context.Context, title string) error {
	f.calls = append(f.calls, "clear:"+title)
	f.appended[title] = nil
	return f.clearErr
}

func (f *fakeSheetClient) UpdateRange(ctx context.Context, rangeA1 string, values [][]interface{}) error {
	f.calls = append(f.calls, "update:"+rangeA1)
	if f.updateErr != nil {
		return f.updateErr
	}
	f.ranges[rangeA1] = values
	return nil
}

func (f *fakeSheetClient) AppendRow(ctx context.Context, title string, row []interface{}) error {
	f.appendSeq++
	f.calls = append(f.calls, fmt.Sprintf("append:%s:%d", title, f.appendSeq))
	if err, ok := f.appendErrs[f.appendSeq]; ok {
		return err
	}
	f.appended[title] = append(f.appended[title], row)
	return nil
}

func (f *fakeSheetClient) FormatHeader(ctx context.Context, title string) error {
	f.calls = append(f.calls, "format:"+title)
	return nil
}
