package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"jobsheet-service/internal/lifecycle"
	"jobsheet-service/internal/model"
	"jobsheet-service/internal/repository"
	"jobsheet-service/internal/store"
	"jobsheet-service/internal/store/storetest"
)

var (
	office     = model.Principal{UID: "office-1", Email: "office@example.com"}
	technician = model.Principal{UID: "tech-1", Email: "sam@example.com", DisplayName: "Sam"}
)

type fixture struct {
	store     store.Store
	sheets    *repository.JobSheetRepository
	companies *repository.CompanyRepository
	counters  *repository.CounterRepository
	documents *repository.DocumentRepository
	parts     *repository.PartRepository
	quotes    *repository.QuoteRepository
	profiles  *repository.UserProfileRepository
	numbering *NumberingService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureOn(storetest.New(t))
}

func newFixtureOn(s store.Store) *fixture {
	counters := repository.NewCounterRepository(s)
	return &fixture{
		store:     s,
		sheets:    repository.NewJobSheetRepository(s),
		companies: repository.NewCompanyRepository(s),
		counters:  counters,
		documents: repository.NewDocumentRepository(s),
		parts:     repository.NewPartRepository(s),
		quotes:    repository.NewQuoteRepository(s),
		profiles:  repository.NewUserProfileRepository(s),
		numbering: NewNumberingService(s, counters),
	}
}

func (f *fixture) jobSheetService() *JobSheetService {
	return f.jobSheetServiceOn(f.store)
}

// jobSheetServiceOn runs the service's transactions on db while the
// fixture repositories keep reading the real store.
func (f *fixture) jobSheetServiceOn(db store.Store) *JobSheetService {
	svc := NewJobSheetService(db, f.sheets, f.companies, f.numbering, lifecycle.NewPolicy())
	svc.now = func() time.Time { return time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC) }
	return svc
}

// seedGroup stores count sheets sharing jobNumber and returns them in
// load order.
func (f *fixture) seedGroup(t *testing.T, jobNumber, count int, status model.JobStatus) []model.JobSheet {
	t.Helper()
	out := make([]model.JobSheet, 0, count)
	for i := 0; i < count; i++ {
		empty := ""
		sheet := &model.JobSheet{
			JobNumber:      jobNumber,
			Date:           "2024-06-01",
			OrderType:      model.OrderTypeOrder,
			CompanyName:    "Acme Ltd",
			TechnicianName: "Sam",
			Status:         status,
			InvoiceNumber:  &empty,
			Tasks:          []model.Task{},
			Parts:          []model.PartLine{},
		}
		require.NoError(t, f.sheets.Create(context.Background(), sheet))
		out = append(out, *sheet)
	}
	return out
}

func (f *fixture) reload(t *testing.T, id string) *model.JobSheet {
	t.Helper()
	sheet, err := f.sheets.GetByID(context.Background(), id)
	require.NoError(t, err)
	return sheet
}

var errWriteFailed = errors.New("write failed")

// failingStore lets a fixed number of Update calls through inside
// transactions and fails the rest.
type failingStore struct {
	store.Store
	allowed int
}

func (f *failingStore) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx store.Tx) error) error {
	return f.Store.RunTransaction(ctx, func(ctx context.Context, tx store.Tx) error {
		return fn(ctx, &failingTx{Tx: tx, allowed: &f.allowed})
	})
}

type failingTx struct {
	store.Tx
	allowed *int
}

func (t *failingTx) Update(ctx context.Context, collection, id string, partial store.Data) error {
	if *t.allowed <= 0 {
		return errWriteFailed
	}
	*t.allowed--
	return t.Tx.Update(ctx, collection, id, partial)
}

func boolPtr(v bool) *bool {
	return &v
}

func strPtr(v string) *string {
	return &v
}
