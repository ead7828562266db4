package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"

	"jobsheet-service/internal/model"
	"jobsheet-service/internal/repository"
	"jobsheet-service/internal/store"
	"jobsheet-service/internal/viewmodel"
)

type QuoteService struct {
	store       store.Store
	quoteRepo   *repository.QuoteRepository
	companyRepo *repository.CompanyRepository
	numbering   *NumberingService
	validity    time.Duration
	now         func() time.Time
}

func NewQuoteService(
	db store.Store,
	quoteRepo *repository.QuoteRepository,
	companyRepo *repository.CompanyRepository,
	numbering *NumberingService,
	validity time.Duration,
) *QuoteService {
	if validity <= 0 {
		validity = model.DefaultQuoteValidity
	}
	return &QuoteService{
		store:       db,
		quoteRepo:   quoteRepo,
		companyRepo: companyRepo,
		numbering:   numbering,
		validity:    validity,
		now:         time.Now,
	}
}

type QuoteItemInput struct {
	Description string
	Quantity    interface{}
	Price       interface{}
}

type QuoteInput struct {
	CompanyName      string
	CompanyAddress   string
	CompanyTelephone string
	Contact          model.Contact
	Items            []QuoteItemInput
	DocumentType     model.DocumentType
	Notes            string
	// Status is only honoured on update; new quotes start Valid.
	Status model.QuoteStatus
}

type CreateQuoteInput struct {
	QuoteInput
	CreateCompanyProfile *bool
}

// Create reserves the next quote number and writes the quote in the same
// transaction.
func (s *QuoteService) Create(ctx context.Context, input CreateQuoteInput) (*viewmodel.QuoteView, error) {
	quote := &model.Quote{Status: model.QuoteStatusValid}
	if err := applyQuote(quote, input.QuoteInput); err != nil {
		return nil, err
	}

	err := s.store.RunTransaction(ctx, func(ctx context.Context, tx store.Tx) error {
		companies := s.companyRepo.WithTx(tx)
		profile, err := planCompany(ctx, companies, companySnapshot(quote.CompanyName, quote.CompanyAddress, quote.CompanyTelephone), input.CreateCompanyProfile)
		if err != nil {
			return err
		}

		number, err := s.numbering.Reserve(ctx, tx, model.CounterQuote)
		if err != nil {
			return err
		}
		quote.QuoteNumber = number

		if profile != nil {
			if err := companies.Create(ctx, profile); err != nil {
				return err
			}
		}
		return s.quoteRepo.WithTx(tx).Create(ctx, quote)
	})
	if err != nil {
		return nil, err
	}

	view := viewmodel.NewQuoteView(*quote)
	return &view, nil
}

func (s *QuoteService) PeekNextQuoteNumber(ctx context.Context) (int, error) {
	return s.numbering.PeekNextQuoteNumber(ctx)
}

func (s *QuoteService) Get(ctx context.Context, id string) (*viewmodel.QuoteView, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if quote.ShouldExpire(s.now(), s.validity) {
		if err := s.quoteRepo.UpdateStatus(ctx, quote.ID, model.QuoteStatusExpired); err != nil {
			return nil, fmt.Errorf("expire quote %s: %w", quote.ID, err)
		}
		quote.Status = model.QuoteStatusExpired
	}
	view := viewmodel.NewQuoteView(*quote)
	return &view, nil
}

// List loads every quote, expiring stale ones on the way.
func (s *QuoteService) List(ctx context.Context, sortState viewmodel.SortState) ([]viewmodel.QuoteView, error) {
	quotes, err := s.quoteRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.expire(ctx, quotes); err != nil {
		return nil, err
	}

	if sortState.Field == "" {
		sortState = viewmodel.SortState{Field: "quoteNumber", Direction: viewmodel.Descending}
	}
	quotes = viewmodel.SortBy(quotes, sortState.Field, sortState.Direction, viewmodel.QuoteValue)

	views := make([]viewmodel.QuoteView, 0, len(quotes))
	for _, quote := range quotes {
		views = append(views, viewmodel.NewQuoteView(quote))
	}
	return views, nil
}

func (s *QuoteService) Update(ctx context.Context, id string, input QuoteInput) (*viewmodel.QuoteView, error) {
	if input.Status != "" && !input.Status.Valid() {
		return nil, invalidInput("unknown quote status")
	}

	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if err := applyQuote(quote, input); err != nil {
		return nil, err
	}
	if input.Status != "" {
		quote.Status = input.Status
	}

	if err := s.quoteRepo.Save(ctx, quote); err != nil {
		return nil, err
	}
	view := viewmodel.NewQuoteView(*quote)
	return &view, nil
}

// ExpireStale flips every Valid quote past its validity to Expired. A
// failed write does not stop the sweep; failures are returned together.
func (s *QuoteService) ExpireStale(ctx context.Context) (int, error) {
	quotes, err := s.quoteRepo.List(ctx)
	if err != nil {
		return 0, err
	}
	return s.expire(ctx, quotes)
}

// expire persists the expiry of stale quotes and updates them in place.
func (s *QuoteService) expire(ctx context.Context, quotes []model.Quote) (int, error) {
	now := s.now()

	var (
		result  *multierror.Error
		expired int
	)
	for i := range quotes {
		if !quotes[i].ShouldExpire(now, s.validity) {
			continue
		}
		if err := s.quoteRepo.UpdateStatus(ctx, quotes[i].ID, model.QuoteStatusExpired); err != nil {
			result = multierror.Append(result, fmt.Errorf("expire quote %s: %w", quotes[i].ID, err))
			continue
		}
		quotes[i].Status = model.QuoteStatusExpired
		expired++
	}
	return expired, result.ErrorOrNil()
}

func applyQuote(quote *model.Quote, input QuoteInput) error {
	name := strings.TrimSpace(input.CompanyName)
	if name == "" {
		return invalidInput("company name is required")
	}
	documentType := input.DocumentType
	if documentType == "" {
		documentType = model.DocumentTypeQuotation
	}
	if !documentType.Valid() {
		return invalidInput("unknown document type")
	}

	quote.CompanyName = name
	quote.CompanyAddress = input.CompanyAddress
	quote.CompanyTelephone = input.CompanyTelephone
	quote.Contact = input.Contact
	quote.DocumentType = documentType
	quote.Notes = input.Notes

	quote.Items = make([]model.QuoteItem, 0, len(input.Items))
	for _, item := range input.Items {
		quote.Items = append(quote.Items, model.QuoteItem{
			Description: item.Description,
			Quantity:    model.SanitizeQuantity(item.Quantity),
			Price:       model.SanitizePrice(item.Price),
		})
	}
	return nil
}
