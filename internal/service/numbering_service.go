package service

import (
	"context"

	"jobsheet-service/internal/model"
	"jobsheet-service/internal/repository"
	"jobsheet-service/internal/store"
)

// NumberingService hands out job and quote numbers from the counters
// collection. Numbers are reserved inside a transaction together with the
// record that uses them.
type NumberingService struct {
	store    store.Store
	counters *repository.CounterRepository
}

func NewNumberingService(db store.Store, counters *repository.CounterRepository) *NumberingService {
	return &NumberingService{
		store:    db,
		counters: counters,
	}
}

// NextJobNumber reserves the next job number on its own.
func (s *NumberingService) NextJobNumber(ctx context.Context) (int, error) {
	return s.next(ctx, model.CounterJobOrder)
}

// NextQuoteNumber reserves the next quote number on its own.
func (s *NumberingService) NextQuoteNumber(ctx context.Context) (int, error) {
	return s.next(ctx, model.CounterQuote)
}

// PeekNextJobNumber reads the number the next job would get without
// reserving it.
func (s *NumberingService) PeekNextJobNumber(ctx context.Context) (int, error) {
	return s.peek(ctx, model.CounterJobOrder)
}

func (s *NumberingService) PeekNextQuoteNumber(ctx context.Context) (int, error) {
	return s.peek(ctx, model.CounterQuote)
}

// Reserve reads the counter, writes its successor and returns it. It
// issues a write, so callers do their other reads first.
func (s *NumberingService) Reserve(ctx context.Context, tx store.Tx, counter string) (int, error) {
	counters := s.counters.WithTx(tx)

	current, err := counters.Get(ctx, counter)
	if err != nil {
		return 0, err
	}
	next := 1
	if current != nil {
		next = current.Value + 1
	}

	if err := counters.Set(ctx, counter, next); err != nil {
		return 0, err
	}
	return next, nil
}

func (s *NumberingService) next(ctx context.Context, counter string) (int, error) {
	var number int
	err := s.store.RunTransaction(ctx, func(ctx context.Context, tx store.Tx) error {
		n, err := s.Reserve(ctx, tx, counter)
		if err != nil {
			return err
		}
		number = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return number, nil
}

func (s *NumberingService) peek(ctx context.Context, counter string) (int, error) {
	current, err := s.counters.Get(ctx, counter)
	if err != nil {
		return 0, err
	}
	if current == nil {
		return 1, nil
	}
	return current.Value + 1, nil
}
