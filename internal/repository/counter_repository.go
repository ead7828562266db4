package repository

import (
	"context"
	"errors"

	"jobsheet-service/internal/model"
	"jobsheet-service/internal/store"
)

type CounterRepository struct {
	db store.Tx
}

func NewCounterRepository(db store.Tx) *CounterRepository {
	return &CounterRepository{db: db}
}

func (r *CounterRepository) WithTx(tx store.Tx) *CounterRepository {
	return &CounterRepository{db: tx}
}

// Get returns the counter, or nil when it has never been written.
func (r *CounterRepository) Get(ctx context.Context, name string) (*model.Counter, error) {
	doc, err := r.db.Get(ctx, store.CollectionCounters, name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var counter model.Counter
	if err := store.Decode(doc.Data, &counter); err != nil {
		return nil, err
	}
	return &counter, nil
}

func (r *CounterRepository) Set(ctx context.Context, name string, value int) error {
	data, err := encode(model.Counter{Value: value})
	if err != nil {
		return err
	}
	return r.db.Set(ctx, store.CollectionCounters, name, data)
}
