package repository

import (
	"context"
	"time"

	"jobsheet-service/internal/model"
	"jobsheet-service/internal/store"
)

type QuoteRepository struct {
	db store.Tx
}

func NewQuoteRepository(db store.Tx) *QuoteRepository {
	return &QuoteRepository{db: db}
}

func (r *QuoteRepository) WithTx(tx store.Tx) *QuoteRepository {
	return &QuoteRepository{db: tx}
}

// Create keeps a preset CreatedAt so imported quotes retain their age.
func (r *QuoteRepository) Create(ctx context.Context, quote *model.Quote) error {
	now := time.Now().UTC()
	if quote.CreatedAt.IsZero() {
		quote.CreatedAt = now
	}
	quote.UpdatedAt = now

	data, err := encode(quote)
	if err != nil {
		return err
	}
	id, err := r.db.Add(ctx, store.CollectionQuotes, data)
	if err != nil {
		return err
	}
	quote.ID = id
	return nil
}

func (r *QuoteRepository) GetByID(ctx context.Context, id string) (*model.Quote, error) {
	doc, err := r.db.Get(ctx, store.CollectionQuotes, id)
	if err != nil {
		return nil, err
	}
	var quote model.Quote
	if err := store.Decode(doc.Data, &quote); err != nil {
		return nil, err
	}
	quote.ID = doc.ID
	return &quote, nil
}

func (r *QuoteRepository) List(ctx context.Context) ([]model.Quote, error) {
	docs, err := r.db.GetAll(ctx, store.CollectionQuotes)
	if err != nil {
		return nil, err
	}
	return decodeAll(docs, func(q *model.Quote, id string) { q.ID = id })
}

func (r *QuoteRepository) Save(ctx context.Context, quote *model.Quote) error {
	quote.UpdatedAt = time.Now().UTC()
	data, err := encode(quote)
	if err != nil {
		return err
	}
	return r.db.Set(ctx, store.CollectionQuotes, quote.ID, data)
}

func (r *QuoteRepository) UpdateStatus(ctx context.Context, id string, status model.QuoteStatus) error {
	data, err := store.Encode(store.Data{
		fieldStatus:    status,
		fieldUpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return r.db.Update(ctx, store.CollectionQuotes, id, data)
}
