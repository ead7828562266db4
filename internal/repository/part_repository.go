package repository

import (
	"context"
	"time"

	"jobsheet-service/internal/model"
	"jobsheet-service/internal/store"
)

type PartRepository struct {
	db store.Tx
}

func NewPartRepository(db store.Tx) *PartRepository {
	return &PartRepository{db: db}
}

func (r *PartRepository) Create(ctx context.Context, part *model.Part) error {
	part.CreatedAt = time.Now().UTC()
	data, err := encode(part)
	if err != nil {
		return err
	}
	id, err := r.db.Add(ctx, store.CollectionParts, data)
	if err != nil {
		return err
	}
	part.ID = id
	return nil
}

func (r *PartRepository) GetByID(ctx context.Context, id string) (*model.Part, error) {
	doc, err := r.db.Get(ctx, store.CollectionParts, id)
	if err != nil {
		return nil, err
	}
	var part model.Part
	if err := store.Decode(doc.Data, &part); err != nil {
		return nil, err
	}
	part.ID = doc.ID
	return &part, nil
}

func (r *PartRepository) ListBySheet(ctx context.Context, jobSheetID string) ([]model.Part, error) {
	return r.query(ctx, store.Data{fieldJobSheetID: jobSheetID})
}

func (r *PartRepository) ListByJobNumber(ctx context.Context, jobNumber int) ([]model.Part, error) {
	return r.query(ctx, store.Data{fieldJobNumber: jobNumber})
}

func (r *PartRepository) Save(ctx context.Context, part *model.Part) error {
	data, err := encode(part)
	if err != nil {
		return err
	}
	return r.db.Set(ctx, store.CollectionParts, part.ID, data)
}

func (r *PartRepository) Delete(ctx context.Context, id string) error {
	return r.db.Delete(ctx, store.CollectionParts, id)
}

func (r *PartRepository) query(ctx context.Context, where store.Data) ([]model.Part, error) {
	docs, err := r.db.Query(ctx, store.CollectionParts, where)
	if err != nil {
		return nil, err
	}
	return decodeAll(docs, func(p *model.Part, id string) { p.ID = id })
}
