package repository

import (
	"context"
	"time"

	"jobsheet-service/internal/model"
	"jobsheet-service/internal/store"
)

type DocumentRepository struct {
	db store.Tx
}

func NewDocumentRepository(db store.Tx) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Create(ctx context.Context, document *model.Document) error {
	document.CreatedAt = time.Now().UTC()
	data, err := encode(document)
	if err != nil {
		return err
	}
	id, err := r.db.Add(ctx, store.CollectionDocuments, data)
	if err != nil {
		return err
	}
	document.ID = id
	return nil
}

func (r *DocumentRepository) GetByID(ctx context.Context, id string) (*model.Document, error) {
	doc, err := r.db.Get(ctx, store.CollectionDocuments, id)
	if err != nil {
		return nil, err
	}
	var document model.Document
	if err := store.Decode(doc.Data, &document); err != nil {
		return nil, err
	}
	document.ID = doc.ID
	return &document, nil
}

func (r *DocumentRepository) ListBySheet(ctx context.Context, jobSheetID string) ([]model.Document, error) {
	return r.query(ctx, store.Data{fieldJobSheetID: jobSheetID})
}

func (r *DocumentRepository) ListByJobNumber(ctx context.Context, jobNumber int) ([]model.Document, error) {
	return r.query(ctx, store.Data{fieldJobNumber: jobNumber})
}

func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	return r.db.Delete(ctx, store.CollectionDocuments, id)
}

func (r *DocumentRepository) query(ctx context.Context, where store.Data) ([]model.Document, error) {
	docs, err := r.db.Query(ctx, store.CollectionDocuments, where)
	if err != nil {
		return nil, err
	}
	return decodeAll(docs, func(d *model.Document, id string) { d.ID = id })
}
