package repository

import (
	"context"
	"time"

	"jobsheet-service/internal/model"
	"jobsheet-service/internal/store"
)

type JobSheetRepository struct {
	db store.Tx
}

func NewJobSheetRepository(db store.Tx) *JobSheetRepository {
	return &JobSheetRepository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *JobSheetRepository) WithTx(tx store.Tx) *JobSheetRepository {
	return &JobSheetRepository{db: tx}
}

func (r *JobSheetRepository) Create(ctx context.Context, sheet *model.JobSheet) error {
	now := time.Now().UTC()
	sheet.CreatedAt = now
	sheet.UpdatedAt = now

	data, err := encode(sheet)
	if err != nil {
		return err
	}
	id, err := r.db.Add(ctx, store.CollectionJobSheets, data)
	if err != nil {
		return err
	}
	sheet.ID = id
	return nil
}

func (r *JobSheetRepository) GetByID(ctx context.Context, id string) (*model.JobSheet, error) {
	doc, err := r.db.Get(ctx, store.CollectionJobSheets, id)
	if err != nil {
		return nil, err
	}
	var sheet model.JobSheet
	if err := store.Decode(doc.Data, &sheet); err != nil {
		return nil, err
	}
	sheet.ID = doc.ID
	return &sheet, nil
}

func (r *JobSheetRepository) List(ctx context.Context) ([]model.JobSheet, error) {
	docs, err := r.db.GetAll(ctx, store.CollectionJobSheets)
	if err != nil {
		return nil, err
	}
	return decodeAll(docs, setJobSheetID)
}

// ListByJobNumber returns every sheet of a job group in load order.
func (r *JobSheetRepository) ListByJobNumber(ctx context.Context, jobNumber int) ([]model.JobSheet, error) {
	docs, err := r.db.Query(ctx, store.CollectionJobSheets, store.Data{fieldJobNumber: jobNumber})
	if err != nil {
		return nil, err
	}
	return decodeAll(docs, setJobSheetID)
}

func (r *JobSheetRepository) Save(ctx context.Context, sheet *model.JobSheet) error {
	sheet.UpdatedAt = time.Now().UTC()
	data, err := encode(sheet)
	if err != nil {
		return err
	}
	return r.db.Set(ctx, store.CollectionJobSheets, sheet.ID, data)
}

func (r *JobSheetRepository) UpdateFields(ctx context.Context, id string, fields store.Data) error {
	partial := store.Data{fieldUpdatedAt: time.Now().UTC()}
	for k, v := range fields {
		partial[k] = v
	}
	encoded, err := store.Encode(partial)
	if err != nil {
		return err
	}
	return r.db.Update(ctx, store.CollectionJobSheets, id, encoded)
}

func (r *JobSheetRepository) Delete(ctx context.Context, id string) error {
	return r.db.Delete(ctx, store.CollectionJobSheets, id)
}

func setJobSheetID(s *model.JobSheet, id string) { s.ID = id }
