package repository

import (
	"context"
	"time"

	"jobsheet-service/internal/model"
	"jobsheet-service/internal/store"
)

type CompanyRepository struct {
	db store.Tx
}

func NewCompanyRepository(db store.Tx) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) WithTx(tx store.Tx) *CompanyRepository {
	return &CompanyRepository{db: tx}
}

func (r *CompanyRepository) Create(ctx context.Context, company *model.CompanyProfile) error {
	now := time.Now().UTC()
	company.CreatedAt = now
	company.UpdatedAt = now
	if company.Contacts == nil {
		company.Contacts = []model.Contact{}
	}

	data, err := encode(company)
	if err != nil {
		return err
	}
	id, err := r.db.Add(ctx, store.CollectionCompanyProfiles, data)
	if err != nil {
		return err
	}
	company.ID = id
	return nil
}

func (r *CompanyRepository) GetByID(ctx context.Context, id string) (*model.CompanyProfile, error) {
	doc, err := r.db.Get(ctx, store.CollectionCompanyProfiles, id)
	if err != nil {
		return nil, err
	}
	var company model.CompanyProfile
	if err := store.Decode(doc.Data, &company); err != nil {
		return nil, err
	}
	company.ID = doc.ID
	return &company, nil
}

func (r *CompanyRepository) List(ctx context.Context) ([]model.CompanyProfile, error) {
	docs, err := r.db.GetAll(ctx, store.CollectionCompanyProfiles)
	if err != nil {
		return nil, err
	}
	return decodeAll(docs, func(c *model.CompanyProfile, id string) { c.ID = id })
}

func (r *CompanyRepository) Save(ctx context.Context, company *model.CompanyProfile) error {
	company.UpdatedAt = time.Now().UTC()
	data, err := encode(company)
	if err != nil {
		return err
	}
	return r.db.Set(ctx, store.CollectionCompanyProfiles, company.ID, data)
}
