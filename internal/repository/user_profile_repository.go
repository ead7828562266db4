package repository

import (
	"context"
	"time"

	"jobsheet-service/internal/model"
	"jobsheet-service/internal/store"
)

type UserProfileRepository struct {
	db store.Tx
}

func NewUserProfileRepository(db store.Tx) *UserProfileRepository {
	return &UserProfileRepository{db: db}
}

func (r *UserProfileRepository) Get(ctx context.Context, uid string) (*model.UserProfile, error) {
	doc, err := r.db.Get(ctx, store.CollectionUserProfiles, uid)
	if err != nil {
		return nil, err
	}
	var profile model.UserProfile
	if err := store.Decode(doc.Data, &profile); err != nil {
		return nil, err
	}
	profile.UID = doc.ID
	return &profile, nil
}

func (r *UserProfileRepository) Save(ctx context.Context, profile *model.UserProfile) error {
	profile.UpdatedAt = time.Now().UTC()
	data, err := encode(profile)
	if err != nil {
		return err
	}
	return r.db.Set(ctx, store.CollectionUserProfiles, profile.UID, data)
}
