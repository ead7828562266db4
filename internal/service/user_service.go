package service

import (
	"context"
	"errors"
	"strings"

	"jobsheet-service/internal/model"
	"jobsheet-service/internal/repository"
	"jobsheet-service/internal/store"
)

type UserService struct {
	profileRepo *repository.UserProfileRepository
}

func NewUserService(profileRepo *repository.UserProfileRepository) *UserService {
	return &UserService{
		profileRepo: profileRepo,
	}
}

type UpdateProfileInput struct {
	DisplayName string
}

// Me returns the stored profile of the viewer, falling back to what the
// token says when nothing has been saved yet.
func (s *UserService) Me(ctx context.Context, viewer model.Principal) (*model.UserProfile, error) {
	profile, err := s.profileRepo.Get(ctx, viewer.UID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &model.UserProfile{
				UID:         viewer.UID,
				DisplayName: viewer.DisplayName,
				Email:       viewer.Email,
			}, nil
		}
		return nil, err
	}
	return profile, nil
}

func (s *UserService) UpdateMe(ctx context.Context, viewer model.Principal, input UpdateProfileInput) (*model.UserProfile, error) {
	if viewer.UID == "" {
		return nil, ErrPermissionDenied
	}
	profile := &model.UserProfile{
		UID:         viewer.UID,
		DisplayName: strings.TrimSpace(input.DisplayName),
		Email:       viewer.Email,
	}
	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
