package service

import (
	"context"
	"strings"

	"jobsheet-service/internal/model"
	"jobsheet-service/internal/repository"
	"jobsheet-service/internal/viewmodel"
)

// PartService manages parts kept outside the job sheet record. Quantity
// and price are sanitised before they are stored.
type PartService struct {
	sheetRepo *repository.JobSheetRepository
	partRepo  *repository.PartRepository
}

func NewPartService(sheetRepo *repository.JobSheetRepository, partRepo *repository.PartRepository) *PartService {
	return &PartService{
		sheetRepo: sheetRepo,
		partRepo:  partRepo,
	}
}

type PartListInput struct {
	Scope viewmodel.Scope
	Sort  viewmodel.SortState
}

func (s *PartService) List(ctx context.Context, sheetID string, input PartListInput) (*viewmodel.PartsView, error) {
	sheet, group, err := sheetContext(ctx, s.sheetRepo, sheetID)
	if err != nil {
		return nil, err
	}

	var parts []model.Part
	if input.Scope == viewmodel.ScopeJob {
		parts, err = s.partRepo.ListByJobNumber(ctx, sheet.JobNumber)
	} else {
		parts, err = s.partRepo.ListBySheet(ctx, sheet.ID)
	}
	if err != nil {
		return nil, err
	}

	parts = viewmodel.SortBy(parts, input.Sort.Field, input.Sort.Direction, viewmodel.PartValue)
	view := viewmodel.NewPartsView(input.Scope, parts, group.Sheets)
	return &view, nil
}

func (s *PartService) Create(ctx context.Context, sheetID string, input PartInput) (*model.Part, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, invalidInput("part description is required")
	}

	sheet, err := s.sheetRepo.GetByID(ctx, sheetID)
	if err != nil {
		return nil, notFound(err)
	}

	part := &model.Part{
		JobSheetID:  sheet.ID,
		JobNumber:   sheet.JobNumber,
		Quantity:    model.SanitizeQuantity(input.Quantity),
		Description: description,
		Price:       model.SanitizePrice(input.Price),
	}
	if err := s.partRepo.Create(ctx, part); err != nil {
		return nil, err
	}
	return part, nil
}

func (s *PartService) Update(ctx context.Context, id string, input PartInput) (*model.Part, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, invalidInput("part description is required")
	}

	part, err := s.partRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}

	part.Quantity = model.SanitizeQuantity(input.Quantity)
	part.Description = description
	part.Price = model.SanitizePrice(input.Price)

	if err := s.partRepo.Save(ctx, part); err != nil {
		return nil, err
	}
	return part, nil
}

func (s *PartService) Delete(ctx context.Context, id string) error {
	if _, err := s.partRepo.GetByID(ctx, id); err != nil {
		return notFound(err)
	}
	return s.partRepo.Delete(ctx, id)
}
