package service

import (
	"context"
	"strings"

	"jobsheet-service/internal/model"
	"jobsheet-service/internal/repository"
	"jobsheet-service/internal/viewmodel"
)

// DocumentService keeps the metadata of files attached to job sheets.
// Uploading the bytes is left to the client's blob storage.
type DocumentService struct {
	sheetRepo    *repository.JobSheetRepository
	documentRepo *repository.DocumentRepository
}

func NewDocumentService(sheetRepo *repository.JobSheetRepository, documentRepo *repository.DocumentRepository) *DocumentService {
	return &DocumentService{
		sheetRepo:    sheetRepo,
		documentRepo: documentRepo,
	}
}

type DocumentInput struct {
	Name        string
	URL         string
	ContentType string
	Size        int64
}

func (s *DocumentService) List(ctx context.Context, sheetID string, scope viewmodel.Scope) (*viewmodel.DocumentsView, error) {
	sheet, group, err := sheetContext(ctx, s.sheetRepo, sheetID)
	if err != nil {
		return nil, err
	}

	var documents []model.Document
	if scope == viewmodel.ScopeJob {
		documents, err = s.documentRepo.ListByJobNumber(ctx, sheet.JobNumber)
	} else {
		documents, err = s.documentRepo.ListBySheet(ctx, sheet.ID)
	}
	if err != nil {
		return nil, err
	}

	view := viewmodel.NewDocumentsView(scope, documents, group.Sheets)
	return &view, nil
}

func (s *DocumentService) Create(ctx context.Context, viewer model.Principal, sheetID string, input DocumentInput) (*model.Document, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, invalidInput("document name is required")
	}
	if strings.TrimSpace(input.URL) == "" {
		return nil, invalidInput("document url is required")
	}
	if input.Size < 0 {
		return nil, invalidInput("document size must not be negative")
	}

	sheet, err := s.sheetRepo.GetByID(ctx, sheetID)
	if err != nil {
		return nil, notFound(err)
	}

	uploadedBy := viewer.DisplayName
	if uploadedBy == "" {
		uploadedBy = viewer.Email
	}
	document := &model.Document{
		JobSheetID:  sheet.ID,
		JobNumber:   sheet.JobNumber,
		Name:        name,
		URL:         strings.TrimSpace(input.URL),
		ContentType: input.ContentType,
		Size:        input.Size,
		UploadedBy:  uploadedBy,
	}
	if err := s.documentRepo.Create(ctx, document); err != nil {
		return nil, err
	}
	return document, nil
}

func (s *DocumentService) Delete(ctx context.Context, id string) error {
	if _, err := s.documentRepo.GetByID(ctx, id); err != nil {
		return notFound(err)
	}
	return s.documentRepo.Delete(ctx, id)
}
