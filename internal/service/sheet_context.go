package service

import (
	"context"

	"jobsheet-service/internal/jobgroup"
	"jobsheet-service/internal/model"
	"jobsheet-service/internal/repository"
)

// sheetContext reads a sheet and the job group it belongs to, members in
// load order.
func sheetContext(ctx context.Context, sheets *repository.JobSheetRepository, sheetID string) (*model.JobSheet, jobgroup.Group, error) {
	sheet, err := sheets.GetByID(ctx, sheetID)
	if err != nil {
		return nil, jobgroup.Group{}, notFound(err)
	}
	members, err := sheets.ListByJobNumber(ctx, sheet.JobNumber)
	if err != nil {
		return nil, jobgroup.Group{}, err
	}
	return sheet, jobgroup.NewIndex(members).Group(sheet.JobNumber), nil
}
