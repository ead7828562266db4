package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobsheet-service/internal/model"
	"jobsheet-service/internal/viewmodel"
)

func TestPartsAreSanitisedAndBucketed(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewPartService(f.sheets, f.parts)
	group := f.seedGroup(t, 5, 2, model.JobStatusOpen)

	first, err := svc.Create(ctx, group[1].ID, PartInput{Quantity: "abc", Description: "Fan", Price: "-3"})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Quantity)
	assert.Equal(t, 0.0, first.Price)
	assert.Equal(t, 5, first.JobNumber)

	_, err = svc.Create(ctx, group[0].ID, PartInput{Quantity: 2, Description: "PSU", Price: 250})
	require.NoError(t, err)

	sheetView, err := svc.List(ctx, group[0].ID, PartListInput{Scope: viewmodel.ScopeSheet})
	require.NoError(t, err)
	require.Len(t, sheetView.Buckets, 1)
	assert.Equal(t, 500.0, sheetView.Total)

	jobView, err := svc.List(ctx, group[1].ID, PartListInput{Scope: viewmodel.ScopeJob})
	require.NoError(t, err)
	require.Len(t, jobView.Buckets, 2)
	assert.Equal(t, "Sheet 1", jobView.Buckets[0].Label)
	assert.Equal(t, "Sheet 2", jobView.Buckets[1].Label)
	assert.Equal(t, "R 500.00", jobView.TotalLabel)

	updated, err := svc.Update(ctx, first.ID, PartInput{Quantity: "3", Description: "Fan", Price: "12.5"})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Quantity)
	assert.Equal(t, 12.5, updated.Price)

	require.NoError(t, svc.Delete(ctx, first.ID))
	assert.ErrorIs(t, svc.Delete(ctx, first.ID), ErrNotFound)

	_, err = svc.Create(ctx, group[0].ID, PartInput{Description: " "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDocumentsOfDeletedSheetFallIntoUnknownBucket(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	docs := NewDocumentService(f.sheets, f.documents)
	jobs := f.jobSheetService()
	group := f.seedGroup(t, 5, 3, model.JobStatusOpen)

	for _, sheet := range group {
		_, err := docs.Create(ctx, technician, sheet.ID, DocumentInput{Name: "photo.jpg", URL: "https://files.example/" + sheet.ID})
		require.NoError(t, err)
	}
	require.NoError(t, jobs.Delete(ctx, group[1].ID))

	view, err := docs.List(ctx, group[0].ID, viewmodel.ScopeJob)
	require.NoError(t, err)
	require.Len(t, view.Buckets, 3)
	assert.Equal(t, group[0].ID, view.Buckets[0].SheetID)
	assert.Equal(t, "Sheet 1", view.Buckets[0].Label)
	assert.Equal(t, "Sheet 2", view.Buckets[1].Label)
	assert.Equal(t, group[2].ID, view.Buckets[1].SheetID)
	assert.Equal(t, viewmodel.UnknownSheet, view.Buckets[2].Label)
	assert.Equal(t, "Sam", view.Buckets[0].Items[0].UploadedBy)

	_, err = docs.Create(ctx, office, group[0].ID, DocumentInput{Name: "x"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = docs.Create(ctx, office, "missing", DocumentInput{Name: "x", URL: "u"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewUserService(f.profiles)

	me, err := svc.Me(ctx, technician)
	require.NoError(t, err)
	assert.Equal(t, "Sam", me.DisplayName)

	_, err = svc.UpdateMe(ctx, technician, UpdateProfileInput{DisplayName: " Samantha "})
	require.NoError(t, err)

	me, err = svc.Me(ctx, technician)
	require.NoError(t, err)
	assert.Equal(t, "Samantha", me.DisplayName)
	assert.Equal(t, technician.Email, me.Email)
}
