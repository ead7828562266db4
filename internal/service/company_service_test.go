package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobsheet-service/internal/model"
)

func TestResolveCompanyIgnoresCase(t *testing.T) {
	candidates := []model.CompanyProfile{{ID: "c1", CompanyName: "Acme Ltd"}}

	matched := ResolveCompany("acme ltd", candidates)
	require.NotNil(t, matched)
	assert.Equal(t, "c1", matched.ID)

	assert.NotNil(t, ResolveCompany("  ACME LTD ", candidates))
	assert.Nil(t, ResolveCompany("Acme", candidates))
	assert.Nil(t, ResolveCompany("", candidates))
}

func TestSelectContact(t *testing.T) {
	one := &model.CompanyProfile{Contacts: []model.Contact{{Name: "Jo", Email: "jo@acme.test"}}}
	selection := SelectContact(one)
	require.NotNil(t, selection.Contact)
	assert.Equal(t, "Jo", selection.Contact.Name)
	assert.False(t, selection.RequiresSelection)

	two := &model.CompanyProfile{Contacts: []model.Contact{{Name: "Jo"}, {Name: "Max"}}}
	selection = SelectContact(two)
	assert.Nil(t, selection.Contact)
	assert.True(t, selection.RequiresSelection)
	assert.Len(t, selection.Options, 2)

	selection = SelectContact(&model.CompanyProfile{})
	assert.Nil(t, selection.Contact)
	assert.False(t, selection.RequiresSelection)

	assert.Nil(t, SelectContact(nil).Contact)
}

func TestUpsertContact(t *testing.T) {
	company := &model.CompanyProfile{Contacts: []model.Contact{{Name: "Jo", Cellphone: "1"}}}

	UpsertContact(company, model.Contact{Name: "Jo", Cellphone: "2"})
	require.Len(t, company.Contacts, 1)
	assert.Equal(t, "2", company.Contacts[0].Cellphone)

	UpsertContact(company, model.Contact{Name: "jo", Cellphone: "3"})
	assert.Len(t, company.Contacts, 2)
}

func TestCompanyServiceCreateRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewCompanyService(f.companies)

	created, err := svc.Create(ctx, CompanyInput{CompanyName: " Acme Ltd "})
	require.NoError(t, err)
	assert.Equal(t, "Acme Ltd", created.CompanyName)
	assert.Empty(t, created.Contacts)

	_, err = svc.Create(ctx, CompanyInput{CompanyName: "ACME LTD"})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.Create(ctx, CompanyInput{CompanyName: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCompanyServiceResolveAndContacts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewCompanyService(f.companies)

	created, err := svc.Create(ctx, CompanyInput{CompanyName: "Globex"})
	require.NoError(t, err)

	_, err = svc.UpsertContact(ctx, created.ID, model.Contact{Name: "Hank", Email: "hank@globex.test"})
	require.NoError(t, err)

	result, err := svc.Resolve(ctx, "globex")
	require.NoError(t, err)
	require.NotNil(t, result.Matched)
	require.NotNil(t, result.Selection.Contact)
	assert.Equal(t, "Hank", result.Selection.Contact.Name)

	_, err = svc.UpsertContact(ctx, created.ID, model.Contact{Name: "Mindy"})
	require.NoError(t, err)

	result, err = svc.Resolve(ctx, "GLOBEX")
	require.NoError(t, err)
	assert.True(t, result.Selection.RequiresSelection)
	assert.Nil(t, result.Selection.Contact)

	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCompanyServiceListSortsByName(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewCompanyService(f.companies)

	for _, name := range []string{"zeta", "Alpha", "beta"} {
		_, err := svc.Create(ctx, CompanyInput{CompanyName: name})
		require.NoError(t, err)
	}

	companies, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, companies, 3)
	assert.Equal(t, "Alpha", companies[0].CompanyName)
	assert.Equal(t, "beta", companies[1].CompanyName)
	assert.Equal(t, "zeta", companies[2].CompanyName)
}
