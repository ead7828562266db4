package service

import (
	"context"
	"strings"

	"jobsheet-service/internal/model"
	"jobsheet-service/internal/repository"
	"jobsheet-service/internal/utils"
	"jobsheet-service/internal/viewmodel"
)

// ResolveCompany finds the candidate whose name matches name, ignoring
// case and surrounding whitespace.
func ResolveCompany(name string, candidates []model.CompanyProfile) *model.CompanyProfile {
	key := utils.NormalizeCompanyName(name)
	if key == "" {
		return nil
	}
	for i := range candidates {
		if utils.NormalizeCompanyName(candidates[i].CompanyName) == key {
			return &candidates[i]
		}
	}
	return nil
}

// UpsertContact replaces the contact with the same name or appends it.
// Names compare case-sensitively.
func UpsertContact(company *model.CompanyProfile, contact model.Contact) {
	for i := range company.Contacts {
		if company.Contacts[i].Name == contact.Name {
			company.Contacts[i] = contact
			return
		}
	}
	company.Contacts = append(company.Contacts, contact)
}

// ContactSelection tells the form what to do with the contact fields once
// a company is picked.
type ContactSelection struct {
	// Contact is set when the company has exactly one contact.
	Contact *model.Contact `json:"contact"`
	// RequiresSelection is true when several contacts exist.
	RequiresSelection bool            `json:"requiresSelection"`
	Options           []model.Contact `json:"options"`
}

func SelectContact(company *model.CompanyProfile) ContactSelection {
	if company == nil || len(company.Contacts) == 0 {
		return ContactSelection{Options: []model.Contact{}}
	}
	if len(company.Contacts) == 1 {
		contact := company.Contacts[0]
		return ContactSelection{Contact: &contact, Options: company.Contacts}
	}
	return ContactSelection{RequiresSelection: true, Options: company.Contacts}
}

type CompanyService struct {
	companyRepo *repository.CompanyRepository
}

func NewCompanyService(companyRepo *repository.CompanyRepository) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
	}
}

type CompanyInput struct {
	CompanyName      string
	CompanyAddress   string
	CompanyTelephone string
	Contacts         []model.Contact
}

type ResolveResult struct {
	Matched   *model.CompanyProfile `json:"matched"`
	Selection ContactSelection      `json:"selection"`
}

func (s *CompanyService) List(ctx context.Context) ([]model.CompanyProfile, error) {
	companies, err := s.companyRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return viewmodel.SortBy(companies, "companyName", viewmodel.Ascending, viewmodel.CompanyValue), nil
}

func (s *CompanyService) Get(ctx context.Context, id string) (*model.CompanyProfile, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return company, nil
}

func (s *CompanyService) Resolve(ctx context.Context, name string) (*ResolveResult, error) {
	companies, err := s.companyRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	matched := ResolveCompany(name, companies)
	return &ResolveResult{Matched: matched, Selection: SelectContact(matched)}, nil
}

func (s *CompanyService) Create(ctx context.Context, input CompanyInput) (*model.CompanyProfile, error) {
	name := strings.TrimSpace(input.CompanyName)
	if name == "" {
		return nil, invalidInput("company name is required")
	}

	companies, err := s.companyRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if ResolveCompany(name, companies) != nil {
		return nil, conflict("company already exists")
	}

	company := &model.CompanyProfile{
		CompanyName:      name,
		CompanyAddress:   input.CompanyAddress,
		CompanyTelephone: input.CompanyTelephone,
	}
	for _, contact := range input.Contacts {
		UpsertContact(company, contact)
	}

	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *CompanyService) Update(ctx context.Context, id string, input CompanyInput) (*model.CompanyProfile, error) {
	name := strings.TrimSpace(input.CompanyName)
	if name == "" {
		return nil, invalidInput("company name is required")
	}

	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}

	company.CompanyName = name
	company.CompanyAddress = input.CompanyAddress
	company.CompanyTelephone = input.CompanyTelephone
	if input.Contacts != nil {
		company.Contacts = nil
		for _, contact := range input.Contacts {
			UpsertContact(company, contact)
		}
	}

	if err := s.companyRepo.Save(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *CompanyService) UpsertContact(ctx context.Context, id string, contact model.Contact) (*model.CompanyProfile, error) {
	if strings.TrimSpace(contact.Name) == "" {
		return nil, invalidInput("contact name is required")
	}

	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}

	UpsertContact(company, contact)

	if err := s.companyRepo.Save(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// planCompany runs the read phase of a create: it looks the snapshot's
// company up and returns the profile to insert, if the caller asked for
// one. choice is nil when the caller has not decided yet.
func planCompany(ctx context.Context, companies *repository.CompanyRepository, snapshot model.CompanyProfile, choice *bool) (*model.CompanyProfile, error) {
	existing, err := companies.List(ctx)
	if err != nil {
		return nil, err
	}
	if ResolveCompany(snapshot.CompanyName, existing) != nil {
		return nil, nil
	}
	if choice == nil {
		return nil, ErrCompanyChoiceRequired
	}
	if !*choice {
		return nil, nil
	}
	return &model.CompanyProfile{
		CompanyName:      strings.TrimSpace(snapshot.CompanyName),
		CompanyAddress:   snapshot.CompanyAddress,
		CompanyTelephone: snapshot.CompanyTelephone,
		Contacts:         []model.Contact{},
	}, nil
}
