package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"jobsheet-service/internal/jobgroup"
	"jobsheet-service/internal/lifecycle"
	"jobsheet-service/internal/model"
	"jobsheet-service/internal/repository"
	"jobsheet-service/internal/store"
	"jobsheet-service/internal/viewmodel"
)

const dateLayout = "2006-01-02"

type JobSheetService struct {
	store       store.Store
	sheetRepo   *repository.JobSheetRepository
	companyRepo *repository.CompanyRepository
	numbering   *NumberingService
	policy      *lifecycle.Policy
	now         func() time.Time
}

func NewJobSheetService(
	db store.Store,
	sheetRepo *repository.JobSheetRepository,
	companyRepo *repository.CompanyRepository,
	numbering *NumberingService,
	policy *lifecycle.Policy,
) *JobSheetService {
	return &JobSheetService{
		store:       db,
		sheetRepo:   sheetRepo,
		companyRepo: companyRepo,
		numbering:   numbering,
		policy:      policy,
		now:         time.Now,
	}
}

// PartInput carries raw form values; they are sanitised on save.
type PartInput struct {
	Quantity    interface{}
	Description string
	Price       interface{}
}

type JobSheetInput struct {
	Date                string
	OrderType           model.OrderType
	OrderValue          string
	CompanyName         string
	CompanyAddress      string
	CompanyTelephone    string
	Contact             model.Contact
	FaultComplaint      string
	WorkCarriedOut      string
	Tasks               []model.Task
	Outstanding         string
	ArrivalTime         string
	DepartureTime       string
	TechnicianName      string
	TechnicianSignature *string
	CustomerSignature   *string
	CustomerName        string
	// InvoiceNumber nil keeps the stored value.
	InvoiceNumber *string
	Parts         []PartInput
}

type CreateJobSheetInput struct {
	JobSheetInput
	// CreateCompanyProfile answers whether an unknown company gets a
	// profile. nil means the caller has not been asked yet.
	CreateCompanyProfile *bool
}

type ListJobSheetsInput struct {
	Search string
	Sort   viewmodel.SortState
}

type AddSheetInput struct {
	Date           string
	TechnicianName string
}

type UpdateStatusInput struct {
	Status        model.JobStatus
	InvoiceNumber *string
}

type StatusUpdateResult struct {
	Decision lifecycle.Decision `json:"decision"`
	Status   model.JobStatus    `json:"status"`
	Sheets   []model.JobSheet   `json:"sheets"`
}

func (s *JobSheetService) Create(ctx context.Context, viewer model.Principal, input CreateJobSheetInput) (*viewmodel.JobSheetView, error) {
	sheet := &model.JobSheet{Status: model.JobStatusOpen}
	if err := s.apply(sheet, input.JobSheetInput); err != nil {
		return nil, err
	}
	if sheet.TechnicianName == "" {
		sheet.TechnicianName = viewer.DisplayName
	}

	err := s.store.RunTransaction(ctx, func(ctx context.Context, tx store.Tx) error {
		companies := s.companyRepo.WithTx(tx)
		profile, err := planCompany(ctx, companies, companySnapshot(sheet.CompanyName, sheet.CompanyAddress, sheet.CompanyTelephone), input.CreateCompanyProfile)
		if err != nil {
			return err
		}

		number, err := s.numbering.Reserve(ctx, tx, model.CounterJobOrder)
		if err != nil {
			return err
		}
		sheet.JobNumber = number

		if profile != nil {
			if err := companies.Create(ctx, profile); err != nil {
				return err
			}
		}
		return s.sheetRepo.WithTx(tx).Create(ctx, sheet)
	})
	if err != nil {
		return nil, err
	}

	group := jobgroup.Group{JobNumber: sheet.JobNumber, Sheets: []model.JobSheet{*sheet}}
	view := viewmodel.NewJobSheetView(*sheet, group)
	view.StatusOptions = s.policy.AllowedTargets(sheet.Status, viewer)
	return &view, nil
}

func (s *JobSheetService) PeekNextJobNumber(ctx context.Context) (int, error) {
	return s.numbering.PeekNextJobNumber(ctx)
}

// List returns the job groups visible to viewer. Groups follow the
// display sort; members stay in load order.
func (s *JobSheetService) List(ctx context.Context, viewer model.Principal, input ListJobSheetsInput) ([]viewmodel.JobGroupView, error) {
	sheets, err := s.sheetRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	index := jobgroup.NewIndex(sheets)

	visible := viewmodel.FilterJobSheets(sheets, input.Search, viewer)
	sortState := input.Sort
	if sortState.Field == "" {
		sortState = viewmodel.SortState{Field: "jobNumber", Direction: viewmodel.Descending}
	}
	display := viewmodel.SortBy(visible, sortState.Field, sortState.Direction, viewmodel.JobSheetValue)

	shown := make(map[string]bool, len(display))
	for _, sheet := range display {
		shown[sheet.ID] = true
	}

	groups := index.Groups(display)
	views := make([]viewmodel.JobGroupView, 0, len(groups))
	for _, group := range groups {
		views = append(views, viewmodel.NewJobGroupView(group, shown))
	}
	return views, nil
}

func (s *JobSheetService) Get(ctx context.Context, viewer model.Principal, id string) (*viewmodel.JobSheetView, error) {
	sheet, group, err := sheetContext(ctx, s.sheetRepo, id)
	if err != nil {
		return nil, err
	}
	view := viewmodel.NewJobSheetView(*sheet, group)
	view.StatusOptions = s.policy.AllowedTargets(sheet.Status, viewer)
	return &view, nil
}

// Update saves an edited sheet. A changed invoice number is written to
// every sibling in the same transaction.
func (s *JobSheetService) Update(ctx context.Context, viewer model.Principal, id string, input JobSheetInput) (*viewmodel.JobSheetView, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var (
		saved *model.JobSheet
		group jobgroup.Group
	)
	err := s.store.RunTransaction(ctx, func(ctx context.Context, tx store.Tx) error {
		sheets := s.sheetRepo.WithTx(tx)
		sheet, g, err := sheetContext(ctx, sheets, id)
		if err != nil {
			return err
		}

		previous := strings.TrimSpace(sheet.InvoiceNumberValue())
		if err := s.apply(sheet, input); err != nil {
			return err
		}
		current := strings.TrimSpace(sheet.InvoiceNumberValue())
		if sheet.Status == model.JobStatusInvoiced && current == "" {
			return invalidInput("invoiced jobs need an invoice number")
		}

		if err := sheets.Save(ctx, sheet); err != nil {
			return err
		}

		if current != "" && current != previous {
			for _, update := range jobgroup.CascadeInvoiceNumber(g, current) {
				if update.SheetID == sheet.ID {
					continue
				}
				if err := sheets.UpdateFields(ctx, update.SheetID, update.Fields); err != nil {
					return fmt.Errorf("cascade invoice number to %s: %w", update.SheetID, err)
				}
			}
			for i := range g.Sheets {
				g.Sheets[i].InvoiceNumber = &current
			}
		}

		for i := range g.Sheets {
			if g.Sheets[i].ID == sheet.ID {
				g.Sheets[i] = *sheet
			}
		}
		saved, group = sheet, g
		return nil
	})
	if err != nil {
		return nil, err
	}

	view := viewmodel.NewJobSheetView(*saved, group)
	view.StatusOptions = s.policy.AllowedTargets(saved.Status, viewer)
	return &view, nil
}

// AddSheet starts another sheet for the job of sheet id, carrying over the
// company snapshot, order details, status and invoice number.
func (s *JobSheetService) AddSheet(ctx context.Context, viewer model.Principal, id string, input AddSheetInput) (*viewmodel.JobSheetView, error) {
	date := strings.TrimSpace(input.Date)
	if date == "" {
		date = s.now().Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, invalidInput("date must be YYYY-MM-DD")
	}

	var (
		created *model.JobSheet
		group   jobgroup.Group
	)
	err := s.store.RunTransaction(ctx, func(ctx context.Context, tx store.Tx) error {
		sheets := s.sheetRepo.WithTx(tx)
		source, g, err := sheetContext(ctx, sheets, id)
		if err != nil {
			return err
		}
		primary := g.Primary()
		if primary.Status == model.JobStatusInvoiced || primary.Status == model.JobStatusCancelled {
			return conflict("job is closed")
		}

		technician := strings.TrimSpace(input.TechnicianName)
		if technician == "" {
			technician = viewer.DisplayName
		}

		sheet := &model.JobSheet{
			JobNumber:        source.JobNumber,
			Date:             date,
			OrderType:        source.OrderType,
			OrderValue:       source.OrderValue,
			CompanyName:      source.CompanyName,
			CompanyAddress:   source.CompanyAddress,
			CompanyTelephone: source.CompanyTelephone,
			Contact:          source.Contact,
			Tasks:            blankTasks(source.Tasks),
			TechnicianName:   technician,
			Status:           primary.Status,
			InvoiceNumber:    primary.InvoiceNumber,
			Parts:            []model.PartLine{},
		}
		if err := sheets.Create(ctx, sheet); err != nil {
			return err
		}

		g.Sheets = append(g.Sheets, *sheet)
		created, group = sheet, g
		return nil
	})
	if err != nil {
		return nil, err
	}

	view := viewmodel.NewJobSheetView(*created, group)
	view.StatusOptions = s.policy.AllowedTargets(created.Status, viewer)
	return &view, nil
}

// UpdateStatus moves the whole group of sheet id to input.Status. Moving
// to Invoiced without an invoice number on every sheet is deferred and
// writes nothing.
func (s *JobSheetService) UpdateStatus(ctx context.Context, viewer model.Principal, id string, input UpdateStatusInput) (*StatusUpdateResult, error) {
	var invoiceNumber string
	if input.InvoiceNumber != nil {
		invoiceNumber = strings.TrimSpace(*input.InvoiceNumber)
		if invoiceNumber == "" {
			return nil, invalidInput("invoice number is required")
		}
	}

	var result *StatusUpdateResult
	err := s.store.RunTransaction(ctx, func(ctx context.Context, tx store.Tx) error {
		sheets := s.sheetRepo.WithTx(tx)
		sheet, g, err := sheetContext(ctx, sheets, id)
		if err != nil {
			return err
		}

		decision, err := s.policy.Evaluate(g, sheet.Status, input.Status, viewer, invoiceNumber != "")
		if err != nil {
			return policyError(err)
		}
		if decision == lifecycle.DecisionInvoiceNumberRequired {
			result = &StatusUpdateResult{Decision: decision, Status: sheet.Status, Sheets: g.Sheets}
			return nil
		}

		updates := jobgroup.CascadeStatus(g, input.Status)
		for _, update := range updates {
			if invoiceNumber != "" {
				update.Fields["invoiceNumber"] = invoiceNumber
			}
			if err := sheets.UpdateFields(ctx, update.SheetID, update.Fields); err != nil {
				return fmt.Errorf("cascade status to %s: %w", update.SheetID, err)
			}
		}

		for i := range g.Sheets {
			g.Sheets[i].Status = input.Status
			if invoiceNumber != "" {
				g.Sheets[i].InvoiceNumber = &invoiceNumber
			}
		}
		result = &StatusUpdateResult{Decision: decision, Status: input.Status, Sheets: g.Sheets}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *JobSheetService) Cancel(ctx context.Context, viewer model.Principal, id string) (*StatusUpdateResult, error) {
	return s.UpdateStatus(ctx, viewer, id, UpdateStatusInput{Status: model.JobStatusCancelled})
}

// Delete removes a sub-sheet. The primary sheet carries the job and
// cannot be deleted.
func (s *JobSheetService) Delete(ctx context.Context, id string) error {
	return s.store.RunTransaction(ctx, func(ctx context.Context, tx store.Tx) error {
		sheets := s.sheetRepo.WithTx(tx)
		_, g, err := sheetContext(ctx, sheets, id)
		if err != nil {
			return err
		}
		if g.IsPrimary(id) {
			return conflict("the primary sheet cannot be deleted")
		}
		return sheets.Delete(ctx, id)
	})
}

// Navigate returns the sibling direction steps away from sheet id, or nil
// at either end of the group.
func (s *JobSheetService) Navigate(ctx context.Context, id string, direction int) (*string, error) {
	if direction != -1 && direction != 1 {
		return nil, invalidInput("direction must be -1 or 1")
	}
	_, g, err := sheetContext(ctx, s.sheetRepo, id)
	if err != nil {
		return nil, err
	}
	target, ok := jobgroup.Navigate(g, jobgroup.SiblingIndex(g, id), direction)
	if !ok {
		return nil, nil
	}
	return &target, nil
}

func (s *JobSheetService) StatusOptions(ctx context.Context, viewer model.Principal, id string) ([]model.JobStatus, error) {
	sheet, err := s.sheetRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	targets := s.policy.AllowedTargets(sheet.Status, viewer)
	if targets == nil {
		targets = []model.JobStatus{}
	}
	return targets, nil
}

// apply validates input and copies it onto sheet. Status and job number
// are never changed here.
func (s *JobSheetService) apply(sheet *model.JobSheet, input JobSheetInput) error {
	if err := validateInput(input); err != nil {
		return err
	}

	date := strings.TrimSpace(input.Date)
	if date == "" {
		date = s.now().Format(dateLayout)
	}
	orderType := input.OrderType
	if orderType == "" {
		orderType = model.OrderTypeOrder
	}

	sheet.Date = date
	sheet.OrderType = orderType
	sheet.OrderValue = strings.TrimSpace(input.OrderValue)
	sheet.CompanyName = strings.TrimSpace(input.CompanyName)
	sheet.CompanyAddress = input.CompanyAddress
	sheet.CompanyTelephone = input.CompanyTelephone
	sheet.Contact = input.Contact
	sheet.FaultComplaint = input.FaultComplaint
	sheet.WorkCarriedOut = input.WorkCarriedOut
	sheet.Tasks = input.Tasks
	if sheet.Tasks == nil {
		sheet.Tasks = []model.Task{}
	}
	sheet.Outstanding = input.Outstanding
	sheet.ArrivalTime = strings.TrimSpace(input.ArrivalTime)
	sheet.DepartureTime = strings.TrimSpace(input.DepartureTime)
	sheet.TotalTime = model.ComputeTotalTime(sheet.ArrivalTime, sheet.DepartureTime)
	sheet.TechnicianName = strings.TrimSpace(input.TechnicianName)
	sheet.TechnicianSignature = input.TechnicianSignature
	sheet.CustomerSignature = input.CustomerSignature
	sheet.CustomerName = input.CustomerName
	if input.InvoiceNumber != nil {
		invoice := strings.TrimSpace(*input.InvoiceNumber)
		if invoice == "" {
			sheet.InvoiceNumber = nil
		} else {
			sheet.InvoiceNumber = &invoice
		}
	}

	sheet.Parts = make([]model.PartLine, 0, len(input.Parts))
	for _, part := range input.Parts {
		sheet.Parts = append(sheet.Parts, model.PartLine{
			Quantity:    model.SanitizeQuantity(part.Quantity),
			Description: part.Description,
			Price:       model.SanitizePrice(part.Price),
		})
	}
	return nil
}

func validateInput(input JobSheetInput) error {
	if strings.TrimSpace(input.CompanyName) == "" {
		return invalidInput("company name is required")
	}
	if input.OrderType != "" && !input.OrderType.Valid() {
		return invalidInput("unknown order type")
	}
	if date := strings.TrimSpace(input.Date); date != "" {
		if _, err := time.Parse(dateLayout, date); err != nil {
			return invalidInput("date must be YYYY-MM-DD")
		}
	}
	for _, task := range input.Tasks {
		if !task.Check.Valid() {
			return invalidInput("unknown task check value")
		}
	}
	return nil
}

// policyError maps lifecycle refusals onto service errors.
func policyError(err error) error {
	switch {
	case errors.Is(err, lifecycle.ErrPrivilegeRequired):
		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	case errors.Is(err, lifecycle.ErrUnknownStatus):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	case errors.Is(err, lifecycle.ErrTransitionNotAllowed):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return err
}

// blankTasks keeps the checklist of an S.L.A job without the answers.
func blankTasks(tasks []model.Task) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, model.Task{Task: task.Task})
	}
	return out
}

func companySnapshot(name, address, telephone string) model.CompanyProfile {
	return model.CompanyProfile{
		CompanyName:      name,
		CompanyAddress:   address,
		CompanyTelephone: telephone,
	}
}
