package viewmodel

import (
	"jobsheet-service/internal/jobgroup"
	"jobsheet-service/internal/model"
)

type JobSheetView struct {
	model.JobSheet
	JobNumberLabel  string            `json:"jobNumberLabel"`
	PartsTotal      float64           `json:"partsTotal"`
	PartsTotalLabel string            `json:"partsTotalLabel"`
	Position        jobgroup.Position `json:"position"`
	// S.L.A sheets use the task checklist, orders the fault/work fields.
	ShowTasks          bool              `json:"showTasks"`
	ShowWorkCarriedOut bool              `json:"showWorkCarriedOut"`
	ShowInvoiceNumber  bool              `json:"showInvoiceNumber"`
	StatusOptions      []model.JobStatus `json:"statusOptions,omitempty"`
}

func NewJobSheetView(sheet model.JobSheet, group jobgroup.Group) JobSheetView {
	total := ComputeTotal(sheet.Parts)
	return JobSheetView{
		JobSheet:           sheet,
		JobNumberLabel:     FormatJobNumber(sheet.JobNumber),
		PartsTotal:         total,
		PartsTotalLabel:    FormatCurrency(total),
		Position:           jobgroup.PositionOf(group, sheet.ID),
		ShowTasks:          sheet.OrderType == model.OrderTypeSLA,
		ShowWorkCarriedOut: sheet.OrderType != model.OrderTypeSLA,
		ShowInvoiceNumber: sheet.Status == model.JobStatusPendingInvoice ||
			sheet.Status == model.JobStatusInvoiced ||
			sheet.HasInvoiceNumber(),
	}
}

type JobGroupView struct {
	JobNumber      int             `json:"jobNumber"`
	JobNumberLabel string          `json:"jobNumberLabel"`
	Status         model.JobStatus `json:"status"`
	SheetCount     int             `json:"sheetCount"`
	Sheets         []JobSheetView  `json:"sheets"`
}

// NewJobGroupView shows the visible members of a group; positions are
// counted against the whole group.
func NewJobGroupView(group jobgroup.Group, visible map[string]bool) JobGroupView {
	view := JobGroupView{
		JobNumber:      group.JobNumber,
		JobNumberLabel: FormatJobNumber(group.JobNumber),
		SheetCount:     group.Len(),
		Sheets:         []JobSheetView{},
	}
	if primary := group.Primary(); primary != nil {
		view.Status = primary.Status
	}
	for _, sheet := range group.Sheets {
		if visible != nil && !visible[sheet.ID] {
			continue
		}
		view.Sheets = append(view.Sheets, NewJobSheetView(sheet, group))
	}
	return view
}

type QuoteView struct {
	model.Quote
	QuoteNumberLabel string  `json:"quoteNumberLabel"`
	Total            float64 `json:"total"`
	TotalLabel       string  `json:"totalLabel"`
}

func NewQuoteView(quote model.Quote) QuoteView {
	total := ComputeTotal(quote.Items)
	return QuoteView{
		Quote:            quote,
		QuoteNumberLabel: FormatQuoteNumber(quote.QuoteNumber, quote.DocumentType),
		Total:            total,
		TotalLabel:       FormatCurrency(total),
	}
}

type PartsView struct {
	Scope      Scope                `json:"scope"`
	Buckets    []Bucket[model.Part] `json:"buckets"`
	Total      float64              `json:"total"`
	TotalLabel string               `json:"totalLabel"`
}

func NewPartsView(scope Scope, parts []model.Part, sheets []model.JobSheet) PartsView {
	total := ComputeTotal(parts)
	return PartsView{
		Scope:      scope,
		Buckets:    GroupBySheet(parts, sheets),
		Total:      total,
		TotalLabel: FormatCurrency(total),
	}
}

type DocumentsView struct {
	Scope   Scope                    `json:"scope"`
	Buckets []Bucket[model.Document] `json:"buckets"`
}

func NewDocumentsView(scope Scope, documents []model.Document, sheets []model.JobSheet) DocumentsView {
	return DocumentsView{
		Scope:   scope,
		Buckets: GroupBySheet(documents, sheets),
	}
}
