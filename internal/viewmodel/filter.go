package viewmodel

import (
	"strings"

	"jobsheet-service/internal/model"
)

var technicianStatuses = map[model.JobStatus]bool{
	model.JobStatusOpen:       true,
	model.JobStatusInProgress: true,
}

var officeStatuses = map[model.JobStatus]bool{
	model.JobStatusPendingInvoice: true,
	model.JobStatusInProgress:     true,
}

// FilterJobSheets keeps the sheets matching term that the viewer works on.
// Technicians see their own open work; office accounts see what is
// in progress or waiting to be invoiced.
func FilterJobSheets(sheets []model.JobSheet, term string, viewer model.Principal) []model.JobSheet {
	term = strings.ToLower(strings.TrimSpace(term))

	out := make([]model.JobSheet, 0, len(sheets))
	for _, sheet := range sheets {
		if !visibleTo(sheet, viewer) {
			continue
		}
		if term != "" && !matchesTerm(sheet, term) {
			continue
		}
		out = append(out, sheet)
	}
	return out
}

func visibleTo(sheet model.JobSheet, viewer model.Principal) bool {
	if viewer.IsTechnician() {
		return sheet.TechnicianName == viewer.DisplayName && technicianStatuses[sheet.Status]
	}
	return officeStatuses[sheet.Status]
}

func matchesTerm(sheet model.JobSheet, term string) bool {
	fields := []string{
		sheet.CompanyName,
		itoa(sheet.JobNumber),
		string(sheet.OrderType),
		sheet.OrderValue,
		sheet.TechnicianName,
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}
