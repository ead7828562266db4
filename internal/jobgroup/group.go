// Package jobgroup keeps the job sheets that share a job number together,
// independent of how a list is sorted for display.
package jobgroup

import (
	"sort"

	"jobsheet-service/internal/model"
	"jobsheet-service/internal/store"
)

// Group is every sheet of one job in load order. The first sheet is the
// primary sheet.
type Group struct {
	JobNumber int              `json:"jobNumber"`
	Sheets    []model.JobSheet `json:"sheets"`
}

func (g Group) Len() int {
	return len(g.Sheets)
}

func (g Group) Primary() *model.JobSheet {
	if len(g.Sheets) == 0 {
		return nil
	}
	return &g.Sheets[0]
}

func (g Group) IsPrimary(sheetID string) bool {
	return len(g.Sheets) > 0 && g.Sheets[0].ID == sheetID
}

// AllInvoiced reports whether every sheet carries an invoice number.
func (g Group) AllInvoiced() bool {
	for i := range g.Sheets {
		if !g.Sheets[i].HasInvoiceNumber() {
			return false
		}
	}
	return len(g.Sheets) > 0
}

// Index maps job numbers to their sheets in load order.
type Index struct {
	order    []int
	byNumber map[int][]model.JobSheet
}

// NewIndex builds the mapping from sheets in load order. Sheets are
// re-ordered by creation time within a group so a later display sort
// cannot move them.
func NewIndex(loaded []model.JobSheet) *Index {
	ix := &Index{byNumber: make(map[int][]model.JobSheet)}
	for _, sheet := range loaded {
		if _, ok := ix.byNumber[sheet.JobNumber]; !ok {
			ix.order = append(ix.order, sheet.JobNumber)
		}
		ix.byNumber[sheet.JobNumber] = append(ix.byNumber[sheet.JobNumber], sheet)
	}
	for _, sheets := range ix.byNumber {
		sortLoadOrder(sheets)
	}
	return ix
}

func (ix *Index) Group(jobNumber int) Group {
	return Group{JobNumber: jobNumber, Sheets: ix.byNumber[jobNumber]}
}

// Groups returns one indexed group per job number, ordered by the first
// appearance of that job number in display. display is a subset of the
// indexed sheets; job numbers the index does not hold are skipped.
func (ix *Index) Groups(display []model.JobSheet) []Group {
	seen := make(map[int]bool)
	groups := make([]Group, 0, len(ix.order))
	for _, sheet := range display {
		if seen[sheet.JobNumber] {
			continue
		}
		seen[sheet.JobNumber] = true
		if _, ok := ix.byNumber[sheet.JobNumber]; ok {
			groups = append(groups, ix.Group(sheet.JobNumber))
		}
	}
	return groups
}

// GroupByJobNumber groups sheets given in load order, in order of first
// appearance.
func GroupByJobNumber(sheets []model.JobSheet) []Group {
	return NewIndex(sheets).Groups(sheets)
}

// SiblingIndex is the zero-based position of sheetID in g, or -1.
func SiblingIndex(g Group, sheetID string) int {
	for i := range g.Sheets {
		if g.Sheets[i].ID == sheetID {
			return i
		}
	}
	return -1
}

// Navigate returns the id of the sheet direction steps away from
// fromIndex. It reports false at either end of the group.
func Navigate(g Group, fromIndex, direction int) (string, bool) {
	if direction != -1 && direction != 1 {
		return "", false
	}
	target := fromIndex + direction
	if fromIndex < 0 || fromIndex >= len(g.Sheets) || target < 0 || target >= len(g.Sheets) {
		return "", false
	}
	return g.Sheets[target].ID, true
}

// Position is the "Sheet N of M" view of a sheet.
type Position struct {
	Number     int     `json:"number"`
	Count      int     `json:"count"`
	PreviousID *string `json:"previousId"`
	NextID     *string `json:"nextId"`
	IsPrimary  bool    `json:"isPrimary"`
}

func PositionOf(g Group, sheetID string) Position {
	idx := SiblingIndex(g, sheetID)
	pos := Position{Number: idx + 1, Count: len(g.Sheets), IsPrimary: idx == 0}
	if prev, ok := Navigate(g, idx, -1); ok {
		pos.PreviousID = &prev
	}
	if next, ok := Navigate(g, idx, 1); ok {
		pos.NextID = &next
	}
	return pos
}

// SheetUpdate is one write of a cascade.
type SheetUpdate struct {
	SheetID string
	Fields  store.Data
}

// Cascade produces the same field update for every sheet of g.
func Cascade(g Group, fields store.Data) []SheetUpdate {
	updates := make([]SheetUpdate, 0, len(g.Sheets))
	for _, sheet := range g.Sheets {
		copied := make(store.Data, len(fields))
		for k, v := range fields {
			copied[k] = v
		}
		updates = append(updates, SheetUpdate{SheetID: sheet.ID, Fields: copied})
	}
	return updates
}

func CascadeStatus(g Group, status model.JobStatus) []SheetUpdate {
	return Cascade(g, store.Data{"status": status})
}

func CascadeInvoiceNumber(g Group, invoiceNumber string) []SheetUpdate {
	return Cascade(g, store.Data{"invoiceNumber": invoiceNumber})
}

func sortLoadOrder(sheets []model.JobSheet) {
	sort.SliceStable(sheets, func(i, j int) bool {
		if !sheets[i].CreatedAt.Equal(sheets[j].CreatedAt) {
			return sheets[i].CreatedAt.Before(sheets[j].CreatedAt)
		}
		return false
	})
}
