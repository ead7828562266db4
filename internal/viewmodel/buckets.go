package viewmodel

import (
	"fmt"
	"sort"

	"jobsheet-service/internal/model"
)

const (
	UnsortedBucket = "unsorted"
	UnknownSheet   = "N/A"
)

// Scope selects whether attachments are listed for one sheet or the
// whole job group.
type Scope string

const (
	ScopeSheet Scope = "sheet"
	ScopeJob   Scope = "job"
)

func ParseScope(raw string) Scope {
	if Scope(raw) == ScopeJob {
		return ScopeJob
	}
	return ScopeSheet
}

// SheetScoped is a record owned by one job sheet.
type SheetScoped interface {
	OwnerSheetID() string
}

type Bucket[T SheetScoped] struct {
	SheetID  string `json:"sheetId"`
	Label    string `json:"label"`
	Position int    `json:"position"`
	Items    []T    `json:"items"`
}

// GroupBySheet partitions items by owning sheet. Buckets follow the
// owning sheet's position within its job group; items whose sheet is
// missing or unknown come last.
func GroupBySheet[T SheetScoped](items []T, sheets []model.JobSheet) []Bucket[T] {
	positions := sheetPositions(sheets)

	var buckets []Bucket[T]
	byID := make(map[string]int)
	for _, item := range items {
		key := item.OwnerSheetID()
		if key == "" {
			key = UnsortedBucket
		}
		idx, ok := byID[key]
		if !ok {
			bucket := Bucket[T]{SheetID: key, Label: UnknownSheet, Position: -1}
			if pos, found := positions[key]; found && key != UnsortedBucket {
				bucket.Position = pos
				bucket.Label = fmt.Sprintf("Sheet %d", pos+1)
			}
			buckets = append(buckets, bucket)
			idx = len(buckets) - 1
			byID[key] = idx
		}
		buckets[idx].Items = append(buckets[idx].Items, item)
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		pi, pj := buckets[i].Position, buckets[j].Position
		if pi < 0 || pj < 0 {
			return pi >= 0 && pj < 0
		}
		return pi < pj
	})
	return buckets
}

// sheetPositions indexes each sheet by its position among the sheets
// sharing its job number, in the order given.
func sheetPositions(sheets []model.JobSheet) map[string]int {
	counts := make(map[int]int)
	positions := make(map[string]int, len(sheets))
	for _, sheet := range sheets {
		positions[sheet.ID] = counts[sheet.JobNumber]
		counts[sheet.JobNumber]++
	}
	return positions
}
