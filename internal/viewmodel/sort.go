package viewmodel

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shockerli/cvt"

	"jobsheet-service/internal/model"
)

type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

func ParseDirection(raw string) Direction {
	if strings.EqualFold(strings.TrimSpace(raw), string(Descending)) {
		return Descending
	}
	return Ascending
}

// SortState is the active sort column of a list.
type SortState struct {
	Field     string    `json:"field"`
	Direction Direction `json:"direction"`
}

// Toggle flips the direction when field is already active and otherwise
// switches to field ascending.
func (s SortState) Toggle(field string) SortState {
	if s.Field == field {
		if s.Direction == Ascending {
			return SortState{Field: field, Direction: Descending}
		}
		return SortState{Field: field, Direction: Ascending}
	}
	return SortState{Field: field, Direction: Ascending}
}

var numericFields = map[string]bool{
	"jobNumber":     true,
	"orderValue":    true,
	"invoiceNumber": true,
	"quantity":      true,
	"price":         true,
	"quoteNumber":   true,
}

var dateFields = map[string]bool{
	"date":      true,
	"createdAt": true,
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
}

// SortBy returns a sorted copy of records. Ascending keeps insertion
// order for ties and descending is the exact reverse of ascending.
func SortBy[T any](records []T, field string, direction Direction, value func(T, string) interface{}) []T {
	sorted := make([]T, len(records))
	copy(sorted, records)
	if field == "" {
		return sorted
	}

	less := lessFor(field)
	sort.SliceStable(sorted, func(i, j int) bool {
		return less(value(sorted[i], field), value(sorted[j], field))
	})

	if direction == Descending {
		for i, j := 0, len(sorted)-1; i < j; i, j = i+1, j-1 {
			sorted[i], sorted[j] = sorted[j], sorted[i]
		}
	}
	return sorted
}

func lessFor(field string) func(a, b interface{}) bool {
	switch {
	case numericFields[field]:
		return func(a, b interface{}) bool { return toNumber(a) < toNumber(b) }
	case dateFields[field]:
		return func(a, b interface{}) bool { return toTime(a).Before(toTime(b)) }
	default:
		return func(a, b interface{}) bool { return toLowerString(a) < toLowerString(b) }
	}
}

func toNumber(v interface{}) float64 {
	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
	}
	n, err := cvt.Float64E(v)
	if err != nil {
		return 0
	}
	return n
}

func toTime(v interface{}) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, strings.TrimSpace(t)); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}

func toLowerString(v interface{}) string {
	return strings.ToLower(cvt.String(v))
}

// JobSheetValue reads a sortable field from a job sheet.
func JobSheetValue(s model.JobSheet, field string) interface{} {
	switch field {
	case "jobNumber":
		return s.JobNumber
	case "date":
		return s.Date
	case "orderType":
		return string(s.OrderType)
	case "orderValue":
		return s.OrderValue
	case "companyName":
		return s.CompanyName
	case "technicianName":
		return s.TechnicianName
	case "customerName":
		return s.CustomerName
	case "status":
		return string(s.Status)
	case "invoiceNumber":
		return s.InvoiceNumberValue()
	case "createdAt":
		return s.CreatedAt
	}
	return ""
}

func PartValue(p model.Part, field string) interface{} {
	switch field {
	case "quantity":
		return p.Quantity
	case "price":
		return p.Price
	case "description":
		return p.Description
	case "createdAt":
		return p.CreatedAt
	}
	return ""
}

func QuoteValue(q model.Quote, field string) interface{} {
	switch field {
	case "quoteNumber":
		return q.QuoteNumber
	case "companyName":
		return q.CompanyName
	case "status":
		return string(q.Status)
	case "documentType":
		return string(q.DocumentType)
	case "createdAt", "date":
		return q.CreatedAt
	}
	return ""
}

func CompanyValue(c model.CompanyProfile, field string) interface{} {
	switch field {
	case "companyName":
		return c.CompanyName
	case "companyAddress":
		return c.CompanyAddress
	case "companyTelephone":
		return c.CompanyTelephone
	case "createdAt":
		return c.CreatedAt
	}
	return ""
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
