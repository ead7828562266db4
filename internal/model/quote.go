package model

import "time"

type QuoteStatus string

const (
	QuoteStatusValid    QuoteStatus = "Valid"
	QuoteStatusExpired  QuoteStatus = "Expired"
	QuoteStatusAccepted QuoteStatus = "Accepted"
	QuoteStatusRejected QuoteStatus = "Rejected"
)

func (s QuoteStatus) Valid() bool {
	switch s {
	case QuoteStatusValid, QuoteStatusExpired, QuoteStatusAccepted, QuoteStatusRejected:
		return true
	}
	return false
}

type DocumentType string

const (
	DocumentTypeQuotation          DocumentType = "Quotation"
	DocumentTypeReport             DocumentType = "Report"
	DocumentTypeReportAndQuotation DocumentType = "Report and Quotation"
)

func (t DocumentType) Valid() bool {
	switch t {
	case DocumentTypeQuotation, DocumentTypeReport, DocumentTypeReportAndQuotation:
		return true
	}
	return false
}

// DefaultQuoteValidity is how long a quote stays Valid after creation.
const DefaultQuoteValidity = 3 * 24 * time.Hour

type QuoteItem struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

func (i QuoteItem) LineQuantity() int { return i.Quantity }
func (i QuoteItem) LinePrice() float64 { return i.Price }

type Quote struct {
	ID               string       `json:"id,omitempty"`
	QuoteNumber      int          `json:"quoteNumber"`
	CompanyName      string       `json:"companyName"`
	CompanyAddress   string       `json:"companyAddress"`
	CompanyTelephone string       `json:"companyTelephone"`
	Contact          Contact      `json:"contact"`
	Items            []QuoteItem  `json:"items"`
	Status           QuoteStatus  `json:"status"`
	DocumentType     DocumentType `json:"documentType"`
	Notes            string       `json:"notes"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}

// ShouldExpire reports whether a Valid quote has outlived validity at now.
func (q *Quote) ShouldExpire(now time.Time, validity time.Duration) bool {
	return q.Status == QuoteStatusValid && q.CreatedAt.Before(now.Add(-validity))
}
