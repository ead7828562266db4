package model

import (
	"math"
	"time"

	"github.com/shockerli/cvt"
)

// Part is a part kept in the standalone parts collection.
type Part struct {
	ID          string    `json:"id,omitempty"`
	JobSheetID  string    `json:"jobSheetId"`
	JobNumber   int       `json:"jobNumber"`
	Quantity    int       `json:"quantity"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (p Part) OwnerSheetID() string { return p.JobSheetID }
func (p Part) LineQuantity() int { return p.Quantity }
func (p Part) LinePrice() float64 { return p.Price }

// LineItem is anything priced per unit.
type LineItem interface {
	LineQuantity() int
	LinePrice() float64
}

// SanitizeQuantity turns raw form input into a quantity of at least 1.
func SanitizeQuantity(raw interface{}) int {
	if raw == nil {
		return 1
	}
	q, err := cvt.IntE(raw)
	if err != nil || q < 1 {
		return 1
	}
	return q
}

// SanitizePrice turns raw form input into a non-negative price.
func SanitizePrice(raw interface{}) float64 {
	if raw == nil {
		return 0
	}
	p, err := cvt.Float64E(raw)
	if err != nil || math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
		return 0
	}
	return p
}
