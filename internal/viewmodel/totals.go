package viewmodel

import "jobsheet-service/internal/model"

// ComputeTotal sums quantity times price. Items are sanitised when they
// are written, so no coercion happens here.
func ComputeTotal[T model.LineItem](items []T) float64 {
	var total float64
	for _, item := range items {
		total += float64(item.LineQuantity()) * item.LinePrice()
	}
	return total
}
