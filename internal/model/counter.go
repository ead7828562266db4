package model

const (
	CounterJobOrder = "jobOrder"
	CounterQuote    = "quote"
)

// Counter holds the last number handed out for a sequence.
type Counter struct {
	Value int `json:"value"`
}
