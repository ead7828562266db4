package model

import (
	"fmt"
	"strings"
	"time"
)

type JobStatus string

const (
	JobStatusOpen           JobStatus = "Open"
	JobStatusInProgress     JobStatus = "In Progress"
	JobStatusPendingInvoice JobStatus = "Pending Invoice"
	JobStatusInvoiced       JobStatus = "Invoiced"
	JobStatusCancelled      JobStatus = "Cancelled"
)

var JobStatuses = []JobStatus{
	JobStatusOpen,
	JobStatusInProgress,
	JobStatusPendingInvoice,
	JobStatusInvoiced,
	JobStatusCancelled,
}

func (s JobStatus) Valid() bool {
	for _, known := range JobStatuses {
		if s == known {
			return true
		}
	}
	return false
}

type OrderType string

const (
	OrderTypeOrder OrderType = "Order #"
	OrderTypeSLA   OrderType = "S.L.A"
)

func (t OrderType) Valid() bool {
	return t == OrderTypeOrder || t == OrderTypeSLA
}

type TaskCheck string

const (
	TaskCheckNone   TaskCheck = ""
	TaskCheckYes    TaskCheck = "Yes"
	TaskCheckNo     TaskCheck = "No"
	TaskCheckVerify TaskCheck = "Verify"
)

func (c TaskCheck) Valid() bool {
	switch c {
	case TaskCheckNone, TaskCheckYes, TaskCheckNo, TaskCheckVerify:
		return true
	}
	return false
}

type Contact struct {
	Name      string `json:"name"`
	Cellphone string `json:"cellphone"`
	Email     string `json:"email"`
}

type Task struct {
	Task  string    `json:"task"`
	Notes string    `json:"notes"`
	Check TaskCheck `json:"check"`
}

// PartLine is a part embedded in a job sheet.
type PartLine struct {
	Quantity    int     `json:"quantity"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

func (p PartLine) LineQuantity() int { return p.Quantity }
func (p PartLine) LinePrice() float64 { return p.Price }

type JobSheet struct {
	ID                  string     `json:"id,omitempty"`
	JobNumber           int        `json:"jobNumber"`
	Date                string     `json:"date"`
	OrderType           OrderType  `json:"orderType"`
	OrderValue          string     `json:"orderValue"`
	CompanyName         string     `json:"companyName"`
	CompanyAddress      string     `json:"companyAddress"`
	CompanyTelephone    string     `json:"companyTelephone"`
	Contact             Contact    `json:"contact"`
	FaultComplaint      string     `json:"faultComplaint"`
	WorkCarriedOut      string     `json:"workCarriedOut"`
	Tasks               []Task     `json:"tasks"`
	Outstanding         string     `json:"outstanding"`
	ArrivalTime         string     `json:"arrivalTime"`
	DepartureTime       string     `json:"departureTime"`
	TotalTime           string     `json:"totalTime"`
	TechnicianName      string     `json:"technicianName"`
	TechnicianSignature *string    `json:"technicianSignature"`
	CustomerSignature   *string    `json:"customerSignature"`
	CustomerName        string     `json:"customerName"`
	Status              JobStatus  `json:"status"`
	InvoiceNumber       *string    `json:"invoiceNumber"`
	Parts               []PartLine `json:"parts"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

func (j *JobSheet) HasInvoiceNumber() bool {
	return j.InvoiceNumber != nil && strings.TrimSpace(*j.InvoiceNumber) != ""
}

func (j *JobSheet) InvoiceNumberValue() string {
	if j.InvoiceNumber == nil {
		return ""
	}
	return *j.InvoiceNumber
}

// ComputeTotalTime returns the span between two HH:MM clock times as HH:MM.
// A departure earlier than the arrival is taken to be on the next day.
func ComputeTotalTime(arrival, departure string) string {
	start, err := time.Parse("15:04", strings.TrimSpace(arrival))
	if err != nil {
		return ""
	}
	end, err := time.Parse("15:04", strings.TrimSpace(departure))
	if err != nil {
		return ""
	}
	span := end.Sub(start)
	if span < 0 {
		span += 24 * time.Hour
	}
	minutes := int(span.Minutes())
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
