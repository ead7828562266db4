package model

import "time"

type CompanyProfile struct {
	ID               string    `json:"id,omitempty"`
	CompanyName      string    `json:"companyName"`
	CompanyAddress   string    `json:"companyAddress"`
	CompanyTelephone string    `json:"companyTelephone"`
	Contacts         []Contact `json:"contacts"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
