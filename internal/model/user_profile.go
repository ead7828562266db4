package model

import "time"

type UserProfile struct {
	UID         string    `json:"uid"`
	DisplayName string    `json:"displayName"`
	Email       string    `json:"email"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
