package model

import "time"

// Document is the metadata of a file attached to a job sheet. The bytes
// live with the upload collaborator behind URL.
type Document struct {
	ID          string    `json:"id,omitempty"`
	JobSheetID  string    `json:"jobSheetId"`
	JobNumber   int       `json:"jobNumber"`
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	UploadedBy  string    `json:"uploadedBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (d Document) OwnerSheetID() string { return d.JobSheetID }
