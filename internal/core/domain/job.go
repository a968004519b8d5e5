package domain

import "time"

// Job is a piece of work posted by a client, optionally assigned to a provider.
type Job struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	ServiceType string    `json:"service_type"`
	City        string    `json:"city"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	ProviderID  *int64    `json:"provider_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	Photos      []string  `json:"photos"`
}

// PlanItem is a single checklist entry attached to a job.
type PlanItem struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"created_at"`
}

// UploadTicket is the signed-upload descriptor returned by POST /uploads/sign.
// It is consumed directly against the third-party media host, never proxied.
type UploadTicket struct {
	CloudName string `json:"cloud_name"`
	APIKey    string `json:"api_key"`
	Timestamp int64  `json:"timestamp"`
	Signature string `json:"signature"`
}
