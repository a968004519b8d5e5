package domain

import "time"

// Provider is a service-provider profile from the public directory.
// Rating is nil until the provider has at least one review.
type Provider struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Rating      *float64 `json:"rating,omitempty"`
	ServiceType string   `json:"service_type,omitempty"`
	City        string   `json:"city,omitempty"`
}

// Review is a single star rating left on a provider.
type Review struct {
	ID         int64     `json:"id"`
	ProviderID int64     `json:"provider_id"`
	Stars      int       `json:"stars"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
