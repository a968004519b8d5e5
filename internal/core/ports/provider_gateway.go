package ports

import (
	"context"

	"github.com/pairpro/pairpro-cli/internal/core/domain"
)

// ProviderFilter narrows the public directory listing. Empty fields are
// omitted from the query string.
type ProviderFilter struct {
	City        string
	ServiceType string
}

// CreateProviderInput carries the payload for POST /providers.
type CreateProviderInput struct {
	Name        string
	ServiceType string
	City        string
	Rating      *float64
}

// ReviewInput carries the payload for POST /providers/{id}/reviews.
type ReviewInput struct {
	Stars   int
	Comment string
}

// ProviderGateway wraps the provider directory and review endpoints.
// Listing and reading are public; creation requires a session.
type ProviderGateway interface {
	List(ctx context.Context, filter ProviderFilter) ([]domain.Provider, error)
	Get(ctx context.Context, id int64) (*domain.Provider, error)
	Create(ctx context.Context, input CreateProviderInput) (*domain.Provider, error)
	Reviews(ctx context.Context, providerID int64) ([]domain.Review, error)
	AddReview(ctx context.Context, providerID int64, input ReviewInput) (*domain.Review, error)
	Recommendations(ctx context.Context, city, service string) ([]domain.Provider, error)
}
