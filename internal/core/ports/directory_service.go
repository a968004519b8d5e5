package ports

import (
	"context"

	"github.com/pairpro/pairpro-cli/internal/core/domain"
)

// ProviderDetail is the composite view rendered by the provider screen:
// profile plus reviews, newest first.
type ProviderDetail struct {
	Provider domain.Provider
	Reviews  []domain.Review
}

// DirectoryService drives the provider directory screens.
type DirectoryService interface {
	Browse(ctx context.Context, filter ProviderFilter) ([]domain.Provider, error)

	// Detail fetches the profile and its reviews in parallel. A missing
	// provider is fatal; a failed review fetch degrades to an empty list.
	Detail(ctx context.Context, id int64) (*ProviderDetail, error)

	AddProvider(ctx context.Context, input CreateProviderInput) (*domain.Provider, error)

	// SubmitReview returns the server-canonical record so the caller can
	// append it locally without a full reload.
	SubmitReview(ctx context.Context, providerID int64, input ReviewInput) (*domain.Review, error)

	TopPros(ctx context.Context, city, service string) ([]domain.Provider, error)
}
