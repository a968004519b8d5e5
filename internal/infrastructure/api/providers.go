package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/pairpro/pairpro-cli/internal/core/domain"
	"github.com/pairpro/pairpro-cli/internal/core/ports"
)

type createProviderRequest struct {
	Name        string   `json:"name"`
	Rating      *float64 `json:"rating,omitempty"`
	ServiceType string   `json:"service_type,omitempty"`
	City        string   `json:"city,omitempty"`
}

type reviewRequest struct {
	Stars   int    `json:"stars"`
	Comment string `json:"comment,omitempty"`
}

// List queries the public directory. Empty filter fields are omitted.
func (p *ProviderAPI) List(ctx context.Context, filter ports.ProviderFilter) ([]domain.Provider, error) {
	query := url.Values{}
	if filter.City != "" {
		query.Set("city", filter.City)
	}
	if filter.ServiceType != "" {
		query.Set("service_type", filter.ServiceType)
	}

	var providers []domain.Provider
	if err := p.c.getJSON(ctx, "/providers", query, &providers, false); err != nil {
		return nil, err
	}
	return providers, nil
}

func (p *ProviderAPI) Get(ctx context.Context, id int64) (*domain.Provider, error) {
	var provider domain.Provider
	if err := p.c.getJSON(ctx, fmt.Sprintf("/providers/%d", id), nil, &provider, false); err != nil {
		return nil, err
	}
	return &provider, nil
}

func (p *ProviderAPI) Create(ctx context.Context, input ports.CreateProviderInput) (*domain.Provider, error) {
	req := createProviderRequest{
		Name:        input.Name,
		Rating:      input.Rating,
		ServiceType: input.ServiceType,
		City:        input.City,
	}
	var provider domain.Provider
	if err := p.c.postJSON(ctx, "/providers", req, &provider, true); err != nil {
		return nil, err
	}
	return &provider, nil
}

func (p *ProviderAPI) Reviews(ctx context.Context, providerID int64) ([]domain.Review, error) {
	var reviews []domain.Review
	if err := p.c.getJSON(ctx, fmt.Sprintf("/providers/%d/reviews", providerID), nil, &reviews, false); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (p *ProviderAPI) AddReview(ctx context.Context, providerID int64, input ports.ReviewInput) (*domain.Review, error) {
	req := reviewRequest{Stars: input.Stars, Comment: input.Comment}
	var review domain.Review
	if err := p.c.postJSON(ctx, fmt.Sprintf("/providers/%d/reviews", providerID), req, &review, false); err != nil {
		return nil, err
	}
	return &review, nil
}

// Recommendations is the "top pros" search; city is required by the backend.
func (p *ProviderAPI) Recommendations(ctx context.Context, city, service string) ([]domain.Provider, error) {
	query := url.Values{}
	query.Set("city", city)
	if service != "" {
		query.Set("service", service)
	}

	var providers []domain.Provider
	if err := p.c.getJSON(ctx, "/providers/recommendations", query, &providers, false); err != nil {
		return nil, err
	}
	return providers, nil
}
