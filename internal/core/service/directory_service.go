package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/pairpro/pairpro-cli/internal/core/domain"
	"github.com/pairpro/pairpro-cli/internal/core/ports"
)

// DirectoryService implements the provider directory screens' use cases.
type DirectoryService struct {
	providers ports.ProviderGateway
	validate  *validator.Validate
	log       zerolog.Logger
}

func NewDirectoryService(providers ports.ProviderGateway, log zerolog.Logger) *DirectoryService {
	return &DirectoryService{
		providers: providers,
		validate:  validator.New(),
		log:       log,
	}
}

type providerForm struct {
	Name        string   `validate:"required"`
	Rating      *float64 `validate:"omitempty,gte=0,lte=5"`
	ServiceType string
	City        string
}

type reviewForm struct {
	Stars   int    `validate:"required,gte=1,lte=5"`
	Comment string `validate:"max=2000"`
}

func (s *DirectoryService) Browse(ctx context.Context, filter ports.ProviderFilter) ([]domain.Provider, error) {
	filter.City = strings.TrimSpace(filter.City)
	filter.ServiceType = strings.TrimSpace(filter.ServiceType)
	return s.providers.List(ctx, filter)
}

// Detail loads the profile and its reviews in parallel. The two fetches are
// independent: a missing provider is fatal, a failed review fetch degrades
// to an empty list.
func (s *DirectoryService) Detail(ctx context.Context, id int64) (*ports.ProviderDetail, error) {
	var (
		wg          sync.WaitGroup
		provider    *domain.Provider
		reviews     []domain.Review
		providerErr error
		reviewsErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		provider, providerErr = s.providers.Get(ctx, id)
	}()
	go func() {
		defer wg.Done()
		reviews, reviewsErr = s.providers.Reviews(ctx, id)
	}()
	wg.Wait()

	if providerErr != nil {
		return nil, providerErr
	}
	if reviewsErr != nil {
		s.log.Warn().Err(reviewsErr).Int64("provider_id", id).Msg("reviews fetch failed")
		reviews = nil
	}

	sort.SliceStable(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})

	return &ports.ProviderDetail{Provider: *provider, Reviews: reviews}, nil
}

func (s *DirectoryService) AddProvider(ctx context.Context, input ports.CreateProviderInput) (*domain.Provider, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.ServiceType = strings.TrimSpace(input.ServiceType)
	input.City = strings.TrimSpace(input.City)

	form := providerForm{Name: input.Name, Rating: input.Rating, ServiceType: input.ServiceType, City: input.City}
	if err := s.validate.Struct(form); err != nil {
		return nil, humanize(err)
	}

	created, err := s.providers.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("provider_id", created.ID).Msg("provider profile created")
	return created, nil
}

func (s *DirectoryService) SubmitReview(ctx context.Context, providerID int64, input ports.ReviewInput) (*domain.Review, error) {
	input.Comment = strings.TrimSpace(input.Comment)
	if err := s.validate.Struct(reviewForm{Stars: input.Stars, Comment: input.Comment}); err != nil {
		return nil, humanize(err)
	}
	return s.providers.AddReview(ctx, providerID, input)
}

func (s *DirectoryService) TopPros(ctx context.Context, city, service string) ([]domain.Provider, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, errors.New("city is required")
	}
	return s.providers.Recommendations(ctx, city, strings.TrimSpace(service))
}
