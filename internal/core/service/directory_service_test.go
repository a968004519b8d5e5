package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/pairpro/pairpro-cli/internal/core/domain"
	"github.com/pairpro/pairpro-cli/internal/core/ports"
)

type stubProviderGateway struct {
	provider   *domain.Provider
	reviews    []domain.Review
	getErr     error
	reviewsErr error

	lastFilter  ports.ProviderFilter
	createCalls int
	reviewCalls int
}

func (g *stubProviderGateway) List(_ context.Context, filter ports.ProviderFilter) ([]domain.Provider, error) {
	g.lastFilter = filter
	return nil, nil
}

func (g *stubProviderGateway) Get(context.Context, int64) (*domain.Provider, error) {
	if g.getErr != nil {
		return nil, g.getErr
	}
	return g.provider, nil
}

func (g *stubProviderGateway) Create(_ context.Context, input ports.CreateProviderInput) (*domain.Provider, error) {
	g.createCalls++
	return &domain.Provider{ID: 7, Name: input.Name, ServiceType: input.ServiceType, City: input.City, Rating: input.Rating}, nil
}

func (g *stubProviderGateway) Reviews(context.Context, int64) ([]domain.Review, error) {
	if g.reviewsErr != nil {
		return nil, g.reviewsErr
	}
	return g.reviews, nil
}

func (g *stubProviderGateway) AddReview(_ context.Context, providerID int64, input ports.ReviewInput) (*domain.Review, error) {
	g.reviewCalls++
	return &domain.Review{ID: 99, ProviderID: providerID, Stars: input.Stars, Comment: input.Comment}, nil
}

func (g *stubProviderGateway) Recommendations(context.Context, string, string) ([]domain.Provider, error) {
	return []domain.Provider{*g.provider}, nil
}

func newDirectoryFixture() (*DirectoryService, *stubProviderGateway) {
	gw := &stubProviderGateway{
		provider: &domain.Provider{ID: 1, Name: "Ana's Plumbing", ServiceType: "plumbing", City: "Lisbon"},
	}
	return NewDirectoryService(gw, zerolog.Nop()), gw
}

func TestDirectoryService_Browse_TrimsFilters(t *testing.T) {
	svc, gw := newDirectoryFixture()

	if _, err := svc.Browse(context.Background(), ports.ProviderFilter{City: "  Lisbon ", ServiceType: " plumbing\t"}); err != nil {
		t.Fatalf("Browse returned error: %v", err)
	}
	if gw.lastFilter.City != "Lisbon" || gw.lastFilter.ServiceType != "plumbing" {
		t.Fatalf("filters not trimmed: %+v", gw.lastFilter)
	}
}

func TestDirectoryService_Detail_SortsReviewsNewestFirst(t *testing.T) {
	svc, gw := newDirectoryFixture()
	now := time.Now()
	gw.reviews = []domain.Review{
		{ID: 1, Stars: 4, CreatedAt: now.Add(-2 * time.Hour)},
		{ID: 2, Stars: 5, CreatedAt: now},
		{ID: 3, Stars: 3, CreatedAt: now.Add(-time.Hour)},
	}

	detail, err := svc.Detail(context.Background(), 1)
	if err != nil {
		t.Fatalf("Detail returned error: %v", err)
	}
	if len(detail.Reviews) != 3 {
		t.Fatalf("expected 3 reviews, got %d", len(detail.Reviews))
	}
	if detail.Reviews[0].ID != 2 || detail.Reviews[1].ID != 3 || detail.Reviews[2].ID != 1 {
		t.Fatalf("reviews not newest-first: %+v", detail.Reviews)
	}
}

func TestDirectoryService_Detail_ProviderErrorIsFatal(t *testing.T) {
	svc, gw := newDirectoryFixture()
	gw.getErr = errors.New("Provider not found")

	if _, err := svc.Detail(context.Background(), 42); err == nil {
		t.Fatalf("expected error when the profile fetch fails")
	}
}

func TestDirectoryService_Detail_ReviewFailureDegrades(t *testing.T) {
	svc, gw := newDirectoryFixture()
	gw.reviewsErr = errors.New("boom")

	detail, err := svc.Detail(context.Background(), 1)
	if err != nil {
		t.Fatalf("a failed review fetch must not be fatal: %v", err)
	}
	if len(detail.Reviews) != 0 {
		t.Fatalf("expected empty reviews, got %d", len(detail.Reviews))
	}
	if detail.Provider.ID != 1 {
		t.Fatalf("unexpected provider: %+v", detail.Provider)
	}
}

func TestDirectoryService_AddProvider_Validation(t *testing.T) {
	svc, gw := newDirectoryFixture()

	if _, err := svc.AddProvider(context.Background(), ports.CreateProviderInput{City: "Lisbon"}); err == nil {
		t.Fatalf("expected error for missing name")
	}
	bad := 5.5
	if _, err := svc.AddProvider(context.Background(), ports.CreateProviderInput{Name: "x", Rating: &bad}); err == nil {
		t.Fatalf("expected error for out-of-range rating")
	}
	if gw.createCalls != 0 {
		t.Fatalf("expected no network calls, got %d", gw.createCalls)
	}

	ok := 4.5
	created, err := svc.AddProvider(context.Background(), ports.CreateProviderInput{Name: " Ana ", ServiceType: "plumbing", City: "Lisbon", Rating: &ok})
	if err != nil {
		t.Fatalf("AddProvider returned error: %v", err)
	}
	if created.Name != "Ana" {
		t.Fatalf("expected trimmed name, got %q", created.Name)
	}
}

func TestDirectoryService_SubmitReview_StarsBounds(t *testing.T) {
	svc, gw := newDirectoryFixture()

	for _, stars := range []int{0, 6} {
		if _, err := svc.SubmitReview(context.Background(), 1, ports.ReviewInput{Stars: stars}); err == nil {
			t.Fatalf("expected error for %d stars", stars)
		}
	}
	if gw.reviewCalls != 0 {
		t.Fatalf("expected no network calls, got %d", gw.reviewCalls)
	}

	review, err := svc.SubmitReview(context.Background(), 1, ports.ReviewInput{Stars: 5, Comment: "great"})
	if err != nil {
		t.Fatalf("SubmitReview returned error: %v", err)
	}
	if review.ID != 99 || review.ProviderID != 1 {
		t.Fatalf("expected the server-canonical record, got %+v", review)
	}
}

func TestDirectoryService_TopPros_RequiresCity(t *testing.T) {
	svc, _ := newDirectoryFixture()

	if _, err := svc.TopPros(context.Background(), "   ", "plumbing"); err == nil {
		t.Fatalf("expected error for missing city")
	}
	pros, err := svc.TopPros(context.Background(), "Lisbon", "")
	if err != nil {
		t.Fatalf("TopPros returned error: %v", err)
	}
	if len(pros) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(pros))
	}
}
