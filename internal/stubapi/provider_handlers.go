package stubapi

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pairpro/pairpro-cli/internal/core/domain"
)

func (s *Server) handleListProviders(c echo.Context) error {
	city := c.QueryParam("city")
	serviceType := c.QueryParam("service_type")

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Provider, 0, len(s.providers))
	for _, p := range s.providers {
		if city != "" && !strings.EqualFold(p.City, city) {
			continue
		}
		if serviceType != "" && !strings.EqualFold(p.ServiceType, serviceType) {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return c.JSON(http.StatusOK, out)
}

// handleRecommendations returns the top-rated providers for a city,
// optionally narrowed to one service type. City is mandatory.
func (s *Server) handleRecommendations(c echo.Context) error {
	city := c.QueryParam("city")
	if city == "" {
		return c.String(http.StatusUnprocessableEntity, "city is required")
	}
	service := c.QueryParam("service")

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Provider, 0)
	for _, p := range s.providers {
		if !strings.EqualFold(p.City, city) {
			continue
		}
		if service != "" && !strings.EqualFold(p.ServiceType, service) {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		ri, rj := ratingOf(out[i]), ratingOf(out[j])
		if ri != rj {
			return ri > rj
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > 3 {
		out = out[:3]
	}
	return c.JSON(http.StatusOK, out)
}

func ratingOf(p domain.Provider) float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}

func (s *Server) handleGetProvider(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.String(http.StatusUnprocessableEntity, "invalid provider id")
	}
	s.mu.Lock()
	p, ok := s.providers[id]
	s.mu.Unlock()
	if !ok {
		return c.String(http.StatusNotFound, "Provider not found")
	}
	return c.JSON(http.StatusOK, p)
}

type createProviderRequest struct {
	Name        string   `json:"name"`
	ServiceType string   `json:"service_type"`
	City        string   `json:"city"`
	Rating      *float64 `json:"rating,omitempty"`
}

func (s *Server) handleCreateProvider(c echo.Context) error {
	rec, err := s.authenticate(c)
	if err != nil {
		return err
	}
	if rec.Role != domain.RoleProvider {
		return c.String(http.StatusForbidden, "Only providers can create listings")
	}

	var req createProviderRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" || req.ServiceType == "" || req.City == "" {
		return c.String(http.StatusUnprocessableEntity, "name, service_type and city are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p := &domain.Provider{ID: s.id(), Name: req.Name, ServiceType: req.ServiceType, City: req.City, Rating: req.Rating}
	s.providers[p.ID] = p
	return c.JSON(http.StatusCreated, p)
}

func (s *Server) handleListReviews(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.String(http.StatusUnprocessableEntity, "invalid provider id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.providers[id]; !ok {
		return c.String(http.StatusNotFound, "Provider not found")
	}
	out := append([]domain.Review(nil), s.reviews[id]...)
	return c.JSON(http.StatusOK, out)
}

type addReviewRequest struct {
	Stars   int    `json:"stars"`
	Comment string `json:"comment"`
}

func (s *Server) handleAddReview(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.String(http.StatusUnprocessableEntity, "invalid provider id")
	}
	var req addReviewRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, "invalid payload")
	}
	if req.Stars < 1 || req.Stars > 5 {
		return c.String(http.StatusUnprocessableEntity, "stars must be between 1 and 5")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.providers[id]
	if !ok {
		return c.String(http.StatusNotFound, "Provider not found")
	}

	rev := domain.Review{ID: s.id(), ProviderID: id, Stars: req.Stars, Comment: req.Comment, CreatedAt: time.Now().UTC()}
	s.reviews[id] = append(s.reviews[id], rev)

	// Keep the listing's aggregate in step with its reviews.
	var total int
	for _, r := range s.reviews[id] {
		total += r.Stars
	}
	avg := float64(total) / float64(len(s.reviews[id]))
	p.Rating = &avg

	return c.JSON(http.StatusCreated, rev)
}
