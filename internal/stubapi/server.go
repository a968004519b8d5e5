// Package stubapi is an in-memory PairPro backend for tests. Handlers mirror
// the production API's observable contract: form-encoded login issuing a
// bearer token, plain-text error bodies on the auth routes, JSON resources
// elsewhere.
package stubapi

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/crypto/bcrypt"

	"github.com/pairpro/pairpro-cli/internal/core/domain"
)

const tokenTTL = 24 * time.Hour

type userRecord struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         string
}

// Server holds the in-memory state behind the stub handlers.
type Server struct {
	JWTSecret string
	CloudName string

	mu          sync.Mutex
	users       map[string]*userRecord // keyed by email
	providers   map[int64]*domain.Provider
	reviews     map[int64][]domain.Review
	jobs        map[int64]*domain.Job
	jobOwner    map[int64]int64
	plans       map[int64][]domain.PlanItem
	resetTokens map[string]string // token -> email
	nextID      int64
}

func New() *Server {
	return &Server{
		JWTSecret:   "stub-secret",
		CloudName:   "stub-cloud",
		users:       make(map[string]*userRecord),
		providers:   make(map[int64]*domain.Provider),
		reviews:     make(map[int64][]domain.Review),
		jobs:        make(map[int64]*domain.Job),
		jobOwner:    make(map[int64]int64),
		plans:       make(map[int64][]domain.PlanItem),
		resetTokens: make(map[string]string),
	}
}

// Handler returns the Echo instance with all routes registered.
func (s *Server) Handler() http.Handler {
	e := echo.New()
	e.HideBanner = true
	e.Use(echomiddleware.Recover())

	e.POST("/auth/signup", s.handleSignup)
	e.POST("/auth/login", s.handleLogin)
	e.GET("/auth/me", s.handleMe)
	e.POST("/auth/forgot", s.handleForgot)
	e.POST("/auth/reset", s.handleReset)

	e.GET("/providers", s.handleListProviders)
	e.GET("/providers/recommendations", s.handleRecommendations)
	e.GET("/providers/:id", s.handleGetProvider)
	e.POST("/providers", s.handleCreateProvider)
	e.GET("/providers/:id/reviews", s.handleListReviews)
	e.POST("/providers/:id/reviews", s.handleAddReview)

	e.GET("/jobs/mine", s.handleMyJobs)
	e.GET("/jobs/:id", s.handleGetJob)
	e.POST("/jobs", s.handleCreateJob)
	e.GET("/jobs/:id/plans", s.handleListPlans)
	e.POST("/jobs/:id/plans", s.handleAddPlan)

	e.POST("/uploads/sign", s.handleSignUpload)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	return e
}

func (s *Server) id() int64 {
	s.nextID++
	return s.nextID
}

// SeedUser registers an account directly, bypassing the signup handler.
func (s *Server) SeedUser(email, password, role string) *domain.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := &userRecord{ID: s.id(), Email: email, PasswordHash: string(hash), Role: role}
	s.users[email] = rec
	return &domain.User{ID: rec.ID, Email: rec.Email, Role: rec.Role}
}

// SeedProvider inserts a directory entry directly.
func (s *Server) SeedProvider(name, serviceType, city string, rating *float64) *domain.Provider {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := &domain.Provider{ID: s.id(), Name: name, ServiceType: serviceType, City: city, Rating: rating}
	s.providers[p.ID] = p
	return p
}

func parseID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
