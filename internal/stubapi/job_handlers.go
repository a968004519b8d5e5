package stubapi

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pairpro/pairpro-cli/internal/core/domain"
)

func (s *Server) handleMyJobs(c echo.Context) error {
	rec, err := s.authenticate(c)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Job, 0)
	for id, job := range s.jobs {
		if s.jobOwner[id] == rec.ID {
			out = append(out, *job)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleGetJob(c echo.Context) error {
	rec, err := s.authenticate(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return c.String(http.StatusUnprocessableEntity, "invalid job id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	// Other owners' jobs look absent, not forbidden.
	if !ok || s.jobOwner[id] != rec.ID {
		return c.String(http.StatusNotFound, "Job not found")
	}
	return c.JSON(http.StatusOK, job)
}

type createJobRequest struct {
	Title       string   `json:"title"`
	ServiceType string   `json:"service_type"`
	City        string   `json:"city"`
	Description string   `json:"description,omitempty"`
	Photos      []string `json:"photos"`
}

func (s *Server) handleCreateJob(c echo.Context) error {
	rec, err := s.authenticate(c)
	if err != nil {
		return err
	}
	if rec.Role != domain.RoleClient {
		return c.String(http.StatusForbidden, "Only clients can post jobs")
	}

	var req createJobRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, "invalid payload")
	}
	if req.Title == "" || req.ServiceType == "" || req.City == "" {
		return c.String(http.StatusUnprocessableEntity, "title, service_type and city are required")
	}
	if req.Photos == nil {
		req.Photos = []string{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	job := &domain.Job{
		ID:          s.id(),
		Title:       req.Title,
		ServiceType: req.ServiceType,
		City:        req.City,
		Description: req.Description,
		Status:      "open",
		Photos:      req.Photos,
		CreatedAt:   time.Now().UTC(),
	}
	s.jobs[job.ID] = job
	s.jobOwner[job.ID] = rec.ID
	return c.JSON(http.StatusCreated, job)
}

func (s *Server) handleListPlans(c echo.Context) error {
	rec, err := s.authenticate(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return c.String(http.StatusUnprocessableEntity, "invalid job id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[id]; !ok || s.jobOwner[id] != rec.ID {
		return c.String(http.StatusNotFound, "Job not found")
	}
	out := append([]domain.PlanItem(nil), s.plans[id]...)
	return c.JSON(http.StatusOK, out)
}

type addPlanRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleAddPlan(c echo.Context) error {
	rec, err := s.authenticate(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return c.String(http.StatusUnprocessableEntity, "invalid job id")
	}
	var req addPlanRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, "invalid payload")
	}
	if req.Text == "" {
		return c.String(http.StatusUnprocessableEntity, "text is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[id]; !ok || s.jobOwner[id] != rec.ID {
		return c.String(http.StatusNotFound, "Job not found")
	}
	item := domain.PlanItem{ID: s.id(), Text: req.Text, Done: false, CreatedAt: time.Now().UTC()}
	s.plans[id] = append(s.plans[id], item)
	return c.JSON(http.StatusCreated, item)
}

// handleSignUpload issues a direct-upload descriptor for the media host.
func (s *Server) handleSignUpload(c echo.Context) error {
	if _, err := s.authenticate(c); err != nil {
		return err
	}

	ts := time.Now().Unix()
	mac := hmac.New(sha1.New, []byte(s.JWTSecret))
	mac.Write([]byte(strconv.FormatInt(ts, 10)))
	return c.JSON(http.StatusOK, domain.UploadTicket{
		CloudName: s.CloudName,
		APIKey:    "stub-api-key",
		Timestamp: ts,
		Signature: hex.EncodeToString(mac.Sum(nil)),
	})
}
