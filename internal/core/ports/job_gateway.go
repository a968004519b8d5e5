package ports

import (
	"context"

	"github.com/pairpro/pairpro-cli/internal/core/domain"
)

// CreateJobInput carries the payload for POST /jobs. PhotoURLs reference
// media already uploaded to the third-party host.
type CreateJobInput struct {
	Title       string
	ServiceType string
	City        string
	Description string
	PhotoURLs   []string
}

// JobGateway wraps the authenticated job and plan-item endpoints.
type JobGateway interface {
	Mine(ctx context.Context) ([]domain.Job, error)
	Get(ctx context.Context, id int64) (*domain.Job, error)
	Create(ctx context.Context, input CreateJobInput) (*domain.Job, error)
	Plans(ctx context.Context, jobID int64) ([]domain.PlanItem, error)
	AddPlan(ctx context.Context, jobID int64, text string) (*domain.PlanItem, error)
}
