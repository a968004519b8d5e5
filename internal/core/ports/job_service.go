package ports

import (
	"context"
	"io"

	"github.com/pairpro/pairpro-cli/internal/core/domain"
)

// PhotoFile is a local image picked for a new job.
type PhotoFile struct {
	Name    string
	Content io.Reader
}

// JobDetail is the composite view rendered by the job screen.
type JobDetail struct {
	Job   domain.Job
	Plans []domain.PlanItem
}

// JobService drives the job screens.
type JobService interface {
	Mine(ctx context.Context) ([]domain.Job, error)

	// Detail fetches the job, then its plan items.
	Detail(ctx context.Context, id int64) (*JobDetail, error)

	// Create uploads up to six photos to the media host (each via a signed
	// ticket), then creates the job referencing the hosted URLs. A failed
	// upload skips that photo; skipped filenames are reported back.
	Create(ctx context.Context, input CreateJobInput, photos []PhotoFile) (*domain.Job, []string, error)

	// AddPlanItem returns the server-canonical record for local append.
	AddPlanItem(ctx context.Context, jobID int64, text string) (*domain.PlanItem, error)
}
