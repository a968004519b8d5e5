package api

import (
	"context"
	"fmt"

	"github.com/pairpro/pairpro-cli/internal/core/domain"
	"github.com/pairpro/pairpro-cli/internal/core/ports"
)

type createJobRequest struct {
	Title       string   `json:"title"`
	ServiceType string   `json:"service_type"`
	City        string   `json:"city"`
	Description string   `json:"description,omitempty"`
	PhotoURLs   []string `json:"photos"`
}

type planRequest struct {
	Text string `json:"text"`
}

func (j *JobAPI) Mine(ctx context.Context) ([]domain.Job, error) {
	var jobs []domain.Job
	if err := j.c.getJSON(ctx, "/jobs/mine", nil, &jobs, true); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (j *JobAPI) Get(ctx context.Context, id int64) (*domain.Job, error) {
	var job domain.Job
	if err := j.c.getJSON(ctx, fmt.Sprintf("/jobs/%d", id), nil, &job, true); err != nil {
		return nil, err
	}
	return &job, nil
}

func (j *JobAPI) Create(ctx context.Context, input ports.CreateJobInput) (*domain.Job, error) {
	req := createJobRequest{
		Title:       input.Title,
		ServiceType: input.ServiceType,
		City:        input.City,
		Description: input.Description,
		PhotoURLs:   input.PhotoURLs,
	}
	if req.PhotoURLs == nil {
		req.PhotoURLs = []string{}
	}
	var job domain.Job
	if err := j.c.postJSON(ctx, "/jobs", req, &job, true); err != nil {
		return nil, err
	}
	return &job, nil
}

func (j *JobAPI) Plans(ctx context.Context, jobID int64) ([]domain.PlanItem, error) {
	var plans []domain.PlanItem
	if err := j.c.getJSON(ctx, fmt.Sprintf("/jobs/%d/plans", jobID), nil, &plans, true); err != nil {
		return nil, err
	}
	return plans, nil
}

func (j *JobAPI) AddPlan(ctx context.Context, jobID int64, text string) (*domain.PlanItem, error) {
	var plan domain.PlanItem
	if err := j.c.postJSON(ctx, fmt.Sprintf("/jobs/%d/plans", jobID), planRequest{Text: text}, &plan, true); err != nil {
		return nil, err
	}
	return &plan, nil
}
