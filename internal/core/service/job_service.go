package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/pairpro/pairpro-cli/internal/core/domain"
	"github.com/pairpro/pairpro-cli/internal/core/ports"
)

// maxPhotosPerJob caps how many images a single job creation will upload.
const maxPhotosPerJob = 6

// JobService implements the job screens' use cases, including the two-step
// photo flow: signed upload to the media host, then job creation referencing
// the hosted URLs.
type JobService struct {
	jobs     ports.JobGateway
	signer   ports.UploadGateway
	uploader ports.Uploader
	validate *validator.Validate
	log      zerolog.Logger
}

func NewJobService(jobs ports.JobGateway, signer ports.UploadGateway, uploader ports.Uploader, log zerolog.Logger) *JobService {
	return &JobService{
		jobs:     jobs,
		signer:   signer,
		uploader: uploader,
		validate: validator.New(),
		log:      log,
	}
}

type jobForm struct {
	Title       string `validate:"required"`
	ServiceType string `validate:"required"`
	City        string `validate:"required"`
}

func (s *JobService) Mine(ctx context.Context) ([]domain.Job, error) {
	return s.jobs.Mine(ctx)
}

func (s *JobService) Detail(ctx context.Context, id int64) (*ports.JobDetail, error) {
	job, err := s.jobs.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	plans, err := s.jobs.Plans(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ports.JobDetail{Job: *job, Plans: plans}, nil
}

func (s *JobService) Create(ctx context.Context, input ports.CreateJobInput, photos []ports.PhotoFile) (*domain.Job, []string, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.ServiceType = strings.TrimSpace(input.ServiceType)
	input.City = strings.TrimSpace(input.City)
	input.Description = strings.TrimSpace(input.Description)

	form := jobForm{Title: input.Title, ServiceType: input.ServiceType, City: input.City}
	if err := s.validate.Struct(form); err != nil {
		return nil, nil, humanize(err)
	}

	if len(photos) > maxPhotosPerJob {
		photos = photos[:maxPhotosPerJob]
	}

	// An individual upload failure skips that photo rather than aborting
	// the whole flow; the job is still created without it.
	var skipped []string
	for _, photo := range photos {
		url, err := s.uploadOne(ctx, photo)
		if err != nil {
			s.log.Warn().Err(err).Str("file", photo.Name).Msg("photo upload failed, continuing without it")
			skipped = append(skipped, photo.Name)
			continue
		}
		input.PhotoURLs = append(input.PhotoURLs, url)
	}

	job, err := s.jobs.Create(ctx, input)
	if err != nil {
		return nil, skipped, err
	}
	s.log.Info().Int64("job_id", job.ID).Int("photos", len(input.PhotoURLs)).Msg("job created")
	return job, skipped, nil
}

func (s *JobService) uploadOne(ctx context.Context, photo ports.PhotoFile) (string, error) {
	ticket, err := s.signer.Sign(ctx)
	if err != nil {
		return "", err
	}
	return s.uploader.Upload(ctx, ticket, photo.Name, photo.Content)
}

func (s *JobService) AddPlanItem(ctx context.Context, jobID int64, text string) (*domain.PlanItem, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("text is required")
	}
	return s.jobs.AddPlan(ctx, jobID, text)
}
