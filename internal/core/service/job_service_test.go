package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/pairpro/pairpro-cli/internal/core/domain"
	"github.com/pairpro/pairpro-cli/internal/core/ports"
)

type stubJobGateway struct {
	job       *domain.Job
	plans     []domain.PlanItem
	lastInput ports.CreateJobInput

	createCalls int
	planCalls   int
}

func (g *stubJobGateway) Mine(context.Context) ([]domain.Job, error) {
	return []domain.Job{*g.job}, nil
}

func (g *stubJobGateway) Get(context.Context, int64) (*domain.Job, error) { return g.job, nil }

func (g *stubJobGateway) Create(_ context.Context, input ports.CreateJobInput) (*domain.Job, error) {
	g.createCalls++
	g.lastInput = input
	return &domain.Job{ID: 11, Title: input.Title, ServiceType: input.ServiceType, City: input.City, Status: "open", Photos: input.PhotoURLs}, nil
}

func (g *stubJobGateway) Plans(context.Context, int64) ([]domain.PlanItem, error) {
	return g.plans, nil
}

func (g *stubJobGateway) AddPlan(_ context.Context, jobID int64, text string) (*domain.PlanItem, error) {
	g.planCalls++
	return &domain.PlanItem{ID: 5, Text: text}, nil
}

type stubSigner struct{ calls int }

func (s *stubSigner) Sign(context.Context) (*domain.UploadTicket, error) {
	s.calls++
	return &domain.UploadTicket{CloudName: "demo", APIKey: "key", Timestamp: 1, Signature: "sig"}, nil
}

type stubUploader struct {
	failFor map[string]bool
	calls   int
}

func (u *stubUploader) Upload(_ context.Context, _ *domain.UploadTicket, filename string, _ io.Reader) (string, error) {
	u.calls++
	if u.failFor[filename] {
		return "", errors.New("media host rejected")
	}
	return "https://media.example/" + filename, nil
}

func newJobFixture() (*JobService, *stubJobGateway, *stubSigner, *stubUploader) {
	gw := &stubJobGateway{job: &domain.Job{ID: 11, Title: "Fix sink", Status: "open"}}
	signer := &stubSigner{}
	uploader := &stubUploader{failFor: map[string]bool{}}
	return NewJobService(gw, signer, uploader, zerolog.Nop()), gw, signer, uploader
}

func photo(name string) ports.PhotoFile {
	return ports.PhotoFile{Name: name, Content: strings.NewReader("jpeg-bytes")}
}

func TestJobService_Create_Validation(t *testing.T) {
	svc, gw, _, uploader := newJobFixture()

	_, _, err := svc.Create(context.Background(), ports.CreateJobInput{ServiceType: "plumbing", City: "Lisbon"}, nil)
	if err == nil {
		t.Fatalf("expected error for missing title")
	}
	if gw.createCalls != 0 || uploader.calls != 0 {
		t.Fatalf("nothing may leave the process on validation failure")
	}
}

func TestJobService_Create_CapsPhotos(t *testing.T) {
	svc, _, signer, uploader := newJobFixture()

	var photos []ports.PhotoFile
	for i := 0; i < 9; i++ {
		photos = append(photos, photo(fmt.Sprintf("p%d.jpg", i)))
	}

	job, skipped, err := svc.Create(context.Background(), ports.CreateJobInput{
		Title: "Fix sink", ServiceType: "plumbing", City: "Lisbon",
	}, photos)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if uploader.calls != 6 || signer.calls != 6 {
		t.Fatalf("expected 6 uploads, got uploader=%d signer=%d", uploader.calls, signer.calls)
	}
	if len(skipped) != 0 {
		t.Fatalf("unexpected skips: %v", skipped)
	}
	if len(job.Photos) != 6 {
		t.Fatalf("expected 6 hosted URLs, got %d", len(job.Photos))
	}
}

func TestJobService_Create_SkipsFailedUploads(t *testing.T) {
	svc, gw, _, uploader := newJobFixture()
	uploader.failFor["bad.jpg"] = true

	job, skipped, err := svc.Create(context.Background(), ports.CreateJobInput{
		Title: "Fix sink", ServiceType: "plumbing", City: "Lisbon",
	}, []ports.PhotoFile{photo("ok.jpg"), photo("bad.jpg")})
	if err != nil {
		t.Fatalf("a failed upload must not abort the job: %v", err)
	}
	if len(skipped) != 1 || skipped[0] != "bad.jpg" {
		t.Fatalf("expected bad.jpg skipped, got %v", skipped)
	}
	if len(gw.lastInput.PhotoURLs) != 1 || gw.lastInput.PhotoURLs[0] != "https://media.example/ok.jpg" {
		t.Fatalf("unexpected photo urls: %v", gw.lastInput.PhotoURLs)
	}
	if job == nil {
		t.Fatalf("expected created job")
	}
}

func TestJobService_Detail(t *testing.T) {
	svc, gw, _, _ := newJobFixture()
	gw.plans = []domain.PlanItem{{ID: 1, Text: "buy parts"}}

	detail, err := svc.Detail(context.Background(), 11)
	if err != nil {
		t.Fatalf("Detail returned error: %v", err)
	}
	if detail.Job.ID != 11 || len(detail.Plans) != 1 {
		t.Fatalf("unexpected detail: %+v", detail)
	}
}

func TestJobService_AddPlanItem(t *testing.T) {
	svc, gw, _, _ := newJobFixture()

	if _, err := svc.AddPlanItem(context.Background(), 11, "   "); err == nil {
		t.Fatalf("expected error for empty text")
	}
	if gw.planCalls != 0 {
		t.Fatalf("expected no network call, got %d", gw.planCalls)
	}

	item, err := svc.AddPlanItem(context.Background(), 11, " buy parts ")
	if err != nil {
		t.Fatalf("AddPlanItem returned error: %v", err)
	}
	if item.Text != "buy parts" {
		t.Fatalf("expected trimmed text, got %q", item.Text)
	}
}
