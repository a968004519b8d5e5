package api

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/pairpro/pairpro-cli/internal/core/domain"
	"github.com/pairpro/pairpro-cli/internal/core/ports"
	"github.com/pairpro/pairpro-cli/internal/stubapi"
)

// The gateway tests run against the in-memory backend so the full wire
// contract is exercised: form-encoded login, bearer headers, JSON bodies,
// plain-text rejections.

type backendFixture struct {
	stub   *stubapi.Server
	store  *memStore
	client *Client
}

func newBackend(t *testing.T) *backendFixture {
	t.Helper()
	stub := stubapi.New()
	srv := httptest.NewServer(stub.Handler())
	t.Cleanup(srv.Close)

	store := &memStore{}
	return &backendFixture{
		stub:   stub,
		store:  store,
		client: newTestClient(srv, store, 0),
	}
}

func (f *backendFixture) login(t *testing.T, email, password string) {
	t.Helper()
	auth := NewAuthAPI(f.client)
	token, err := auth.Login(context.Background(), email, password)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if err := f.store.Set(token); err != nil {
		t.Fatalf("store token: %v", err)
	}
}

func TestAuthAPI_SignupLoginMe(t *testing.T) {
	f := newBackend(t)
	auth := NewAuthAPI(f.client)

	user, err := auth.Signup(context.Background(), ports.SignupInput{
		Email: "alice@example.com", Password: "secret1", Role: domain.RoleClient,
	})
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if user.ID == 0 || user.Email != "alice@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	token, err := auth.Login(context.Background(), "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a token")
	}
	if err := f.store.Set(token); err != nil {
		t.Fatalf("store token: %v", err)
	}

	me, err := auth.Me(context.Background())
	if err != nil {
		t.Fatalf("Me returned error: %v", err)
	}
	if me.Email != "alice@example.com" || me.Role != domain.RoleClient {
		t.Fatalf("unexpected identity: %+v", me)
	}
}

func TestAuthAPI_DuplicateSignupBodyVerbatim(t *testing.T) {
	f := newBackend(t)
	auth := NewAuthAPI(f.client)
	f.stub.SeedUser("alice@example.com", "secret1", domain.RoleClient)

	_, err := auth.Signup(context.Background(), ports.SignupInput{
		Email: "alice@example.com", Password: "secret1", Role: domain.RoleClient,
	})
	if err == nil || err.Error() != "Email already registered" {
		t.Fatalf("expected the backend message verbatim, got %v", err)
	}
}

func TestAuthAPI_BadCredentials(t *testing.T) {
	f := newBackend(t)
	auth := NewAuthAPI(f.client)
	f.stub.SeedUser("alice@example.com", "secret1", domain.RoleClient)

	_, err := auth.Login(context.Background(), "alice@example.com", "nope-wrong")
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Status != 401 {
		t.Fatalf("expected 401 *Error, got %v", err)
	}
}

func TestAuthAPI_ForgotReset(t *testing.T) {
	f := newBackend(t)
	auth := NewAuthAPI(f.client)
	f.stub.SeedUser("alice@example.com", "secret1", domain.RoleClient)

	resetURL, err := auth.Forgot(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("Forgot returned error: %v", err)
	}
	if resetURL == "" {
		t.Fatalf("dev backend must echo the reset url")
	}

	// The token rides in the t query parameter of the reset link.
	tok := resetURL[len("/auth/reset?t="):]
	if err := auth.Reset(context.Background(), tok, "newpass1"); err != nil {
		t.Fatalf("Reset returned error: %v", err)
	}

	if _, err := auth.Login(context.Background(), "alice@example.com", "secret1"); err == nil {
		t.Fatalf("old password must stop working")
	}
	if _, err := auth.Login(context.Background(), "alice@example.com", "newpass1"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}

func TestAuthAPI_ForgotUnknownEmailNeutral(t *testing.T) {
	f := newBackend(t)
	auth := NewAuthAPI(f.client)

	resetURL, err := auth.Forgot(context.Background(), "ghost@example.com")
	if err != nil {
		t.Fatalf("Forgot must answer neutrally: %v", err)
	}
	if resetURL != "" {
		t.Fatalf("unknown email must not yield a reset url")
	}
}

func TestProviderAPI_ListFilterAndDetail(t *testing.T) {
	f := newBackend(t)
	providers := NewProviderAPI(f.client)
	f.stub.SeedProvider("Ana's Plumbing", "plumbing", "Lisbon", nil)
	f.stub.SeedProvider("Bo Tutoring", "tutoring", "Porto", nil)

	all, err := providers.List(context.Background(), ports.ProviderFilter{})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 providers, got %d", len(all))
	}

	filtered, err := providers.List(context.Background(), ports.ProviderFilter{City: "lisbon"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Name != "Ana's Plumbing" {
		t.Fatalf("city filter failed: %+v", filtered)
	}

	got, err := providers.Get(context.Background(), filtered[0].ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.ServiceType != "plumbing" {
		t.Fatalf("unexpected provider: %+v", got)
	}

	_, err = providers.Get(context.Background(), 9999)
	if err == nil || err.Error() != "Provider not found" {
		t.Fatalf("expected verbatim not-found body, got %v", err)
	}
}

func TestProviderAPI_CreateRequiresProviderRole(t *testing.T) {
	f := newBackend(t)
	providers := NewProviderAPI(f.client)

	f.stub.SeedUser("client@example.com", "secret1", domain.RoleClient)
	f.login(t, "client@example.com", "secret1")

	_, err := providers.Create(context.Background(), ports.CreateProviderInput{
		Name: "Ana", ServiceType: "plumbing", City: "Lisbon",
	})
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Status != 403 {
		t.Fatalf("expected 403, got %v", err)
	}

	f.stub.SeedUser("pro@example.com", "secret1", domain.RoleProvider)
	f.login(t, "pro@example.com", "secret1")

	created, err := providers.Create(context.Background(), ports.CreateProviderInput{
		Name: "Ana", ServiceType: "plumbing", City: "Lisbon",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected a server-assigned id")
	}
}

func TestProviderAPI_ReviewsUpdateRating(t *testing.T) {
	f := newBackend(t)
	providers := NewProviderAPI(f.client)
	p := f.stub.SeedProvider("Ana", "plumbing", "Lisbon", nil)

	r1, err := providers.AddReview(context.Background(), p.ID, ports.ReviewInput{Stars: 5, Comment: "great"})
	if err != nil {
		t.Fatalf("AddReview returned error: %v", err)
	}
	if r1.ID == 0 || r1.CreatedAt.IsZero() {
		t.Fatalf("expected the canonical record, got %+v", r1)
	}
	if _, err := providers.AddReview(context.Background(), p.ID, ports.ReviewInput{Stars: 3}); err != nil {
		t.Fatalf("AddReview returned error: %v", err)
	}

	got, err := providers.Get(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Rating == nil || *got.Rating != 4.0 {
		t.Fatalf("expected rating 4.0 after 5+3 stars, got %+v", got.Rating)
	}

	reviews, err := providers.Reviews(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("Reviews returned error: %v", err)
	}
	if len(reviews) != 2 {
		t.Fatalf("expected 2 reviews, got %d", len(reviews))
	}
}

func TestProviderAPI_Recommendations(t *testing.T) {
	f := newBackend(t)
	providers := NewProviderAPI(f.client)
	high := 4.9
	low := 3.0
	f.stub.SeedProvider("Top", "plumbing", "Lisbon", &high)
	f.stub.SeedProvider("Mid", "plumbing", "Lisbon", &low)
	f.stub.SeedProvider("Elsewhere", "plumbing", "Porto", &high)

	pros, err := providers.Recommendations(context.Background(), "Lisbon", "plumbing")
	if err != nil {
		t.Fatalf("Recommendations returned error: %v", err)
	}
	if len(pros) != 2 || pros[0].Name != "Top" {
		t.Fatalf("expected best-rated Lisbon pros first, got %+v", pros)
	}
}

func TestJobAPI_RoundTrip(t *testing.T) {
	f := newBackend(t)
	jobs := NewJobAPI(f.client)
	f.stub.SeedUser("client@example.com", "secret1", domain.RoleClient)
	f.login(t, "client@example.com", "secret1")

	created, err := jobs.Create(context.Background(), ports.CreateJobInput{
		Title:       "Fix sink",
		ServiceType: "plumbing",
		City:        "Lisbon",
		Description: "leaking since monday",
		PhotoURLs:   []string{"https://media.example/a.jpg"},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID == 0 || created.Status != "open" {
		t.Fatalf("unexpected job: %+v", created)
	}
	if len(created.Photos) != 1 {
		t.Fatalf("expected the photo url echoed, got %+v", created.Photos)
	}

	mine, err := jobs.Mine(context.Background())
	if err != nil {
		t.Fatalf("Mine returned error: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != created.ID {
		t.Fatalf("unexpected job list: %+v", mine)
	}

	item, err := jobs.AddPlan(context.Background(), created.ID, "buy parts")
	if err != nil {
		t.Fatalf("AddPlan returned error: %v", err)
	}
	if item.Text != "buy parts" || item.Done {
		t.Fatalf("unexpected plan item: %+v", item)
	}

	plans, err := jobs.Plans(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Plans returned error: %v", err)
	}
	if len(plans) != 1 {
		t.Fatalf("expected 1 plan item, got %d", len(plans))
	}
}

func TestJobAPI_OtherOwnersJobsLookAbsent(t *testing.T) {
	f := newBackend(t)
	jobs := NewJobAPI(f.client)

	f.stub.SeedUser("a@example.com", "secret1", domain.RoleClient)
	f.stub.SeedUser("b@example.com", "secret1", domain.RoleClient)

	f.login(t, "a@example.com", "secret1")
	created, err := jobs.Create(context.Background(), ports.CreateJobInput{
		Title: "Fix sink", ServiceType: "plumbing", City: "Lisbon",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	f.login(t, "b@example.com", "secret1")
	_, err = jobs.Get(context.Background(), created.ID)
	if err == nil || err.Error() != "Job not found" {
		t.Fatalf("expected not-found for foreign job, got %v", err)
	}
}

func TestExpiredTokenClearsSession(t *testing.T) {
	f := newBackend(t)
	jobs := NewJobAPI(f.client)
	f.stub.SeedUser("a@example.com", "secret1", domain.RoleClient)

	if err := f.store.Set(f.stub.ExpiredToken("a@example.com")); err != nil {
		t.Fatalf("store token: %v", err)
	}

	_, err := jobs.Mine(context.Background())
	if !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	if f.store.ok {
		t.Fatalf("the stale credential must be gone")
	}
}

func TestUploadAPI_Sign(t *testing.T) {
	f := newBackend(t)
	uploads := NewUploadAPI(f.client)
	f.stub.SeedUser("a@example.com", "secret1", domain.RoleClient)
	f.login(t, "a@example.com", "secret1")

	ticket, err := uploads.Sign(context.Background())
	if err != nil {
		t.Fatalf("Sign returned error: %v", err)
	}
	if ticket.CloudName != f.stub.CloudName || ticket.Signature == "" || ticket.Timestamp == 0 {
		t.Fatalf("incomplete ticket: %+v", ticket)
	}
}
