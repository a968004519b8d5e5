// Package api implements the authenticated-fetch contract against the
// remote PairPro backend: bearer credential attachment, bounded timeouts,
// and the hard 401 rule that invalidates the local session.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pairpro/pairpro-cli/internal/core/domain"
	"github.com/pairpro/pairpro-cli/internal/core/ports"
	"github.com/pairpro/pairpro-cli/internal/metrics"
)

const defaultTimeout = 10 * time.Second

// Error is a server-rejected response (non-2xx other than a credential
// rejection). Body carries the response body verbatim; backends are expected
// to return human-readable plain text or JSON.
type Error struct {
	Status int
	Body   string
}

func (e *Error) Error() string {
	if strings.TrimSpace(e.Body) == "" {
		return fmt.Sprintf("request failed (%d)", e.Status)
	}
	return e.Body
}

// Client is the single HTTP gateway to the backend. All remote calls, from
// every screen, go through do().
type Client struct {
	baseURL string
	httpc   *http.Client
	store   ports.TokenStore
	timeout time.Duration
	log     zerolog.Logger
}

// Options configures a Client. BaseURL is the only required field.
type Options struct {
	BaseURL string
	Store   ports.TokenStore
	// Timeout bounds every request; zero means the 10 s project default.
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpc := opts.HTTPClient
	if httpc == nil {
		httpc = &http.Client{}
	}
	return &Client{
		baseURL: strings.TrimSuffix(opts.BaseURL, "/"),
		httpc:   httpc,
		store:   opts.Store,
		timeout: timeout,
		log:     opts.Logger,
	}
}

// do issues one request and returns the raw response body. authed attaches
// the stored credential; a 401 then clears the store immediately, there is
// no retry with stale credentials.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, contentType string, body io.Reader, authed bool) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if authed {
		tok, ok := c.store.Get()
		if !ok {
			return nil, domain.ErrNoSession
		}
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		if isTimeout(err) {
			metrics.RequestsTotal.WithLabelValues(method, "timeout").Inc()
			metrics.RequestDuration.WithLabelValues("timeout").Observe(time.Since(start).Seconds())
			return nil, fmt.Errorf("%w: %s %s", domain.ErrRequestTimeout, method, path)
		}
		metrics.RequestsTotal.WithLabelValues(method, "network_error").Inc()
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			metrics.RequestsTotal.WithLabelValues(method, "timeout").Inc()
			return nil, fmt.Errorf("%w: %s %s", domain.ErrRequestTimeout, method, path)
		}
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized && authed:
		// Hard rule: a credential rejection invalidates the local session.
		metrics.RequestsTotal.WithLabelValues(method, "auth_rejected").Inc()
		metrics.AuthRejectedTotal.Inc()
		c.log.Warn().Str("path", path).Msg("credential rejected, clearing session")
		if err := c.store.Clear(); err != nil {
			c.log.Error().Err(err).Msg("failed to clear rejected credential")
		}
		return nil, domain.ErrSessionExpired
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		metrics.RequestsTotal.WithLabelValues(method, "rejected").Inc()
		metrics.RequestDuration.WithLabelValues("rejected").Observe(time.Since(start).Seconds())
		return nil, &Error{Status: resp.StatusCode, Body: string(data)}
	}

	metrics.RequestsTotal.WithLabelValues(method, "ok").Inc()
	metrics.RequestDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
	return data, nil
}

// Health pings GET /health so screens can surface backend connectivity.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/health", nil, "", nil, false)
	return err
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any, authed bool) error {
	data, err := c.do(ctx, http.MethodGet, path, query, "", nil, authed)
	if err != nil {
		return err
	}
	return decode(data, out)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any, authed bool) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = strings.NewReader(string(raw))
	}
	data, err := c.do(ctx, http.MethodPost, path, nil, "application/json", body, authed)
	if err != nil {
		return err
	}
	return decode(data, out)
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values, out any, authed bool) error {
	data, err := c.do(ctx, http.MethodPost, path, nil, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()), authed)
	if err != nil {
		return err
	}
	return decode(data, out)
}

// decode parses a success body into out. The backend has been seen returning
// non-JSON success bodies; *string targets receive those verbatim.
func decode(data []byte, out any) error {
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		if s, ok := out.(*string); ok {
			*s = string(data)
			return nil
		}
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne interface{ Timeout() bool }
	return errors.As(err, &ne) && ne.Timeout()
}
