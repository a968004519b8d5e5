// Package upload pushes job photos directly to the third-party media host
// using the signed-upload descriptors issued by the backend.
package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/pairpro/pairpro-cli/internal/core/domain"
	"github.com/pairpro/pairpro-cli/internal/metrics"
)

const (
	defaultBaseURL = "https://api.cloudinary.com/v1_1"
	// Uploads carry image bodies, so they get the long end of the 10-15 s
	// project timeout convention.
	defaultTimeout = 15 * time.Second
)

// CloudinaryUploader implements ports.Uploader against the Cloudinary
// unauthenticated signed-upload endpoint.
type CloudinaryUploader struct {
	baseURL string
	httpc   *http.Client
	timeout time.Duration
	log     zerolog.Logger
}

// Options configures a CloudinaryUploader. Zero values select the real
// Cloudinary endpoint and the default timeout.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
	Logger     zerolog.Logger
}

func NewCloudinaryUploader(opts Options) *CloudinaryUploader {
	base := opts.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	httpc := opts.HTTPClient
	if httpc == nil {
		httpc = &http.Client{}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &CloudinaryUploader{baseURL: base, httpc: httpc, timeout: timeout, log: opts.Logger}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
}

// Upload posts one file as multipart form data and returns the hosted URL.
func (u *CloudinaryUploader) Upload(ctx context.Context, ticket *domain.UploadTicket, filename string, content io.Reader) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", fmt.Errorf("read photo: %w", err)
	}
	_ = w.WriteField("api_key", ticket.APIKey)
	_ = w.WriteField("timestamp", strconv.FormatInt(ticket.Timestamp, 10))
	_ = w.WriteField("signature", ticket.Signature)
	if err := w.Close(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	target := fmt.Sprintf("%s/%s/image/upload", u.baseURL, ticket.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := u.httpc.Do(req)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("upload photo: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("read upload response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.UploadsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("upload rejected (%d): %s", resp.StatusCode, body)
	}

	var parsed uploadResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		metrics.UploadsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("decode upload response: %w", err)
	}

	metrics.UploadsTotal.WithLabelValues("ok").Inc()
	u.log.Debug().Str("file", filename).Msg("photo uploaded")
	return parsed.SecureURL, nil
}
