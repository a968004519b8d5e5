package upload

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/pairpro/pairpro-cli/internal/core/domain"
)

func testTicket() *domain.UploadTicket {
	return &domain.UploadTicket{
		CloudName: "demo-cloud",
		APIKey:    "key-123",
		Timestamp: 1700000000,
		Signature: "sig-abc",
	}
}

func TestCloudinaryUploader_Upload(t *testing.T) {
	var gotPath, gotFile, gotKey, gotTS, gotSig, gotContent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		gotKey = r.FormValue("api_key")
		gotTS = r.FormValue("timestamp")
		gotSig = r.FormValue("signature")

		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form file: %v", err)
		} else {
			gotFile = header.Filename
			data, _ := io.ReadAll(file)
			gotContent = string(data)
			file.Close()
		}
		w.Write([]byte(`{"secure_url":"https://res.example/demo-cloud/sink.jpg"}`))
	}))
	defer srv.Close()

	u := NewCloudinaryUploader(Options{BaseURL: srv.URL, Logger: zerolog.Nop()})
	url, err := u.Upload(context.Background(), testTicket(), "sink.jpg", strings.NewReader("jpeg-bytes"))
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}

	if url != "https://res.example/demo-cloud/sink.jpg" {
		t.Fatalf("unexpected url: %q", url)
	}
	if gotPath != "/demo-cloud/image/upload" {
		t.Fatalf("unexpected path: %q", gotPath)
	}
	if gotFile != "sink.jpg" || gotContent != "jpeg-bytes" {
		t.Fatalf("file part wrong: name=%q content=%q", gotFile, gotContent)
	}
	if gotKey != "key-123" || gotTS != "1700000000" || gotSig != "sig-abc" {
		t.Fatalf("signature fields wrong: key=%q ts=%q sig=%q", gotKey, gotTS, gotSig)
	}
}

func TestCloudinaryUploader_RejectedUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Invalid Signature"}}`))
	}))
	defer srv.Close()

	u := NewCloudinaryUploader(Options{BaseURL: srv.URL, Logger: zerolog.Nop()})
	_, err := u.Upload(context.Background(), testTicket(), "sink.jpg", strings.NewReader("x"))
	if err == nil || !strings.Contains(err.Error(), "Invalid Signature") {
		t.Fatalf("expected rejection with body, got %v", err)
	}
}
