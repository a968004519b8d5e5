package ports

import (
	"context"
	"io"

	"github.com/pairpro/pairpro-cli/internal/core/domain"
)

// UploadGateway obtains signed-upload descriptors from the API.
type UploadGateway interface {
	Sign(ctx context.Context) (*domain.UploadTicket, error)
}

// Uploader pushes one file to the third-party media host using a signed
// ticket and returns the hosted URL.
type Uploader interface {
	Upload(ctx context.Context, ticket *domain.UploadTicket, filename string, content io.Reader) (url string, err error)
}
