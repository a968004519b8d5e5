package api

import (
	"context"

	"github.com/pairpro/pairpro-cli/internal/core/domain"
)

// Sign obtains a one-shot signed-upload descriptor. The actual upload goes
// straight to the media host, never through the backend.
func (u *UploadAPI) Sign(ctx context.Context) (*domain.UploadTicket, error) {
	var ticket domain.UploadTicket
	if err := u.c.postJSON(ctx, "/uploads/sign", nil, &ticket, true); err != nil {
		return nil, err
	}
	return &ticket, nil
}
