package api

import "github.com/pairpro/pairpro-cli/internal/core/ports"

// The typed facades below share one transport Client so every remote call,
// authenticated or anonymous, goes through the same do() contract.

type AuthAPI struct{ c *Client }

type ProviderAPI struct{ c *Client }

type JobAPI struct{ c *Client }

type UploadAPI struct{ c *Client }

func NewAuthAPI(c *Client) *AuthAPI         { return &AuthAPI{c: c} }
func NewProviderAPI(c *Client) *ProviderAPI { return &ProviderAPI{c: c} }
func NewJobAPI(c *Client) *JobAPI           { return &JobAPI{c: c} }
func NewUploadAPI(c *Client) *UploadAPI     { return &UploadAPI{c: c} }

var (
	_ ports.AuthGateway     = (*AuthAPI)(nil)
	_ ports.ProviderGateway = (*ProviderAPI)(nil)
	_ ports.JobGateway      = (*JobAPI)(nil)
	_ ports.UploadGateway   = (*UploadAPI)(nil)
)
