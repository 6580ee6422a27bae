// Package hmsauth adapts the hospital backend's login endpoint to the
// ports.AuthProvider interface.
package hmsauth

import (
	"context"

	"github.com/carebridge/hms-ui/internal/clients/hms"
	domainauth "github.com/carebridge/hms-ui/internal/domain/auth"
	apperrors "github.com/carebridge/hms-ui/internal/errors"
	"github.com/carebridge/hms-ui/internal/ports"
)

// Provider authenticates credentials against the backend REST API.
type Provider struct {
	api *hms.Client
}

var _ ports.AuthProvider = (*Provider)(nil)

// NewProvider constructs a Provider over an API client.
func NewProvider(api *hms.Client) *Provider {
	return &Provider{api: api}
}

// Authenticate exchanges a username and password for a bearer token and
// the identity the backend associates with it. Roles outside the known
// set are rejected so no session can be minted for them.
func (p *Provider) Authenticate(ctx context.Context, creds ports.Credentials) (ports.AuthResult, error) {
	resp, err := p.api.Login(ctx, creds.Username, creds.Password)
	if err != nil {
		return ports.AuthResult{}, err
	}

	role := domainauth.Role(resp.Role)
	if !role.Known() {
		return ports.AuthResult{}, apperrors.Backend("login returned unrecognized role " + resp.Role)
	}

	return ports.AuthResult{
		Token: resp.Token,
		Identity: domainauth.Identity{
			ID:          resp.ID,
			Username:    resp.Username,
			DisplayName: resp.Name,
		},
		Role: role,
	}, nil
}
