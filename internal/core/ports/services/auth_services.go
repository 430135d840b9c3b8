package services

import (
	"context"

	"github.com/vistahomes/real_estate_crm/internal/dto"
)

// AuthSvcFacade defines the authentication operations. Token refresh against
// an external identity provider is out of scope; only local credential
// verification and JWT issuing live here.
type AuthSvcFacade interface {
	// Login verifies the agent's credentials and returns a signed JWT plus
	// the agent profile. Returns apperrors.ErrUnauthorized for unknown
	// emails, wrong passwords and deactivated accounts alike.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
