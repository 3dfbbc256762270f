package ports

import (
	"context"

	"github.com/sm8ta/hospital_frontend/internal/core/domain"
)

// TokenDecoder reads claims from a bearer token. It does not verify the
// signature; the backend is the only authority on validity.
type TokenDecoder interface {
	DecodeToken(token string) (*domain.TokenClaims, error)
}

type AuthAPI interface {
	Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)
}
