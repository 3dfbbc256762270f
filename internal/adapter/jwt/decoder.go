package jwt

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sm8ta/hospital_frontend/internal/core/domain"
	"github.com/sm8ta/hospital_frontend/internal/core/ports"
)

var ErrNotJWT = errors.New("token is not a JWT")

// ClaimsDecoder reads claims without verifying the signature: the client has
// no key, and only the backend decides whether a token is valid.
type ClaimsDecoder struct {
	parser *jwt.Parser
	logger ports.LoggerPort
}

func NewClaimsDecoder(logger ports.LoggerPort) *ClaimsDecoder {
	return &ClaimsDecoder{
		parser: jwt.NewParser(),
		logger: logger,
	}
}

func (d *ClaimsDecoder) DecodeToken(token string) (*domain.TokenClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := d.parser.ParseUnverified(token, claims); err != nil {
		d.logger.Debug("Failed to parse jwt", map[string]interface{}{
			"error":  err.Error(),
			"method": "DecodeToken",
		})
		return nil, fmt.Errorf("%w: %v", ErrNotJWT, err)
	}

	out := &domain.TokenClaims{}
	if sub, err := claims.GetSubject(); err == nil {
		out.Subject = sub
	}
	// flask-jwt-extended puts the identity in "sub" and may carry role and
	// username as additional claims
	if role, ok := claims["role"].(string); ok {
		out.Role = domain.Role(role)
	}
	if username, ok := claims["username"].(string); ok {
		out.Username = username
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		v := exp.Unix()
		out.ExpiresAt = &v
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		v := iat.Unix()
		out.IssuedAt = &v
	}
	return out, nil
}
