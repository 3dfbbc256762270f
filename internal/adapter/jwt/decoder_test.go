package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sm8ta/hospital_frontend/internal/core/domain"
)

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}

func TestDecodeToken(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      "42",
		"role":     "Doctor",
		"username": "house",
		"exp":      exp.Unix(),
	})
	signed, err := token.SignedString([]byte("server-side-secret"))
	require.NoError(t, err)

	claims, err := NewClaimsDecoder(nopLogger{}).DecodeToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, domain.RoleDoctor, claims.Role)
	assert.Equal(t, "house", claims.Username)
	require.NotNil(t, claims.ExpiresAt)
	assert.Equal(t, exp.Unix(), *claims.ExpiresAt)
	assert.Nil(t, claims.IssuedAt)
}

func TestDecodeToken_Opaque(t *testing.T) {
	_, err := NewClaimsDecoder(nopLogger{}).DecodeToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrNotJWT)
}
