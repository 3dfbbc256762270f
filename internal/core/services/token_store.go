package services

import (
	"context"

	"github.com/sm8ta/hospital_frontend/internal/core/domain"
	"github.com/sm8ta/hospital_frontend/internal/core/ports"
)

// TokenStore persists the bearer token and its role/user claims as one
// group. Reads never fail: a backend error is logged and reported as absent.
type TokenStore struct {
	storage ports.StoragePort
	logger  ports.LoggerPort
}

func NewTokenStore(storage ports.StoragePort, logger ports.LoggerPort) *TokenStore {
	return &TokenStore{
		storage: storage,
		logger:  logger,
	}
}

// Save stores the login response. A response without a token is ignored.
func (s *TokenStore) Save(ctx context.Context, resp *domain.LoginResponse) error {
	if resp == nil || resp.AccessToken == "" {
		return nil
	}

	entries := []struct{ key, value string }{
		{domain.TokenKey, resp.AccessToken},
		{domain.RoleKey, string(resp.Role)},
		{domain.UserIDKey, resp.UserID.String()},
	}
	for i, e := range entries {
		if err := s.storage.SetItem(ctx, e.key, e.value); err != nil {
			s.logger.Error("Failed to save session", map[string]interface{}{
				"key":   e.key,
				"error": err.Error(),
			})
			// roll back so a token never outlives its role
			for _, done := range entries[:i] {
				_ = s.storage.RemoveItem(ctx, done.key)
			}
			return err
		}
	}

	s.logger.Info("Session saved", map[string]interface{}{
		"role":    resp.Role,
		"user_id": resp.UserID.String(),
	})
	return nil
}

func (s *TokenStore) Token(ctx context.Context) (string, bool) {
	return s.get(ctx, domain.TokenKey)
}

func (s *TokenStore) Role(ctx context.Context) (domain.Role, bool) {
	role, ok := s.get(ctx, domain.RoleKey)
	return domain.Role(role), ok
}

func (s *TokenStore) UserID(ctx context.Context) (string, bool) {
	return s.get(ctx, domain.UserIDKey)
}

// IsAuthenticated is presence based; expiry is the backend's call.
func (s *TokenStore) IsAuthenticated(ctx context.Context) bool {
	_, ok := s.Token(ctx)
	return ok
}

// AuthHeaders always carries the JSON content type and adds the bearer
// header only when a token exists.
func (s *TokenStore) AuthHeaders(ctx context.Context) map[string]string {
	headers := map[string]string{
		"Content-Type": "application/json",
	}
	if token, ok := s.Token(ctx); ok {
		headers["Authorization"] = "Bearer " + token
	}
	return headers
}

func (s *TokenStore) Snapshot(ctx context.Context) domain.Session {
	token, _ := s.Token(ctx)
	role, _ := s.Role(ctx)
	userID, _ := s.UserID(ctx)
	return domain.Session{
		Token:  token,
		Role:   role,
		UserID: userID,
	}
}

// Clear removes all three entries. Clearing an empty store is a no-op.
func (s *TokenStore) Clear(ctx context.Context) {
	for _, key := range []string{domain.TokenKey, domain.RoleKey, domain.UserIDKey} {
		if err := s.storage.RemoveItem(ctx, key); err != nil {
			s.logger.Warn("Failed to remove session entry", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}
	s.logger.Info("Session cleared", nil)
}

func (s *TokenStore) get(ctx context.Context, key string) (string, bool) {
	value, ok, err := s.storage.GetItem(ctx, key)
	if err != nil {
		s.logger.Warn("Failed to read session entry", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return "", false
	}
	if !ok || value == "" {
		return "", false
	}
	return value, true
}
