package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sm8ta/hospital_frontend/internal/core/domain"
	"github.com/sm8ta/hospital_frontend/internal/core/ports"
)

// Identity is what whoami reports about the current session.
type Identity struct {
	Session domain.Session
	Claims  *domain.TokenClaims
}

type AuthService struct {
	api     ports.AuthAPI
	store   *TokenStore
	router  *Router
	decoder ports.TokenDecoder
	logger  ports.LoggerPort
}

func NewAuthService(
	api ports.AuthAPI,
	store *TokenStore,
	router *Router,
	decoder ports.TokenDecoder,
	logger ports.LoggerPort,
) *AuthService {
	return &AuthService{
		api:     api,
		store:   store,
		router:  router,
		decoder: decoder,
		logger:  logger,
	}
}

// Login authenticates, persists the session and opens the role dashboard.
// It returns the route the user lands on.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.LoginResponse, domain.Route, error) {
	req := domain.LoginRequest{
		Email:    strings.TrimSpace(email),
		Password: password,
	}
	resp, err := s.api.Login(ctx, req)
	if err != nil {
		s.logger.Warn("Login failed", map[string]interface{}{
			"email": req.Email,
			"error": err.Error(),
		})
		return nil, domain.Route{}, err
	}

	if err := s.store.Save(ctx, resp); err != nil {
		return nil, domain.Route{}, fmt.Errorf("save session: %w", err)
	}

	target := s.router.LoginPath()
	if dashboard, ok := s.router.Dashboard(resp.Role); ok {
		target = dashboard
	}
	route, err := s.router.Navigate(ctx, target)
	if err != nil {
		return resp, domain.Route{}, err
	}

	s.logger.Info("Login successful", map[string]interface{}{
		"role":    resp.Role,
		"user_id": resp.UserID.String(),
	})
	return resp, route, nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	s.store.Clear(ctx)
	return s.router.Push(ctx, s.router.LoginPath())
}

func (s *AuthService) WhoAmI(ctx context.Context) Identity {
	identity := Identity{Session: s.store.Snapshot(ctx)}
	if !identity.Session.Authenticated() || s.decoder == nil {
		return identity
	}

	claims, err := s.decoder.DecodeToken(identity.Session.Token)
	if err != nil {
		s.logger.Debug("Token is not a readable JWT", map[string]interface{}{
			"error": err.Error(),
		})
		return identity
	}
	identity.Claims = claims
	return identity
}
