package modals

import (
	"context"

	"github.com/sm8ta/hospital_frontend/internal/core/domain"
	"github.com/sm8ta/hospital_frontend/internal/core/ports"
)

// Authenticator signs a user in and opens their landing page.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*domain.LoginResponse, domain.Route, error)
}

// LoggedIn is the payload of the logged-in event.
type LoggedIn struct {
	Response *domain.LoginResponse
	Route    domain.Route
}

type LoginForm struct {
	*dialog
	auth Authenticator

	email    string
	password string
}

func NewLoginForm(auth Authenticator, logger ports.LoggerPort) *LoginForm {
	return &LoginForm{
		dialog: newDialog("login", logger),
		auth:   auth,
	}
}

func (f *LoginForm) SetEmail(v string) {
	f.mu.Lock()
	f.email = v
	f.mu.Unlock()
	f.clearError()
}

func (f *LoginForm) SetPassword(v string) {
	f.mu.Lock()
	f.password = v
	f.mu.Unlock()
	f.clearError()
}

func (f *LoginForm) Submit(ctx context.Context) (*LoggedIn, error) {
	f.mu.Lock()
	email, password := trim(f.email), f.password
	f.mu.Unlock()

	reqCtx, done, err := f.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer done()

	if email == "" || password == "" {
		return nil, f.invalid("Email and password are required")
	}

	resp, route, err := f.auth.Login(reqCtx, email, password)
	result := &LoggedIn{Response: resp, Route: route}
	if err := f.finish(err, "Login failed", "Login successful", domain.EventLoggedIn, result); err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.password = ""
	f.mu.Unlock()
	return result, nil
}
