package modals

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sm8ta/hospital_frontend/internal/adapter/api"
	"github.com/sm8ta/hospital_frontend/internal/core/domain"
)

type fakeAuth struct {
	calls int
	err   error
}

func (a *fakeAuth) Login(_ context.Context, email, password string) (*domain.LoginResponse, domain.Route, error) {
	a.calls++
	if a.err != nil {
		return nil, domain.Route{}, a.err
	}
	return &domain.LoginResponse{AccessToken: "abc", Role: domain.RoleAdmin}, domain.Route{Path: "/admin"}, nil
}

func TestLoginForm(t *testing.T) {
	auth := &fakeAuth{}
	f := NewLoginForm(auth, nopLogger{})
	loggedIn := &recorder{}
	f.On(domain.EventLoggedIn, loggedIn.handle)

	f.SetEmail("admin@hospital.com")
	f.SetPassword("admin123")
	got, err := f.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/admin", got.Route.Path)
	assert.Equal(t, 1, loggedIn.count())
	assert.Equal(t, 1, auth.calls)
}

func TestLoginForm_Required(t *testing.T) {
	auth := &fakeAuth{}
	f := NewLoginForm(auth, nopLogger{})
	f.SetEmail("admin@hospital.com")

	_, err := f.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Email and password are required", f.ErrorMessage())
	assert.Zero(t, auth.calls)
}

func TestLoginForm_ServerMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"invalid credentials", &api.Error{Kind: api.KindUnauthorized, Status: 401, Message: "Invalid credentials"}, "Invalid credentials"},
		{"blacklisted", &api.Error{Kind: api.KindForbidden, Status: 403, Message: "You cannot login. You have been blacklisted"}, "You cannot login. You have been blacklisted"},
		{"no message", &api.Error{Kind: api.KindServer, Status: 500}, "Login failed"},
		{"offline", &api.Error{Kind: api.KindNetwork}, NetworkErrorMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewLoginForm(&fakeAuth{err: tt.err}, nopLogger{})
			f.SetEmail("a@b.c")
			f.SetPassword("x")

			_, err := f.Submit(context.Background())
			require.Error(t, err)
			assert.Equal(t, tt.want, f.ErrorMessage())
		})
	}
}
