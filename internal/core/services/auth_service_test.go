package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sm8ta/hospital_frontend/internal/core/domain"
)

type fakeAuthAPI struct {
	resp *domain.LoginResponse
	err  error
	got  domain.LoginRequest
}

func (a *fakeAuthAPI) Login(_ context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	a.got = req
	return a.resp, a.err
}

type fakeDecoder struct {
	claims *domain.TokenClaims
	err    error
}

func (d fakeDecoder) DecodeToken(string) (*domain.TokenClaims, error) {
	return d.claims, d.err
}

func newAuthFixture(t *testing.T, api *fakeAuthAPI, decoder fakeDecoder) (*AuthService, *routerFixture) {
	t.Helper()
	f := newRouterFixture(t, DefaultRouterOptions())
	return NewAuthService(api, f.store, f.router, decoder, f.logger), f
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	api := &fakeAuthAPI{resp: &domain.LoginResponse{AccessToken: "abc", Role: domain.RoleDoctor, UserID: "12"}}
	svc, f := newAuthFixture(t, api, fakeDecoder{})

	resp, landed, err := svc.Login(ctx, "  house@hospital.org ", "secret")
	require.NoError(t, err)

	assert.Equal(t, "house@hospital.org", api.got.Email)
	assert.Equal(t, "abc", resp.AccessToken)
	assert.Equal(t, "/doctor", landed.Path)
	assert.Equal(t, domain.Session{Token: "abc", Role: domain.RoleDoctor, UserID: "12"}, f.store.Snapshot(ctx))
}

func TestAuthService_LoginUnknownRoleLandsOnLogin(t *testing.T) {
	api := &fakeAuthAPI{resp: &domain.LoginResponse{AccessToken: "abc", Role: domain.Role("Nurse")}}
	svc, _ := newAuthFixture(t, api, fakeDecoder{})

	_, landed, err := svc.Login(context.Background(), "a@b.c", "x")
	require.NoError(t, err)
	assert.Equal(t, "/login", landed.Path)
}

func TestAuthService_LoginFailure(t *testing.T) {
	ctx := context.Background()
	api := &fakeAuthAPI{err: errors.New("Invalid credentials")}
	svc, f := newAuthFixture(t, api, fakeDecoder{})

	_, _, err := svc.Login(ctx, "a@b.c", "wrong")
	require.Error(t, err)
	assert.False(t, f.store.IsAuthenticated(ctx))
	assert.Equal(t, "/", f.router.Current().Path)
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	api := &fakeAuthAPI{resp: &domain.LoginResponse{AccessToken: "abc", Role: domain.RoleAdmin, UserID: "1"}}
	svc, f := newAuthFixture(t, api, fakeDecoder{})

	_, _, err := svc.Login(ctx, "admin@hospital.org", "admin")
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx))

	assert.False(t, f.store.IsAuthenticated(ctx))
	assert.Equal(t, "/login", f.router.Current().Path)
}

func TestAuthService_WhoAmI(t *testing.T) {
	ctx := context.Background()
	exp := int64(1900000000)
	claims := &domain.TokenClaims{Subject: "1", Role: domain.RoleAdmin, ExpiresAt: &exp}
	api := &fakeAuthAPI{resp: &domain.LoginResponse{AccessToken: "abc", Role: domain.RoleAdmin, UserID: "1"}}
	svc, _ := newAuthFixture(t, api, fakeDecoder{claims: claims})

	assert.False(t, svc.WhoAmI(ctx).Session.Authenticated())
	assert.Nil(t, svc.WhoAmI(ctx).Claims)

	_, _, err := svc.Login(ctx, "admin@hospital.org", "admin")
	require.NoError(t, err)

	id := svc.WhoAmI(ctx)
	assert.Equal(t, "abc", id.Session.Token)
	assert.Equal(t, claims, id.Claims)
}

func TestAuthService_WhoAmIOpaqueToken(t *testing.T) {
	ctx := context.Background()
	api := &fakeAuthAPI{resp: &domain.LoginResponse{AccessToken: "opaque", Role: domain.RoleAdmin}}
	svc, _ := newAuthFixture(t, api, fakeDecoder{err: errors.New("not a jwt")})

	_, _, err := svc.Login(ctx, "admin@hospital.org", "admin")
	require.NoError(t, err)

	id := svc.WhoAmI(ctx)
	assert.True(t, id.Session.Authenticated())
	assert.Nil(t, id.Claims)
}
