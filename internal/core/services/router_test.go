package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sm8ta/hospital_frontend/internal/core/domain"
)

type routerFixture struct {
	storage  *mapStorage
	store    *TokenStore
	document *fakeDocument
	metrics  *fakeMetrics
	logger   *recordingLogger
	router   *Router
}

func newRouterFixture(t *testing.T, opts RouterOptions) *routerFixture {
	t.Helper()
	routes, err := DefaultRoutes()
	require.NoError(t, err)
	return newRouterFixtureWithRoutes(routes, opts)
}

func newRouterFixtureWithRoutes(routes []domain.Route, opts RouterOptions) *routerFixture {
	f := &routerFixture{
		storage:  newMapStorage(),
		document: &fakeDocument{},
		metrics:  &fakeMetrics{},
		logger:   &recordingLogger{},
	}
	f.store = NewTokenStore(f.storage, f.logger)
	f.router = NewRouter(routes, f.store, f.document, f.logger, f.metrics, opts)
	return f
}

func (f *routerFixture) signIn(t *testing.T, role domain.Role) {
	t.Helper()
	require.NoError(t, f.store.Save(context.Background(), &domain.LoginResponse{
		AccessToken: "token-" + string(role),
		Role:        role,
		UserID:      "1",
	}))
}

func route(t *testing.T, path string) domain.Route {
	t.Helper()
	routes, err := DefaultRoutes()
	require.NoError(t, err)
	for _, r := range routes {
		if r.Path == path {
			return r
		}
	}
	t.Fatalf("no route %s", path)
	return domain.Route{}
}

func TestGuard(t *testing.T) {
	tests := []struct {
		name     string
		role     domain.Role
		to       string
		redirect bool
		want     domain.Decision
	}{
		{"protected without token", "", "/admin", false, domain.RedirectTo("/login", domain.ReasonNoToken)},
		{"doctor on admin route", domain.RoleDoctor, "/admin", false, domain.RedirectTo("/login", domain.ReasonRoleMismatch)},
		{"admin on admin route", domain.RoleAdmin, "/admin", false, domain.Allow()},
		{"patient on patient route", domain.RolePatient, "/patient", false, domain.Allow()},
		{"public without token", "", "/login", false, domain.Allow()},
		{"public with token, flag off", domain.RoleAdmin, "/login", false, domain.Allow()},
		{"public with token, flag on", domain.RoleDoctor, "/login", true, domain.RedirectTo("/doctor", domain.ReasonAlreadyAuthenticated)},
		{"public with unknown role, flag on", domain.Role("Nurse"), "/login", true, domain.Allow()},
		{"public without token, flag on", "", "/login", true, domain.Allow()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultRouterOptions()
			opts.RedirectAuthenticatedFromPublic = tt.redirect
			f := newRouterFixture(t, opts)
			if tt.role != "" {
				f.signIn(t, tt.role)
			}

			got := f.router.Guard(context.Background(), route(t, tt.to), domain.Route{Path: "/"})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGuard_SetsTitleBeforeDeciding(t *testing.T) {
	f := newRouterFixture(t, DefaultRouterOptions())

	decision := f.router.Guard(context.Background(), route(t, "/admin"), domain.Route{})

	assert.False(t, decision.Allow)
	assert.Equal(t, []string{"Hospital Management - Admin Dashboard"}, f.document.titles)
}

func TestNavigate_UnauthenticatedToLogin(t *testing.T) {
	ctx := context.Background()
	f := newRouterFixture(t, DefaultRouterOptions())

	got, err := f.router.Navigate(ctx, "/admin")
	require.NoError(t, err)

	assert.Equal(t, "/login", got.Path)
	assert.Equal(t, "/login", f.router.Current().Path)
	assert.Equal(t, "Hospital Management - Login", f.document.titles[len(f.document.titles)-1])
	assert.Equal(t, []navigation{
		{to: "/admin", reason: domain.ReasonNoToken},
		{to: "/login", reason: domain.ReasonAllowed},
	}, f.metrics.navigations)
	assert.Contains(t, f.logger.messages(), "Navigated from / to /login")
}

func TestNavigate_RoleMismatchToLogin(t *testing.T) {
	f := newRouterFixture(t, DefaultRouterOptions())
	f.signIn(t, domain.RoleDoctor)

	got, err := f.router.Navigate(context.Background(), "/admin")
	require.NoError(t, err)
	assert.Equal(t, "/login", got.Path)
	// the session survives a role mismatch
	assert.True(t, f.store.IsAuthenticated(context.Background()))
}

func TestNavigate_Allowed(t *testing.T) {
	f := newRouterFixture(t, DefaultRouterOptions())
	f.signIn(t, domain.RoleAdmin)

	got, err := f.router.Navigate(context.Background(), "/admin/")
	require.NoError(t, err)
	assert.Equal(t, "/admin", got.Path)
	assert.Equal(t, "AdminDashboard", got.View)
}

func TestNavigate_StaticRedirects(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/", "/login"},
		{"", "/login"},
		{"/does/not/exist", "/login"},
		{"/login?next=/admin", "/login"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			f := newRouterFixture(t, DefaultRouterOptions())
			got, err := f.router.Navigate(context.Background(), tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Path)
		})
	}
}

func TestNavigate_AuthenticatedFromLogin(t *testing.T) {
	opts := DefaultRouterOptions()
	opts.RedirectAuthenticatedFromPublic = true
	f := newRouterFixture(t, opts)
	f.signIn(t, domain.RolePatient)

	got, err := f.router.Navigate(context.Background(), "/login")
	require.NoError(t, err)
	assert.Equal(t, "/patient", got.Path)
}

func TestNavigate_RedirectLoop(t *testing.T) {
	routes := []domain.Route{
		{Path: "/login", Policy: domain.RoutePolicy{RequiresAuth: true}},
	}
	opts := DefaultRouterOptions()
	opts.MaxRedirects = 3
	f := newRouterFixtureWithRoutes(routes, opts)

	_, err := f.router.Navigate(context.Background(), "/login")
	assert.ErrorIs(t, err, ErrRedirectLoop)
	assert.Len(t, f.metrics.navigations, 4)
	assert.Equal(t, "/", f.router.Current().Path)
}

func TestNavigate_NoRoute(t *testing.T) {
	routes := []domain.Route{{Path: "/login"}}
	f := newRouterFixtureWithRoutes(routes, DefaultRouterOptions())

	_, err := f.router.Navigate(context.Background(), "/missing")
	assert.ErrorIs(t, err, ErrNoRoute)
}

func TestRouter_AfterEach(t *testing.T) {
	f := newRouterFixture(t, DefaultRouterOptions())
	f.signIn(t, domain.RoleAdmin)

	var from, to []string
	f.router.AfterEach(func(next, prev domain.Route) {
		to = append(to, next.Path)
		from = append(from, prev.Path)
	})

	require.NoError(t, f.router.Push(context.Background(), "/admin"))
	require.NoError(t, f.router.Push(context.Background(), "/doctor"))

	assert.Equal(t, []string{"/admin", "/login"}, to)
	assert.Equal(t, []string{"/", "/admin"}, from)
}

func TestRouter_Dashboard(t *testing.T) {
	f := newRouterFixture(t, DefaultRouterOptions())

	path, ok := f.router.Dashboard(domain.RoleDoctor)
	assert.True(t, ok)
	assert.Equal(t, "/doctor", path)

	_, ok = f.router.Dashboard(domain.Role("Nurse"))
	assert.False(t, ok)
	assert.Equal(t, "/login", f.router.LoginPath())
}
