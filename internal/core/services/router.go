package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/sm8ta/hospital_frontend/internal/core/domain"
	"github.com/sm8ta/hospital_frontend/internal/core/ports"
)

var (
	ErrRedirectLoop = errors.New("navigation exceeded redirect limit")
	ErrNoRoute      = errors.New("no route matches path")
)

type RouterOptions struct {
	LoginPath string
	// RedirectAuthenticatedFromPublic sends a signed-in user who opens the
	// login page to the dashboard of their role.
	RedirectAuthenticatedFromPublic bool
	Dashboards                      map[domain.Role]string
	MaxRedirects                    int
}

func DefaultRouterOptions() RouterOptions {
	return RouterOptions{
		LoginPath: "/login",
		Dashboards: map[domain.Role]string{
			domain.RoleAdmin:   "/admin",
			domain.RoleDoctor:  "/doctor",
			domain.RolePatient: "/patient",
		},
		MaxRedirects: 8,
	}
}

// AfterHook runs once a navigation has been committed.
type AfterHook func(to, from domain.Route)

type Router struct {
	byPath   map[string]domain.Route
	catchAll *domain.Route
	store    *TokenStore
	document ports.DocumentPort
	logger   ports.LoggerPort
	metrics  ports.MetricsPort
	opts     RouterOptions

	mu      sync.Mutex
	current domain.Route
	after   []AfterHook
}

func NewRouter(
	routes []domain.Route,
	store *TokenStore,
	document ports.DocumentPort,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
	opts RouterOptions,
) *Router {
	if opts.LoginPath == "" {
		opts.LoginPath = "/login"
	}
	if opts.MaxRedirects <= 0 {
		opts.MaxRedirects = 8
	}

	r := &Router{
		byPath:   make(map[string]domain.Route, len(routes)),
		store:    store,
		document: document,
		logger:   logger,
		metrics:  metrics,
		opts:     opts,
		current:  domain.Route{Path: "/"},
	}
	for _, route := range routes {
		if route.IsCatchAll() {
			catchAll := route
			r.catchAll = &catchAll
			continue
		}
		r.byPath[route.Path] = route
	}

	r.AfterEach(func(to, from domain.Route) {
		r.logger.Info(fmt.Sprintf("Navigated from %s to %s", from.Path, to.Path), nil)
	})
	return r
}

func (r *Router) LoginPath() string {
	return r.opts.LoginPath
}

// Dashboard returns the landing page of a role.
func (r *Router) Dashboard(role domain.Role) (string, bool) {
	path, ok := r.opts.Dashboards[role]
	return path, ok
}

func (r *Router) AfterEach(hook AfterHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.after = append(r.after, hook)
}

func (r *Router) Current() domain.Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Guard decides a single navigation attempt. It never fails: anything it
// cannot read counts as unauthenticated.
func (r *Router) Guard(ctx context.Context, to, from domain.Route) domain.Decision {
	if to.Title != "" && r.document != nil {
		r.document.SetTitle(to.Title)
	}

	_, hasToken := r.store.Token(ctx)
	role, _ := r.store.Role(ctx)

	if to.Policy.RequiresAuth {
		if !hasToken {
			return domain.RedirectTo(r.opts.LoginPath, domain.ReasonNoToken)
		}
		if to.Policy.RequiredRole != "" && role != to.Policy.RequiredRole {
			return domain.RedirectTo(r.opts.LoginPath, domain.ReasonRoleMismatch)
		}
		return domain.Allow()
	}

	if r.opts.RedirectAuthenticatedFromPublic && hasToken && to.Path == r.opts.LoginPath {
		// an unknown role stays on the login page instead of looping
		if dashboard, ok := r.opts.Dashboards[role]; ok && dashboard != to.Path {
			return domain.RedirectTo(dashboard, domain.ReasonAlreadyAuthenticated)
		}
	}
	return domain.Allow()
}

// Navigate resolves path, runs the guard and follows redirects until a
// route is allowed. Every hop is guarded again.
func (r *Router) Navigate(ctx context.Context, path string) (domain.Route, error) {
	from := r.Current()
	target := normalizePath(path)

	for hop := 0; hop <= r.opts.MaxRedirects; hop++ {
		to, err := r.resolve(target)
		if err != nil {
			r.logger.Warn("No route for path", map[string]interface{}{
				"path": target,
			})
			return domain.Route{}, err
		}
		if to.Redirect != "" {
			target = normalizePath(to.Redirect)
			continue
		}

		decision := r.Guard(ctx, to, from)
		if r.metrics != nil {
			r.metrics.RecordNavigation(to.Path, decision.Reason)
		}
		if decision.Allow {
			r.commit(to, from)
			return to, nil
		}

		r.logger.Debug("Navigation redirected", map[string]interface{}{
			"to":       to.Path,
			"redirect": decision.Redirect,
			"reason":   decision.Reason,
		})
		target = normalizePath(decision.Redirect)
	}

	r.logger.Error("Navigation redirect loop", map[string]interface{}{
		"path": path,
		"max":  r.opts.MaxRedirects,
	})
	return domain.Route{}, fmt.Errorf("%w: %s", ErrRedirectLoop, path)
}

// Push implements ports.Navigator.
func (r *Router) Push(ctx context.Context, path string) error {
	_, err := r.Navigate(ctx, path)
	return err
}

func (r *Router) resolve(path string) (domain.Route, error) {
	if route, ok := r.byPath[path]; ok {
		return route, nil
	}
	if r.catchAll != nil {
		return *r.catchAll, nil
	}
	return domain.Route{}, fmt.Errorf("%w: %s", ErrNoRoute, path)
}

func (r *Router) commit(to, from domain.Route) {
	r.mu.Lock()
	r.current = to
	hooks := make([]AfterHook, len(r.after))
	copy(hooks, r.after)
	r.mu.Unlock()

	for _, hook := range hooks {
		hook(to, from)
	}
}

func normalizePath(raw string) string {
	raw = strings.TrimSpace(raw)
	if u, err := url.Parse(raw); err == nil {
		raw = u.Path
	}
	if !strings.HasPrefix(raw, "/") {
		raw = "/" + raw
	}
	if len(raw) > 1 {
		raw = strings.TrimRight(raw, "/")
		if raw == "" {
			raw = "/"
		}
	}
	return raw
}
