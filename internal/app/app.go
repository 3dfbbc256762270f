package app

import (
	"context"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	redisClient "github.com/redis/go-redis/v9"

	"github.com/sm8ta/hospital_frontend/internal/adapter/api"
	"github.com/sm8ta/hospital_frontend/internal/adapter/jwt"
	"github.com/sm8ta/hospital_frontend/internal/adapter/logger"
	"github.com/sm8ta/hospital_frontend/internal/adapter/prometheus"
	"github.com/sm8ta/hospital_frontend/internal/adapter/redis"
	"github.com/sm8ta/hospital_frontend/internal/adapter/sqlite"
	"github.com/sm8ta/hospital_frontend/internal/adapter/storage"
	"github.com/sm8ta/hospital_frontend/internal/adapter/ui/console"
	"github.com/sm8ta/hospital_frontend/internal/config"
	"github.com/sm8ta/hospital_frontend/internal/core/domain"
	"github.com/sm8ta/hospital_frontend/internal/core/ports"
	"github.com/sm8ta/hospital_frontend/internal/core/services"
)

type App struct {
	Config   *config.Container
	Logger   *logger.LoggerAdapter
	Metrics  *prometheus.PrometheusAdapter
	Storage  ports.StoragePort
	Store    *services.TokenStore
	Router   *services.Router
	API      *api.Client
	Auth     *services.AuthService
	Validate *validator.Validate
	Document *console.Document

	closers []func() error
}

// New wires one client session. titles receives page title changes and may
// be nil.
func New(ctx context.Context, cfg *config.Container, titles io.Writer) (*App, error) {
	// Set logger
	loggerAdapter, err := logger.NewLoggerAdapter(cfg.App.Env, cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	loggerAdapter.Debug("Starting the client", map[string]interface{}{
		"app":     cfg.App.Name,
		"env":     cfg.App.Env,
		"api":     cfg.API.URL,
		"storage": cfg.Session.Storage,
	})

	a := &App{
		Config:   cfg,
		Logger:   loggerAdapter,
		Metrics:  prometheus.NewPrometheusAdapter(),
		Validate: validator.New(),
		Document: console.NewDocument(titles),
	}

	// Session storage
	a.Storage, err = a.openStorage(ctx)
	if err != nil {
		a.Stop()
		return nil, err
	}
	a.Store = services.NewTokenStore(a.Storage, loggerAdapter)

	// Router
	routes, err := loadRoutes(cfg.Router)
	if err != nil {
		a.Stop()
		return nil, err
	}
	opts := services.DefaultRouterOptions()
	opts.LoginPath = cfg.Router.LoginPath
	opts.RedirectAuthenticatedFromPublic = cfg.Router.RedirectAuthenticated
	a.Router = services.NewRouter(routes, a.Store, a.Document, loggerAdapter, a.Metrics, opts)

	// Backend client and auth
	a.API = api.NewClient(cfg.API, a.Store, a.Router, opts.LoginPath, loggerAdapter, a.Metrics)
	a.Auth = services.NewAuthService(a.API, a.Store, a.Router, jwt.NewClaimsDecoder(loggerAdapter), loggerAdapter)

	return a, nil
}

func (a *App) openStorage(ctx context.Context) (ports.StoragePort, error) {
	switch a.Config.Session.Storage {
	case config.StorageOrigin:
		s, err := sqlite.Open(a.Config.SQLite.Path, a.Config.Session.Origin)
		if err != nil {
			return nil, fmt.Errorf("failed to open origin storage: %w", err)
		}
		a.closers = append(a.closers, s.Close)
		return s, nil

	case config.StorageRedis:
		redisConn := redisClient.NewClient(&redisClient.Options{
			Addr:     a.Config.Redis.Address,
			Password: a.Config.Redis.Password,
			DB:       a.Config.Redis.DB,
		})
		a.closers = append(a.closers, redisConn.Close)
		if _, err := redisConn.Ping(ctx).Result(); err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		return redis.NewRedisAdapter(redisConn, a.Config.Session.Origin, a.Config.Redis.TTL), nil

	case config.StorageTab:
		s := storage.NewTabStorage()
		a.Logger.Debug("Using tab-scoped session storage", map[string]interface{}{
			"tab": s.ID().String(),
		})
		return s, nil
	}
	return nil, fmt.Errorf("%w: %q", config.ErrUnknownStorage, a.Config.Session.Storage)
}

func loadRoutes(cfg *config.Router) ([]domain.Route, error) {
	if cfg.RoutesFile != "" {
		routes, err := services.LoadRoutes(cfg.RoutesFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load routes: %w", err)
		}
		return routes, nil
	}
	return services.DefaultRoutes()
}

// Stops all services
func (a *App) Stop() error {
	if a.Config.Metrics.Textfile != "" {
		if err := a.Metrics.WriteTextfile(a.Config.Metrics.Textfile); err != nil {
			a.Logger.Error("Metrics write error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.Logger.Error("Storage close error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	a.closers = nil

	a.Logger.Debug("Client stopped", nil)
	_ = a.Logger.Sync()
	return nil
}
