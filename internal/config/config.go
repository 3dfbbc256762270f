package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrUnknownStorage = errors.New("unknown session storage")

const (
	StorageTab    = "tab"
	StorageOrigin = "origin"
	StorageRedis  = "redis"
)

type (
	Container struct {
		App     *App
		API     *API
		Session *Session
		Router  *Router
		Redis   *Redis
		SQLite  *SQLite
		Metrics *Metrics
		Log     *Log
	}

	App struct {
		Name string
		Env  string
	}

	API struct {
		URL     string
		Timeout time.Duration
	}

	Session struct {
		Storage string
		Origin  string
	}

	Router struct {
		LoginPath             string
		RedirectAuthenticated bool
		RoutesFile            string
	}

	Redis struct {
		Address  string
		Password string
		DB       int
		TTL      time.Duration
	}

	SQLite struct {
		Path string
	}

	Metrics struct {
		Textfile string
	}

	Log struct {
		Level string
	}
)

// New loads .env outside production and reads the global viper instance,
// so flags bound by the CLI win over the environment.
func New() (*Container, error) {
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	v := viper.GetViper()
	v.AutomaticEnv()
	return FromViper(v)
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "hospitalctl")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("API_URL", "http://localhost:5000")
	v.SetDefault("API_TIMEOUT", "10s")
	v.SetDefault("SESSION_STORAGE", StorageTab)
	v.SetDefault("SESSION_ORIGIN", "http://localhost:8080")
	v.SetDefault("SQLITE_PATH", defaultSQLitePath())
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_TTL", "0s")
	v.SetDefault("ROUTER_LOGIN_PATH", "/login")
	v.SetDefault("ROUTER_REDIRECT_AUTHENTICATED", false)
	v.SetDefault("LOG_LEVEL", "info")
}

func FromViper(v *viper.Viper) (*Container, error) {
	SetDefaults(v)

	cfg := &Container{
		App: &App{
			Name: v.GetString("APP_NAME"),
			Env:  v.GetString("APP_ENV"),
		},
		API: &API{
			URL:     strings.TrimRight(v.GetString("API_URL"), "/"),
			Timeout: v.GetDuration("API_TIMEOUT"),
		},
		Session: &Session{
			Storage: strings.ToLower(v.GetString("SESSION_STORAGE")),
			Origin:  v.GetString("SESSION_ORIGIN"),
		},
		Router: &Router{
			LoginPath:             v.GetString("ROUTER_LOGIN_PATH"),
			RedirectAuthenticated: v.GetBool("ROUTER_REDIRECT_AUTHENTICATED"),
			RoutesFile:            v.GetString("ROUTER_ROUTES_FILE"),
		},
		Redis: &Redis{
			Address:  v.GetString("REDIS_ADDRESS"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			TTL:      v.GetDuration("REDIS_TTL"),
		},
		SQLite: &SQLite{
			Path: v.GetString("SQLITE_PATH"),
		},
		Metrics: &Metrics{
			Textfile: v.GetString("METRICS_TEXTFILE"),
		},
		Log: &Log{
			Level: v.GetString("LOG_LEVEL"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Container) Validate() error {
	u, err := url.Parse(c.API.URL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("invalid API_URL %q", c.API.URL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("API_TIMEOUT must be positive, got %s", c.API.Timeout)
	}
	if !strings.HasPrefix(c.Router.LoginPath, "/") {
		return fmt.Errorf("ROUTER_LOGIN_PATH must start with /, got %q", c.Router.LoginPath)
	}

	switch c.Session.Storage {
	case StorageTab:
	case StorageOrigin:
		if c.SQLite.Path == "" {
			return fmt.Errorf("SQLITE_PATH is required for %s storage", StorageOrigin)
		}
	case StorageRedis:
		if c.Redis.Address == "" {
			return fmt.Errorf("REDIS_ADDRESS is required for %s storage", StorageRedis)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorage, c.Session.Storage)
	}
	return nil
}

func (a *API) Host() string {
	u, err := url.Parse(a.URL)
	if err != nil {
		return ""
	}
	return u.Host
}

func (a *API) BasePath() string {
	u, err := url.Parse(a.URL)
	if err != nil {
		return ""
	}
	return u.Path
}

func (a *API) Scheme() string {
	u, err := url.Parse(a.URL)
	if err != nil || u.Scheme == "" {
		return "http"
	}
	return u.Scheme
}

func defaultSQLitePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "hospitalctl", "storage.db")
}
