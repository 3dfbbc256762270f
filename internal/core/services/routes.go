package services

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/sm8ta/hospital_frontend/internal/core/domain"

	"gopkg.in/yaml.v3"
)

//go:embed routes.yaml
var defaultRoutesYAML []byte

type routeFile struct {
	Routes []routeSpec `yaml:"routes"`
}

type routeSpec struct {
	Path      string    `yaml:"path"`
	Name      string    `yaml:"name"`
	Component string    `yaml:"component"`
	Redirect  string    `yaml:"redirect"`
	Meta      routeMeta `yaml:"meta"`
}

type routeMeta struct {
	Title        string `yaml:"title"`
	RequiresAuth bool   `yaml:"requiresAuth"`
	RequiredRole string `yaml:"requiredRole"`
}

// DefaultRoutes returns the built-in route table.
func DefaultRoutes() ([]domain.Route, error) {
	return ParseRoutes(defaultRoutesYAML)
}

// LoadRoutes reads a route table from a YAML file.
func LoadRoutes(path string) ([]domain.Route, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read routes: %w", err)
	}
	return ParseRoutes(data)
}

func ParseRoutes(data []byte) ([]domain.Route, error) {
	var file routeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal routes: %w", err)
	}
	if len(file.Routes) == 0 {
		return nil, fmt.Errorf("route table is empty")
	}

	seen := make(map[string]struct{}, len(file.Routes))
	routes := make([]domain.Route, 0, len(file.Routes))
	for i, spec := range file.Routes {
		if spec.Path == "" {
			return nil, fmt.Errorf("route %d: path is empty", i)
		}
		if _, dup := seen[spec.Path]; dup {
			return nil, fmt.Errorf("route %s: duplicate path", spec.Path)
		}
		seen[spec.Path] = struct{}{}

		role := domain.Role(spec.Meta.RequiredRole)
		if role != "" {
			if !role.Valid() {
				return nil, fmt.Errorf("route %s: unknown role %q", spec.Path, spec.Meta.RequiredRole)
			}
			// a role requirement on a public route would never be checked
			if !spec.Meta.RequiresAuth {
				return nil, fmt.Errorf("route %s: requiredRole set without requiresAuth", spec.Path)
			}
		}
		if spec.Path == domain.CatchAllPath && i != len(file.Routes)-1 {
			return nil, fmt.Errorf("route %s: catch-all must be the last route", spec.Path)
		}

		routes = append(routes, domain.Route{
			Path:     spec.Path,
			Name:     spec.Name,
			View:     spec.Component,
			Title:    spec.Meta.Title,
			Redirect: spec.Redirect,
			Policy: domain.RoutePolicy{
				RequiresAuth: spec.Meta.RequiresAuth,
				RequiredRole: role,
			},
		})
	}
	return routes, nil
}
