package ports

import "context"

// Navigator performs a forced client-side navigation.
type Navigator interface {
	Push(ctx context.Context, path string) error
}

// DocumentPort is the surface that shows the active page title.
type DocumentPort interface {
	SetTitle(title string)
}
