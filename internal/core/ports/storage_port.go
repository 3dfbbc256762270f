package ports

import "context"

// StoragePort is a string key-value store with the semantics of browser
// Web Storage. A missing key is reported with ok == false, not an error.
type StoragePort interface {
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

// TokenReader is the read side of the token store used by request builders.
type TokenReader interface {
	Token(ctx context.Context) (string, bool)
	// AuthHeaders returns the headers every request carries for the
	// current session.
	AuthHeaders(ctx context.Context) map[string]string
	Clear(ctx context.Context)
}
