package port

import (
	"context"
	"time"
)

// Keys of the persistent key-value store.
const (
	KeyTheme     = "theme"
	KeyAPIKey    = "gemini_api_key"
	KeyCampaigns = "campaigns"
)

// KVStore is the persistent store adapter. It is an outbound port in
// hexagonal architecture: values are opaque strings and the owner of each
// key is responsible for encoding. Implementations must be
// concurrency-safe.
type KVStore interface {
	// Get returns the value stored under key. found is false when the key
	// has never been written.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	// Set replaces the value stored under key.
	Set(ctx context.Context, key, value string) error
}

// TextGenerator is the generative-text collaborator. Any failure (transport,
// non-2xx status, malformed or empty body, missing credentials) is returned
// as an error wrapping ErrCollaboratorUnavailable.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// APIKeyUpdater is implemented by collaborators whose credentials can be
// replaced at runtime.
type APIKeyUpdater interface {
	UpdateAPIKey(key string) error
}

// Confirmer is the human-in-the-loop gate for destructive operations.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

// Confirm calls f.
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

// Clock abstracts wall-clock time so ticks and ids are reproducible in tests.
type Clock interface {
	Now() time.Time
}
