package port

import "errors"

var (
	// ErrMissingInput is returned when a required field is empty.
	ErrMissingInput = errors.New("missing input")
	// ErrCollaboratorUnavailable wraps every text-generation failure.
	ErrCollaboratorUnavailable = errors.New("text generation unavailable")
	// ErrNoActiveDraft is returned by operations that need a generated draft.
	ErrNoActiveDraft = errors.New("no active draft")
	// ErrPersistenceWrite is returned alongside a successful in-memory
	// mutation when the store rejected the write.
	ErrPersistenceWrite = errors.New("persistence write failed")
	// ErrNotConfirmed is returned when a confirmation gate was declined.
	ErrNotConfirmed = errors.New("operation not confirmed")
	// ErrInvalidAPIKey is returned for keys of 20 characters or fewer.
	ErrInvalidAPIKey = errors.New("invalid api key")
	ErrInvalidTheme  = errors.New("invalid theme")
	// ErrUnknownVariant is returned when selecting a variant that does not exist.
	ErrUnknownVariant = errors.New("unknown variant")
	ErrUnknownFormat  = errors.New("unknown export format")
)
