package configs

import "fmt"

// Supported key-value backends.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Store selects where theme, API key and campaigns are persisted.
type Store struct {
	Backend string `env:"BACKEND" envDefault:"memory"`
}

// Validate rejects unknown backends.
func (s Store) Validate() error {
	switch s.Backend {
	case BackendMemory, BackendRedis, BackendPostgres:
		return nil
	default:
		return fmt.Errorf("unknown store backend %q", s.Backend)
	}
}
