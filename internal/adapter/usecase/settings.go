package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"creativesync/internal/core/domain"
	"creativesync/internal/core/port"
)

// minAPIKeyLength is exclusive: keys must be longer than this.
const minAPIKeyLength = 20

// Settings stores the theme and the Gemini API key. It implements
// port.SettingsManager.
type Settings struct {
	kv      port.KVStore
	updater port.APIKeyUpdater
	logger  *zap.Logger
}

// NewSettings creates a settings manager. updater may be nil.
func NewSettings(kv port.KVStore, updater port.APIKeyUpdater, logger *zap.Logger) *Settings {
	return &Settings{kv: kv, updater: updater, logger: logger}
}

// Theme returns the stored theme, defaulting to light.
func (s *Settings) Theme(ctx context.Context) (domain.Theme, error) {
	raw, found, err := s.kv.Get(ctx, port.KeyTheme)
	if err != nil {
		return domain.ThemeLight, fmt.Errorf("load theme: %w", err)
	}
	theme := domain.Theme(raw)
	if !found || !theme.Valid() {
		return domain.ThemeLight, nil
	}
	return theme, nil
}

// SetTheme persists theme.
func (s *Settings) SetTheme(ctx context.Context, theme domain.Theme) error {
	if !theme.Valid() {
		return fmt.Errorf("theme %q: %w", theme, port.ErrInvalidTheme)
	}
	if err := s.kv.Set(ctx, port.KeyTheme, string(theme)); err != nil {
		return fmt.Errorf("%w: %w", port.ErrPersistenceWrite, err)
	}
	return nil
}

// SetAPIKey activates key on the collaborator and persists it. Keys of 20
// characters or fewer are rejected with port.ErrInvalidAPIKey.
func (s *Settings) SetAPIKey(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if len(key) <= minAPIKeyLength {
		return port.ErrInvalidAPIKey
	}
	if s.updater != nil {
		if err := s.updater.UpdateAPIKey(key); err != nil {
			return fmt.Errorf("activate api key: %w", err)
		}
	}
	if err := s.kv.Set(ctx, port.KeyAPIKey, key); err != nil {
		s.logger.Warn("api key active but not persisted", zap.Error(err))
		return fmt.Errorf("%w: %w", port.ErrPersistenceWrite, err)
	}
	return nil
}

// StoredAPIKey returns the persisted key when it passes validation.
func (s *Settings) StoredAPIKey(ctx context.Context) (string, bool, error) {
	key, found, err := s.kv.Get(ctx, port.KeyAPIKey)
	if err != nil {
		return "", false, fmt.Errorf("load api key: %w", err)
	}
	key = strings.TrimSpace(key)
	if !found || len(key) <= minAPIKeyLength {
		return "", false, nil
	}
	return key, true, nil
}
