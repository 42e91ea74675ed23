package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"
)

// Static errors for err113 compliance.
var (
	ErrNoConfigPersister = errors.New("no config persister configured")
)

// ConfigPersister defines the interface for persisting config changes.
type ConfigPersister interface {
	UpdateAPIToken(orgURL, token string, expiresAt time.Time) error
}

// ConfigTokenManager wraps a StaticTokenManager and persists every new token to the
// configuration file.
type ConfigTokenManager struct {
	static          *StaticTokenManager
	configPersister ConfigPersister
	orgURL          string
	mutex           sync.RWMutex
}

// NewConfigTokenManager creates a new config-persisting token manager.
func NewConfigTokenManager(static *StaticTokenManager, configPersister ConfigPersister, orgURL string) *ConfigTokenManager {
	return &ConfigTokenManager{
		static:          static,
		configPersister: configPersister,
		orgURL:          orgURL,
	}
}

// GetToken returns the current token.
func (m *ConfigTokenManager) GetToken(ctx context.Context) (string, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return m.static.GetToken(ctx)
}

// RefreshToken forces a token refresh.
func (m *ConfigTokenManager) RefreshToken(ctx context.Context) error {
	return m.static.RefreshToken(ctx)
}

// TokenType returns the scheme of the wrapped manager.
func (m *ConfigTokenManager) TokenType() string {
	return m.static.TokenType()
}

// SetToken sets the token and persists it. A persistence failure is reported on stderr.
func (m *ConfigTokenManager) SetToken(token string, expiresAt time.Time) {
	err := m.SaveToken(token, expiresAt)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: failed to persist token: %v\n", err)
	}
}

// SaveToken sets the token and persists it to config.
func (m *ConfigTokenManager) SaveToken(token string, expiresAt time.Time) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.static.SetToken(token, expiresAt)

	return m.persistToken(token, expiresAt)
}

// persistToken saves the token to config.
func (m *ConfigTokenManager) persistToken(token string, expiresAt time.Time) error {
	if m.configPersister == nil {
		return ErrNoConfigPersister
	}

	err := m.configPersister.UpdateAPIToken(m.orgURL, token, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to update API token: %w", err)
	}

	return nil
}
