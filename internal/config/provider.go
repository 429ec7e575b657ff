package config

import (
	"fmt"

	"github.com/footprint-tools/cmdtree/internal/domain"
)

// Provider wraps configuration operations and implements domain.ConfigProvider.
type Provider struct{}

// NewProvider creates a new configuration provider.
func NewProvider() *Provider {
	return &Provider{}
}

// Get returns the value for a configuration key.
func (p *Provider) Get(key string) (string, bool) {
	return Get(key)
}

// GetAll returns all configuration values.
func (p *Provider) GetAll() (map[string]string, error) {
	return GetAll()
}

// Set validates key and writes key=value under the config lock.
func (p *Provider) Set(key, value string) error {
	if !domain.IsValidConfigKey(key) {
		return fmt.Errorf("config: unknown key %q", key)
	}
	return WithLock(func() error {
		lines, err := ReadLines()
		if err != nil {
			return err
		}

		lines, _ = Set(lines, key, value)
		return WriteLines(lines)
	})
}

// Unset removes a configuration value under the config lock.
func (p *Provider) Unset(key string) error {
	return WithLock(func() error {
		lines, err := ReadLines()
		if err != nil {
			return err
		}

		lines, _ = Unset(lines, key)
		return WriteLines(lines)
	})
}

// Reset overwrites the config file with DefaultLines.
func (p *Provider) Reset() error {
	return WithLock(func() error {
		return WriteLines(DefaultLines())
	})
}

// Verify Provider implements domain.ConfigProvider
var _ domain.ConfigProvider = (*Provider)(nil)
