// internal/config/manager.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/jasonKoogler/iqc/internal/errors"
	"github.com/jasonKoogler/iqc/internal/request"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Manager provides a centralized interface for configuration management
type Manager struct {
	ConfigDir  string
	ConfigFile string
	v          *viper.Viper
}

// NewManager creates a configuration manager backed by the global viper
// instance, so cobra flag bindings are visible through it.
func NewManager(configDir string) (*Manager, error) {
	return newManager(configDir, viper.GetViper())
}

func newManager(configDir string, v *viper.Viper) (*Manager, error) {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	return &Manager{
		ConfigDir:  configDir,
		ConfigFile: filepath.Join(configDir, "config.yaml"),
		v:          v,
	}, nil
}

// Initialize sets up the configuration system
func (m *Manager) Initialize() error {
	m.v.SetConfigFile(m.ConfigFile)
	m.v.SetConfigType("yaml")

	m.v.SetEnvPrefix(EnvPrefix)
	m.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	m.v.AutomaticEnv()

	for key, value := range DefaultValues {
		m.v.SetDefault(key, value)
	}

	// Set ConfigDir in viper for other components to access
	m.v.Set(ConfigDirKey, m.ConfigDir)

	if err := m.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || os.IsNotExist(err) {
			// Config file doesn't exist, create a default one
			if err := m.v.SafeWriteConfigAs(m.ConfigFile); err != nil {
				return fmt.Errorf("failed to create default config file: %w", err)
			}
			return nil
		}
		if os.IsPermission(err) {
			return fmt.Errorf("%w: %v", apperrors.ErrConfigPermission, err)
		}
		return fmt.Errorf("%w: %v", apperrors.ErrConfigInvalid, err)
	}

	return nil
}

// Get retrieves a configuration value by key
func (m *Manager) Get(key string) interface{} {
	return m.v.Get(key)
}

// GetString retrieves a string configuration value
func (m *Manager) GetString(key string) string {
	return m.v.GetString(key)
}

// GetInt retrieves an integer configuration value
func (m *Manager) GetInt(key string) int {
	return m.v.GetInt(key)
}

// GetBool retrieves a boolean configuration value
func (m *Manager) GetBool(key string) bool {
	return m.v.GetBool(key)
}

// Set updates a configuration value
func (m *Manager) Set(key string, value interface{}) {
	m.v.Set(key, value)
}

// Save persists the current configuration to disk
func (m *Manager) Save() error {
	return m.v.WriteConfigAs(m.ConfigFile)
}

// Endpoint returns the rendering endpoint
func (m *Manager) Endpoint() string {
	return m.GetString(APIEndpointKey)
}

// FetchTimeout returns the per-request timeout for image fetches
func (m *Manager) FetchTimeout() time.Duration {
	secs := m.GetInt(APITimeoutSecondsKey)
	if secs <= 0 {
		secs = DefaultValues[APITimeoutSecondsKey].(int)
	}
	return time.Duration(secs) * time.Second
}

// DefaultCarrier returns the configured carrier, falling back to the built-in default
func (m *Manager) DefaultCarrier() request.Carrier {
	c, err := request.ParseCarrier(m.GetString(FormDefaultCarrierKey))
	if err != nil {
		return request.DefaultCarrier
	}
	return c
}

// DefaultBattery returns the configured battery percentage clamped to 0..100
func (m *Manager) DefaultBattery() int {
	b := m.GetInt(FormDefaultBatteryKey)
	if b < 0 {
		return 0
	}
	if b > 100 {
		return 100
	}
	return b
}

// Validate checks values that would otherwise fail late
func (m *Manager) Validate() error {
	if _, err := request.NewBuilder(m.Endpoint()); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrConfigInvalid, err)
	}
	if _, err := request.ParseCarrier(m.GetString(FormDefaultCarrierKey)); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrConfigInvalid, err)
	}
	theme := m.GetString(UIThemeKey)
	for _, t := range ThemeOptions() {
		if t == theme {
			return nil
		}
	}
	return fmt.Errorf("%w: unknown theme %q", apperrors.ErrConfigInvalid, theme)
}

// ExportConfig exports the current configuration to a map
func (m *Manager) ExportConfig() map[string]interface{} {
	return map[string]interface{}{
		"api": map[string]interface{}{
			"endpoint":            m.GetString(APIEndpointKey),
			"timeout_seconds":     m.GetInt(APITimeoutSecondsKey),
			"requests_per_minute": m.GetInt(APIRequestsPerMinuteKey),
			"burst":               m.GetInt(APIBurstKey),
		},
		"export": map[string]interface{}{
			"download_dir":  m.GetString(ExportDownloadDirKey),
			"share_command": m.GetString(ExportShareCommandKey),
		},
		"form": map[string]interface{}{
			"default_carrier": m.GetString(FormDefaultCarrierKey),
			"default_battery": m.GetInt(FormDefaultBatteryKey),
		},
		"ui": map[string]interface{}{
			"theme": m.GetString(UIThemeKey),
		},
		"update": map[string]interface{}{
			"check_url": m.GetString(UpdateCheckURLKey),
		},
		"verbose": m.GetBool(VerboseKey),
	}
}

// ExportYAML renders the current configuration as YAML
func (m *Manager) ExportYAML() ([]byte, error) {
	data, err := yaml.Marshal(m.ExportConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config data: %w", err)
	}
	return data, nil
}
