package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/jasonKoogler/iqc/internal/errors"
	"github.com/jasonKoogler/iqc/internal/request"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := newManager(t.TempDir(), viper.New())
	require.NoError(t, err)
	return m
}

func TestInitializeCreatesDefaultConfig(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.Initialize())

	_, err := os.Stat(m.ConfigFile)
	require.NoError(t, err, "default config file should be written")

	assert.Equal(t, request.DefaultEndpoint, m.Endpoint())
	assert.Equal(t, 30*time.Second, m.FetchTimeout())
	assert.Equal(t, request.DefaultCarrier, m.DefaultCarrier())
	assert.Equal(t, 80, m.DefaultBattery())
	assert.NoError(t, m.Validate())
}

func TestInitializeReadsExistingConfig(t *testing.T) {
	dir := t.TempDir()
	content := "api:\n  endpoint: https://render.example/iqc\n  timeout_seconds: 5\nform:\n  default_carrier: telkomsel\n  default_battery: 150\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644))

	m, err := newManager(dir, viper.New())
	require.NoError(t, err)
	require.NoError(t, m.Initialize())

	assert.Equal(t, "https://render.example/iqc", m.Endpoint())
	assert.Equal(t, 5*time.Second, m.FetchTimeout())
	assert.Equal(t, request.CarrierTelkomsel, m.DefaultCarrier())
	assert.Equal(t, 100, m.DefaultBattery(), "battery is clamped")
}

func TestInitializeRejectsMalformedConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("api: [unclosed"), 0644))

	m, err := newManager(dir, viper.New())
	require.NoError(t, err)

	err = m.Initialize()
	assert.ErrorIs(t, err, apperrors.ErrConfigInvalid)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	t.Setenv("IQC_API_ENDPOINT", "https://env.example/render")
	m := newTestManager(t)
	require.NoError(t, m.Initialize())

	assert.Equal(t, "https://env.example/render", m.Endpoint())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value interface{}
	}{
		{"bad endpoint", APIEndpointKey, "ftp://nope"},
		{"unknown carrier", FormDefaultCarrierKey, "carrier-pigeon"},
		{"unknown theme", UIThemeKey, "neon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager(t)
			require.NoError(t, m.Initialize())
			m.Set(tt.key, tt.value)
			assert.ErrorIs(t, m.Validate(), apperrors.ErrConfigInvalid)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.Initialize())
	m.Set(UIThemeKey, ThemeDark)
	require.NoError(t, m.Save())

	reloaded, err := newManager(m.ConfigDir, viper.New())
	require.NoError(t, err)
	require.NoError(t, reloaded.Initialize())
	assert.Equal(t, ThemeDark, reloaded.GetString(UIThemeKey))
}

func TestExportYAML(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.Initialize())

	data, err := m.ExportYAML()
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, yaml.Unmarshal(data, &out))
	api, ok := out["api"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, request.DefaultEndpoint, api["endpoint"])
}

func TestInitAppContext(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("IQC_EXPORT_DOWNLOAD_DIR", t.TempDir())

	ctx, err := InitAppContext(dir)
	require.NoError(t, err)
	defer ctx.Close()

	assert.Equal(t, request.DefaultEndpoint, ctx.Builder.Endpoint())
	assert.NotNil(t, ctx.Controller)
	assert.NotNil(t, ctx.Panel)
	assert.DirExists(t, filepath.Join(dir, "logs"))
}
