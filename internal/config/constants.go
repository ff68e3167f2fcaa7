// internal/config/constants.go
package config

import "github.com/jasonKoogler/iqc/internal/request"

// ConfigKeys define all configuration keys used in the application
const (
	// Rendering endpoint
	APIEndpointKey          = "api.endpoint"
	APITimeoutSecondsKey    = "api.timeout_seconds"
	APIRequestsPerMinuteKey = "api.requests_per_minute"
	APIBurstKey             = "api.burst"

	// Export settings
	ExportDownloadDirKey  = "export.download_dir"
	ExportShareCommandKey = "export.share_command"

	// Form defaults
	FormDefaultCarrierKey = "form.default_carrier"
	FormDefaultBatteryKey = "form.default_battery"

	// UI Settings
	UIThemeKey = "ui.theme"

	// Updates
	UpdateCheckURLKey = "update.check_url"

	VerboseKey   = "verbose"
	ConfigDirKey = "config_dir"
)

// EnvPrefix is the common prefix for all env vars (IQC_API_ENDPOINT, ...)
const EnvPrefix = "IQC"

// Themes understood by the TUI
const (
	ThemeDefault = "default"
	ThemeDark    = "dark"
)

// DefaultValues contains default values for configuration
var DefaultValues = map[string]interface{}{
	APIEndpointKey:          request.DefaultEndpoint,
	APITimeoutSecondsKey:    30,
	APIRequestsPerMinuteKey: 30,
	APIBurstKey:             3,

	ExportDownloadDirKey:  ".",
	ExportShareCommandKey: "",

	FormDefaultCarrierKey: string(request.DefaultCarrier),
	FormDefaultBatteryKey: 80,

	UIThemeKey: ThemeDefault,

	UpdateCheckURLKey: "https://api.github.com/repos/jasonKoogler/iqc/releases/latest",

	VerboseKey: false,
}

// ThemeOptions returns the selectable themes
func ThemeOptions() []string {
	return []string{ThemeDefault, ThemeDark}
}
