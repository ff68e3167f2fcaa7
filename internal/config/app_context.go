// internal/config/app_context.go
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jasonKoogler/iqc/internal/api"
	"github.com/jasonKoogler/iqc/internal/export"
	"github.com/jasonKoogler/iqc/internal/fetch"
	"github.com/jasonKoogler/iqc/internal/generation"
	"github.com/jasonKoogler/iqc/internal/history"
	"github.com/jasonKoogler/iqc/internal/logging"
	"github.com/jasonKoogler/iqc/internal/preview"
	"github.com/jasonKoogler/iqc/internal/request"
)

// AppContext holds application-wide components and services
type AppContext struct {
	ConfigDir     string
	ConfigManager *Manager
	Logger        logging.Logger
	Builder       *request.Builder
	Fetcher       *fetch.Client
	Controller    *generation.Controller
	Panel         *preview.Panel
	Saver         *export.DirSaver
	Sharer        export.Sharer
	History       *history.Recorder
}

// InitAppContext loads configuration and wires the generation pipeline.
// Logs go to a file since the TUI owns the terminal.
func InitAppContext(configDir string) (*AppContext, error) {
	logDir := filepath.Join(configDir, "logs")
	for _, dir := range []string{configDir, logDir} {
		if err := ensureDir(dir); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	mgr, err := NewManager(configDir)
	if err != nil {
		return nil, err
	}
	if err := mgr.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := mgr.Validate(); err != nil {
		return nil, err
	}

	verbose := mgr.GetBool(VerboseKey)
	var logger logging.Logger
	fileLogger, err := logging.NewFileLogger(logDir, "iqc", verbose)
	if err != nil {
		logger = logging.NewConsoleLogger(verbose)
	} else {
		logger = fileLogger
	}

	builder, err := request.NewBuilder(mgr.Endpoint())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize request builder: %w", err)
	}

	limiter := api.NewRateLimiter(api.RateLimitConfig{
		RequestsPerMinute: mgr.GetInt(APIRequestsPerMinuteKey),
		BurstSize:         mgr.GetInt(APIBurstKey),
	})
	logger.Debug("Image fetches: %s", limiter.GetLimitInfo())
	fetcher := fetch.NewClient(mgr.FetchTimeout(), limiter)

	saver, err := export.NewDirSaver(mgr.GetString(ExportDownloadDirKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize download directory: %w", err)
	}

	// Share capability is resolved once here and never re-probed.
	sharer := export.DetectSharer(mgr.GetString(ExportShareCommandKey))
	logger.Debug("Share capability: %s", sharer.Capability())

	recorder, err := history.NewRecorder(configDir)
	if err != nil {
		logger.Warn("History disabled: %v", err)
	}

	controller := generation.NewController(builder, generation.WithLogger(logger))
	controller.Subscribe(func(s generation.Session) {
		if s.Status != generation.StatusReady && s.Status != generation.StatusFailed {
			return
		}
		if err := recorder.Record(history.Event{
			Action:     history.ActionGenerate,
			Generation: s.Generation,
			Status:     s.Status.String(),
			URL:        s.ResultURL,
		}); err != nil {
			logger.Warn("Failed to record history: %v", err)
		}
	})
	panel := preview.NewPanel(fetcher, saver, sharer, preview.WithLogger(logger))

	return &AppContext{
		ConfigDir:     configDir,
		ConfigManager: mgr,
		Logger:        logger,
		Builder:       builder,
		Fetcher:       fetcher,
		Controller:    controller,
		Panel:         panel,
		Saver:         saver,
		Sharer:        sharer,
		History:       recorder,
	}, nil
}

// Close releases resources held by the context
func (c *AppContext) Close() error {
	if closer, ok := c.Logger.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

// ensureDir creates a directory if it doesn't exist
func ensureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
