// cmd/generate.go
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	apperrors "github.com/jasonKoogler/iqc/internal/errors"
	"github.com/jasonKoogler/iqc/internal/export"
	"github.com/jasonKoogler/iqc/internal/generation"
	"github.com/jasonKoogler/iqc/internal/history"
	"github.com/jasonKoogler/iqc/internal/preview"
	"github.com/jasonKoogler/iqc/internal/request"
	"github.com/jasonKoogler/iqc/internal/ui"
	"github.com/spf13/cobra"
)

var (
	genText       string
	genTime       string
	genBattery    int
	genCarrier    string
	genOutDir     string
	genShare      bool
	genNoDownload bool
	genPlain      bool

	generateCmd = &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen", "g"},
		Short:   "Generate a chat screenshot without the interactive UI",
		Example: `  iqc generate --text "See you at 8?" --time 21:45 --battery 42
  iqc generate -t "On my way" --carrier XL --out ~/Pictures --share`,
		RunE: runGenerate,
	}
)

func init() {
	generateCmd.Flags().StringVarP(&genText, "text", "t", "", "chat message to render (required)")
	generateCmd.Flags().StringVar(&genTime, "time", "", "status bar clock, HH:MM (default: current time)")
	generateCmd.Flags().IntVarP(&genBattery, "battery", "b", -1, "battery percentage 0-100 (default: from config)")
	generateCmd.Flags().StringVarP(&genCarrier, "carrier", "c", "", "carrier label (default: from config)")
	generateCmd.Flags().StringVarP(&genOutDir, "out", "o", "", "download directory (default: from config)")
	generateCmd.Flags().BoolVar(&genShare, "share", false, "share the image after generating it")
	generateCmd.Flags().BoolVar(&genNoDownload, "no-download", false, "do not save the image")
	generateCmd.Flags().BoolVar(&genPlain, "plain", false, "plain progress output without a spinner")
	generateCmd.MarkFlagRequired("text")
}

// generateRequest assembles the request from flags and configured defaults
func generateRequest(now time.Time) (request.GenerationRequest, error) {
	mgr := appContext.ConfigManager

	req := request.GenerationRequest{
		Text:           genText,
		Time:           strings.TrimSpace(genTime),
		BatteryPercent: mgr.DefaultBattery(),
		Carrier:        mgr.DefaultCarrier(),
	}
	if req.Time == "" {
		req.Time = request.DefaultTime(now)
	}
	if genBattery >= 0 {
		if genBattery > 100 {
			return req, fmt.Errorf("battery must be between 0 and 100, got %d", genBattery)
		}
		req.BatteryPercent = genBattery
	}
	if genCarrier != "" {
		c, err := request.ParseCarrier(genCarrier)
		if err != nil {
			return req, err
		}
		req.Carrier = c
	}
	return req, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if err := requireContext(); err != nil {
		return err
	}
	logger := appContext.Logger

	req, err := generateRequest(time.Now())
	if err != nil {
		return err
	}
	progress := ui.CreateProgress(cmd.OutOrStdout(), !genPlain)
	if !req.HasText() {
		_, msg := apperrors.Classify(apperrors.ErrEmptyText)
		progress.Failure(msg)
		return apperrors.ErrEmptyText
	}

	saver := appContext.Saver
	if genOutDir != "" {
		if saver, err = export.NewDirSaver(genOutDir); err != nil {
			return err
		}
	}
	panel := preview.NewPanel(appContext.Fetcher, saver, appContext.Sharer, preview.WithLogger(logger))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	settled := make(chan generation.Session, 1)
	appContext.Controller.Subscribe(func(s generation.Session) {
		if s.Status == generation.StatusReady || s.Status == generation.StatusFailed {
			select {
			case settled <- s:
			default:
			}
		}
	})

	if err := appContext.Controller.Submit(req); err != nil {
		_, msg := apperrors.Classify(err)
		progress.Failure(msg)
		return err
	}

	progress.Start("Generating image")
	var session generation.Session
	select {
	case session = <-settled:
	case <-ctx.Done():
		progress.Failure("Cancelled")
		return ctx.Err()
	}
	if session.Status != generation.StatusReady {
		progress.Failure("Failed to create the image. Try again later.")
		return apperrors.ErrBuildFailed
	}

	panel.Sync(session)
	progress.Update("Rendering image")
	url, info, err := panel.Load(ctx)
	if err != nil {
		panel.MarkFailed(url, err)
		_, msg := apperrors.Classify(err)
		progress.Failure(msg)
		return err
	}
	panel.MarkDecoded(url, info)
	progress.Success(fmt.Sprintf("Image ready: %s", info))

	if !genNoDownload {
		path, err := panel.Download(ctx)
		recordExport(history.ActionDownload, url, path, err)
		if err != nil {
			_, msg := apperrors.Classify(err)
			progress.Failure(msg)
			return err
		}
		progress.Success(fmt.Sprintf("Saved to %s", path))
	}

	if genShare {
		err := panel.Share(ctx)
		recordExport(history.ActionShare, url, "", err)
		if err != nil {
			level, msg := apperrors.Classify(err)
			if level == apperrors.LevelInfo {
				progress.Info(msg)
				return nil
			}
			progress.Failure(msg)
			return err
		}
		progress.Success("Image shared")
	}

	return nil
}

func recordExport(action, url, path string, err error) {
	if recErr := appContext.History.RecordExport(action, url, path, err); recErr != nil {
		appContext.Logger.Warn("Failed to record history: %v", recErr)
	}
}
