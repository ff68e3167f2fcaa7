package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/jasonKoogler/iqc/internal/config"
	"github.com/jasonKoogler/iqc/internal/update"
	"github.com/spf13/cobra"
)

var (
	versionCheck bool

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Show the iqc version information",
		RunE:  runVersion,
	}
)

func init() {
	versionCmd.Flags().BoolVar(&versionCheck, "check", false, "check for a newer release")
}

func runVersion(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "iqc version %s\n", appVersion)

	if !versionCheck {
		return nil
	}
	if err := requireContext(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	checker := update.NewVersionChecker(appVersion, appContext.ConfigDir,
		appContext.ConfigManager.GetString(config.UpdateCheckURLKey))
	info, err := checker.CheckForUpdates(ctx, true)
	if err != nil {
		appContext.Logger.Warn("Update check failed: %v", err)
		return fmt.Errorf("failed to check for updates: %w", err)
	}
	if info == nil {
		fmt.Fprintln(out, "You are running the latest version.")
		return nil
	}

	fmt.Fprint(out, checker.GetUpdateMessage(info))
	return nil
}
