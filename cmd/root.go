package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/jasonKoogler/iqc/internal/config"
	apperrors "github.com/jasonKoogler/iqc/internal/errors"
	"github.com/jasonKoogler/iqc/internal/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var errNotInitialized = errors.New("application context not initialized")

var (
	appContext *config.AppContext
	appVersion = "dev"
	verbose    bool

	rootCmd = &cobra.Command{
		Use:   "iqc",
		Short: "Generate fake iPhone chat screenshots",
		Long: `iqc builds iPhone-style chat screenshots from a message, a clock time,
a battery level and a carrier label, then lets you download or share the result.

Run without a subcommand to open the interactive generator.`,
		SilenceUsage:      true,
		PersistentPreRunE: applyGlobalFlags,
		RunE:              runTUI,
	}
)

// SetVersion records the build version reported by 'iqc version'
func SetVersion(v string) {
	if v != "" {
		appVersion = v
	}
}

// Execute executes the root command
func Execute(appCtx *config.AppContext) error {
	appContext = appCtx
	err := rootCmd.Execute()
	if hint := errorHint(err); hint != "" {
		fmt.Fprintln(os.Stderr, hint)
	}
	return err
}

// errorHint suggests a next step for failures cobra has already printed
func errorHint(err error) string {
	switch {
	case err == nil:
		return ""
	case apperrors.IsConfigError(err):
		return "Check ~/.iqc/config.yaml or run 'iqc setup'."
	case apperrors.Is(err, apperrors.ErrThrottled):
		return ""
	case apperrors.IsGenerationError(err):
		return "Check the message text and try again."
	case apperrors.IsExportError(err):
		return "Check your internet connection and the download directory, then try again."
	}
	return ""
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	viper.BindPFlag(config.VerboseKey, rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func applyGlobalFlags(cmd *cobra.Command, args []string) error {
	if appContext == nil {
		return nil
	}
	if appContext.ConfigManager.GetBool(config.VerboseKey) {
		if l, ok := appContext.Logger.(interface{ SetVerbose(bool) }); ok {
			l.SetVerbose(true)
		}
	}
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	if err := requireContext(); err != nil {
		return err
	}
	return tui.RunTUI(appContext)
}

func requireContext() error {
	if appContext == nil || appContext.ConfigManager == nil {
		return errNotInitialized
	}
	return nil
}
