package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jasonKoogler/iqc/internal/config"
	"github.com/jasonKoogler/iqc/internal/ui"
	"github.com/spf13/cobra"
)

var (
	configViewYAML bool

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage iqc configuration",
	}

	configViewCmd = &cobra.Command{
		Use:   "view",
		Short: "View current configuration",
		RunE:  runConfigView,
	}

	configSetCmd = &cobra.Command{
		Use:   "set",
		Short: "Update configuration values",
		Example: `  iqc config set --carrier Telkomsel --battery 64
  iqc config set --download-dir ~/Pictures/iqc --theme dark`,
		RunE: runConfigSet,
	}
)

func init() {
	configCmd.AddCommand(configViewCmd)
	configCmd.AddCommand(configSetCmd)

	configViewCmd.Flags().BoolVar(&configViewYAML, "yaml", false, "print the configuration as YAML")

	configSetCmd.Flags().String("endpoint", "", "rendering endpoint URL")
	configSetCmd.Flags().Int("timeout", 0, "image fetch timeout in seconds")
	configSetCmd.Flags().Int("requests-per-minute", 0, "maximum fetches per minute against the endpoint host")
	configSetCmd.Flags().Int("burst", 0, "fetch burst size")
	configSetCmd.Flags().String("download-dir", "", "directory downloads are saved to")
	configSetCmd.Flags().String("share-command", "", "command used to share images (empty to auto-detect)")
	configSetCmd.Flags().String("carrier", "", "default carrier label")
	configSetCmd.Flags().Int("battery", 0, "default battery percentage")
	configSetCmd.Flags().String("theme", "", "TUI theme ("+strings.Join(config.ThemeOptions(), ", ")+")")
	configSetCmd.Flags().String("update-url", "", "release feed used by 'iqc version --check'")
}

// flattenConfig turns the nested export map into dotted key rows
func flattenConfig(prefix string, m map[string]interface{}, rows *[][]string) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := m[k].(map[string]interface{}); ok {
			flattenConfig(key, nested, rows)
			continue
		}
		*rows = append(*rows, []string{key, fmt.Sprint(m[k])})
	}
}

func runConfigView(cmd *cobra.Command, args []string) error {
	if err := requireContext(); err != nil {
		return err
	}
	mgr := appContext.ConfigManager
	out := cmd.OutOrStdout()

	if configViewYAML {
		data, err := mgr.ExportYAML()
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}

	var rows [][]string
	flattenConfig("", mgr.ExportConfig(), &rows)

	fmt.Fprintf(out, "Config file: %s\n\n", mgr.ConfigFile)
	fmt.Fprint(out, ui.FormatTable([]string{"KEY", "VALUE"}, rows))
	fmt.Fprintf(out, "\nShare capability: %s\n", appContext.Sharer.Capability())
	fmt.Fprintf(out, "Environment overrides use the %s_ prefix, e.g. %s_API_ENDPOINT.\n", config.EnvPrefix, config.EnvPrefix)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if err := requireContext(); err != nil {
		return err
	}
	mgr := appContext.ConfigManager
	modified := false

	stringFlags := map[string]string{
		"endpoint":      config.APIEndpointKey,
		"download-dir":  config.ExportDownloadDirKey,
		"share-command": config.ExportShareCommandKey,
		"carrier":       config.FormDefaultCarrierKey,
		"theme":         config.UIThemeKey,
		"update-url":    config.UpdateCheckURLKey,
	}
	for flagName, key := range stringFlags {
		if cmd.Flags().Changed(flagName) {
			val, _ := cmd.Flags().GetString(flagName)
			mgr.Set(key, val)
			modified = true
		}
	}

	intFlags := map[string]string{
		"timeout":             config.APITimeoutSecondsKey,
		"requests-per-minute": config.APIRequestsPerMinuteKey,
		"burst":               config.APIBurstKey,
		"battery":             config.FormDefaultBatteryKey,
	}
	for flagName, key := range intFlags {
		if cmd.Flags().Changed(flagName) {
			val, _ := cmd.Flags().GetInt(flagName)
			mgr.Set(key, val)
			modified = true
		}
	}

	if !modified {
		fmt.Fprintln(cmd.OutOrStdout(), "No changes made to configuration.")
		return nil
	}

	if err := mgr.Validate(); err != nil {
		return err
	}
	if err := mgr.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration updated successfully!")
	return nil
}
