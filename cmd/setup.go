package cmd

import (
	"fmt"
	"strconv"

	"github.com/jasonKoogler/iqc/internal/config"
	"github.com/jasonKoogler/iqc/internal/export"
	"github.com/jasonKoogler/iqc/internal/request"
	"github.com/manifoldco/promptui"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive setup for iqc",
	Long:  `Choose the default carrier, battery level, download directory and theme interactively.`,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func promptErr(err error) error {
	if err == promptui.ErrInterrupt {
		return fmt.Errorf("setup cancelled")
	}
	return fmt.Errorf("prompt failed: %w", err)
}

func validateBattery(input string) error {
	n, err := strconv.Atoi(input)
	if err != nil {
		return fmt.Errorf("enter a whole number")
	}
	if n < 0 || n > 100 {
		return fmt.Errorf("battery must be between 0 and 100")
	}
	return nil
}

func validateDir(input string) error {
	if _, err := homedir.Expand(input); err != nil {
		return err
	}
	return nil
}

func runSetup(cmd *cobra.Command, args []string) error {
	if err := requireContext(); err != nil {
		return err
	}
	mgr := appContext.ConfigManager

	fmt.Println("Welcome to iqc setup!")
	fmt.Println("Let's pick the defaults for new chats.")
	fmt.Println()

	// Step 1: carrier
	carriers := request.Carriers()
	carrierPrompt := promptui.Select{
		Label:     "Default carrier",
		Items:     carriers,
		CursorPos: indexOfCarrier(carriers, mgr.DefaultCarrier()),
	}
	carrierIdx, _, err := carrierPrompt.Run()
	if err != nil {
		return promptErr(err)
	}
	mgr.Set(config.FormDefaultCarrierKey, string(carriers[carrierIdx]))

	// Step 2: battery
	batteryPrompt := promptui.Prompt{
		Label:    "Default battery percentage",
		Default:  strconv.Itoa(mgr.DefaultBattery()),
		Validate: validateBattery,
	}
	batteryStr, err := batteryPrompt.Run()
	if err != nil {
		return promptErr(err)
	}
	battery, _ := strconv.Atoi(batteryStr)
	mgr.Set(config.FormDefaultBatteryKey, battery)

	// Step 3: download directory
	dirPrompt := promptui.Prompt{
		Label:    "Download directory",
		Default:  mgr.GetString(config.ExportDownloadDirKey),
		Validate: validateDir,
	}
	dir, err := dirPrompt.Run()
	if err != nil {
		return promptErr(err)
	}
	if _, err := export.NewDirSaver(dir); err != nil {
		return err
	}
	mgr.Set(config.ExportDownloadDirKey, dir)

	// Step 4: theme
	themes := config.ThemeOptions()
	labels := make([]string, len(themes))
	caser := cases.Title(language.English)
	for i, t := range themes {
		labels[i] = caser.String(t)
	}
	themePrompt := promptui.Select{
		Label: "TUI theme",
		Items: labels,
	}
	themeIdx, _, err := themePrompt.Run()
	if err != nil {
		return promptErr(err)
	}
	mgr.Set(config.UIThemeKey, themes[themeIdx])

	if err := mgr.Validate(); err != nil {
		return err
	}
	if err := mgr.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Println("\n✓ Configuration saved successfully!")
	if appContext.Sharer.Capability() == export.Unavailable {
		fmt.Println("Sharing is not available on this device; set 'export.share_command' to enable it.")
	}
	fmt.Println("Run 'iqc' to open the generator.")
	return nil
}

func indexOfCarrier(carriers []request.Carrier, c request.Carrier) int {
	for i, candidate := range carriers {
		if candidate == c {
			return i
		}
	}
	return 0
}
