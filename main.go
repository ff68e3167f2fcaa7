package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jasonKoogler/iqc/cmd"
	"github.com/jasonKoogler/iqc/internal/config"
	"github.com/mitchellh/go-homedir"
)

// Version information - will be set during build time via -ldflags
var version = "dev"

func main() {
	configDir := os.Getenv("IQC_HOME")
	if configDir == "" {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		configDir = filepath.Join(home, ".iqc")
	}

	appCtx, err := config.InitAppContext(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing application: %v\n", err)
		os.Exit(1)
	}
	defer appCtx.Close()

	cmd.SetVersion(version)

	if err := cmd.Execute(appCtx); err != nil {
		appCtx.Close()
		os.Exit(1)
	}
}
