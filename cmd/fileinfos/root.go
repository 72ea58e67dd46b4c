package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ClicksEnStock/FileInfos/cmd/fileinfos/logger"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	outFormat  string
	noColor    bool
	configPath string
	logDir     string

	// cfg is the loaded configuration with flag overrides applied.
	cfg = defaultConfig()
)

var (
	errorColor  = color.New(color.FgRed, color.Bold)
	warnColor   = color.New(color.FgYellow)
	headerColor = color.New(color.FgCyan, color.Bold)
)

var rootCmd = &cobra.Command{
	Use:   "fileinfos",
	Short: "Report OLE property sets stored in compound documents",
	Long: `fileinfos reads structured-storage (compound) documents such as legacy
Office files, MSI packages and Outlook messages, and reports every property set
found at every storage level, together with the property names and values.`,
	Version:           version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output and debug logging")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().StringVarP(&outFormat, "format", "f", "", "Output format: text, json or yaml")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "TOML configuration file")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Write JSON logs to day-stamped files in this directory")
}

// setup loads the configuration and initializes colors and logging before
// any command runs.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("format") {
		loaded.Format = outFormat
	}
	if cmd.Flags().Changed("log-dir") {
		loaded.LogDir = logDir
	}
	if err := loaded.validate(); err != nil {
		return err
	}
	cfg = loaded

	if noColor {
		color.NoColor = true
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return logger.Init(logger.Options{
		Enabled: verbose || cfg.LogDir != "",
		LogDir:  cfg.LogDir,
		Level:   level,
	})
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printHeader prints a highlighted line if not in quiet mode
func printHeader(format string, args ...any) {
	if !quiet {
		headerColor.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...any) {
	errorColor.Fprint(os.Stderr, "Error: ")
	fmt.Fprintf(os.Stderr, format, args...)
}

// printWarning prints a warning message if not in quiet mode
func printWarning(format string, args ...any) {
	if !quiet {
		warnColor.Fprintf(os.Stderr, "Warning: "+format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// writeJSON outputs data as indented JSON
func writeJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
