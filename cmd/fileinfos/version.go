package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/ClicksEnStock/FileInfos/printer"
)

// Overridden at build time via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVersion()
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion() error {
	if f, _ := printer.ParseFormat(cfg.Format); f == printer.FormatJSON {
		return writeJSON(map[string]string{
			"version": version,
			"commit":  commit,
			"built":   date,
			"go":      runtime.Version(),
		})
	}
	fmt.Fprintf(os.Stdout, "fileinfos %s\n", headerColor.Sprint(version))
	fmt.Fprintf(os.Stdout, "  commit: %s\n", commit)
	fmt.Fprintf(os.Stdout, "  built:  %s\n", date)
	fmt.Fprintf(os.Stdout, "  go:     %s\n", runtime.Version())
	return nil
}
