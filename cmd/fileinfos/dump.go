package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ClicksEnStock/FileInfos/pkg/fileinfos"
	"github.com/ClicksEnStock/FileInfos/printer"
)

var (
	dumpNoTypes       bool
	dumpNoDiagnostics bool
)

func init() {
	cmd := newDumpCmd()
	cmd.Flags().BoolVar(&dumpNoTypes, "no-types", false, "Omit VT_* type names")
	cmd.Flags().BoolVar(&dumpNoDiagnostics, "no-diagnostics", false, "Omit failures recorded during the walk")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Structured dump of every property set",
		Long: `The dump command prints every property set with property ids, names,
types and values, as indented text, JSON or YAML.

Example:
  fileinfos dump Budget.xls
  fileinfos dump Budget.xls --format json
  fileinfos dump setup.msi --format yaml --no-diagnostics`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
	return cmd
}

func runDump(args []string) error {
	path := args[0]

	printVerbose("Opening document: %s\n", path)

	res, err := fileinfos.Collect(path, cfg.reportOptions(path))
	if err != nil {
		return fmt.Errorf("failed to read properties: %w", err)
	}

	opts := cfg.printerOptions()
	opts.ShowValueTypes = !dumpNoTypes
	opts.ShowDiagnostics = !dumpNoDiagnostics

	p := printer.New(os.Stdout, opts)
	return p.PrintReport(printer.Report{
		File:        path,
		Sets:        res.Sets,
		Diagnostics: res.Diagnostics,
	})
}
