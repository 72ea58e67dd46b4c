package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ClicksEnStock/FileInfos/pkg/fileinfos"
	"github.com/ClicksEnStock/FileInfos/pkg/types"

	"github.com/ClicksEnStock/FileInfos/cmd/fileinfos/logger"
)

var (
	reportJobs         int
	reportWidth        int
	reportSeparator    string
	reportNameFallback bool
)

func init() {
	cmd := newReportCmd()
	cmd.Flags().IntVarP(&reportJobs, "jobs", "j", 0, "Files processed concurrently (default: config or CPU count)")
	cmd.Flags().IntVar(&reportWidth, "width", 0, "Value width in characters including terminator (default 256)")
	cmd.Flags().StringVar(&reportSeparator, "separator", "", `Storage path separator (default "\")`)
	cmd.Flags().BoolVar(&reportNameFallback, "name-fallback", false, "Label unnamed properties with their numeric id")
	rootCmd.AddCommand(cmd)
}

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <file>...",
		Short: "Print the accumulated property report",
		Long: `The report command walks every storage level of each document and prints
one header line per property set followed by one line per property.

Several files are read concurrently and printed in argument order.

Example:
  fileinfos report Budget.xls
  fileinfos report *.doc --jobs 8
  fileinfos report setup.msi --width 64 --name-fallback`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applyReportFlags(cmd)
			return runReport(cmd.Context(), args)
		},
	}
	return cmd
}

func applyReportFlags(cmd *cobra.Command) {
	if cmd.Flags().Changed("jobs") {
		cfg.Jobs = reportJobs
	}
	if cmd.Flags().Changed("width") {
		cfg.ValueWidth = reportWidth
	}
	if cmd.Flags().Changed("separator") {
		cfg.PathSeparator = reportSeparator
	}
	if cmd.Flags().Changed("name-fallback") {
		cfg.NameFallback = reportNameFallback
	}
}

// printFileReport writes a successful file's text and diagnostics.
// "no property sets" is only claimed when nothing failed along the way.
func printFileReport(path string, r fileReport) {
	if r.text == "" && len(r.diags) == 0 {
		printInfo("%s: no property sets\n", path)
	}
	fmt.Fprint(os.Stdout, r.text)
	for _, d := range r.diags {
		printWarning("%s\n", d)
	}
}

// fileReport is the outcome for one argument.
type fileReport struct {
	text  string
	diags []types.Diagnostic
	err   error
}

func runReport(ctx context.Context, files []string) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	// Each goroutine owns its index.
	results := make([]fileReport, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(cfg.Jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			printVerbose("Reading: %s\n", path)
			res, err := fileinfos.Collect(path, cfg.reportOptions(path))
			results[i] = fileReport{text: res.Text, diags: res.Diagnostics, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := 0
	for i, path := range files {
		r := results[i]
		if len(files) > 1 {
			printHeader("==> %s <==\n", path)
		}
		if r.err != nil {
			failed++
			printError("%s: %v (%s)\n", path, r.err, types.StatusCode(r.err).Hex())
			logger.Error("report failed", "path", path, "error", r.err)
			continue
		}
		printFileReport(path, r)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) could not be read", failed, len(files))
	}
	return nil
}
