package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ClicksEnStock/FileInfos/pkg/fileinfos"
	"github.com/ClicksEnStock/FileInfos/printer"
)

var treeTimestamps bool

func init() {
	cmd := newTreeCmd()
	cmd.Flags().BoolVar(&treeTimestamps, "timestamps", false, "Show modification times")
	rootCmd.AddCommand(cmd)
}

func newTreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree <file>",
		Short: "Display the storage and stream tree",
		Long: `The tree command lists every storage and stream of a compound document,
including the property-set streams whose names start with \x05.

Example:
  fileinfos tree Budget.xls
  fileinfos tree Budget.xls --timestamps
  fileinfos tree Budget.xls --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(args)
		},
	}
	return cmd
}

func runTree(args []string) error {
	path := args[0]

	printVerbose("Opening document: %s\n", path)

	entries, err := fileinfos.Tree(path)
	if err != nil {
		return fmt.Errorf("failed to list entries: %w", err)
	}

	listing := make([]printer.TreeEntry, len(entries))
	for i, e := range entries {
		listing[i] = printer.TreeEntry{Path: e.Path, Depth: e.Depth, Entry: e.Entry}
	}

	opts := cfg.printerOptions()
	opts.ShowTimestamps = treeTimestamps
	return printer.New(os.Stdout, opts).PrintTree(path, listing)
}
