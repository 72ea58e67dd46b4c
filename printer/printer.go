package printer

import (
	"fmt"
	"io"

	"github.com/ClicksEnStock/FileInfos/cfb"
	"github.com/ClicksEnStock/FileInfos/pkg/types"
	"github.com/ClicksEnStock/FileInfos/report"
)

const DefaultIndentSize = 2

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs human-readable text format.
	FormatText Format = "text"

	// FormatJSON outputs JSON format.
	FormatJSON Format = "json"

	// FormatYAML outputs YAML format.
	FormatYAML Format = "yaml"
)

// ParseFormat maps a flag or config value to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
	}
}

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json, yaml).
	// Default: FormatText
	Format Format

	// IndentSize is the number of spaces per indent level (text format only).
	// Default: 2
	IndentSize int

	// ShowValueTypes includes VT_* type names.
	// Default: true
	ShowValueTypes bool

	// ShowDiagnostics appends the failures recorded during the walk.
	// Default: true
	ShowDiagnostics bool

	// ShowTimestamps includes entry modification times in tree output.
	// Default: false
	ShowTimestamps bool
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:          FormatText,
		IndentSize:      DefaultIndentSize,
		ShowValueTypes:  true,
		ShowDiagnostics: true,
		ShowTimestamps:  false,
	}
}

// Report is everything one walk produced for a single file.
type Report struct {
	File        string
	Sets        []report.CollectedSet
	Diagnostics []types.Diagnostic
}

// TreeEntry is one directory entry of a compound file listing.
type TreeEntry struct {
	Path  string
	Depth int
	cfb.Entry
}

// Printer handles formatted output of property reports.
type Printer struct {
	opts   Options
	writer io.Writer
}

// New creates a new Printer writing to w.
//
// Example:
//
//	res, _ := fileinfos.Collect("Budget.xls", nil)
//	p := printer.New(os.Stdout, printer.DefaultOptions())
//	p.PrintReport(printer.Report{File: "Budget.xls", Sets: res.Sets})
func New(w io.Writer, opts Options) *Printer {
	if opts.IndentSize <= 0 {
		opts.IndentSize = DefaultIndentSize
	}
	return &Printer{opts: opts, writer: w}
}

// PrintReport prints the property sets of one file.
func (p *Printer) PrintReport(r Report) error {
	switch p.opts.Format {
	case FormatJSON:
		return p.printReportJSON(r)
	case FormatYAML:
		return p.printReportYAML(r)
	default:
		return p.printReportText(r)
	}
}

// PrintTree prints the storage and stream entries of one file.
func (p *Printer) PrintTree(file string, entries []TreeEntry) error {
	switch p.opts.Format {
	case FormatJSON:
		return p.printTreeJSON(file, entries)
	case FormatYAML:
		return p.printTreeYAML(file, entries)
	default:
		return p.printTreeText(file, entries)
	}
}
