package fileinfos

import (
	"fmt"
	"log/slog"

	"github.com/ClicksEnStock/FileInfos/cfb"
	"github.com/ClicksEnStock/FileInfos/pkg/types"
	"github.com/ClicksEnStock/FileInfos/report"
	"github.com/ClicksEnStock/FileInfos/stg"
)

// Options controls report generation.
type Options struct {
	// ValueWidth bounds each rendered value in characters, one of which is
	// reserved for a terminator.
	// Default: 256
	ValueWidth int

	// PathSeparator joins storage names in report paths.
	// Default: `\`
	PathSeparator string

	// NameFallback labels unnamed properties with their numeric identifier.
	// Default: false
	NameFallback bool

	// Logger receives diagnostics as they happen.
	// Default: discard
	Logger *slog.Logger

	// Provider opens the document. Tests substitute in-memory providers.
	// Default: compound files on disk
	Provider stg.Provider
}

func (o *Options) report() *report.Options {
	if o == nil {
		return nil
	}
	return &report.Options{
		ValueWidth:    o.ValueWidth,
		PathSeparator: o.PathSeparator,
		NameFallback:  o.NameFallback,
		Logger:        o.Logger,
	}
}

func (o *Options) provider() stg.Provider {
	if o == nil || o.Provider == nil {
		return stg.Compound{}
	}
	return o.Provider
}

// Result is everything one walk produced.
type Result struct {
	// Text is the accumulated report.
	Text        string
	Sets        []report.CollectedSet
	Diagnostics []types.Diagnostic
	Stats       report.Stats
}

// Properties returns the accumulated property report for the document at
// path. The path also prefixes every header line.
func Properties(path string, opts *Options) (string, error) {
	text, _, err := report.Accumulate(opts.provider(), path, opts.report())
	return text, err
}

// Collect walks the document at path and returns the report text together
// with structured sets and diagnostics.
func Collect(path string, opts *Options) (*Result, error) {
	var (
		text      report.Text
		collector report.Collector
	)
	w, err := report.Run(opts.provider(), path, report.Tee{&text, &collector}, opts.report())
	res := &Result{
		Text:        text.String(),
		Sets:        collector.Sets,
		Diagnostics: w.Diagnostics(),
		Stats:       w.Stats(),
	}
	return res, err
}

// Entry is one directory entry of a compound file listing.
type Entry struct {
	// Path joins the names from the root, separated by `\`.
	Path string
	// Depth is 0 for children of the root.
	Depth int
	cfb.Entry
}

// Tree lists every storage and stream of the compound file at path in
// depth-first, directory order.
func Tree(path string) ([]Entry, error) {
	f, err := cfb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return TreeOf(f.Root())
}

// TreeOf lists the entries below root. A storage's children follow it
// directly.
func TreeOf(root *cfb.Storage) ([]Entry, error) {
	type level struct {
		st      *cfb.Storage
		path    string
		entries []cfb.Entry
		next    int
	}

	entries, err := root.Entries()
	if err != nil {
		return nil, fmt.Errorf("list root: %w", err)
	}

	var out []Entry
	stack := []*level{{st: root, entries: entries}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next == len(top.entries) {
			stack = stack[:len(stack)-1]
			continue
		}
		e := top.entries[top.next]
		top.next++

		p := e.Name
		if top.path != "" {
			p = top.path + report.DefaultPathSeparator + e.Name
		}
		out = append(out, Entry{Path: p, Depth: len(stack) - 1, Entry: e})
		if !e.IsStorage() {
			continue
		}

		child, err := top.st.OpenEntry(e)
		if err != nil {
			return out, fmt.Errorf("open %q: %w", p, err)
		}
		children, err := child.Entries()
		if err != nil {
			return out, fmt.Errorf("list %q: %w", p, err)
		}
		stack = append(stack, &level{st: child, path: p, entries: children})
	}
	return out, nil
}
