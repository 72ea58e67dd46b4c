package report

import "log/slog"

const (
	// DefaultValueWidth is the value buffer size in characters, including
	// the slot reserved for the terminator.
	DefaultValueWidth = 256
	// DefaultPathSeparator joins storage names in report paths.
	DefaultPathSeparator = `\`
)

// Options configures rendering and walking.
type Options struct {
	// ValueWidth bounds each rendered value; see RenderValue.
	// Default: 256
	ValueWidth int

	// PathSeparator joins a parent path and a child storage name.
	// Default: `\`
	PathSeparator string

	// NameFallback labels properties the dictionary does not name with
	// their numeric identifier. When false such properties are written
	// without a name.
	// Default: false
	NameFallback bool

	// Logger receives diagnostics and trace output.
	// Default: discard
	Logger *slog.Logger
}

// DefaultOptions returns the default options.
func DefaultOptions() *Options {
	return &Options{
		ValueWidth:    DefaultValueWidth,
		PathSeparator: DefaultPathSeparator,
	}
}

func (o *Options) withDefaults() Options {
	out := *DefaultOptions()
	if o != nil {
		out = *o
		if out.ValueWidth == 0 {
			out.ValueWidth = DefaultValueWidth
		}
		if out.PathSeparator == "" {
			out.PathSeparator = DefaultPathSeparator
		}
	}
	if out.Logger == nil {
		out.Logger = slog.New(slog.DiscardHandler)
	}
	return out
}
