package main

import (
	"fmt"
	"runtime"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ClicksEnStock/FileInfos/pkg/fileinfos"
	"github.com/ClicksEnStock/FileInfos/printer"
	"github.com/ClicksEnStock/FileInfos/report"

	"github.com/ClicksEnStock/FileInfos/cmd/fileinfos/logger"
)

// config is the TOML configuration file:
//
//	value_width    = 256
//	path_separator = "\\"
//	name_fallback  = false
//	jobs           = 4
//	format         = "text"
//	log_dir        = "/var/log/fileinfos"
type config struct {
	ValueWidth    int    `toml:"value_width"`
	PathSeparator string `toml:"path_separator"`
	NameFallback  bool   `toml:"name_fallback"`
	Jobs          int    `toml:"jobs"`
	Format        string `toml:"format"`
	LogDir        string `toml:"log_dir"`
}

func defaultConfig() config {
	return config{
		ValueWidth:    report.DefaultValueWidth,
		PathSeparator: report.DefaultPathSeparator,
		Jobs:          runtime.GOMAXPROCS(0),
		Format:        string(printer.FormatText),
	}
}

// loadConfig overlays the file at path on the defaults. An empty path
// returns the defaults.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

func (c config) validate() error {
	if c.ValueWidth < 1 {
		return fmt.Errorf("value_width must be at least 1, got %d", c.ValueWidth)
	}
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}
	if _, err := printer.ParseFormat(c.Format); err != nil {
		return err
	}
	return nil
}

func (c config) reportOptions(path string) *fileinfos.Options {
	return &fileinfos.Options{
		ValueWidth:    c.ValueWidth,
		PathSeparator: c.PathSeparator,
		NameFallback:  c.NameFallback,
		Logger:        logger.ForFile(path),
	}
}

func (c config) printerOptions() printer.Options {
	opts := printer.DefaultOptions()
	opts.Format, _ = printer.ParseFormat(c.Format)
	return opts
}
