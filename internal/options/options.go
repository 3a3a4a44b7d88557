// Package options holds the jdoc command line configuration and its YAML
// file representation.
package options

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/calumari/jdoc"
)

// Options is the configuration of the jdoc command.
type Options struct {
	Log    LogOption    `yaml:"log"`    // Log options.
	Reader ReaderOption `yaml:"reader"` // Parsing options.
	// Maximum number of files processed at the same time.
	// Default: 4.
	Concurrency int `yaml:"concurrency"`
}

type LogOption struct {
	// Log level: DEBUG, INFO, WARN, ERROR.
	// Default: "INFO".
	Level string `yaml:"level"`
	// Log mode: SIMPLE, FULL.
	// Default: "SIMPLE".
	Mode string `yaml:"mode"`
	// Rotated log file written in addition to stderr. Empty disables it.
	// Default: "".
	Filename string `yaml:"filename"`
}

type ReaderOption struct {
	// Maximum nesting depth of objects and arrays. Zero or less is unlimited.
	// Default: 1000.
	MaxDepth int `yaml:"maxDepth"`
	// Rebuild fractional numbers with the legacy scaling formula.
	// Default: false.
	LegacyNumbers bool `yaml:"legacyNumbers"`
}

// NewDefault returns a default Options.
func NewDefault() *Options {
	return &Options{
		Log: LogOption{
			Level: "INFO",
			Mode:  "SIMPLE",
		},
		Reader: ReaderOption{
			MaxDepth: jdoc.DefaultMaxDepth,
		},
		Concurrency: 4,
	}
}

// Load reads a YAML options file. Settings missing from the file keep their
// default values.
func Load(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read options %s: %w", path, err)
	}
	opts := NewDefault()
	if err := yaml.Unmarshal(data, opts); err != nil {
		return nil, fmt.Errorf("decode options %s: %w", path, err)
	}
	if opts.Concurrency < 1 {
		return nil, fmt.Errorf("options %s: concurrency must be positive, got %d", path, opts.Concurrency)
	}
	return opts, nil
}

// ReaderOptions converts the reader section into jdoc reader options.
func (o *Options) ReaderOptions() []jdoc.ReaderOption {
	ropts := []jdoc.ReaderOption{jdoc.WithMaxDepth(o.Reader.MaxDepth)}
	if o.Reader.LegacyNumbers {
		ropts = append(ropts, jdoc.WithLegacyNumberScaling())
	}
	return ropts
}
