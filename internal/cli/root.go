// Package cli implements the jdoc command.
package cli

import (
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/calumari/jdoc/internal/log"
	"github.com/calumari/jdoc/internal/options"
)

const version = "0.1.0"

type app struct {
	stdin  io.Reader
	logger *zap.Logger
	opts   *options.Options

	configPath    string
	logLevel      string
	logFile       string
	maxDepth      int
	legacyNumbers bool
	concurrency   int
}

// NewRootCommand builds the jdoc command tree. Documents are read from stdin
// when no files are given. A nil logger is built from the loaded options.
func NewRootCommand(stdin io.Reader, logger *zap.Logger) *cobra.Command {
	a := &app{stdin: stdin, logger: logger}

	root := &cobra.Command{
		Use:               "jdoc",
		Version:           version,
		Short:             "jdoc parses, validates and canonically formats JSON documents",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "Options file path (YAML)")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: DEBUG, INFO, WARN, ERROR")
	flags.StringVar(&a.logFile, "log-file", "", "Also write logs to this rotated file")
	flags.IntVar(&a.maxDepth, "max-depth", 0, "Maximum nesting depth, 0 or less for unlimited")
	flags.BoolVar(&a.legacyNumbers, "legacy-numbers", false, "Rebuild fractions with the legacy scaling formula")
	flags.IntVarP(&a.concurrency, "concurrency", "j", 0, "Number of files processed at once")

	root.AddCommand(
		newFmtCommand(a),
		newValidateCommand(a),
		newFromYAMLCommand(a),
	)
	return root
}

// setup loads the options file and applies the flags set on the command line
// on top of it.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	opts := options.NewDefault()
	if a.configPath != "" {
		loaded, err := options.Load(a.configPath)
		if err != nil {
			return err
		}
		opts = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		if _, err := log.ParseLevel(a.logLevel); err != nil {
			return err
		}
		opts.Log.Level = a.logLevel
	}
	if flags.Changed("log-file") {
		opts.Log.Filename = a.logFile
	}
	if flags.Changed("max-depth") {
		opts.Reader.MaxDepth = a.maxDepth
	}
	if flags.Changed("legacy-numbers") {
		opts.Reader.LegacyNumbers = a.legacyNumbers
	}
	if flags.Changed("concurrency") {
		if a.concurrency < 1 {
			a.concurrency = 1
		}
		opts.Concurrency = a.concurrency
	}
	a.opts = opts

	if a.logger == nil {
		logger, err := log.New(opts.Log, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		a.logger = logger
	}
	a.logger.Debug("options loaded",
		zap.String("config", a.configPath),
		zap.Int("maxDepth", opts.Reader.MaxDepth),
		zap.Bool("legacyNumbers", opts.Reader.LegacyNumbers),
		zap.Int("concurrency", opts.Concurrency))
	return nil
}
