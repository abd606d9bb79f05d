package bench

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"

	internalconfig "github.com/smykla-skalski/nanobench/internal/config"
	"github.com/smykla-skalski/nanobench/internal/xdg"
	"github.com/smykla-skalski/nanobench/pkg/config"
	"github.com/smykla-skalski/nanobench/pkg/logger"
)

// LoadOptions resolves run options for a benchmark binary: it parses the
// standard harness flags from args (usually os.Args[1:]), layers them over
// NANOBENCH_* environment variables, the project config file and the
// defaults, and returns the resulting options together with the configured
// logger.
//
//	func main() {
//		opts, log, err := bench.LoadOptions(os.Args[1:])
//		if err != nil { ... }
//
//		if err := bench.New("example"). ... .Run(opts...); err != nil {
//			log.Error("benchmark failed", "error", err)
//		}
//	}
func LoadOptions(args []string) ([]Option, logger.Logger, error) {
	fs := pflag.NewFlagSet("nanobench", pflag.ContinueOnError)

	filter := fs.StringP(
		"filter",
		"f",
		"",
		"Only run benchmarks whose set/function/size name matches this regexp",
	)
	runs := fs.IntP(
		"min-runs",
		"r",
		DefaultMinRuns,
		"Run each configuration at least this many times",
	)
	duration := fs.DurationP(
		"min-duration",
		"d",
		DefaultMinDuration,
		"Run each configuration until at least this much measured time accumulated",
	)
	output := fs.StringP(
		"output",
		"o",
		"",
		"Write the result CSV to this file instead of stdout",
	)
	debug := fs.Bool("debug", false, "Enable debug logging")
	trace := fs.Bool("trace", false, "Enable trace logging")

	if err := fs.Parse(args); err != nil {
		return nil, nil, errors.Wrap(err, "parse benchmark flags")
	}

	loader, err := internalconfig.NewLoader()
	if err != nil {
		return nil, nil, errors.Wrap(err, "create config loader")
	}

	cfg, err := loader.Load(changedFlags(fs, filter, runs, duration, output, debug, trace))
	if err != nil {
		return nil, nil, errors.Wrap(err, "load config")
	}

	log := newLogger(cfg.GetLog())

	reporter := DefaultReporter()
	if cfg.Output != "" {
		reporter = NewFileReporter(xdg.ExpandPathSilent(cfg.Output), log)
	}

	opts := []Option{
		WithFilter(NewFilter(cfg.Filter, log)),
		WithMinRuns(cfg.Runs),
		WithMinDuration(cfg.Duration.Std()),
		WithReporter(reporter),
		WithLogger(log),
	}

	return opts, log, nil
}

// changedFlags builds the highest-precedence config layer from flags the
// user actually set, so unset flags do not mask file or env values with
// their defaults.
func changedFlags(
	fs *pflag.FlagSet,
	filter *string,
	runs *int,
	duration *time.Duration,
	output *string,
	debug, trace *bool,
) map[string]any {
	flags := make(map[string]any)

	if fs.Changed("filter") {
		flags["filter"] = *filter
	}

	if fs.Changed("min-runs") {
		flags["runs"] = *runs
	}

	if fs.Changed("min-duration") {
		flags["duration"] = duration.String()
	}

	if fs.Changed("output") {
		flags["output"] = *output
	}

	if fs.Changed("debug") {
		flags["log.debug"] = *debug
	}

	if fs.Changed("trace") {
		flags["log.trace"] = *trace
	}

	return flags
}

// newLogger builds the harness logger from the log configuration, falling
// back to stderr when the log file cannot be opened.
//
//nolint:ireturn // callers only need the Logger interface
func newLogger(cfg *config.LogConfig) logger.Logger {
	if cfg.File == "" {
		return logger.NewStderrLogger(cfg.Debug, cfg.Trace)
	}

	log, err := logger.NewFileLogger(xdg.ExpandPathSilent(cfg.File), cfg.Debug, cfg.Trace)
	if err != nil {
		fallback := logger.NewStderrLogger(cfg.Debug, cfg.Trace)
		fallback.Error("cannot open log file, logging to stderr",
			"path", cfg.File,
			"error", err,
		)

		return fallback
	}

	return log
}
