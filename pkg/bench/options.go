package bench

import (
	"time"

	"github.com/smykla-skalski/nanobench/pkg/logger"
)

const (
	// DefaultMinRuns is the default minimum number of repetitions per
	// configuration.
	DefaultMinRuns = 8

	// DefaultMinDuration is the default minimum accumulated measured time
	// per configuration.
	DefaultMinDuration = time.Second

	// MinRunsFloor is the lowest accepted minimum-runs value. Averaging
	// over a single repetition is too noisy to report.
	MinRunsFloor = 2
)

// runSettings holds the resolved execution parameters for one Run call.
type runSettings struct {
	filter      Filter
	minRuns     uint64
	minDuration uint64
	reporter    *Reporter
	log         logger.Logger
}

// Option configures a Run call.
type Option func(*runSettings)

// WithFilter restricts which configurations run, see Filter.
func WithFilter(f Filter) Option {
	return func(s *runSettings) {
		s.filter = f
	}
}

// WithMinRuns sets the minimum repetition count. Values below MinRunsFloor
// are raised to it.
func WithMinRuns(n int) Option {
	return func(s *runSettings) {
		if n < MinRunsFloor {
			n = MinRunsFloor
		}

		s.minRuns = uint64(n)
	}
}

// WithMinDuration sets the minimum accumulated measured time. Together with
// the minimum repetition count this forms the stability threshold: a
// configuration repeats until both are satisfied. Negative durations are
// treated as zero.
func WithMinDuration(d time.Duration) Option {
	return func(s *runSettings) {
		if d < 0 {
			d = 0
		}

		s.minDuration = uint64(d)
	}
}

// WithReporter directs result rows to r instead of the shared stdout
// Reporter.
func WithReporter(r *Reporter) Option {
	return func(s *runSettings) {
		s.reporter = r
	}
}

// WithLogger sets the logger for run diagnostics.
func WithLogger(log logger.Logger) Option {
	return func(s *runSettings) {
		s.log = log
	}
}

// newRunSettings resolves options against the defaults.
func newRunSettings(opts ...Option) *runSettings {
	s := &runSettings{
		filter:      MatchAll(),
		minRuns:     DefaultMinRuns,
		minDuration: uint64(DefaultMinDuration),
		reporter:    defaultReporter,
		log:         logger.NewStderrLogger(false, false),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}
