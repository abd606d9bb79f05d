// Package config provides the configuration schema for the benchmark
// harness: filter, stability thresholds, output destination and logging.
package config

import (
	"time"

	"github.com/cockroachdb/errors"
)

// ErrNegativeDuration is returned when a negative duration is provided.
var ErrNegativeDuration = errors.New("duration must be non-negative")

// Config is the resolved harness configuration. All values flow through the
// layered loader in internal/config: defaults, project TOML file,
// NANOBENCH_* environment variables, then CLI flags.
type Config struct {
	// Filter is a regular expression matched against the full
	// "set/function/size" benchmark name; only matching configurations run.
	// Empty matches everything.
	Filter string `koanf:"filter" toml:"filter"`

	// Runs is the minimum number of repetitions per configuration.
	Runs int `koanf:"runs" toml:"runs"`

	// Duration is the minimum accumulated measured time per configuration.
	Duration Duration `koanf:"duration" toml:"duration"`

	// Output is the result CSV path. Empty writes to stdout.
	Output string `koanf:"output" toml:"output"`

	// Log configures run diagnostics.
	Log *LogConfig `koanf:"log" toml:"log"`
}

// LogConfig configures harness logging. Logs never go to stdout, which is
// reserved for result CSV.
type LogConfig struct {
	// Debug enables info-level logging.
	Debug bool `koanf:"debug" toml:"debug"`

	// Trace enables debug-level logging.
	Trace bool `koanf:"trace" toml:"trace"`

	// File appends logs to the given file instead of stderr.
	File string `koanf:"file" toml:"file"`
}

// GetLog returns the log configuration, defaulting to an empty one.
func (c *Config) GetLog() *LogConfig {
	if c.Log == nil {
		return &LogConfig{}
	}

	return c.Log
}

// Duration wraps time.Duration for TOML parsing ("1s", "500ms").
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return errors.Wrapf(err, "invalid duration %q", string(text))
	}

	if parsed < 0 {
		return errors.Wrapf(ErrNegativeDuration, "%q", string(text))
	}

	*d = Duration(parsed)

	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML writing.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Std().String()), nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}
