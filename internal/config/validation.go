package config

import (
	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/nanobench/pkg/config"
)

var (
	// ErrRunsTooLow is returned when the minimum repetition count is below
	// the floor. Averaging over fewer than two repetitions produces
	// division artifacts.
	ErrRunsTooLow = errors.New("runs must be at least 2")

	// ErrNegativeDuration is returned when the minimum duration is
	// negative.
	ErrNegativeDuration = errors.New("duration must be non-negative")
)

// MinRunsFloor is the lowest accepted minimum repetition count.
const MinRunsFloor = 2

// Validate checks the resolved configuration. Filter patterns are not
// validated here: a malformed pattern degrades to match-everything at run
// time instead of aborting the run.
func Validate(cfg *config.Config) error {
	if cfg.Runs < MinRunsFloor {
		return errors.Wrapf(ErrRunsTooLow, "got %d", cfg.Runs)
	}

	if cfg.Duration < 0 {
		return errors.Wrapf(ErrNegativeDuration, "got %s", cfg.Duration.Std())
	}

	return nil
}
