// Package config provides layered configuration loading for the harness.
package config

import (
	"time"

	"github.com/smykla-skalski/nanobench/pkg/config"
)

const (
	// DefaultRuns is the default minimum repetition count.
	DefaultRuns = 8

	// DefaultDuration is the default minimum accumulated measured time.
	DefaultDuration = time.Second
)

// DefaultConfig returns a Config with all default values populated.
func DefaultConfig() *config.Config {
	return &config.Config{
		Filter:   "",
		Runs:     DefaultRuns,
		Duration: config.Duration(DefaultDuration),
		Output:   "",
		Log:      &config.LogConfig{},
	}
}

// defaultsToMap flattens the defaults into a koanf confmap layer.
func defaultsToMap() map[string]any {
	return map[string]any{
		"filter":    "",
		"runs":      DefaultRuns,
		"duration":  DefaultDuration.String(),
		"output":    "",
		"log.debug": false,
		"log.trace": false,
		"log.file":  "",
	}
}
