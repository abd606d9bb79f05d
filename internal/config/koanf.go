package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	tomlparser "github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/smykla-skalski/nanobench/internal/xdg"
	"github.com/smykla-skalski/nanobench/pkg/config"
)

const (
	// ProjectConfigDir is the directory name for project configuration.
	ProjectConfigDir = ".nanobench"

	// ProjectConfigFile is the primary project configuration file name.
	ProjectConfigFile = "config.toml"

	// ProjectConfigFileAlt is the alternative project configuration file
	// name, looked up at the project root.
	ProjectConfigFileAlt = "nanobench.toml"

	// EnvPrefix is the prefix for environment variable overrides.
	EnvPrefix = "NANOBENCH_"
)

// Loader loads harness configuration from all sources using koanf.
// Precedence order (highest to lowest):
//  1. CLI flags
//  2. Environment variables (NANOBENCH_*)
//  3. Project config (.nanobench/config.toml or nanobench.toml)
//  4. User config ($XDG_CONFIG_HOME/nanobench/config.toml)
//  5. Defaults
type Loader struct {
	k       *koanf.Koanf
	workDir string
}

// NewLoader creates a Loader resolving the project config against the
// current working directory.
func NewLoader() (*Loader, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get working directory")
	}

	return NewLoaderWithDir(workDir), nil
}

// NewLoaderWithDir creates a Loader with a custom working directory
// (for testing).
func NewLoaderWithDir(workDir string) *Loader {
	return &Loader{
		k:       koanf.New("."),
		workDir: workDir,
	}
}

// Load loads and validates configuration from all sources with precedence.
// flags is the CLI flag layer; pass nil when no flags were set.
func (l *Loader) Load(flags map[string]any) (*config.Config, error) {
	cfg, err := l.loadWithoutValidation(flags)
	if err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return cfg, nil
}

func (l *Loader) loadWithoutValidation(flags map[string]any) (*config.Config, error) {
	// Reset koanf instance for a fresh load
	l.k = koanf.New(".")

	// 1. Defaults (lowest priority)
	if err := l.k.Load(confmap.Provider(defaultsToMap(), "."), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load defaults")
	}

	// 2. User config
	if path := xdg.GlobalConfigFile(); fileExists(path) {
		if err := l.k.Load(file.Provider(path), tomlparser.Parser()); err != nil {
			return nil, errors.Wrapf(err, "failed to load config file %s", path)
		}
	}

	// 3. Project config
	if path := l.findProjectConfig(); path != "" {
		if err := l.k.Load(file.Provider(path), tomlparser.Parser()); err != nil {
			return nil, errors.Wrapf(err, "failed to load config file %s", path)
		}
	}

	// 4. Environment variables
	envOpt := env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: envTransform,
	}

	if err := l.k.Load(env.Provider(".", envOpt), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load env vars")
	}

	// 5. CLI flags (highest priority)
	if len(flags) > 0 {
		if err := l.k.Load(confmap.Provider(flags, "."), nil); err != nil {
			return nil, errors.Wrap(err, "failed to load flags")
		}
	}

	var cfg config.Config
	if err := l.k.UnmarshalWithConf("", &cfg, unmarshalConf(&cfg)); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	return &cfg, nil
}

// findProjectConfig returns the first existing project config path, or ""
// when none exists.
func (l *Loader) findProjectConfig() string {
	candidates := []string{
		filepath.Join(l.workDir, ProjectConfigDir, ProjectConfigFile),
		filepath.Join(l.workDir, ProjectConfigFileAlt),
	}

	for _, path := range candidates {
		if fileExists(path) {
			return path
		}
	}

	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)

	return err == nil && !info.IsDir()
}

// envTransform transforms environment variable names to config paths.
// NANOBENCH_LOG_DEBUG → log.debug
func envTransform(key, value string) (string, any) {
	key = strings.TrimPrefix(key, EnvPrefix)
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, "_", ".")

	return key, value
}
