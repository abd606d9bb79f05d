package config

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"

	"github.com/smykla-skalski/nanobench/pkg/config"
)

const (
	// ConfigFileMode is the file mode for configuration files (user
	// read/write only).
	ConfigFileMode = 0o600

	// ConfigDirMode is the file mode for configuration directories (user
	// rwx only).
	ConfigDirMode = 0o700
)

// ErrConfigExists is returned when writing would overwrite an existing
// configuration file.
var ErrConfigExists = errors.New("configuration file already exists")

// configHeader is prepended to generated configuration files.
const configHeader = `# nanobench configuration.
# Values here are overridden by NANOBENCH_* environment variables and CLI
# flags. Durations use Go syntax: "1s", "500ms".

`

// Writer writes configuration to TOML files.
type Writer struct {
	workDir string
}

// NewWriter creates a Writer targeting the current working directory.
func NewWriter() *Writer {
	return &Writer{workDir: mustGetwd()}
}

// NewWriterWithDir creates a Writer with a custom directory (for testing).
func NewWriterWithDir(workDir string) *Writer {
	return &Writer{workDir: workDir}
}

// WriteDefault writes the default configuration to nanobench.toml in the
// working directory. It refuses to overwrite an existing file.
func (w *Writer) WriteDefault() (string, error) {
	path := filepath.Join(w.workDir, ProjectConfigFileAlt)

	if _, err := os.Stat(path); err == nil {
		return "", errors.Wrapf(ErrConfigExists, "%s", path)
	}

	if err := w.WriteFile(path, DefaultConfig()); err != nil {
		return "", err
	}

	return path, nil
}

// WriteFile marshals cfg as TOML and writes it to path.
func (w *Writer) WriteFile(path string, cfg *config.Config) error {
	var buf bytes.Buffer

	buf.WriteString(configHeader)

	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(cfg); err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, ConfigDirMode); err != nil {
			return errors.Wrap(err, "failed to create config directory")
		}
	}

	if err := os.WriteFile(path, buf.Bytes(), ConfigFileMode); err != nil {
		return errors.Wrap(err, "failed to write config file")
	}

	return nil
}

func mustGetwd() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}

	return wd
}
