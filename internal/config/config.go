// Package config loads go-joy's optional .joyrc.yaml file: the evaluator
// defaults (undef-error, echo-mode, autoput-mode, shell-escape, include
// search paths) a user would otherwise have to repeat on every
// invocation of cmd/joy. CLI flags always take precedence over a loaded
// config value -- see Resolved.Override. echo-mode and autoput-mode are
// parsed and resolved, but cmd/joy does not pass them to the evaluator.
package config

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// FileName is the conventional config file name searched for in the
// current directory and the user's home directory.
const FileName = ".joyrc.yaml"

// Config holds the subset of Evaluator-wide flags that may be set from
// a config file; zero values mean "not set, use the built-in default".
type Config struct {
	Include     []string `yaml:"include"`
	UndefError  *bool    `yaml:"undef-error"`
	EchoMode    *int64   `yaml:"echo-mode"`
	AutoputMode *int64   `yaml:"autoput-mode"`
	AllowShell  *bool    `yaml:"allow-shell"`
}

// SearchPaths returns the directories Load checks, in priority order:
// the current directory, then the user's home directory.
func SearchPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, home)
	}
	return paths
}

// Load finds and parses the first .joyrc.yaml found along SearchPaths.
// A missing file is not an error: Load returns a zero Config so callers
// can apply built-in defaults uniformly.
func Load() (*Config, error) {
	for _, dir := range SearchPaths() {
		path := filepath.Join(dir, FileName)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		var cfg Config
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	return &Config{}, nil
}

// boolOr returns *v if v is non-nil, else fallback.
func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

// int64Or returns *v if v is non-nil, else fallback.
func int64Or(v *int64, fallback int64) int64 {
	if v == nil {
		return fallback
	}
	return *v
}

// Resolved is the flattened, default-applied view of a Config, ready to
// feed interp.Option constructors.
type Resolved struct {
	Include     []string
	UndefError  bool
	EchoMode    int64
	AutoputMode int64
	AllowShell  bool
}

// Resolve merges cfg over the built-in defaults. A nil cfg is treated
// as empty.
func (cfg *Config) Resolve() Resolved {
	if cfg == nil {
		cfg = &Config{}
	}
	return Resolved{
		Include:     cfg.Include,
		UndefError:  boolOr(cfg.UndefError, true),
		EchoMode:    int64Or(cfg.EchoMode, 0),
		AutoputMode: int64Or(cfg.AutoputMode, 0),
		AllowShell:  boolOr(cfg.AllowShell, false),
	}
}

// Override applies CLI-supplied values on top of a Resolved config; a
// nil pointer argument means "flag not set, keep the config/default
// value". This is how cmd/joy guarantees flags win over the file.
func (r Resolved) Override(undefError, allowShell *bool) Resolved {
	if undefError != nil {
		r.UndefError = *undefError
	}
	if allowShell != nil {
		r.AllowShell = *allowShell
	}
	return r
}
