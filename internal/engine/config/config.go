// Package config handles loading and validation of threadpatch configuration files.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/irahardianto/threadpatch/internal/engine/highlight"
	"github.com/irahardianto/threadpatch/internal/platform/logger"
)

// Format selects how results are written to stdout.
type Format string

const (
	FormatDiff     Format = "diff"
	FormatJSON     Format = "json"
	FormatSARIF    Format = "sarif"
	FormatSections Format = "sections"
)

// FileName is the project-level config file looked up in the working directory.
const FileName = ".threadpatch.yaml"

const (
	defaultMaxChars = 2_000_000
	defaultMaxLines = 100_000
)

// ErrConfigNotFound is returned when an explicitly requested config file does not exist.
var ErrConfigNotFound = errors.New("config file not found. Run 'threadpatch init' to create one")

// Config is the threadpatch configuration.
type Config struct {
	Version   int             `yaml:"version"`
	Theme     highlight.Theme `yaml:"theme"`
	Limits    Limits          `yaml:"limits"`
	Output    OutputConfig    `yaml:"output"`
	Highlight HighlightConfig `yaml:"highlight"`
}

// Limits caps how much diff text a single merge may consume.
// Zero disables a limit.
type Limits struct {
	MaxChars int `yaml:"max_chars"`
	MaxLines int `yaml:"max_lines"`
}

// OutputConfig holds output preferences.
type OutputConfig struct {
	Format Format `yaml:"format"`
	Color  *bool  `yaml:"color"`
}

// HighlightConfig configures syntax highlighting of diff content.
type HighlightConfig struct {
	Enabled    *bool  `yaml:"enabled"`
	LightStyle string `yaml:"light_style"`
	DarkStyle  string `yaml:"dark_style"`
}

// ColorEnabled returns whether colored output is wanted. Defaults to true.
func (c *Config) ColorEnabled() bool {
	if c.Output.Color != nil {
		return *c.Output.Color
	}
	return true
}

// HighlightEnabled returns whether syntax highlighting is on. Defaults to true.
func (c *Config) HighlightEnabled() bool {
	if c.Highlight.Enabled != nil {
		return *c.Highlight.Enabled
	}
	return true
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{
		Limits: Limits{
			MaxChars: defaultMaxChars,
			MaxLines: defaultMaxLines,
		},
	}
	applyDefaults(cfg)
	return cfg
}

// Loader handles loading configuration from the file system.
type Loader struct {
	fs     FileSystem
	getenv func(string) string
}

// NewLoader creates a new Loader with the given file system.
// Uses os.Getenv for environment variable lookups by default.
func NewLoader(fs FileSystem) *Loader {
	return &Loader{fs: fs, getenv: os.Getenv}
}

// NewLoaderWithEnv creates a Loader with a custom getenv function for testability.
func NewLoaderWithEnv(fs FileSystem, getenv func(string) string) *Loader {
	return &Loader{fs: fs, getenv: getenv}
}

// Load reads and parses the config file at path, then applies defaults and
// environment overrides. Returns ErrConfigNotFound if the file does not exist.
func (l *Loader) Load(ctx context.Context, path string) (*Config, error) {
	logger.FromContext(ctx).Debug("loading config file", "path", path)
	path = filepath.Clean(path)

	data, err := l.fs.ReadFile(path)
	if err != nil {
		if l.fs.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Keys absent from the file keep their defaults; an explicit 0 limit
	// stays 0 (unlimited).
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}

	applyDefaults(cfg)
	applyEnvOverrides(cfg, l.getenv, logger.FromContext(ctx))

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Discover loads the config from explicit when set. Otherwise it tries
// ./.threadpatch.yaml, then ~/.config/threadpatch/config.yaml, and falls back
// to defaults when neither exists.
func (l *Loader) Discover(ctx context.Context, explicit string) (*Config, error) {
	if explicit != "" {
		return l.Load(ctx, explicit)
	}

	candidates := []string{FileName}
	if home, err := l.fs.UserHomeDir(); err == nil && home != "" {
		candidates = append(candidates, filepath.Join(home, ".config", "threadpatch", "config.yaml"))
	}

	for _, path := range candidates {
		cfg, err := l.Load(ctx, path)
		if errors.Is(err, ErrConfigNotFound) {
			continue
		}
		return cfg, err
	}

	logger.FromContext(ctx).Debug("no config file found, using defaults")
	cfg := Default()
	applyEnvOverrides(cfg, l.getenv, logger.FromContext(ctx))
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Discover loads configuration using the real file system.
func Discover(ctx context.Context, explicit string) (*Config, error) {
	return NewLoader(&RealFileSystem{}).Discover(ctx, explicit)
}

// applyDefaults fills fields whose zero value is not meaningful.
func applyDefaults(cfg *Config) {
	if cfg.Version == 0 {
		cfg.Version = 1
	}
	if cfg.Theme == "" {
		cfg.Theme = highlight.ThemeDark
	}
	if theme, err := highlight.ParseTheme(string(cfg.Theme)); err == nil {
		cfg.Theme = theme
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = FormatDiff
	}
	if cfg.Highlight.LightStyle == "" {
		cfg.Highlight.LightStyle = highlight.DefaultLightStyle
	}
	if cfg.Highlight.DarkStyle == "" {
		cfg.Highlight.DarkStyle = highlight.DefaultDarkStyle
	}
}

// validate checks every field and returns all problems at once.
func validate(cfg *Config) error {
	var errs []error

	if cfg.Version != 1 {
		errs = append(errs, fmt.Errorf("unsupported config version %d (valid: 1)", cfg.Version))
	}
	if _, err := highlight.ParseTheme(string(cfg.Theme)); err != nil {
		errs = append(errs, err)
	}
	if cfg.Limits.MaxChars < 0 {
		errs = append(errs, fmt.Errorf("limits.max_chars must not be negative, got %d", cfg.Limits.MaxChars))
	}
	if cfg.Limits.MaxLines < 0 {
		errs = append(errs, fmt.Errorf("limits.max_lines must not be negative, got %d", cfg.Limits.MaxLines))
	}

	switch cfg.Output.Format {
	case FormatDiff, FormatJSON, FormatSARIF, FormatSections:
	default:
		errs = append(errs, fmt.Errorf("unknown output format %q (valid: diff, json, sarif, sections)", cfg.Output.Format))
	}

	return errors.Join(errs...)
}
