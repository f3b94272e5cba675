// Package config loads kiss.yaml, applies environment overrides and builds
// the logger shared by the pipeline stages.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/arrdem/kiss/internal/typesystem"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the top-level kiss.yaml configuration.
type Config struct {
	Optimise   OptimiseConfig   `yaml:"optimise"`
	Specialise SpecialiseConfig `yaml:"specialise"`
	Log        LogConfig        `yaml:"log"`

	// Color is one of auto, always or never. auto colours output only when
	// it is written to a terminal.
	Color string `yaml:"color,omitempty"`
}

// OptimiseConfig controls the optimiser stage.
type OptimiseConfig struct {
	// Enabled is a pointer so an absent key can default to true.
	Enabled *bool `yaml:"enabled,omitempty"`

	// MaxPasses bounds how often the optimiser reruns looking for a fixed point.
	MaxPasses int `yaml:"max_passes,omitempty"`
}

// SpecialiseConfig controls the specialisation stage.
type SpecialiseConfig struct {
	// Target is a type such as "Int" or "Int | Nil". Empty disables the stage.
	Target string `yaml:"target,omitempty"`
}

type LogConfig struct {
	Level  string `yaml:"level,omitempty"`  // debug, info, warn or error
	Format string `yaml:"format,omitempty"` // text or json
}

// Default returns the configuration used when no kiss.yaml exists.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// OptimiseEnabled reports whether the optimiser stage runs.
func (c *Config) OptimiseEnabled() bool {
	return c.Optimise.Enabled == nil || *c.Optimise.Enabled
}

// TargetType parses the specialisation target. The boolean is false when
// no target is configured.
func (c *Config) TargetType() (typesystem.Type, bool, error) {
	if strings.TrimSpace(c.Specialise.Target) == "" {
		return nil, false, nil
	}
	t, err := typesystem.Parse(c.Specialise.Target)
	if err != nil {
		return nil, false, err
	}
	return t, true, nil
}

// LoadConfig reads and parses a kiss.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses kiss.yaml content from bytes.
// The path argument is used only for error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.setDefaults()
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FindConfig searches for kiss.yaml starting from dir and walking up
// to parent directories. It returns an empty path and nil error if no
// file is found.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		for _, name := range ConfigFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Load finds the nearest kiss.yaml above dir, falling back to Default, and
// applies the overrides from envFile and the process environment.
func Load(dir, envFile string) (*Config, error) {
	path, err := FindConfig(dir)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if path != "" {
		if cfg, err = LoadConfig(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(envFile); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides settings from the KISS_* variables. Variables set in
// the process environment win over those read from envFile; a missing
// envFile is not an error.
func (c *Config) ApplyEnv(envFile string) error {
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	fileVars, err := godotenv.Read(envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading %s: %w", envFile, err)
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok
	}
	if err := c.applyVars(lookup); err != nil {
		return err
	}
	return c.validate(envFile)
}

func (c *Config) applyVars(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvLogLevel); ok {
		c.Log.Level = strings.ToLower(v)
	}
	if v, ok := lookup(EnvLogFormat); ok {
		c.Log.Format = strings.ToLower(v)
	}
	if v, ok := lookup(EnvColor); ok {
		c.Color = strings.ToLower(v)
	}
	if v, ok := lookup(EnvTarget); ok {
		c.Specialise.Target = v
	}
	if v, ok := lookup(EnvOptimise); ok {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvOptimise, err)
		}
		c.Optimise.Enabled = &enabled
	}
	if v, ok := lookup(EnvMaxPasses); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxPasses, err)
		}
		c.Optimise.MaxPasses = n
	}
	return nil
}

// validate checks the configuration for semantic errors.
func (c *Config) validate(path string) error {
	if c.Optimise.MaxPasses < 1 {
		return fmt.Errorf("%s: optimise.max_passes must be at least 1, got %d", path, c.Optimise.MaxPasses)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%s: log.level %q is not one of debug, info, warn, error", path, c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%s: log.format %q is not one of text, json", path, c.Log.Format)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%s: color %q is not one of auto, always, never", path, c.Color)
	}
	if _, _, err := c.TargetType(); err != nil {
		return fmt.Errorf("%s: specialise.target: %w", path, err)
	}
	return nil
}

// setDefaults fills in default values for optional fields.
func (c *Config) setDefaults() {
	if c.Optimise.MaxPasses == 0 {
		c.Optimise.MaxPasses = DefaultMaxPasses
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
	if c.Color == "" {
		c.Color = ColorAuto
	}
}
