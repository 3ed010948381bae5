package platform

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/gestor/pkg/core"
)

// Mode selects how the data directory is resolved.
type Mode string

const (
	// ModeAuto picks ModeDev under `go run`/`go test` and ModePackaged otherwise.
	ModeAuto Mode = "auto"
	// ModePackaged stores the document next to the executable.
	ModePackaged Mode = "packaged"
	// ModeDev stores the document in the development directory.
	ModeDev Mode = "dev"
)

// ErrInvalidConfig is returned when a configuration value is out of range.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the process-level configuration.
// Values come from defaults, then an optional YAML file, then GESTOR_* variables.
type Config struct {
	Mode     Mode   `yaml:"mode" env:"GESTOR_MODE"`
	DataDir  string `yaml:"data_dir" env:"GESTOR_DATA_DIR"`
	DevDir   string `yaml:"dev_dir" env:"GESTOR_DEV_DIR"`
	FileName string `yaml:"file_name" env:"GESTOR_FILE"`
	ReadOnly bool   `yaml:"read_only" env:"GESTOR_READ_ONLY"`
	LogLevel string `yaml:"log_level" env:"GESTOR_LOG_LEVEL"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Mode:     ModeAuto,
		FileName: core.DefaultFileName,
		LogLevel: "info",
	}
}

// LoadConfig builds a Config from the defaults, the YAML file at path (skipped
// when path is empty) and the environment.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks Mode and LogLevel. Empty values are replaced by defaults.
func (c *Config) Validate() error {
	if c.Mode == "" {
		c.Mode = ModeAuto
	}
	if c.FileName == "" {
		c.FileName = core.DefaultFileName
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	switch c.Mode {
	case ModeAuto, ModePackaged, ModeDev:
	default:
		return fmt.Errorf("%w: unknown mode %q (want auto, packaged or dev)", ErrInvalidConfig, c.Mode)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel converts a level name (debug, info, warn, error) to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, name)
	}
	return level, nil
}
