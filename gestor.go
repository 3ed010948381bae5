package gestor

import (
	"context"
	"log/slog"

	"github.com/aretw0/gestor/internal/platform"
	"github.com/aretw0/gestor/pkg/core"
)

// Version exposes the version of the library.
// See version.go for the implementation using go:embed.

// --- Types ---

// Bridge is the persistence bridge used by the UI layer.
type Bridge = core.Bridge

// Info describes the document file.
type Info = core.Info

// Result is the outcome of a write-type operation at the UI boundary.
type Result = core.Result

// Event is a change observed on the data directory.
type Event = core.Event

// Config is the process-level configuration.
type Config = platform.Config

// Mode selects how the data directory is resolved.
type Mode = platform.Mode

// Data directory modes.
const (
	ModeAuto     = platform.ModeAuto
	ModePackaged = platform.ModePackaged
	ModeDev      = platform.ModeDev
)

// DefaultFileName is the name of the document file.
const DefaultFileName = core.DefaultFileName

// --- Configuration ---

// Option defines a functional option for configuring a Bridge.
type Option = platform.Option

// WithLogger sets the logger for the bridge.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithReadOnly disables every write to disk.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithFileName overrides the document file name.
func WithFileName(name string) Option {
	return platform.WithFileName(name)
}

// WithRepository allows injecting a custom storage adapter.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return platform.DefaultConfig()
}

// LoadConfig reads the configuration from defaults, an optional YAML file and GESTOR_* variables.
func LoadConfig(path string) (Config, error) {
	return platform.LoadConfig(path)
}

// ResolveDataDir returns the absolute data directory for cfg.
func ResolveDataDir(cfg Config) (string, error) {
	return platform.ResolveDataDir(cfg)
}

// ParseLevel converts a log level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	return platform.ParseLevel(name)
}

// IsDevRun reports whether the process was started by `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}

// --- Factory ---

// New creates a Bridge over the document stored in dir.
func New(dir string, opts ...Option) (*Bridge, error) {
	return platform.New(dir, opts...)
}

// Open resolves the data directory from cfg and creates the Bridge.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*Bridge, error) {
	return platform.Open(ctx, cfg, logger)
}

// --- Helpers ---

// Normalize returns raw as text when it is a usable JSON document, or "" otherwise.
func Normalize(raw []byte) string {
	return core.Normalize(raw)
}
