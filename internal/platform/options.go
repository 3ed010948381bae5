package platform

import (
	"log/slog"

	"github.com/aretw0/gestor/pkg/core"
)

// options holds the internal configuration for a Bridge.
type options struct {
	repository core.Repository
	logger     *slog.Logger
	fileName   string
	readOnly   bool
}

// Option defines a functional option for configuring a Bridge.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		fileName: core.DefaultFileName,
	}
}

// WithLogger sets the logger for the bridge and its repository.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithReadOnly enables read-only mode.
// Write, reset and ensure return core.ErrReadOnly and the directory is never created.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.readOnly = enabled
	}
}

// WithFileName overrides the document file name.
func WithFileName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.fileName = name
		}
	}
}

// WithRepository allows injecting a custom storage adapter.
// If provided, the filesystem adapter is skipped and the directory is ignored.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}
