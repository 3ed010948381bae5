package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/gestor/pkg/core"
)

// TempFilePrefix starts the name of the temporary file Save writes before
// renaming it over the document.
const TempFilePrefix = "gestor-tmp-"

// Repository implements core.Repository for a single file on the local filesystem.
type Repository struct {
	path   string
	config Config

	mu            sync.RWMutex
	watcherActive bool
	lastEvent     *time.Time
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	Dir      string // Directory holding the document. Made absolute by NewRepository.
	FileName string // Defaults to core.DefaultFileName.
	ReadOnly bool
	Logger   *slog.Logger
	// IgnorePatterns are doublestar globs (matched against base names) whose
	// events the watcher drops. Temporary files of atomic writes are always ignored.
	IgnorePatterns []string
}

// NewRepository creates a new filesystem-backed repository.
func NewRepository(config Config) (*Repository, error) {
	if config.FileName == "" {
		config.FileName = core.DefaultFileName
	}
	if filepath.Base(config.FileName) != config.FileName {
		return nil, fmt.Errorf("file name must not contain directories: %q", config.FileName)
	}
	dir, err := filepath.Abs(config.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory: %w", err)
	}
	config.Dir = dir
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}

	return &Repository{
		path:   filepath.Join(dir, config.FileName),
		config: config,
	}, nil
}

// Name returns the document file name.
func (r *Repository) Name() string {
	return r.config.FileName
}

// Path returns the absolute path of the document.
func (r *Repository) Path() string {
	return r.path
}

// Initialize creates the data directory. It is skipped in read-only mode.
func (r *Repository) Initialize(ctx context.Context) error {
	if r.config.ReadOnly {
		return nil
	}
	if err := os.MkdirAll(r.config.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

// Exists reports whether the document file is present.
func (r *Repository) Exists(ctx context.Context) bool {
	info, err := os.Stat(r.path)
	return err == nil && !info.IsDir()
}

// Load reads the whole document file.
func (r *Repository) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(r.path)
}

// Save replaces the document file atomically: data goes to a temporary file in
// the same directory, which is synced and renamed over the document. Readers
// never observe a half-written document. The permissions of the replaced file
// are kept; a new file gets 0644.
func (r *Repository) Save(ctx context.Context, data []byte) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	perm := os.FileMode(0644)
	if info, err := os.Stat(r.path); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(r.config.Dir, TempFilePrefix+r.config.FileName+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after the rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", r.config.FileName, err)
	}

	r.config.Logger.Debug("document replaced", "path", r.path, "bytes", len(data))
	return nil
}

// Delete removes the document file. A missing file is not an error.
func (r *Repository) Delete(ctx context.Context) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(r.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

var _ core.Repository = (*Repository)(nil)
var _ core.Watchable = (*Repository)(nil)
