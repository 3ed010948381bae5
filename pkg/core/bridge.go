package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Bridge exposes the document to the UI layer.
//
// It keeps a cached payload: the last document known to be valid. Reads fall
// back to it whenever the disk cannot provide a usable document, while writes
// report their true outcome.
type Bridge struct {
	repo   Repository
	logger *slog.Logger

	mu     sync.RWMutex
	cached string
}

// NewBridge creates a Bridge over repo and loads the initial cached payload.
// It never fails: a storage that cannot be prepared or read leaves the cache empty.
func NewBridge(ctx context.Context, repo Repository, logger *slog.Logger) *Bridge {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	b := &Bridge{repo: repo, logger: logger}

	if err := repo.Initialize(ctx); err != nil {
		logger.Warn("failed to prepare document storage", "path", repo.Path(), "error", err)
	}

	if doc, err := b.loadDocument(ctx); err == nil {
		b.cached = doc
	} else {
		logger.Debug("starting with empty cache", "path", repo.Path(), "reason", err)
	}
	return b
}

// Info reports the document name, whether it exists on disk and its absolute path.
func (b *Bridge) Info(ctx context.Context) Info {
	return Info{
		Name:   b.repo.Name(),
		Exists: b.repo.Exists(ctx),
		Path:   b.repo.Path(),
	}
}

// EnsureExists creates the document when it is missing.
// The cached payload is written if there is one, otherwise the "{}" placeholder.
// An existing document is left untouched.
func (b *Bridge) EnsureExists(ctx context.Context) (Info, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.repo.Exists(ctx) {
		doc := b.cached
		if doc == "" {
			doc = Placeholder
		}
		if err := b.repo.Save(ctx, []byte(doc)); err != nil {
			return b.Info(ctx), persistError(err)
		}
		b.logger.Info("document created", "path", b.repo.Path())
	}
	return b.Info(ctx), nil
}

// Read returns the document on disk, or the cached payload when the disk has
// nothing usable: the file is missing, unreadable, blank or not valid JSON.
// A usable document replaces the cached payload.
func (b *Bridge) Read(ctx context.Context) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	doc, err := withFallback(
		func() (string, error) { return b.loadDocument(ctx) },
		func() string { return b.cached },
	)
	if err != nil {
		b.logger.Debug("read served from cache", "path", b.repo.Path(), "reason", err)
		return doc
	}
	b.cached = doc
	return doc
}

// Write validates and persists data.
//
// Non-empty data must be valid UTF-8 JSON, otherwise ErrInvalidDocument is
// returned and nothing changes. Empty data persists the "{}" placeholder. On
// success the cached payload holds exactly the persisted text.
func (b *Bridge) Write(ctx context.Context, data string) error {
	payload := data
	if payload == "" {
		payload = Placeholder
	}
	// Accept exactly what Normalize keeps, so a stored document always reads back.
	doc := NormalizeString(payload)
	if doc == "" {
		return ErrInvalidDocument
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	return b.save(ctx, doc)
}

// CreateEmpty replaces the document with the "{}" placeholder, whatever it
// held before, and caches the placeholder.
func (b *Bridge) CreateEmpty(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.save(ctx, Placeholder); err != nil {
		return err
	}
	b.logger.Info("document replaced with placeholder", "path", b.repo.Path())
	return nil
}

// save persists doc and caches it. Callers hold b.mu.
func (b *Bridge) save(ctx context.Context, doc string) error {
	if err := b.repo.Save(ctx, []byte(doc)); err != nil {
		return persistError(err)
	}
	b.cached = doc
	b.logger.Debug("document written", "path", b.repo.Path(), "bytes", len(doc))
	return nil
}

// Reset deletes the document, if present, and clears the cached payload.
func (b *Bridge) Reset(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.repo.Delete(ctx); err != nil {
		return persistError(err)
	}
	b.cached = ""
	b.logger.Info("document reset", "path", b.repo.Path())
	return nil
}

// Cached returns the cached payload. When it is empty, one reload from disk
// is attempted first; a failed reload is not an error.
func (b *Bridge) Cached(ctx context.Context) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cached == "" {
		if doc, err := b.loadDocument(ctx); err == nil {
			b.cached = doc
		} else {
			b.logger.Debug("cache reload skipped", "path", b.repo.Path(), "reason", err)
		}
	}
	return b.cached
}

// Fingerprint returns the canonical digest of the cached payload.
func (b *Bridge) Fingerprint(ctx context.Context) (string, error) {
	return Fingerprint(b.Cached(ctx))
}

// Watch observes external changes if the repository supports it.
// An empty pattern watches the document only.
func (b *Bridge) Watch(ctx context.Context, pattern string) (<-chan Event, error) {
	w, ok := b.repo.(Watchable)
	if !ok {
		return nil, ErrWatchUnsupported
	}
	return w.Watch(ctx, pattern)
}

// loadDocument reads and normalizes the stored document.
// A nil error guarantees a non-empty, valid document.
func (b *Bridge) loadDocument(ctx context.Context) (string, error) {
	raw, err := b.repo.Load(ctx)
	if err != nil {
		return "", err
	}
	doc := Normalize(raw)
	if doc == "" {
		return "", errUnusableDocument
	}
	return doc, nil
}

func persistError(err error) error {
	if errors.Is(err, ErrReadOnly) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrPersist, err)
}
