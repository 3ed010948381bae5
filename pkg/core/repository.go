package core

import "context"

// Repository defines the contract for storing the single document.
// Adhering to this interface keeps the bridge independent of where the bytes live.
type Repository interface {
	// Name returns the document file name (e.g. "gestor-classes-data.json").
	Name() string

	// Path returns the absolute location of the document. It never changes.
	Path() string

	// Initialize ensures the underlying storage is ready (e.g. create the parent directory).
	Initialize(ctx context.Context) error

	// Exists reports whether the document is currently present.
	Exists(ctx context.Context) bool

	// Load returns the raw stored bytes. A missing document yields an error
	// satisfying errors.Is(err, fs.ErrNotExist).
	Load(ctx context.Context) ([]byte, error)

	// Save replaces the stored bytes as a whole.
	Save(ctx context.Context, data []byte) error

	// Delete removes the document. Deleting a missing document is not an error.
	Delete(ctx context.Context) error
}

// Watchable defines an interface for repositories that report external changes.
type Watchable interface {
	// Watch emits an Event for every observed change until ctx is done.
	// The pattern selects which files count; empty means the document only.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}
