package core

import "errors"

// Common errors.
var (
	ErrInvalidDocument  = errors.New("document is not valid JSON")
	ErrPersist          = errors.New("failed to persist document")
	ErrReadOnly         = errors.New("repository is in read-only mode")
	ErrWatchUnsupported = errors.New("repository does not support watching")
	ErrNotFound         = errors.New("data file not found")
)

// ErrorKind classifies a failed operation for callers across the host boundary.
type ErrorKind string

const (
	KindNone       ErrorKind = ""
	KindValidation ErrorKind = "validation"
	KindReadOnly   ErrorKind = "read_only"
	KindIO         ErrorKind = "io"
	KindNotFound   ErrorKind = "not_found"
)

// KindOf maps an error returned by the bridge to its kind.
// Any error not matching a sentinel above is an I/O failure.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrInvalidDocument):
		return KindValidation
	case errors.Is(err, ErrReadOnly):
		return KindReadOnly
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	default:
		return KindIO
	}
}
