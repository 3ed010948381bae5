package core

import "errors"

// errUnusableDocument marks stored content that normalizes to nothing.
var errUnusableDocument = errors.New("stored document is blank or not valid JSON")

// withFallback returns what load produced, or the value of fallback when load fails.
// The load error is handed back so callers can log the degradation; it is never fatal.
func withFallback(load func() (string, error), fallback func() string) (string, error) {
	doc, err := load()
	if err != nil {
		return fallback(), err
	}
	return doc, nil
}
