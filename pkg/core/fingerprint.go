package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/gowebpki/jcs"
)

// Fingerprint returns the sha256 hex digest of the RFC 8785 (JCS) canonical form of doc.
// Documents that differ only in whitespace or key order share a fingerprint.
// An empty document has an empty fingerprint.
func Fingerprint(doc string) (string, error) {
	if doc == "" {
		return "", nil
	}
	canonical, err := jcs.Transform([]byte(doc))
	if err != nil {
		return "", fmt.Errorf("canonicalize document: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
