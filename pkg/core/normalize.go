package core

import (
	"bytes"
	"encoding/json"
	"unicode/utf8"
)

// Normalize returns raw unchanged when it holds a JSON value, and "" otherwise.
// Nil, blank, non-UTF-8 and unparseable input all normalize to "".
// The text is never re-serialized, so key order and formatting survive.
func Normalize(raw []byte) string {
	if len(bytes.TrimSpace(raw)) == 0 {
		return ""
	}
	if !utf8.Valid(raw) || !json.Valid(raw) {
		return ""
	}
	return string(raw)
}

// NormalizeString is Normalize for text handed over by the UI layer.
func NormalizeString(s string) string {
	return Normalize([]byte(s))
}
