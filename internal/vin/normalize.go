// Package vin holds the pure VIN logic: canonicalization of raw input,
// length and character-set validation, OCR text extraction and the
// duplicate-classification policy. Nothing in this package touches the
// store.
package vin

import "strings"

// Length is the canonical VIN length after normalization.
const Length = 17

// Normalize canonicalizes manually typed input: upper-case, then every
// letter O becomes digit 0. Idempotent. Callers trim whitespace first.
func Normalize(raw string) string {
	return strings.ReplaceAll(strings.ToUpper(raw), "O", "0")
}

// ValidLength reports whether raw normalizes to exactly 17 characters.
// This is the only validation applied to manual entry.
func ValidLength(raw string) bool {
	return len(Normalize(raw)) == Length
}
