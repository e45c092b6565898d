package errors

import (
	"slices"
	"strings"
	"unicode"
)

// MaxNameLength bounds character and issue names accepted from outside.
const MaxNameLength = 256

// ValidateName checks a character or issue name coming from user input.
// what names the field in the error message ("character", "issue").
//
// Names may contain any printable text, including commas and slashes, but
// not control characters, and must be non-empty after trimming.
func ValidateName(what, name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidTable, "%s name cannot be empty", what)
	}
	if len(name) > MaxNameLength {
		return New(ErrCodeInvalidTable, "%s name too long (max %d characters)", what, MaxNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidTable, "%s name contains invalid control characters", what)
		}
	}
	return nil
}

// ValidateFormats checks that every requested output format is allowed.
// An empty list is accepted.
func ValidateFormats(formats, allowed []string) error {
	for _, f := range formats {
		if !slices.Contains(allowed, f) {
			return New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", f, strings.Join(allowed, ", "))
		}
	}
	return nil
}
