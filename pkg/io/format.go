package io

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Supported file formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// ErrUnknownFormat is returned when a file extension maps to no supported
// format.
var ErrUnknownFormat = errors.New("unknown file format")

// FormatFromPath returns the format implied by the file extension.
func FormatFromPath(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
}
