package domain

import (
	"strings"
	"time"
)

// RawDocument represents a file claimed from the intake location.
// It is the intake's output before extraction.
type RawDocument struct {
	// Filename is the base name of the file.
	Filename string

	// URI is the original location (file path).
	URI string

	// MIMEType is the content type (e.g., "application/pdf").
	MIMEType string

	// Size is the file size in bytes at claim time.
	Size int64

	// ModTime is the file's last modification time.
	ModTime time.Time
}

// IsText reports whether the document can be read verbatim.
// Everything else goes through the text recogniser.
func (r *RawDocument) IsText() bool {
	return strings.HasPrefix(r.MIMEType, "text/")
}
