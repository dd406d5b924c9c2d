package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRawDocument_IsText(t *testing.T) {
	tests := []struct {
		mimeType string
		expected bool
	}{
		{"text/plain", true},
		{"text/markdown", true},
		{"text/csv", true},
		{"application/pdf", false},
		{"image/png", false},
		{"application/octet-stream", false},
		{"application/json", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.mimeType, func(t *testing.T) {
			raw := RawDocument{Filename: "doc", MIMEType: tt.mimeType}
			assert.Equal(t, tt.expected, raw.IsText())
		})
	}
}
