// Package ocr provides text recognisers for non-text documents.
package ocr

import (
	"context"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/custodia-labs/docflow/internal/core/domain"
	"github.com/custodia-labs/docflow/internal/core/ports/driven"
	"github.com/custodia-labs/docflow/internal/logger"
)

// Ensure Placeholder implements the interface.
var _ driven.TextRecogniser = (*Placeholder)(nil)

// MIMETypePDF is the content type inspected with pdfcpu.
const MIMETypePDF = "application/pdf"

// Placeholder stands in for an OCR engine. It returns fixed text naming
// the file and, for PDFs, records the page count it would have scanned.
type Placeholder struct {
	pageCount func(path string) (int, error)
}

// NewPlaceholder creates a placeholder recogniser.
func NewPlaceholder() *Placeholder {
	return &Placeholder{pageCount: api.PageCountFile}
}

// Recognise returns the placeholder text for raw.
func (p *Placeholder) Recognise(ctx context.Context, raw domain.RawDocument) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if raw.MIMEType == MIMETypePDF && p.pageCount != nil {
		pages, err := p.pageCount(raw.URI)
		if err != nil {
			logger.Debug("ocr: could not read page count for %s: %v", raw.Filename, err)
		} else {
			logger.Debug("ocr: %s has %d pages", raw.Filename, pages)
		}
	}

	return PlaceholderText(raw.Filename), nil
}

// PlaceholderText is the text produced for filename.
func PlaceholderText(filename string) string {
	return fmt.Sprintf("Simulated OCR content for %s. Contains keywords: invoice, contract, or resume.", filename)
}
