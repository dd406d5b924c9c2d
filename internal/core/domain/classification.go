package domain

import "math"

// DocumentType is the label assigned by the classifier.
type DocumentType string

// Known document types.
const (
	DocumentInvoice  DocumentType = "Invoice"
	DocumentContract DocumentType = "Contract"
	DocumentResume   DocumentType = "Resume"
	DocumentUnknown  DocumentType = "Unknown"
)

// KeywordPriority is the order in which document keywords are matched.
// The first match wins.
var KeywordPriority = []DocumentType{DocumentInvoice, DocumentContract, DocumentResume}

// IsValid returns true if the document type is recognised.
func (t DocumentType) IsValid() bool {
	switch t {
	case DocumentInvoice, DocumentContract, DocumentResume, DocumentUnknown:
		return true
	default:
		return false
	}
}

// Keyword returns the lower-case trigger word for the type.
// Unknown has no keyword.
func (t DocumentType) Keyword() string {
	switch t {
	case DocumentInvoice:
		return "invoice"
	case DocumentContract:
		return "contract"
	case DocumentResume:
		return "resume"
	default:
		return ""
	}
}

// ConfidenceRange returns the plausible confidence band for the type.
func (t DocumentType) ConfidenceRange() ConfidenceRange {
	switch t {
	case DocumentInvoice:
		return ConfidenceRange{Min: 0.90, Max: 0.99}
	case DocumentContract:
		return ConfidenceRange{Min: 0.85, Max: 0.95}
	case DocumentResume:
		return ConfidenceRange{Min: 0.88, Max: 0.98}
	default:
		return ConfidenceRange{Min: 0.40, Max: 0.60}
	}
}

// String returns the string representation.
func (t DocumentType) String() string {
	return string(t)
}

// ConfidenceRange is an inclusive confidence interval.
type ConfidenceRange struct {
	Min float64
	Max float64
}

// Contains reports whether v lies within the range.
func (r ConfidenceRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// RoundConfidence rounds a confidence score to two decimal places.
func RoundConfidence(v float64) float64 {
	return math.Round(v*100) / 100
}

// Classification is the classifier's verdict for a document.
type Classification struct {
	// DocumentType is the assigned label.
	DocumentType DocumentType `json:"document_type"`

	// Confidence is in [0, 1], rounded to two decimals.
	Confidence float64 `json:"confidence"`
}

// Validate checks the label is known and the confidence is in [0, 1].
func (c Classification) Validate() error {
	if !c.DocumentType.IsValid() {
		return ErrInvalidInput
	}
	if c.Confidence < 0 || c.Confidence > 1 || math.IsNaN(c.Confidence) {
		return ErrInvalidInput
	}
	return nil
}
