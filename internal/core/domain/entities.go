package domain

// Well-known entity keys.
const (
	// EntityErrorKey marks a result for a document whose structure
	// could not be determined.
	EntityErrorKey = "error"

	// EntitySourceLengthKey records the length of the analysed text.
	EntitySourceLengthKey = "source_text_length"
)

// Entities maps extracted field names to values.
// Values are strings, numbers, or string slices.
type Entities map[string]any

// Recognised returns false if the provider flagged the document
// as unrecognised.
func (e Entities) Recognised() bool {
	_, flagged := e[EntityErrorKey]
	return !flagged
}

// Clone returns a shallow copy of the entities.
func (e Entities) Clone() Entities {
	if e == nil {
		return nil
	}
	dst := make(Entities, len(e))
	for k, v := range e {
		dst[k] = v
	}
	return dst
}

// EntityResult is the output of an entity extraction provider.
type EntityResult struct {
	// Entities holds the extracted fields.
	Entities Entities

	// Count is the number of extracted fields, not counting
	// bookkeeping keys (source length, error marker).
	Count int
}

// NewEntityResult builds a result and derives its count.
func NewEntityResult(entities Entities) EntityResult {
	count := 0
	for k := range entities {
		if k == EntitySourceLengthKey || k == EntityErrorKey {
			continue
		}
		count++
	}
	return EntityResult{Entities: entities, Count: count}
}
