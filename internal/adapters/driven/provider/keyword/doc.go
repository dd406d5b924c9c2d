// Package keyword provides rule-based capability providers that stand in
// for a language model. Both providers look for the first document
// keyword present in the text (invoice, then contract, then resume) and
// fabricate plausible values for that document type.
package keyword
