package outfmt

import "io"

// FormatID is the stable numeric identity of a format, exposed alongside
// the name for format selection. Ids of the built-in formats must not be
// renumbered; third-party formats should pick ids well clear of them.
type FormatID int

// Format is the contract every output format implements. A Format value is
// immutable in identity (id, name, entity table) but may carry rendering
// state across the events of a single document, such as indentation or
// separator bookkeeping. Render is called synchronously, in document order,
// for one document at a time.
type Format interface {
	// ID returns the stable numeric identity of the format.
	ID() FormatID

	// Name returns the user-facing lookup key. Matching is exact and
	// case-sensitive.
	Name() string

	// Render writes the textual representation of a single event to w.
	// Implementations escape key and value through Escape before producing
	// text.
	Render(w io.Writer, ev Event) error

	// Escape converts a raw string into its format-safe representation.
	// A nil input is returned as nil.
	Escape(s *string) *string

	// Entities returns the substitution table driving Escape, or nil for
	// formats without byte-level substitutions.
	Entities() EntityTable
}
