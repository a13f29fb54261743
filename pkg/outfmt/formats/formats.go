// Package formats provides the built-in output formats: csv, html, text,
// xml, json and yaml. Each format implements outfmt.Format and is
// registered under a fixed id and name; text is the default when no
// selection was made.
package formats

import (
	"github.com/hupe1980/outfmt/pkg/outfmt"
)

// Fixed format ids. Lookups by id must keep working across releases, so
// these never change.
const (
	CSVID  outfmt.FormatID = 1
	HTMLID outfmt.FormatID = 2
	TextID outfmt.FormatID = 3
	XMLID  outfmt.FormatID = 4
	JSONID outfmt.FormatID = 5
	YAMLID outfmt.FormatID = 6
)

// RegisterBuiltins registers every built-in format on r.
func RegisterBuiltins(r *outfmt.Registry) error {
	builtins := []outfmt.Format{
		NewCSV(),
		NewHTML(),
		NewText(),
		NewXML(),
		NewJSON(),
		NewYAML(),
	}

	for _, f := range builtins {
		if err := r.Register(f); err != nil {
			return err
		}
	}

	return nil
}

// DefaultRegistry returns a registry pre-populated with the built-in
// formats.
func DefaultRegistry() *outfmt.Registry {
	r := outfmt.NewRegistry()
	if err := RegisterBuiltins(r); err != nil {
		// The built-ins carry fixed, valid ids and names.
		panic(err)
	}

	return r
}

// Default returns the format used when no selection was made.
func Default() outfmt.Format {
	return NewText()
}

// deref returns the pointed-to string, or "" for nil.
func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
