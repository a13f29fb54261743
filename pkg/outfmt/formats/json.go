package formats

import (
	"io"
	"strings"

	"github.com/hupe1980/outfmt/pkg/outfmt"
)

// jsonEntities is the substitution set the JSON string syntax requires.
var jsonEntities = outfmt.EntityTable{
	'\\': `\\`,
	'"':  `\"`,
	'\n': `\n`,
	'\r': `\r`,
	'\t': `\t`,
	'\b': `\b`,
	'\f': `\f`,
}

// JSON renders an incrementally built JSON object with two-space
// indentation. Documents and scopes become objects, attributes become
// members; a key-only attribute renders a null member and a value-only
// attribute renders under the empty key.
//
// A JSON value carries rendering state (comma tracking per nesting level)
// and is not safe for concurrent use.
//
// Known limitation: members are emitted in event order and nothing
// prevents duplicate keys within one object.
type JSON struct {
	stack []bool // per open container: whether a member was already written
	wrote bool
}

// NewJSON creates the json format.
func NewJSON() *JSON {
	return &JSON{}
}

// ID returns the fixed format id.
func (f *JSON) ID() outfmt.FormatID { return JSONID }

// Name returns "json".
func (f *JSON) Name() string { return "json" }

// Entities returns the json substitution table.
func (f *JSON) Entities() outfmt.EntityTable { return jsonEntities }

// Escape returns the JSON string literal for s, surrounding quotes
// included.
func (f *JSON) Escape(s *string) *string {
	return outfmt.EscapeQuoted(jsonEntities, s)
}

// Render writes the JSON representation of ev.
func (f *JSON) Render(w io.Writer, ev outfmt.Event) error {
	key := f.Escape(ev.Key)
	value := f.Escape(ev.Value)

	switch ev.Type {
	case outfmt.EventDocumentOpen:
		if err := f.memberPrefix(w); err != nil {
			return err
		}

		if _, err := io.WriteString(w, "{"); err != nil {
			return err
		}

		f.stack = append(f.stack, false)

	case outfmt.EventDocumentClose:
		if len(f.stack) > 0 {
			f.stack = f.stack[:len(f.stack)-1]
		}

		if _, err := io.WriteString(w, "\n"+f.indent()+"}\n"); err != nil {
			return err
		}

	case outfmt.EventScopeOpen:
		if err := f.memberPrefix(w); err != nil {
			return err
		}

		if _, err := io.WriteString(w, deref(key)+": {"); err != nil {
			return err
		}

		f.stack = append(f.stack, false)

	case outfmt.EventScopeClose:
		if len(f.stack) > 0 {
			f.stack = f.stack[:len(f.stack)-1]
		}

		if _, err := io.WriteString(w, "\n"+f.indent()+"}"); err != nil {
			return err
		}

	case outfmt.EventAttribute:
		var member string

		switch {
		case key != nil && value != nil:
			member = *key + ": " + *value
		case key != nil:
			member = *key + ": null"
		case value != nil:
			member = `"": ` + *value
		default:
			return nil
		}

		if err := f.memberPrefix(w); err != nil {
			return err
		}

		if _, err := io.WriteString(w, member); err != nil {
			return err
		}
	}

	return nil
}

// memberPrefix writes the separator and indentation preceding the next
// member at the current depth and marks the enclosing container as
// started.
func (f *JSON) memberPrefix(w io.Writer) error {
	if len(f.stack) == 0 {
		if !f.wrote {
			f.wrote = true
			return nil
		}

		_, err := io.WriteString(w, "\n")
		return err
	}

	sep := "\n"
	if f.stack[len(f.stack)-1] {
		sep = ",\n"
	}

	f.stack[len(f.stack)-1] = true

	_, err := io.WriteString(w, sep+f.indent())
	return err
}

func (f *JSON) indent() string {
	return strings.Repeat(" ", len(f.stack)*2)
}
