package formats

import (
	"fmt"
	"io"
	"strings"

	"github.com/hupe1980/outfmt/pkg/outfmt"
)

// Text formatting constants: each nesting level indents by four spaces and
// values start at a fixed column when the indented key fits before it.
const (
	textIndentWidth = 4
	textValueColumn = 32
)

// Text renders level-indented plain text. It is the default format when no
// selection was made.
type Text struct{}

// NewText creates the text format.
func NewText() *Text {
	return &Text{}
}

// ID returns the fixed format id.
func (f *Text) ID() outfmt.FormatID { return TextID }

// Name returns "text".
func (f *Text) Name() string { return "text" }

// Entities returns nil; text output has no entity table.
func (f *Text) Entities() outfmt.EntityTable { return nil }

// Escape returns s unchanged; plain text needs no substitution.
func (f *Text) Escape(s *string) *string { return s }

// Render writes the plain-text representation of ev. Scope opens become
// headers after a blank line, attributes become aligned key/value rows,
// value-only attributes line up under the preceding value as continuation
// cells. Document events and scope closes print nothing.
func (f *Text) Render(w io.Writer, ev outfmt.Event) error {
	indent := textIndent(ev.Level)

	switch ev.Type {
	case outfmt.EventScopeOpen:
		_, err := fmt.Fprintf(w, "\n%s%s\n", indent, deref(ev.Key))
		return err

	case outfmt.EventAttribute:
		switch {
		case ev.Key != nil && ev.Value != nil:
			key := *ev.Key + ":"

			pad := textValueColumn - len(indent) - len(key)
			if pad < 1 {
				pad = 1
			}

			_, err := fmt.Fprintf(w, "%s%s%s%s\n", indent, key, strings.Repeat(" ", pad), *ev.Value)
			return err

		case ev.Key != nil:
			_, err := fmt.Fprintf(w, "%s%s\n", indent, *ev.Key)
			return err

		case ev.Value != nil:
			col := textValueColumn
			if len(indent) > col {
				col = len(indent)
			}

			_, err := fmt.Fprintf(w, "%s%s\n", strings.Repeat(" ", col), *ev.Value)
			return err
		}
	}

	return nil
}

// textIndent returns the indentation for an event at the given level. The
// document level is the base, so top-level scopes sit flush left.
func textIndent(level int) string {
	units := level - 1
	if units < 0 {
		units = 0
	}

	return strings.Repeat(" ", units*textIndentWidth)
}
