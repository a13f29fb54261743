package formats

import (
	"fmt"
	"io"
	"strings"

	"github.com/hupe1980/outfmt/pkg/outfmt"
)

// csvEntities substitutes the two characters that cannot appear raw inside
// a CSV field: line breaks become a literal backslash-n sequence and double
// quotes are doubled.
var csvEntities = outfmt.EntityTable{
	'\n': `\n`,
	'"':  `""`,
}

// CSV renders flat comma-separated rows. Scope opens become row headers,
// attributes become key,value rows.
//
// Known limitation: records do not all carry the same number of fields,
// which stricter CSV consumers may reject. Output is kept byte-compatible
// with earlier releases instead.
type CSV struct{}

// NewCSV creates the csv format.
func NewCSV() *CSV {
	return &CSV{}
}

// ID returns the fixed format id.
func (f *CSV) ID() outfmt.FormatID { return CSVID }

// Name returns "csv".
func (f *CSV) Name() string { return "csv" }

// Entities returns the csv substitution table.
func (f *CSV) Entities() outfmt.EntityTable { return csvEntities }

// Escape substitutes csv entities and encloses the whole field in double
// quotes when the original content contains a line break, a double quote
// or a comma. The enclosing decision looks at the original content, never
// at the substituted form.
func (f *CSV) Escape(s *string) *string {
	if s == nil {
		return nil
	}

	if strings.ContainsAny(*s, "\n\",") {
		return outfmt.EscapeQuoted(csvEntities, s)
	}

	return outfmt.Escape(csvEntities, s)
}

// Render writes the csv representation of ev. The event level is ignored;
// csv output is flat.
func (f *CSV) Render(w io.Writer, ev outfmt.Event) error {
	key := f.Escape(ev.Key)
	value := f.Escape(ev.Value)

	switch ev.Type {
	case outfmt.EventScopeOpen:
		_, err := fmt.Fprintf(w, "\n%s\n", deref(key))
		return err

	case outfmt.EventScopeClose:
		_, err := io.WriteString(w, "\n")
		return err

	case outfmt.EventAttribute:
		switch {
		case key != nil && value != nil:
			_, err := fmt.Fprintf(w, "%s,%s\n", *key, *value)
			return err
		case key != nil:
			_, err := fmt.Fprintf(w, "\n%s\n", *key)
			return err
		case value != nil:
			_, err := fmt.Fprintf(w, ",%s\n", *value)
			return err
		}
	}

	return nil
}
