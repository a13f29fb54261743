package formats

import (
	"fmt"
	"io"
	"strings"

	"github.com/hupe1980/outfmt/pkg/outfmt"
)

// xmlEntities is the predefined XML entity set.
var xmlEntities = outfmt.EntityTable{
	'&':  "&amp;",
	'<':  "&lt;",
	'>':  "&gt;",
	'"':  "&quot;",
	'\'': "&#39;",
}

// XML renders an XML document with a <document> root, <scope> elements for
// scopes and <attr> elements for attributes, indented two spaces per
// level. The document name and the recorded invocation travel as
// attributes on the root element.
type XML struct{}

// NewXML creates the xml format.
func NewXML() *XML {
	return &XML{}
}

// ID returns the fixed format id.
func (f *XML) ID() outfmt.FormatID { return XMLID }

// Name returns "xml".
func (f *XML) Name() string { return "xml" }

// Entities returns the xml substitution table.
func (f *XML) Entities() outfmt.EntityTable { return xmlEntities }

// Escape substitutes the predefined XML entities.
func (f *XML) Escape(s *string) *string {
	return outfmt.Escape(xmlEntities, s)
}

// Render writes the XML representation of ev.
func (f *XML) Render(w io.Writer, ev outfmt.Event) error {
	key := f.Escape(ev.Key)
	value := f.Escape(ev.Value)
	indent := xmlIndent(ev.Level)

	switch ev.Type {
	case outfmt.EventDocumentOpen:
		if _, err := io.WriteString(w, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n"); err != nil {
			return err
		}

		root := "<document"
		if key != nil {
			root += ` name="` + *key + `"`
		}
		if value != nil {
			root += ` cmdline="` + *value + `"`
		}

		_, err := io.WriteString(w, root+">\n")
		return err

	case outfmt.EventDocumentClose:
		_, err := io.WriteString(w, "</document>\n")
		return err

	case outfmt.EventScopeOpen:
		_, err := fmt.Fprintf(w, "%s<scope name=\"%s\">\n", indent, deref(key))
		return err

	case outfmt.EventScopeClose:
		_, err := fmt.Fprintf(w, "%s</scope>\n", indent)
		return err

	case outfmt.EventAttribute:
		switch {
		case key != nil && value != nil:
			_, err := fmt.Fprintf(w, "%s<attr key=\"%s\">%s</attr>\n", indent, *key, *value)
			return err
		case key != nil:
			_, err := fmt.Fprintf(w, "%s<attr key=\"%s\"/>\n", indent, *key)
			return err
		case value != nil:
			_, err := fmt.Fprintf(w, "%s<attr>%s</attr>\n", indent, *value)
			return err
		}
	}

	return nil
}

func xmlIndent(level int) string {
	if level < 0 {
		level = 0
	}

	return strings.Repeat(" ", level*2)
}
