package formats

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hupe1980/outfmt/pkg/outfmt"
)

// htmlEntities is the substitution set for HTML text and attribute
// content.
var htmlEntities = outfmt.EntityTable{
	'&':  "&amp;",
	'<':  "&lt;",
	'>':  "&gt;",
	'"':  "&quot;",
	'\'': "&#39;",
}

// HTML renders a minimal self-contained HTML5 page. The document becomes
// the page skeleton with the document name as title and the recorded
// invocation in a generator meta tag, scopes become headed div blocks and
// attributes become paragraphs with key/value spans.
type HTML struct{}

// NewHTML creates the html format.
func NewHTML() *HTML {
	return &HTML{}
}

// ID returns the fixed format id.
func (f *HTML) ID() outfmt.FormatID { return HTMLID }

// Name returns "html".
func (f *HTML) Name() string { return "html" }

// Entities returns the html substitution table.
func (f *HTML) Entities() outfmt.EntityTable { return htmlEntities }

// Escape substitutes html entities.
func (f *HTML) Escape(s *string) *string {
	return outfmt.Escape(htmlEntities, s)
}

// Render writes the HTML representation of ev.
func (f *HTML) Render(w io.Writer, ev outfmt.Event) error {
	key := f.Escape(ev.Key)
	value := f.Escape(ev.Value)

	switch ev.Type {
	case outfmt.EventDocumentOpen:
		var b strings.Builder
		b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")

		if value != nil {
			b.WriteString(`<meta name="generator" content="` + *value + "\">\n")
		}
		if key != nil {
			b.WriteString("<title>" + *key + "</title>\n")
		}

		b.WriteString("</head>\n<body>\n")

		_, err := io.WriteString(w, b.String())
		return err

	case outfmt.EventDocumentClose:
		_, err := io.WriteString(w, "</body>\n</html>\n")
		return err

	case outfmt.EventScopeOpen:
		h := htmlHeading(ev.Level)
		_, err := fmt.Fprintf(w, "<div class=\"scope\">\n<%s>%s</%s>\n", h, deref(key), h)
		return err

	case outfmt.EventScopeClose:
		_, err := io.WriteString(w, "</div>\n")
		return err

	case outfmt.EventAttribute:
		switch {
		case key != nil && value != nil:
			_, err := fmt.Fprintf(w, "<p><span class=\"key\">%s</span>: <span class=\"value\">%s</span></p>\n", *key, *value)
			return err
		case key != nil:
			_, err := fmt.Fprintf(w, "<p><span class=\"key\">%s</span></p>\n", *key)
			return err
		case value != nil:
			_, err := fmt.Fprintf(w, "<p><span class=\"value\">%s</span></p>\n", *value)
			return err
		}
	}

	return nil
}

// htmlHeading maps a scope level to a heading tag, h2 for top-level scopes
// down to h6 for anything nested deeper.
func htmlHeading(level int) string {
	h := level + 1
	if h < 2 {
		h = 2
	}
	if h > 6 {
		h = 6
	}

	return "h" + strconv.Itoa(h)
}
