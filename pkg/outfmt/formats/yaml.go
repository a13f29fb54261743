package formats

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/outfmt/pkg/outfmt"
)

const yamlIndentWidth = 2

// YAML renders block-style YAML. Scopes become nested mappings, attributes
// become mapping entries and value-only attributes become sequence items
// continuing the preceding key-only entry. Scalars are encoded through
// gopkg.in/yaml.v3, so quoting of ambiguous content (colons, booleans,
// numeric look-alikes) follows the YAML spec instead of hand-rolled rules.
//
// Known limitation: a value-only attribute parses as YAML only when it
// continues a key-only attribute; after a key/value pair it produces a
// stray sequence entry.
type YAML struct{}

// NewYAML creates the yaml format.
func NewYAML() *YAML {
	return &YAML{}
}

// ID returns the fixed format id.
func (f *YAML) ID() outfmt.FormatID { return YAMLID }

// Name returns "yaml".
func (f *YAML) Name() string { return "yaml" }

// Entities returns nil; scalar encoding is delegated to the yaml library
// rather than done by byte substitution.
func (f *YAML) Entities() outfmt.EntityTable { return nil }

// Escape returns the YAML scalar encoding of s.
func (f *YAML) Escape(s *string) *string {
	if s == nil {
		return nil
	}

	enc := yamlScalar(*s, "")
	return &enc
}

// Render writes the YAML representation of ev.
func (f *YAML) Render(w io.Writer, ev outfmt.Event) error {
	indent := yamlIndent(ev.Level)

	switch ev.Type {
	case outfmt.EventDocumentOpen:
		var b strings.Builder
		b.WriteString("---\n")

		if ev.Key != nil {
			b.WriteString("# " + yamlCommentText(*ev.Key) + "\n")
		}
		if ev.Value != nil {
			b.WriteString("# " + yamlCommentText(*ev.Value) + "\n")
		}

		_, err := io.WriteString(w, b.String())
		return err

	case outfmt.EventScopeOpen:
		_, err := fmt.Fprintf(w, "%s%s:\n", indent, yamlScalar(deref(ev.Key), indent))
		return err

	case outfmt.EventAttribute:
		switch {
		case ev.Key != nil && ev.Value != nil:
			_, err := fmt.Fprintf(w, "%s%s: %s\n", indent, yamlScalar(*ev.Key, indent), yamlScalar(*ev.Value, indent))
			return err
		case ev.Key != nil:
			_, err := fmt.Fprintf(w, "%s%s:\n", indent, yamlScalar(*ev.Key, indent))
			return err
		case ev.Value != nil:
			_, err := fmt.Fprintf(w, "%s- %s\n", indent, yamlScalar(*ev.Value, indent))
			return err
		}
	}

	return nil
}

// yamlScalar encodes a single scalar through the yaml library. Multi-line
// content is forced into double-quoted style so it stays inline; when the
// emitter folds a long scalar across lines, the continuation lines are
// re-indented below the given indent, which YAML folding ignores.
func yamlScalar(s, indent string) string {
	var (
		out []byte
		err error
	)

	if strings.ContainsAny(s, "\n\r") {
		node := &yaml.Node{Kind: yaml.ScalarNode, Style: yaml.DoubleQuotedStyle, Value: s}
		out, err = yaml.Marshal(node)
	} else {
		out, err = yaml.Marshal(s)
	}

	if err != nil {
		// Single scalars do not fail to marshal; keep the raw text if one
		// somehow does.
		return s
	}

	enc := strings.TrimRight(string(out), "\n")
	if strings.Contains(enc, "\n") {
		enc = strings.ReplaceAll(enc, "\n", "\n"+indent+"  ")
	}

	return enc
}

// yamlCommentText flattens line breaks, which would terminate the comment
// early.
func yamlCommentText(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")

	return s
}

func yamlIndent(level int) string {
	units := level - 1
	if units < 0 {
		units = 0
	}

	return strings.Repeat(" ", units*yamlIndentWidth)
}
