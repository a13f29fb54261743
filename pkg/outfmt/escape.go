package outfmt

import "strings"

// EntityTable maps single byte values to replacement strings. Bytes without
// an entry pass through unchanged, so multi-byte UTF-8 sequences survive
// substitution untouched. A table is never mutated after construction.
type EntityTable map[byte]string

// Replace returns s with every mapped byte substituted by its replacement.
func (t EntityTable) Replace(s string) string {
	if len(t) == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		if repl, ok := t[s[i]]; ok {
			b.WriteString(repl)
		} else {
			b.WriteByte(s[i])
		}
	}

	return b.String()
}

// ReplaceQuoted returns s with every substitution applied and the result
// wrapped in a leading and trailing double quote.
func (t EntityTable) ReplaceQuoted(s string) string {
	return `"` + t.Replace(s) + `"`
}

// Escape applies t to s, preserving nil: a nil input stays nil. Format
// implementations whose escaping is plain substitution can use this as
// their Escape method body.
func Escape(t EntityTable, s *string) *string {
	if s == nil {
		return nil
	}

	out := t.Replace(*s)

	return &out
}

// EscapeQuoted applies t to s and wraps the result in double quotes,
// preserving nil.
func EscapeQuoted(t EntityTable, s *string) *string {
	if s == nil {
		return nil
	}

	out := t.ReplaceQuoted(*s)

	return &out
}
