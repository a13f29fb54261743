package outfmt

import "strings"

// JoinCommandLine flattens invocation arguments into the single-line record
// that header-writing formats embed in their output. Arguments are joined
// by a single space; a nil or empty slice yields an empty string.
func JoinCommandLine(args []string) string {
	return strings.Join(args, " ")
}
