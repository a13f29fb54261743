// Package outfmt renders hierarchical scope/key/value documents through
// runtime-pluggable output formats.
//
// The package is organized around four concerns:
//
//   - Events (event.go): The closed set of render events ([Event],
//     [EventType]) dispatched to a format in document order, each carrying
//     a computed nesting level and optional key/value strings.
//
//   - Formats (format.go, registry.go): The [Format] contract every output
//     format implements, and the [Registry] resolving formats by name or
//     numeric id for user-facing format selection.
//
//   - Emission (emitter.go): The [Emitter] document/scope state machine
//     translating open/close/attribute calls into render events. It owns
//     the open-document flag, the scope stack, and the bound format.
//
//   - Escaping (escape.go): Per-format [EntityTable] byte substitution and
//     the nil-preserving [Escape] and [EscapeQuoted] helpers shared by
//     format implementations.
//
// Built-in formats live in the formats subpackage. An Emitter renders one
// logical document at a time and is not safe for concurrent use.
package outfmt
