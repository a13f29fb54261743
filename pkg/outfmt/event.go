package outfmt

// EventType identifies the kind of a render event.
type EventType int

// The closed set of render events, dispatched in document order.
const (
	EventDocumentOpen EventType = iota
	EventDocumentClose
	EventScopeOpen
	EventScopeClose
	EventAttribute
)

// String returns the event type name for diagnostics and log output.
func (t EventType) String() string {
	switch t {
	case EventDocumentOpen:
		return "document-open"
	case EventDocumentClose:
		return "document-close"
	case EventScopeOpen:
		return "scope-open"
	case EventScopeClose:
		return "scope-close"
	case EventAttribute:
		return "attribute"
	default:
		return "unknown"
	}
}

// Event is a single render instruction handed to a Format. Key and Value
// are nil when the event carries no such field: a scope event carries the
// scope name in Key, an attribute carries any combination of Key and Value,
// and a document-open event carries the document name in Key and the
// recorded command line in Value when either was set.
type Event struct {
	// Type is the kind of event.
	Type EventType

	// Level is the nesting depth at the moment the event was emitted: one
	// for an open document plus the number of open scopes. Document events
	// are always level 0. Formats without nesting syntax ignore it.
	Level int

	// Key is the scope name, attribute key, or document name. Nil when the
	// event carries none.
	Key *string

	// Value is the attribute value, or the command-line record on a
	// document-open event. Nil when the event carries none.
	Value *string
}
