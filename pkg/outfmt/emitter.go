package outfmt

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Emitter is the document/scope controller. It owns the open-document flag,
// the stack of open scope names, and the bound format, and translates
// open/close/attribute calls into render events dispatched synchronously to
// the format.
//
// Misuse is a programming error, not a recoverable condition: opening a
// second document, closing a document that is not open, closing a scope
// that was never opened, and document operations with no format bound all
// panic. A missing format during scope or attribute emission instead skips
// the render while still mutating state, preserving long-standing caller
// expectations (see the package tests for the exact contract).
//
// State always advances, even when the format's Render reports a write
// error; the error is returned after the transition so a failing sink
// cannot desynchronize the state machine.
type Emitter struct {
	w       io.Writer
	format  Format
	open    bool
	scopes  []string
	cmdline string
	logger  *slog.Logger
}

// Option configures an Emitter.
type Option func(*Emitter)

// WithFormat binds the initial output format.
func WithFormat(f Format) Option {
	return func(e *Emitter) {
		e.format = f
	}
}

// WithCommandLine records the invocation arguments. The joined form is
// handed to the format as the value of the document-open event, so formats
// with headers can embed the invocation that produced the document.
func WithCommandLine(args []string) Option {
	return func(e *Emitter) {
		e.cmdline = JoinCommandLine(args)
	}
}

// WithLogger sets a logger for the Emitter.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Emitter) {
		e.logger = logger
	}
}

// New creates an Emitter writing to w. If w is nil, os.Stdout is used.
// Without WithFormat the Emitter starts unbound: scope and attribute calls
// are skipped and document calls panic until SetFormat binds a format.
func New(w io.Writer, opts ...Option) *Emitter {
	if w == nil {
		w = os.Stdout
	}

	e := &Emitter{
		w:      w,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// SetFormat rebinds the active format. Document and scope state are left
// untouched; callers are expected to select a format before opening a
// document.
func (e *Emitter) SetFormat(f Format) {
	e.format = f
}

// Format returns the bound format, or nil when unbound.
func (e *Emitter) Format() Format {
	return e.format
}

// CommandLine returns the recorded invocation, or "" when none was set.
func (e *Emitter) CommandLine() string {
	return e.cmdline
}

// Depth returns the number of currently open scopes.
func (e *Emitter) Depth() int {
	return len(e.scopes)
}

// DocumentOpen reports whether a document is currently open.
func (e *Emitter) DocumentOpen() bool {
	return e.open
}

// OpenDocument begins an unnamed document.
func (e *Emitter) OpenDocument() error {
	return e.OpenDocumentNamed("")
}

// OpenDocumentNamed begins a document carrying the given name. It panics
// if a document is already open or no format is bound.
func (e *Emitter) OpenDocumentNamed(name string) error {
	if e.format == nil {
		panic("outfmt: cannot open a document with no format bound")
	}

	if e.open {
		panic("outfmt: cannot open a document while one is already open")
	}

	ev := Event{Type: EventDocumentOpen}
	if name != "" {
		ev.Key = &name
	}

	if e.cmdline != "" {
		cmdline := e.cmdline
		ev.Value = &cmdline
	}

	err := e.format.Render(e.w, ev)

	e.open = true

	if err != nil {
		return fmt.Errorf("rendering document open: %w", err)
	}

	return nil
}

// CloseDocument ends the open document. It panics if no document is open
// or no format is bound. The scope stack is not required to be empty.
func (e *Emitter) CloseDocument() error {
	if e.format == nil {
		panic("outfmt: cannot close a document with no format bound")
	}

	if !e.open {
		panic("outfmt: cannot close a document that has not been opened")
	}

	err := e.format.Render(e.w, Event{Type: EventDocumentClose})

	e.open = false

	if err != nil {
		return fmt.Errorf("rendering document close: %w", err)
	}

	return nil
}

// OpenScope emits a scope-open event and pushes name onto the scope stack.
// The event level counts the enclosing document and the scopes open before
// this one. With no format bound the render is skipped but the push still
// happens.
func (e *Emitter) OpenScope(name string) error {
	var err error

	if e.format != nil {
		ev := Event{Type: EventScopeOpen, Level: e.level(), Key: &name}
		err = e.format.Render(e.w, ev)
	} else {
		e.logger.Debug("scope open skipped, no format bound", slog.String("scope", name))
	}

	e.scopes = append(e.scopes, name)

	if err != nil {
		return fmt.Errorf("rendering scope open: %w", err)
	}

	return nil
}

// CloseScope pops the most recently opened scope and emits a scope-close
// event carrying the popped name at the popped-to level. Closing with an
// empty scope stack panics. With no format bound the render is skipped but
// the pop still happens.
func (e *Emitter) CloseScope() error {
	if len(e.scopes) == 0 {
		panic("outfmt: cannot close a scope that has not been opened")
	}

	name := e.scopes[len(e.scopes)-1]
	e.scopes = e.scopes[:len(e.scopes)-1]

	if e.format == nil {
		e.logger.Debug("scope close skipped, no format bound", slog.String("scope", name))
		return nil
	}

	ev := Event{Type: EventScopeClose, Level: e.level(), Key: &name}
	if err := e.format.Render(e.w, ev); err != nil {
		return fmt.Errorf("rendering scope close: %w", err)
	}

	return nil
}

// KeyValue emits an attribute carrying both a key and a value.
func (e *Emitter) KeyValue(key, value string) error {
	return e.attribute(&key, &value)
}

// Key emits an attribute carrying only a key, such as a row header.
func (e *Emitter) Key(key string) error {
	return e.attribute(&key, nil)
}

// Value emits an attribute carrying only a value, such as a continuation
// cell belonging to the preceding key.
func (e *Emitter) Value(value string) error {
	return e.attribute(nil, &value)
}

func (e *Emitter) attribute(key, value *string) error {
	if e.format == nil {
		e.logger.Debug("attribute skipped, no format bound")
		return nil
	}

	ev := Event{Type: EventAttribute, Level: e.level(), Key: key, Value: value}
	if err := e.format.Render(e.w, ev); err != nil {
		return fmt.Errorf("rendering attribute: %w", err)
	}

	return nil
}

// level computes the nesting level presented to the next event: one for an
// open document plus the number of open scopes.
func (e *Emitter) level() int {
	level := len(e.scopes)
	if e.open {
		level++
	}

	return level
}
