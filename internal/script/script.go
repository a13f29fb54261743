// Package script parses and runs outfmt event scripts, the line-oriented
// producer behind the render and watch commands.
//
// A script drives the emitter one event per line:
//
//	%require >=0.2.0
//	document report
//	scope DosHeader
//	kv Magic MZ
//	key Sections
//	val ".text"
//	end
//
// Blank lines and lines starting with # are ignored. Tokens are separated
// by spaces or tabs; a token starting with a double quote runs to the
// matching quote and is unquoted with Go escape syntax, so names and
// values may contain spaces, commas and newlines.
package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/hupe1980/outfmt/pkg/outfmt"
)

// Op identifies a script step operation.
type Op int

const (
	OpScope Op = iota
	OpEnd
	OpKeyValue
	OpKey
	OpValue
)

// Step is one parsed script event.
type Step struct {
	Op    Op
	Key   string
	Value string
}

// Script is a parsed event script. Name carries the document name from the
// script's document directive and may be overridden before Run.
type Script struct {
	Name string

	steps      []Step
	require    *semver.Constraints
	requireRaw string
}

// ParseFile reads and parses the script at path.
func ParseFile(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening script: %w", err)
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return s, nil
}

// Parse reads a script from r. Scope balance is validated here, so a
// parsed script can always run against a fresh emitter without tripping
// its misuse checks.
func Parse(r io.Reader) (*Script, error) {
	s := &Script{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		lineNo   int
		depth    int
		sawEvent bool
	)

	for scanner.Scan() {
		lineNo++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		tokens, err := tokenize(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if len(tokens) == 0 {
			continue
		}

		op, args := tokens[0], tokens[1:]

		switch op {
		case "%require":
			if s.require != nil {
				return nil, fmt.Errorf("line %d: duplicate %%require directive", lineNo)
			}
			if sawEvent {
				return nil, fmt.Errorf("line %d: %%require must precede events", lineNo)
			}
			if len(args) == 0 {
				return nil, fmt.Errorf("line %d: %%require expects a version constraint", lineNo)
			}

			raw := strings.Join(args, " ")
			c, err := semver.NewConstraint(raw)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid version constraint %q: %w", lineNo, raw, err)
			}

			s.require = c
			s.requireRaw = raw

		case "document":
			if s.Name != "" {
				return nil, fmt.Errorf("line %d: duplicate document directive", lineNo)
			}
			if sawEvent {
				return nil, fmt.Errorf("line %d: document directive must precede events", lineNo)
			}
			if len(args) != 1 {
				return nil, fmt.Errorf("line %d: document expects a name", lineNo)
			}

			s.Name = args[0]

		case "scope":
			if len(args) != 1 {
				return nil, fmt.Errorf("line %d: scope expects a name", lineNo)
			}

			depth++
			sawEvent = true
			s.steps = append(s.steps, Step{Op: OpScope, Key: args[0]})

		case "end":
			if len(args) != 0 {
				return nil, fmt.Errorf("line %d: end takes no arguments", lineNo)
			}
			if depth == 0 {
				return nil, fmt.Errorf("line %d: end with no open scope", lineNo)
			}

			depth--
			sawEvent = true
			s.steps = append(s.steps, Step{Op: OpEnd})

		case "kv":
			if len(args) != 2 {
				return nil, fmt.Errorf("line %d: kv expects a key and a value", lineNo)
			}

			sawEvent = true
			s.steps = append(s.steps, Step{Op: OpKeyValue, Key: args[0], Value: args[1]})

		case "key":
			if len(args) != 1 {
				return nil, fmt.Errorf("line %d: key expects a key", lineNo)
			}

			sawEvent = true
			s.steps = append(s.steps, Step{Op: OpKey, Key: args[0]})

		case "val":
			if len(args) != 1 {
				return nil, fmt.Errorf("line %d: val expects a value", lineNo)
			}

			sawEvent = true
			s.steps = append(s.steps, Step{Op: OpValue, Value: args[0]})

		default:
			return nil, fmt.Errorf("line %d: unknown directive %q", lineNo, op)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}

	if depth > 0 {
		return nil, fmt.Errorf("unclosed scope at end of script (depth %d)", depth)
	}

	return s, nil
}

// Len returns the number of parsed steps.
func (s *Script) Len() int {
	return len(s.steps)
}

// Requires reports whether the script carries a %require constraint.
func (s *Script) Requires() bool {
	return s.require != nil
}

// CheckVersion verifies that current satisfies the script's %require
// constraint. Scripts without one always pass, as do development builds
// whose version does not parse as semver.
func (s *Script) CheckVersion(current string) error {
	if s.require == nil {
		return nil
	}

	v, err := semver.NewVersion(strings.TrimPrefix(current, "v"))
	if err != nil {
		return nil
	}

	if !s.require.Check(v) {
		return fmt.Errorf("script requires engine version %q, running %s", s.requireRaw, current)
	}

	return nil
}

// Run replays the script against e, bracketed in a document carrying the
// script's name. The emitter must be fresh: a bound format and no open
// document.
func (s *Script) Run(e *outfmt.Emitter) error {
	var err error
	if s.Name != "" {
		err = e.OpenDocumentNamed(s.Name)
	} else {
		err = e.OpenDocument()
	}
	if err != nil {
		return err
	}

	for _, st := range s.steps {
		switch st.Op {
		case OpScope:
			err = e.OpenScope(st.Key)
		case OpEnd:
			err = e.CloseScope()
		case OpKeyValue:
			err = e.KeyValue(st.Key, st.Value)
		case OpKey:
			err = e.Key(st.Key)
		case OpValue:
			err = e.Value(st.Value)
		}
		if err != nil {
			return err
		}
	}

	return e.CloseDocument()
}

// tokenize splits a script line into tokens. Bare tokens run to the next
// space or tab; tokens starting with a double quote run to the matching
// unescaped quote and pass through strconv.Unquote.
func tokenize(line string) ([]string, error) {
	var tokens []string

	i := 0
	for i < len(line) {
		switch c := line[i]; {
		case c == ' ' || c == '\t':
			i++

		case c == '"':
			end := closingQuote(line, i)
			if end < 0 {
				return nil, errors.New("unterminated quoted token")
			}

			tok, err := strconv.Unquote(line[i : end+1])
			if err != nil {
				return nil, fmt.Errorf("invalid quoted token %s: %w", line[i:end+1], err)
			}

			tokens = append(tokens, tok)
			i = end + 1

		default:
			start := i
			for i < len(line) && line[i] != ' ' && line[i] != '\t' {
				i++
			}

			tokens = append(tokens, line[start:i])
		}
	}

	return tokens, nil
}

// closingQuote returns the index of the double quote terminating the token
// that starts at start, honoring backslash escapes, or -1 when the quote
// never closes.
func closingQuote(line string, start int) int {
	for i := start + 1; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}

	return -1
}
