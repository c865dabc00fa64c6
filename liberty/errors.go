package liberty

import (
	"fmt"
	"strings"
)

// ParseError is the base error type for all liberty parse errors.
type ParseError struct {
	Message string
	Pos     Position
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Pos.Line > 0 {
		return fmt.Sprintf("line %d, col %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
	}
	return e.Message
}

func (e *ParseError) Unwrap() error { return e.Cause }

// LexError represents a lexer-level error (unterminated string or comment,
// invalid character).
type LexError struct{ ParseError }

// SyntaxError represents a grammar-level error (unexpected token).
type SyntaxError struct {
	ParseError
	Expected string
	Got      string
}

func (e *SyntaxError) Error() string {
	if e.Pos.Line > 0 {
		return fmt.Sprintf("line %d, col %d: expected %s, got %s", e.Pos.Line, e.Pos.Column, e.Expected, e.Got)
	}
	return fmt.Sprintf("expected %s, got %s", e.Expected, e.Got)
}

// ValueError represents a value conversion error (number overflow, attribute
// of the wrong shape).
type ValueError struct{ ParseError }

// InternalError reports an internal consistency failure while assembling the
// group tree. It indicates a parser bug rather than bad input.
type InternalError struct{ ParseError }

// MissingGroupError reports a GetGroup lookup that matched no sub-group.
type MissingGroupError struct {
	TypeName string
	Argument string
}

func (e *MissingGroupError) Error() string {
	if e.Argument != "" {
		return fmt.Sprintf("expected exactly one %s(%s) group, found 0", e.TypeName, e.Argument)
	}
	return fmt.Sprintf("expected exactly one %s group, found 0", e.TypeName)
}

// AmbiguousGroupError reports a GetGroup lookup that matched more than one
// sub-group.
type AmbiguousGroupError struct {
	TypeName string
	Argument string
	Count    int
}

func (e *AmbiguousGroupError) Error() string {
	if e.Argument != "" {
		return fmt.Sprintf("expected exactly one %s(%s) group, found %d", e.TypeName, e.Argument, e.Count)
	}
	return fmt.Sprintf("expected exactly one %s group, found %d", e.TypeName, e.Count)
}

// MissingAttributeError reports a lookup of an attribute key the group does
// not carry.
type MissingAttributeError struct {
	Key string
}

func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("attribute %q not found", e.Key)
}

// SelectionError reports a named lookup that failed, along with the sorted
// list of names that would have succeeded.
type SelectionError struct {
	What      string   // what was looked up: "cell", "pin", "related pin", ...
	Name      string
	Available []string // sorted valid names
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("%s %q not found, must be one of: %s", e.What, e.Name, strings.Join(e.Available, ", "))
}
