// Package pierr defines the error taxonomy of spec.md §7 as typed,
// wrappable values, so the REPL boundary can recover a short diagnostic
// kind regardless of how deep the underlying error was wrapped.
package pierr

import "github.com/pkg/errors"

// Kind identifies one of the error categories spec.md §7 names.
type Kind uint8

const (
	// Parse is a surface-syntax rejection at the lexer/parser boundary.
	Parse Kind = iota
	// File is an I/O failure opening or reading a file.
	File
	// Saturated reports that saturation completed without deriving the
	// goal clause.
	Saturated
	// DerivedBottom is reserved for clause sets that derive the empty
	// clause. Unreachable in the pure Horn fragment this engine
	// implements, but part of the public taxonomy.
	DerivedBottom
)

func (k Kind) String() string {
	switch k {
	case Parse:
		return "parse error"
	case File:
		return "file error"
	case Saturated:
		return "saturated: no result"
	case DerivedBottom:
		return "derived bottom"
	default:
		return "unknown error"
	}
}

// Error is a Kind paired with the underlying cause, wrapped so that
// errors.Is/errors.As and github.com/pkg/errors' Cause() both see through
// to whatever produced it.
type Error struct {
	Kind  Kind
	cause error
}

// New constructs an Error of the given kind wrapping msg as its own
// message (no separate underlying cause).
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, cause: errors.New(msg)}
}

// Wrap constructs an Error of the given kind around an existing error.
func Wrap(kind Kind, cause error, msg string) *Error {
	return &Error{Kind: kind, cause: errors.Wrap(cause, msg)}
}

func (e *Error) Error() string {
	return e.Kind.String() + ": " + e.cause.Error()
}

// Unwrap exposes the underlying cause to errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.cause }

// Cause exposes the underlying cause to github.com/pkg/errors callers.
func (e *Error) Cause() error { return e.cause }
