package assembler

import (
	"errors"
	"fmt"
)

// ErrTooManyErrors is returned by Assemble once the syntax error limit is
// exceeded.
var ErrTooManyErrors = errors.New("assembler: too many syntax errors")

// Kind classifies assembler errors. KindSyntax errors are reported per line
// and counted against the error limit; every other kind is fatal for the
// current file.
type Kind int

const (
	// KindSyntax is a recoverable, counted validation error.
	KindSyntax Kind = iota
	// KindDirective flags illegal import/export usage.
	KindDirective
	// KindRegister flags an invalid or out-of-range register index.
	KindRegister
	// KindOperands flags an invalid combination of opcode and operands.
	KindOperands
	// KindNumber flags a malformed numeric literal.
	KindNumber
	// KindLabel flags an empty or unusable label operand.
	KindLabel
	// KindImport flags a store through an unresolved imported symbol.
	KindImport
)

// Error is a diagnostic tied to a source position.
type Error struct {
	Kind Kind
	File string
	Line int
	Msg  string
}

func (e *Error) Error() string {
	if e.File == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

// Fatal reports whether the error aborts the current file instead of being
// counted toward the error limit.
func (e *Error) Fatal() bool { return e.Kind != KindSyntax }

// IsFatal reports whether err carries a fatal assembler error kind.
func IsFatal(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Fatal()
	}
	return err != nil
}

func (s *Session) errf(kind Kind, format string, args ...any) *Error {
	return &Error{
		Kind: kind,
		File: s.opts.File,
		Line: s.line,
		Msg:  fmt.Sprintf(format, args...),
	}
}
