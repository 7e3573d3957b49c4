package curly

import (
	"errors"
	"fmt"
)

// =========================
// Error Kinds
// =========================

var (
	ErrSyntax = errors.New("syntax error")

	ErrUnterminatedString  = fmt.Errorf("%w: unterminated quoted string", ErrSyntax)
	ErrInvalidCharacter    = fmt.Errorf("%w: invalid character", ErrSyntax)
	ErrExpected            = fmt.Errorf("%w: unexpected token", ErrSyntax)
	ErrUnknownKeyword      = fmt.Errorf("%w: unknown keyword", ErrSyntax)
	ErrDuplicateField      = fmt.Errorf("%w: duplicate field", ErrSyntax)
	ErrUnterminatedSection = fmt.Errorf("%w: unterminated section", ErrSyntax)
	ErrMissingValue        = fmt.Errorf("%w: missing value", ErrSyntax)
	ErrInvalidValue        = fmt.Errorf("%w: invalid value", ErrSyntax)

	// ErrDecode is reported when the input is not valid in its declared encoding.
	ErrDecode = errors.New("decoding error")
)

// Column markers for SyntaxError.Col.
const (
	NoColumn  = -2
	EndOfLine = -1
)

// SyntaxError is an input error within the current line.
// Col is a 0-based character offset, NoColumn or EndOfLine.
type SyntaxError struct {
	Err error
	Msg string
	Col int
}

func (e *SyntaxError) Error() string { return e.Msg }

func (e *SyntaxError) Unwrap() error { return e.Err }

func syntaxErr(kind error, col int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Err: kind, Msg: fmt.Sprintf(format, args...), Col: col}
}

// Error is the single error returned by a failed parse.
// Line is 0 when the failure happened before any line was read.
type Error struct {
	Filename string
	Line     int
	Col      int
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("Failed to read config (%s)%s: %v", e.Filename, e.position(), e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) position() string {
	switch {
	case e.Line <= 0:
		return ""
	case e.Col == EndOfLine:
		return fmt.Sprintf(" at end of line %d", e.Line)
	case e.Col >= 0:
		return fmt.Sprintf(" at line %d col %d", e.Line, e.Col+1)
	default:
		return fmt.Sprintf(" at line %d", e.Line)
	}
}

// wrapError turns any failure of a parse run into an *Error.
// I/O and decoding failures never carry a column.
func wrapError(filename string, line int, err error) error {
	e := &Error{Filename: filename, Line: line, Col: NoColumn, Err: err}

	var se *SyntaxError
	if errors.As(err, &se) {
		e.Col = se.Col
	}
	return e
}
