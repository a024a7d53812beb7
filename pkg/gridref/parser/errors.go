package parser

import (
	"errors"
	"fmt"
)

// ErrInvalidColumn indicates malformed or out-of-range column letters.
var ErrInvalidColumn = errors.New("invalid column")

// ErrInvalidRow indicates a malformed or non-positive row number.
var ErrInvalidRow = errors.New("invalid row")

// ErrInvalidPosition indicates text that is not any recognized reference shape.
var ErrInvalidPosition = errors.New("invalid position")

// ErrEmptyReference indicates empty reference text.
var ErrEmptyReference = errors.New("empty reference")

// ErrMultipleSheetSeparators indicates more than one unquoted `!`.
var ErrMultipleSheetSeparators = errors.New("multiple sheet separators")

// ErrUnknownSheet indicates a sheet prefix that names no sheet.
var ErrUnknownSheet = errors.New("unknown sheet")

// ErrInvalidTable indicates malformed table bracket syntax or an unknown table.
var ErrInvalidTable = errors.New("invalid table reference")

// ParseError is returned for reference text that cannot be parsed.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid reference %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError.
func NewParseError(input string, err error) *ParseError {
	return &ParseError{
		Input: input,
		Err:   err,
	}
}

func tableError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidTable, fmt.Sprintf(format, args...))
}
