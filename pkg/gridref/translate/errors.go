package translate

import (
	"errors"
	"fmt"
)

// ErrInvalidColumn indicates a relative column that would move to 0 or below.
var ErrInvalidColumn = errors.New("invalid column")

// ErrInvalidRow indicates a relative row that would move to 0 or below.
var ErrInvalidRow = errors.New("invalid row")

// TranslationError reports the coordinate that could not be moved.
type TranslationError struct {
	// Coord is the coordinate before translation.
	Coord int
	// Delta is the offset that was applied.
	Delta int
	Err   error
}

func (e *TranslationError) Error() string {
	return fmt.Sprintf("translate %d by %+d: %v", e.Coord, e.Delta, e.Err)
}

func (e *TranslationError) Unwrap() error {
	return e.Err
}
