package mines

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrOutOfBounds          = errors.New("cell out of bounds")
	ErrGameAlreadyOver      = errors.New("game already over")
)

type BoundsError struct {
	Point      Point
	Rows, Cols int
}

// [BoundsError] implements [error]
func (e BoundsError) Error() string {
	return fmt.Sprintf(
		"move out of range - %s - board (%d, %d)", e.Point, e.Rows, e.Cols,
	)
}

func (e BoundsError) Unwrap() error {
	return ErrOutOfBounds
}
