package mines

import "errors"

var (
	ErrOutOfBounds  = errors.New("cell out of bounds")
	ErrTooManyMines = errors.New("layout leaves no safe cell")
)
