package rain

import "errors"

var (
	// ErrInvalidCellSize indicates a cell size that is zero or negative.
	ErrInvalidCellSize = errors.New("rain: cell size must be positive")

	// ErrInvalidFrameRate indicates a frame rate that is zero or negative.
	ErrInvalidFrameRate = errors.New("rain: frame rate must be positive")

	// ErrEmptyAlphabet indicates an alphabet with no glyphs.
	ErrEmptyAlphabet = errors.New("rain: alphabet is empty")
)
