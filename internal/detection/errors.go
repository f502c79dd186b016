package detection

import "errors"

var (
	// ErrInvalidConfig wraps every configuration validation failure.
	ErrInvalidConfig = errors.New("detection: invalid configuration")

	// ErrTooFewLines is returned by SquareSize when neither direction has
	// two lines to measure between.
	ErrTooFewLines = errors.New("detection: need at least two lines in one direction")
)
