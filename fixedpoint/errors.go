package fixedpoint

import "errors"

var (
	// ErrDivideByZero indicates a division by a zero denominator.
	ErrDivideByZero = errors.New("fixedpoint: divide by zero")

	// ErrOverflow indicates a result does not fit its target width.
	ErrOverflow = errors.New("fixedpoint: arithmetic overflow")
)
