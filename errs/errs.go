// Package errs holds the sentinel errors shared by the dice, game and
// analyzer packages. Call sites wrap them with fmt.Errorf("...: %w", ...)
// so callers can match with errors.Is.
package errs

import "errors"

var (
	// ErrInvalidInput reports a malformed argument: empty face list,
	// non-positive roll count, nil game or die.
	ErrInvalidInput = errors.New("invalid input")
	// ErrDuplicateFace reports faces that are not distinct.
	ErrDuplicateFace = errors.New("duplicate face")
	// ErrUnknownFace reports a weight change on a face the die does not have.
	ErrUnknownFace = errors.New("unknown face")
	// ErrInvalidWeight reports a weight that is not a finite, non-negative number.
	ErrInvalidWeight = errors.New("invalid weight")
	// ErrInvalidFormat reports an unrecognised outcome table form.
	ErrInvalidFormat = errors.New("invalid format")
	// ErrDegenerateDistribution reports a roll where every weight is zero.
	ErrDegenerateDistribution = errors.New("degenerate distribution")
	// ErrMismatchedFaces reports dice in one game that do not share a face set.
	ErrMismatchedFaces = errors.New("dice faces do not match")
)
