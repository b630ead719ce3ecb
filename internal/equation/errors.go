package equation

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is matched by every *InputError.
var ErrInvalidInput = errors.New("equation: invalid input")

// InputError reports a malformed equation coefficient. Equation and
// Coefficient are zero-based positions, or -1 when not applicable.
type InputError struct {
	Equation    int
	Coefficient int
	Err         error
}

func (e *InputError) Error() string {
	var where string
	switch {
	case e.Equation >= 0 && e.Coefficient >= 0:
		where = fmt.Sprintf(" (equation %d, coefficient %s)", e.Equation+1, Labels[e.Coefficient])
	case e.Equation >= 0:
		where = fmt.Sprintf(" (equation %d)", e.Equation+1)
	case e.Coefficient >= 0:
		where = fmt.Sprintf(" (coefficient %s)", Labels[e.Coefficient])
	}
	return fmt.Sprintf("%s%s: %v", ErrInvalidInput, where, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrInvalidInput) true for any *InputError.
func (e *InputError) Is(target error) bool { return target == ErrInvalidInput }
