package equation

import "math"

// Tolerance is the per-coefficient closeness test used when comparing
// canonical equations: |a−b| ≤ Abs + Rel·|b|, where b is the expected value.
type Tolerance struct {
	Abs float64
	Rel float64
}

// DefaultTolerance absorbs the rounding of a student typing decimal
// coefficients.
func DefaultTolerance() Tolerance {
	return Tolerance{Abs: 0.1, Rel: 1e-3}
}

// close reports whether a is within tol of the reference value b.
func (t Tolerance) close(a, b float64) bool {
	return math.Abs(a-b) <= t.Abs+t.Rel*math.Abs(b)
}

// Matches reports whether student and expected are the same equation up to
// scale and sign, within tol.
func Matches(student, expected Equation, tol Tolerance) bool {
	return allClose(Canonicalize(student), Canonicalize(expected), tol)
}

// Compare returns one result per student equation: true if it matches any of
// the expected equations. Matching is order-independent; which expected
// equation matched is not reported.
//
// Both sets are validated before canonicalization; a non-finite coefficient
// yields an error wrapping ErrInvalidInput.
func Compare(student, expected []Equation, tol Tolerance) ([]bool, error) {
	if err := Validate(student); err != nil {
		return nil, err
	}
	if err := Validate(expected); err != nil {
		return nil, err
	}

	want := make([]Equation, len(expected))
	for i, e := range expected {
		want[i] = Canonicalize(e)
	}

	matches := make([]bool, len(student))
	for i, s := range student {
		cs := Canonicalize(s)
		for _, e := range want {
			if allClose(cs, e, tol) {
				matches[i] = true
				break
			}
		}
	}
	return matches, nil
}

func allClose(a, b Equation, tol Tolerance) bool {
	for i := range a {
		if !tol.close(a[i], b[i]) {
			return false
		}
	}
	return true
}
