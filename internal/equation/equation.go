// Package equation implements the linear-equation checks used to grade
// Kirchhoff submissions: parsing, canonical form, tolerant comparison and
// linear independence.
//
// An Equation is the coefficient vector (A, B, C, D) of
//
//	A·I1 + B·I2 + C·I3 + D = 0
//
// All functions in this package are pure and safe for concurrent use.
package equation

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Size is the number of coefficients in an Equation.
const Size = 4

// Labels names each coefficient position, in order.
var Labels = [Size]string{"I1", "I2", "I3", "D"}

// Equation is an ordered coefficient vector (A, B, C, D).
type Equation [Size]float64

// Scale returns the equation multiplied by k.
func (e Equation) Scale(k float64) Equation {
	var out Equation
	for i, v := range e {
		out[i] = v * k
	}
	return out
}

// Neg returns the equation with every coefficient negated.
func (e Equation) Neg() Equation {
	return e.Scale(-1)
}

// IsZero reports whether every coefficient is exactly zero.
func (e Equation) IsZero() bool {
	for _, v := range e {
		if v != 0 {
			return false
		}
	}
	return true
}

// Norm returns the Euclidean norm of the full 4-vector.
func (e Equation) Norm() float64 {
	var sum float64
	for _, v := range e {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// Eval returns A·i1 + B·i2 + C·i3 + D.
func (e Equation) Eval(i1, i2, i3 float64) float64 {
	return e[0]*i1 + e[1]*i2 + e[2]*i3 + e[3]
}

// String formats the equation as "A·I1 + B·I2 + C·I3 + D = 0".
func (e Equation) String() string {
	return fmt.Sprintf("%g·I1 + %g·I2 + %g·I3 + %g = 0", e[0], e[1], e[2], e[3])
}

// Parse reads an equation from a comma- or whitespace-separated list of
// exactly four numbers, e.g. "1, -1, -1, 0".
//
// Non-numeric and non-finite coefficients are rejected with an *InputError.
func Parse(s string) (Equation, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t'
	})
	if len(fields) != Size {
		return Equation{}, &InputError{
			Equation:    -1,
			Coefficient: -1,
			Err:         fmt.Errorf("want %d coefficients, got %d", Size, len(fields)),
		}
	}

	var eq Equation
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return Equation{}, &InputError{Equation: -1, Coefficient: i, Err: err}
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Equation{}, &InputError{
				Equation:    -1,
				Coefficient: i,
				Err:         fmt.Errorf("non-finite value %v", v),
			}
		}
		eq[i] = v
	}
	return eq, nil
}

// Validate checks that every coefficient of every equation is finite.
// The first offending coefficient is reported as an *InputError.
func Validate(eqs []Equation) error {
	for i, eq := range eqs {
		for j, v := range eq {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return &InputError{
					Equation:    i,
					Coefficient: j,
					Err:         fmt.Errorf("non-finite value %v", v),
				}
			}
		}
	}
	return nil
}
