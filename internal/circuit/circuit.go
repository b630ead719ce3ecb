// Package circuit describes the fixed two-loop resistor circuit used by every
// problem set and solves it for its branch currents.
//
// The circuit has two sources (V1, V2) and three resistors (R1, R2, R3).
// Current I1 flows through R1, I2 through R2 and I3 through the shared
// branch R3. Inputs are volts and ohms; solved currents are amps.
package circuit

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidParams marks circuit parameters that are non-finite or have
	// a non-positive resistance. It indicates a data-authoring bug.
	ErrInvalidParams = errors.New("circuit: invalid parameters")

	// ErrSingularSystem is returned when the current system has no unique
	// solution (singular or numerically ill-conditioned).
	ErrSingularSystem = errors.New("circuit: singular system")
)

// Params holds the source voltages (volts) and resistances (ohms) of one
// problem set. It is a value type and is never mutated after lookup.
type Params struct {
	V1 float64 `json:"v1"`
	V2 float64 `json:"v2"`
	R1 float64 `json:"r1"`
	R2 float64 `json:"r2"`
	R3 float64 `json:"r3"`
}

// FromSlice builds Params from the stored [V1, V2, R1, R2, R3] form.
func FromSlice(v []float64) (Params, error) {
	if len(v) != 5 {
		return Params{}, fmt.Errorf("%w: want 5 values [V1, V2, R1, R2, R3], got %d", ErrInvalidParams, len(v))
	}
	return Params{V1: v[0], V2: v[1], R1: v[2], R2: v[3], R3: v[4]}, nil
}

// Validate checks that every parameter is finite and every resistance is
// strictly positive.
func (p Params) Validate() error {
	named := []struct {
		name string
		v    float64
	}{
		{"V1", p.V1}, {"V2", p.V2}, {"R1", p.R1}, {"R2", p.R2}, {"R3", p.R3},
	}
	for _, n := range named {
		if math.IsNaN(n.v) || math.IsInf(n.v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidParams, n.name)
		}
	}
	for _, n := range named[2:] {
		if n.v <= 0 {
			return fmt.Errorf("%w: %s must be > 0, got %g", ErrInvalidParams, n.name, n.v)
		}
	}
	return nil
}

func (p Params) String() string {
	return fmt.Sprintf("V1=%gV V2=%gV R1=%gΩ R2=%gΩ R3=%gΩ", p.V1, p.V2, p.R1, p.R2, p.R3)
}

// Currents are the branch currents (I1, I2, I3) in amps.
type Currents [3]float64
