package grading

import (
	"fmt"
	"math"

	"github.com/phy132/kirchhoff/internal/equation"
)

// Config holds the grading tolerances. It is passed to the classifier and
// comparator at call time so courses can override it per assignment.
type Config struct {
	// CurrentTolerance is the absolute tolerance for a current, in mA.
	CurrentTolerance float64

	// AlmostMultiplier widens CurrentTolerance for the "almost" band.
	AlmostMultiplier float64

	// Equation is the per-coefficient tolerance for canonical equations.
	Equation equation.Tolerance
}

// DefaultConfig returns the standard tolerances: ±1 mA, almost within 2×,
// equation coefficients within 0.1 absolute and 1e-3 relative.
func DefaultConfig() Config {
	return Config{
		CurrentTolerance: 1.0,
		AlmostMultiplier: 2.0,
		Equation:         equation.DefaultTolerance(),
	}
}

// Validate checks that every tolerance is usable.
func (c Config) Validate() error {
	if !(c.CurrentTolerance > 0) || math.IsInf(c.CurrentTolerance, 0) {
		return fmt.Errorf("current tolerance must be a positive number of mA, got %v", c.CurrentTolerance)
	}
	if !(c.AlmostMultiplier >= 1) || math.IsInf(c.AlmostMultiplier, 0) {
		return fmt.Errorf("almost multiplier must be >= 1, got %v", c.AlmostMultiplier)
	}
	if !(c.Equation.Abs >= 0) || !(c.Equation.Rel >= 0) {
		return fmt.Errorf("equation tolerances must be >= 0, got abs=%v rel=%v", c.Equation.Abs, c.Equation.Rel)
	}
	return nil
}
