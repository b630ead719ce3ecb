package circuit

import "github.com/phy132/kirchhoff/internal/equation"

// Indices into the array returned by Equations.
const (
	Junction = iota
	LeftLoop
	RightLoop
	OuterLoop
)

// Names labels each equation returned by Equations.
var Names = [4]string{"junction", "left loop", "right loop", "outer loop"}

// Equations returns the four Kirchhoff equations of the circuit in the form
// A·I1 + B·I2 + C·I3 + D = 0:
//
//	junction:   I1 − I2 − I3 = 0
//	left loop:  V1 − R1·I1 − R3·I3 = 0
//	right loop: R2·I2 − R3·I3 − V2 = 0
//	outer loop: V1 − V2 − R1·I1 − R2·I2 = 0
//
// The outer loop is a combination of the others and is never used to solve.
func Equations(p Params) [4]equation.Equation {
	return [4]equation.Equation{
		Junction:  {1, -1, -1, 0},
		LeftLoop:  {-p.R1, 0, -p.R3, p.V1},
		RightLoop: {0, p.R2, -p.R3, -p.V2},
		OuterLoop: {-p.R1, -p.R2, 0, p.V1 - p.V2},
	}
}
