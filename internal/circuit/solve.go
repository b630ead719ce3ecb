package circuit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// SolveCurrents solves the junction, left-loop and right-loop equations for
// (I1, I2, I3) in amps using LU factorization.
//
// Invalid parameters return ErrInvalidParams; a singular or ill-conditioned
// system returns ErrSingularSystem. A non-finite result is never returned.
func SolveCurrents(p Params) (Currents, error) {
	if err := p.Validate(); err != nil {
		return Currents{}, err
	}

	eqs := Equations(p)
	a := mat.NewDense(3, 3, nil)
	b := mat.NewVecDense(3, nil)
	for i, eq := range eqs[:OuterLoop] {
		a.SetRow(i, eq[:3])
		// Constant terms move to the right-hand side.
		b.SetVec(i, -eq[3])
	}

	var lu mat.LU
	lu.Factorize(a)
	if lu.Det() == 0 {
		return Currents{}, fmt.Errorf("%w: zero determinant for %s", ErrSingularSystem, p)
	}

	var x mat.VecDense
	if err := lu.SolveVecTo(&x, false, b); err != nil {
		return Currents{}, fmt.Errorf("%w: %v", ErrSingularSystem, err)
	}

	var out Currents
	for i := range out {
		v := x.AtVec(i)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Currents{}, fmt.Errorf("%w: non-finite I%d for %s", ErrSingularSystem, i+1, p)
		}
		out[i] = v
	}
	return out, nil
}
