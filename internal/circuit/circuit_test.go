package circuit

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phy132/kirchhoff/internal/equation"
)

var reference = Params{V1: 10, V2: 5, R1: 100, R2: 100, R3: 100}

func TestEquations_Reference(t *testing.T) {
	eqs := Equations(reference)
	assert.Equal(t, equation.Equation{1, -1, -1, 0}, eqs[Junction])
	assert.Equal(t, equation.Equation{-100, 0, -100, 10}, eqs[LeftLoop])
	assert.Equal(t, equation.Equation{0, 100, -100, -5}, eqs[RightLoop])
	assert.Equal(t, equation.Equation{-100, -100, 0, 5}, eqs[OuterLoop])
}

func TestEquations_FirstThreeIndependent(t *testing.T) {
	eqs := Equations(Params{V1: 12, V2: 9, R1: 220, R2: 470, R3: 330})
	ok, err := equation.IsIndependent(eqs[:3])
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = equation.IsIndependent([]equation.Equation{eqs[LeftLoop], eqs[RightLoop], eqs[OuterLoop]})
	require.NoError(t, err)
	assert.False(t, ok, "outer loop is a combination of the two loops")
}

func TestSolveCurrents_Reference(t *testing.T) {
	got, err := SolveCurrents(reference)
	require.NoError(t, err)

	assert.InDelta(t, 1.0/12, got[0], 1e-12)
	assert.InDelta(t, 1.0/15, got[1], 1e-12)
	assert.InDelta(t, 1.0/60, got[2], 1e-12)
}

func TestSolveCurrents_Substitution(t *testing.T) {
	cases := []Params{
		reference,
		{V1: 12, V2: 9, R1: 220, R2: 470, R3: 330},
		{V1: 1.5, V2: 24, R1: 10, R2: 1000, R3: 47},
		{V1: -6, V2: 3, R1: 1e3, R2: 2.2e3, R3: 4.7e3},
		{V1: 0, V2: 0, R1: 1, R2: 1, R3: 1},
	}

	for _, p := range cases {
		t.Run(p.String(), func(t *testing.T) {
			i, err := SolveCurrents(p)
			require.NoError(t, err)
			eqs := Equations(p)
			for k, eq := range eqs[:OuterLoop] {
				scale := math.Max(1, eq.Norm())
				assert.InDelta(t, 0, eq.Eval(i[0], i[1], i[2])/scale, 1e-12, "%s residual", Names[k])
			}
		})
	}
}

func TestSolveCurrents_InvalidParams(t *testing.T) {
	tests := []struct {
		name string
		p    Params
	}{
		{"zero resistances", Params{V1: 10, V2: 5}},
		{"negative R2", Params{V1: 10, V2: 5, R1: 1, R2: -1, R3: 1}},
		{"nan voltage", Params{V1: math.NaN(), V2: 5, R1: 1, R2: 1, R3: 1}},
		{"inf resistance", Params{V1: 1, V2: 5, R1: math.Inf(1), R2: 1, R3: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SolveCurrents(tt.p)
			assert.ErrorIs(t, err, ErrInvalidParams)
		})
	}
}

func TestSolveCurrents_IllConditioned(t *testing.T) {
	// Condition number is about 2e20, far past what float64 can resolve.
	_, err := SolveCurrents(Params{V1: 1, V2: 1, R1: 1, R2: 1, R3: 1e20})
	assert.ErrorIs(t, err, ErrSingularSystem)
}

func TestFromSlice(t *testing.T) {
	p, err := FromSlice([]float64{10, 5, 100, 200, 300})
	require.NoError(t, err)
	assert.Equal(t, Params{V1: 10, V2: 5, R1: 100, R2: 200, R3: 300}, p)

	_, err = FromSlice([]float64{1, 2, 3})
	assert.ErrorIs(t, err, ErrInvalidParams)
}

// cramer solves the reduced 2×2 system for I1 and I2 by hand.
func cramer(p Params) Currents {
	det := p.R1*p.R2 + p.R1*p.R3 + p.R2*p.R3
	i1 := (p.V1*(p.R2+p.R3) + p.R3*p.V2) / det
	i2 := ((p.R1+p.R3)*p.V2 + p.R3*p.V1) / det
	return Currents{i1, i2, i1 - i2}
}

func TestSolveCurrents_MatchesCramer(t *testing.T) {
	cases := []Params{
		reference,
		{V1: 12, V2: 9, R1: 220, R2: 470, R3: 330},
		{V1: 9, V2: 9, R1: 47, R2: 47, R3: 10},
		{V1: 3.3, V2: 1.2, R1: 1e4, R2: 22, R3: 680},
	}
	approx := cmpopts.EquateApprox(1e-9, 1e-15)
	for _, p := range cases {
		got, err := SolveCurrents(p)
		require.NoError(t, err)
		if diff := cmp.Diff(cramer(p), got, approx); diff != "" {
			t.Errorf("%s: SolveCurrents mismatch (-want +got):\n%s", p, diff)
		}
	}
}
