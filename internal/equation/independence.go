package equation

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Rank returns the numeric rank of the coefficient matrix built from the
// I1, I2, I3 columns of eqs (the constant term is excluded).
//
// Rank is the number of singular values above σmax·max(m, n)·ε, so rows that
// differ only by floating-point rounding are treated as duplicates.
func Rank(eqs []Equation) int {
	if len(eqs) == 0 {
		return 0
	}

	a := mat.NewDense(len(eqs), Size-1, nil)
	for i, eq := range eqs {
		for j := 0; j < Size-1; j++ {
			a.Set(i, j, eq[j])
		}
	}

	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDNone) {
		return 0
	}
	values := svd.Values(nil)
	if len(values) == 0 || values[0] == 0 {
		return 0
	}

	// Singular values are sorted in decreasing order.
	threshold := values[0] * float64(max(len(eqs), Size-1)) * eps
	rank := 0
	for _, s := range values {
		if s > threshold {
			rank++
		}
	}
	return rank
}

// IsIndependent reports whether eqs are linearly independent, i.e. the rank
// of their coefficient matrix equals the number of equations. An empty set
// is independent.
func IsIndependent(eqs []Equation) (bool, error) {
	if err := Validate(eqs); err != nil {
		return false, err
	}
	return Rank(eqs) == len(eqs), nil
}

// eps is the float64 machine epsilon.
var eps = math.Nextafter(1, 2) - 1
