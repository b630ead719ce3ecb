package equation

// Canonicalize returns the scale- and sign-normalized form of eq.
//
// The all-zero vector is returned unchanged. Otherwise the vector is divided
// by its L2 norm, then negated if its first nonzero coefficient (scanning
// A, B, C, D) is negative. The result is idempotent:
// Canonicalize(Canonicalize(x)) == Canonicalize(x).
func Canonicalize(eq Equation) Equation {
	if eq.IsZero() {
		return eq
	}

	v := eq.Scale(1 / eq.Norm())

	for _, x := range v {
		if x == 0 {
			continue
		}
		if x < 0 {
			v = v.Neg()
		}
		break
	}
	return v
}
