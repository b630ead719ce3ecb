package grading

import "math"

// Result holds the per-current verdicts and the aggregate verdict.
type Result struct {
	Values  [3]Verdict
	Overall Verdict
}

// ClassifyValue grades one current. It is correct within tol, almost within
// tol·mult (the band (tol, tol·mult]) and incorrect otherwise. No rounding
// is applied.
func ClassifyValue(student, expected, tol, mult float64) Verdict {
	d := math.Abs(student - expected)
	switch {
	case d <= tol:
		return VerdictCorrect
	case d <= tol*mult:
		return VerdictAlmost
	default:
		return VerdictIncorrect
	}
}

// Aggregate combines per-value verdicts: correct iff all are correct, else
// almost iff any is almost, else incorrect.
func Aggregate(vs []Verdict) Verdict {
	allCorrect, anyAlmost := true, false
	for _, v := range vs {
		if v != VerdictCorrect {
			allCorrect = false
		}
		if v == VerdictAlmost {
			anyAlmost = true
		}
	}
	switch {
	case allCorrect:
		return VerdictCorrect
	case anyAlmost:
		return VerdictAlmost
	default:
		return VerdictIncorrect
	}
}

// Classify grades a submitted current triple against the expected one using
// the tolerances in cfg. Both triples are in milliamps.
func Classify(student, expected Milliamps, cfg Config) Result {
	var r Result
	for i := range student {
		r.Values[i] = ClassifyValue(student[i], expected[i], cfg.CurrentTolerance, cfg.AlmostMultiplier)
	}
	r.Overall = Aggregate(r.Values[:])
	return r
}
