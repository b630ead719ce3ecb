package grading

import (
	"errors"

	"github.com/phy132/kirchhoff/internal/circuit"
)

// Finding is the audit result for one problem set.
type Finding struct {
	SetID int

	// Solved holds the closed-form currents in mA when the set solves.
	Solved Milliamps

	// Table holds the answer-table currents in mA when HasTable is set.
	Table    Milliamps
	HasTable bool

	// Agreement grades the table against the solution with the grader's
	// tolerances. Empty when there is no table entry or no solution.
	Agreement Result

	Err error
}

// OK reports whether the set solves and any table entry is correct
// against the solution.
func (f Finding) OK() bool {
	if f.Err != nil {
		return false
	}
	return !f.HasTable || f.Agreement.Overall == VerdictCorrect
}

// Audit checks each set in ids: the parameters must solve, and an
// answer-table entry, if any, must agree with the solution within the
// current tolerance. It never stops at the first bad set.
func (g *Grader) Audit(ids []int) []Finding {
	findings := make([]Finding, 0, len(ids))
	for _, id := range ids {
		f := Finding{SetID: id}
		if ref, ok := g.problems.ReferenceCurrents(id); ok {
			f.Table, f.HasTable = Milliamps(ref), true
		}

		p, err := g.problems.Params(id)
		if err == nil {
			var amps circuit.Currents
			amps, err = circuit.SolveCurrents(p)
			f.Solved = FromAmps(amps)
		}
		if err != nil {
			f.Err = err
			findings = append(findings, f)
			continue
		}

		if f.HasTable {
			f.Agreement = Classify(f.Table, f.Solved, g.cfg)
		}
		findings = append(findings, f)
	}
	return findings
}

// JoinErrors joins the errors of every failed finding, or returns nil.
func JoinErrors(findings []Finding) error {
	var errs []error
	for _, f := range findings {
		if f.Err != nil {
			errs = append(errs, f.Err)
		}
	}
	return errors.Join(errs...)
}
