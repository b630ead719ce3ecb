package grading

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/phy132/kirchhoff/internal/circuit"
	"github.com/phy132/kirchhoff/internal/equation"
)

// Verdict grades one value or a whole current submission.
type Verdict string

const (
	VerdictCorrect   Verdict = "correct"
	VerdictAlmost    Verdict = "almost"
	VerdictIncorrect Verdict = "incorrect"
)

// Label returns the capitalized result label used in attempt logs.
func (v Verdict) Label() string {
	switch v {
	case VerdictCorrect:
		return "Correct"
	case VerdictAlmost:
		return "Almost"
	default:
		return "Incorrect"
	}
}

// Milliamps is a current triple (I1, I2, I3) in milliamps, the unit used
// at the grading boundary.
type Milliamps [3]float64

// ErrInvalidCurrents is returned for a submission with a non-finite current.
var ErrInvalidCurrents = errors.New("grading: invalid currents")

// Validate rejects NaN and infinite currents.
func (m Milliamps) Validate() error {
	for i, v := range m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: I%d is %v", ErrInvalidCurrents, i+1, v)
		}
	}
	return nil
}

// FromAmps converts solver output to milliamps. It is the only place amps
// become milliamps.
func FromAmps(c circuit.Currents) Milliamps {
	var out Milliamps
	for i, a := range c {
		out[i] = a * 1000
	}
	return out
}

// ReferenceSource says where the expected currents came from.
type ReferenceSource string

const (
	// SourceTable means the instructor's precomputed answer table.
	SourceTable ReferenceSource = "table"
	// SourceSolved means the closed-form circuit solution.
	SourceSolved ReferenceSource = "solved"
)

// EquationOutcome summarizes an equation submission.
type EquationOutcome string

const (
	OutcomeAllMatch EquationOutcome = "All match"
	OutcomePartial  EquationOutcome = "Partial/Not independent"
	OutcomeNoMatch  EquationOutcome = "No match"
)

// EquationSubmission is one student's equation attempt for a problem set.
type EquationSubmission struct {
	SetID     int
	Name      string
	Comment   string
	Equations []equation.Equation
}

// EquationReport is the graded result of an EquationSubmission.
type EquationReport struct {
	AttemptID   string
	GradedAt    time.Time
	Submission  EquationSubmission
	SetID       int
	Expected    [4]equation.Equation
	Matches     []bool
	Independent bool
	Outcome     EquationOutcome

	// RecordErr is set when the attempt could not be recorded. The
	// verdict above is valid regardless.
	RecordErr error
}

// CurrentSubmission is one student's current attempt for a problem set.
type CurrentSubmission struct {
	SetID    int
	Name     string
	Comment  string
	Currents Milliamps
}

// CurrentReport is the graded result of a CurrentSubmission.
type CurrentReport struct {
	AttemptID  string
	GradedAt   time.Time
	Submission CurrentSubmission
	SetID      int
	Submitted  Milliamps
	Expected   Milliamps
	Source     ReferenceSource
	Tolerance  float64
	Result     Result

	// RecordErr is set when the attempt could not be recorded. The
	// verdict above is valid regardless.
	RecordErr error
}
