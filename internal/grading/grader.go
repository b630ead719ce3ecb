// Package grading turns student submissions into verdicts. It looks up the
// problem set, builds the reference from the circuit solver or the answer
// table, grades with the equation and current checks, and only then hands
// the attempt to the configured recorder.
package grading

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/phy132/kirchhoff/internal/circuit"
	"github.com/phy132/kirchhoff/internal/equation"
	"github.com/phy132/kirchhoff/internal/store"
)

// ProblemSource provides circuit parameters and optional reference answers
// per problem-set id.
type ProblemSource interface {
	// Params returns the circuit parameters of set id, or an error if the
	// set does not exist.
	Params(id int) (circuit.Params, error)

	// ReferenceCurrents returns instructor-provided currents in mA for
	// set id, if the answer table has an entry.
	ReferenceCurrents(id int) ([3]float64, bool)
}

// Grader grades equation and current submissions.
type Grader struct {
	problems ProblemSource
	recorder store.AttemptRecorder
	cfg      Config
	logger   *zap.Logger

	now   func() time.Time
	newID func() string
}

// NewGrader creates a Grader. recorder may be nil, in which case attempts
// are graded but not recorded.
func NewGrader(problems ProblemSource, recorder store.AttemptRecorder, cfg Config, logger *zap.Logger) *Grader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Grader{
		problems: problems,
		recorder: recorder,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
}

// Config returns the tolerances this grader applies.
func (g *Grader) Config() Config {
	return g.cfg
}

// ExpectedEquations returns the four reference equations for set id.
func (g *Grader) ExpectedEquations(id int) ([4]equation.Equation, error) {
	p, err := g.problems.Params(id)
	if err != nil {
		return [4]equation.Equation{}, err
	}
	return circuit.Equations(p), nil
}

// ExpectedCurrents returns the reference currents for set id in mA,
// preferring the answer table over the closed-form solution.
func (g *Grader) ExpectedCurrents(id int) (Milliamps, ReferenceSource, error) {
	if ref, ok := g.problems.ReferenceCurrents(id); ok {
		return Milliamps(ref), SourceTable, nil
	}
	p, err := g.problems.Params(id)
	if err != nil {
		return Milliamps{}, "", err
	}
	amps, err := circuit.SolveCurrents(p)
	if err != nil {
		return Milliamps{}, "", fmt.Errorf("set %d: %w", id, err)
	}
	return FromAmps(amps), SourceSolved, nil
}

// CheckEquations grades an equation submission and then records it. Lookup
// failures and malformed equations are returned as errors; a recording
// failure is not, it is attached to the report instead.
func (g *Grader) CheckEquations(ctx context.Context, sub EquationSubmission) (*EquationReport, error) {
	report, err := g.GradeEquations(sub)
	if err != nil {
		return nil, err
	}
	_ = g.RecordEquations(ctx, report)
	return report, nil
}

// GradeEquations computes the verdict for sub without recording it.
func (g *Grader) GradeEquations(sub EquationSubmission) (*EquationReport, error) {
	expected, err := g.ExpectedEquations(sub.SetID)
	if err != nil {
		return nil, err
	}

	matches, err := equation.Compare(sub.Equations, expected[:], g.cfg.Equation)
	if err != nil {
		return nil, err
	}
	independent, err := equation.IsIndependent(sub.Equations)
	if err != nil {
		return nil, err
	}

	report := &EquationReport{
		AttemptID:   g.newID(),
		GradedAt:    g.now(),
		Submission:  sub,
		SetID:       sub.SetID,
		Expected:    expected,
		Matches:     matches,
		Independent: independent,
		Outcome:     equationOutcome(matches, independent),
	}

	g.logger.Info("graded equations",
		zap.String("attempt_id", report.AttemptID),
		zap.Int("set", sub.SetID),
		zap.Bools("matches", matches),
		zap.Bool("independent", independent),
		zap.String("outcome", string(report.Outcome)),
	)
	return report, nil
}

// RecordEquations hands a graded equation attempt to the recorder. The
// failure, if any, is stored in report.RecordErr and returned.
func (g *Grader) RecordEquations(ctx context.Context, report *EquationReport) error {
	if g.recorder == nil {
		return nil
	}
	sub := report.Submission
	eqs := make([][4]float64, len(sub.Equations))
	for i, eq := range sub.Equations {
		eqs[i] = eq
	}
	report.RecordErr = g.recorder.AppendEquationAttempt(ctx, store.EquationAttemptData{
		ID:          report.AttemptID,
		Timestamp:   report.GradedAt,
		SetID:       sub.SetID,
		Name:        sub.Name,
		Comment:     sub.Comment,
		Equations:   eqs,
		Matches:     report.Matches,
		Independent: report.Independent,
		Result:      string(report.Outcome),
	})
	g.warnRecord(report.AttemptID, report.RecordErr)
	return report.RecordErr
}

// CheckCurrents grades a current submission in milliamps and then records
// it. Lookup and solver failures are returned as errors; a recording
// failure is attached to the report instead.
func (g *Grader) CheckCurrents(ctx context.Context, sub CurrentSubmission) (*CurrentReport, error) {
	report, err := g.GradeCurrents(sub)
	if err != nil {
		return nil, err
	}
	_ = g.RecordCurrents(ctx, report)
	return report, nil
}

// GradeCurrents computes the verdict for sub without recording it.
// Non-finite currents are rejected with ErrInvalidCurrents.
func (g *Grader) GradeCurrents(sub CurrentSubmission) (*CurrentReport, error) {
	if err := sub.Currents.Validate(); err != nil {
		return nil, err
	}
	expected, source, err := g.ExpectedCurrents(sub.SetID)
	if err != nil {
		return nil, err
	}

	result := Classify(sub.Currents, expected, g.cfg)
	report := &CurrentReport{
		AttemptID:  g.newID(),
		GradedAt:   g.now(),
		Submission: sub,
		SetID:      sub.SetID,
		Submitted:  sub.Currents,
		Expected:   expected,
		Source:     source,
		Tolerance:  g.cfg.CurrentTolerance,
		Result:     result,
	}

	g.logger.Info("graded currents",
		zap.String("attempt_id", report.AttemptID),
		zap.Int("set", sub.SetID),
		zap.String("source", string(source)),
		zap.String("result", string(result.Overall)),
	)
	return report, nil
}

// RecordCurrents hands a graded current attempt to the recorder. The
// failure, if any, is stored in report.RecordErr and returned.
func (g *Grader) RecordCurrents(ctx context.Context, report *CurrentReport) error {
	if g.recorder == nil {
		return nil
	}
	var verdicts [3]string
	for i, v := range report.Result.Values {
		verdicts[i] = string(v)
	}
	sub := report.Submission
	report.RecordErr = g.recorder.AppendCurrentAttempt(ctx, store.CurrentAttemptData{
		ID:             report.AttemptID,
		Timestamp:      report.GradedAt,
		SetID:          sub.SetID,
		Name:           sub.Name,
		Comment:        sub.Comment,
		Submitted:      report.Submitted,
		Expected:       report.Expected,
		ExpectedSource: string(report.Source),
		ToleranceMA:    report.Tolerance,
		Verdicts:       verdicts,
		Result:         report.Result.Overall.Label(),
	})
	g.warnRecord(report.AttemptID, report.RecordErr)
	return report.RecordErr
}

func (g *Grader) warnRecord(id string, err error) {
	if err != nil {
		g.logger.Warn("attempt graded but not recorded", zap.String("attempt_id", id), zap.Error(err))
	}
}

// equationOutcome labels a graded equation set.
func equationOutcome(matches []bool, independent bool) EquationOutcome {
	all, some := len(matches) > 0, false
	for _, m := range matches {
		all = all && m
		some = some || m
	}
	switch {
	case all && independent:
		return OutcomeAllMatch
	case some:
		return OutcomePartial
	default:
		return OutcomeNoMatch
	}
}
