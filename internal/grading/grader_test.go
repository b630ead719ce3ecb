package grading

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/phy132/kirchhoff/internal/circuit"
	"github.com/phy132/kirchhoff/internal/equation"
	"github.com/phy132/kirchhoff/internal/store"
)

var errNoSet = errors.New("no such set")

// fakeProblems is an in-memory ProblemSource.
type fakeProblems struct {
	params  map[int]circuit.Params
	answers map[int][3]float64
}

func (f *fakeProblems) Params(id int) (circuit.Params, error) {
	p, ok := f.params[id]
	if !ok {
		return circuit.Params{}, fmt.Errorf("set %d: %w", id, errNoSet)
	}
	return p, nil
}

func (f *fakeProblems) ReferenceCurrents(id int) ([3]float64, bool) {
	a, ok := f.answers[id]
	return a, ok
}

// fakeRecorder captures appended attempts.
type fakeRecorder struct {
	equations []store.EquationAttemptData
	currents  []store.CurrentAttemptData
	err       error
}

func (f *fakeRecorder) AppendEquationAttempt(_ context.Context, d store.EquationAttemptData) error {
	f.equations = append(f.equations, d)
	return f.err
}

func (f *fakeRecorder) AppendCurrentAttempt(_ context.Context, d store.CurrentAttemptData) error {
	f.currents = append(f.currents, d)
	return f.err
}

func newTestProblems() *fakeProblems {
	return &fakeProblems{
		params: map[int]circuit.Params{
			1: {V1: 10, V2: 5, R1: 100, R2: 100, R3: 100},
			2: {V1: 12, V2: 9, R1: 220, R2: 470, R3: 330},
			3: {V1: 1, V2: 1, R1: 0, R2: 1, R3: 1}, // authoring bug
		},
		answers: map[int][3]float64{
			2: {40, 10, 30},
		},
	}
}

func newTestGrader(rec store.AttemptRecorder, logger *zap.Logger) *Grader {
	g := NewGrader(newTestProblems(), rec, DefaultConfig(), logger)
	g.now = func() time.Time { return time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC) }
	n := 0
	g.newID = func() string { n++; return fmt.Sprintf("attempt-%d", n) }
	return g
}

func TestExpectedCurrents_Solved(t *testing.T) {
	g := newTestGrader(nil, nil)
	got, src, err := g.ExpectedCurrents(1)
	require.NoError(t, err)
	assert.Equal(t, SourceSolved, src)
	assert.InDelta(t, 83.3333, got[0], 1e-3)
	assert.InDelta(t, 66.6667, got[1], 1e-3)
	assert.InDelta(t, 16.6667, got[2], 1e-3)
}

func TestExpectedCurrents_TablePreferred(t *testing.T) {
	g := newTestGrader(nil, nil)
	got, src, err := g.ExpectedCurrents(2)
	require.NoError(t, err)
	assert.Equal(t, SourceTable, src)
	assert.Equal(t, Milliamps{40, 10, 30}, got)
}

func TestExpectedCurrents_Errors(t *testing.T) {
	g := newTestGrader(nil, nil)

	_, _, err := g.ExpectedCurrents(42)
	assert.ErrorIs(t, err, errNoSet)

	_, _, err = g.ExpectedCurrents(3)
	assert.ErrorIs(t, err, circuit.ErrInvalidParams)
}

func TestFromAmps(t *testing.T) {
	assert.Equal(t, Milliamps{1500, -2, 0}, FromAmps(circuit.Currents{1.5, -0.002, 0}))
}

func TestCheckEquations_AllMatch(t *testing.T) {
	rec := &fakeRecorder{}
	g := newTestGrader(rec, nil)

	report, err := g.CheckEquations(context.Background(), EquationSubmission{
		SetID: 1,
		Name:  "Ada",
		Equations: []equation.Equation{
			{0, -2, 2, 0.1},       // right loop ÷ -50
			{-1, 1, 1, 0},         // junction, flipped
			{-100, 0, -100, 10.0}, // left loop
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true, true}, report.Matches)
	assert.True(t, report.Independent)
	assert.Equal(t, OutcomeAllMatch, report.Outcome)
	assert.Equal(t, "attempt-1", report.AttemptID)
	assert.NoError(t, report.RecordErr)

	require.Len(t, rec.equations, 1)
	got := rec.equations[0]
	assert.Equal(t, "attempt-1", got.ID)
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, "All match", got.Result)
	assert.Equal(t, [4]float64{-1, 1, 1, 0}, got.Equations[1])
}

func TestCheckEquations_Outcomes(t *testing.T) {
	junction := equation.Equation{1, -1, -1, 0}
	left := equation.Equation{-100, 0, -100, 10}
	wrong := equation.Equation{3, 3, 3, 3}

	tests := []struct {
		name        string
		eqs         []equation.Equation
		independent bool
		want        EquationOutcome
	}{
		{"duplicated junction", []equation.Equation{junction, junction, left}, false, OutcomePartial},
		{"one wrong", []equation.Equation{junction, wrong, left}, true, OutcomePartial},
		{"all wrong", []equation.Equation{wrong, {1, 0, 0, 0}, {0, 1, 0, 0}}, true, OutcomeNoMatch},
	}

	g := newTestGrader(nil, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := g.CheckEquations(context.Background(), EquationSubmission{SetID: 1, Equations: tt.eqs})
			require.NoError(t, err)
			assert.Equal(t, tt.independent, report.Independent)
			assert.Equal(t, tt.want, report.Outcome)
		})
	}
}

func TestCheckEquations_InvalidInputNotRecorded(t *testing.T) {
	rec := &fakeRecorder{}
	g := newTestGrader(rec, nil)

	nan := equation.Equation{1, 0, math.NaN(), 0}
	_, err := g.CheckEquations(context.Background(), EquationSubmission{SetID: 1, Equations: []equation.Equation{nan}})
	assert.ErrorIs(t, err, equation.ErrInvalidInput)
	assert.Empty(t, rec.equations)
}

func TestCheckEquations_UnknownSet(t *testing.T) {
	g := newTestGrader(nil, nil)
	_, err := g.CheckEquations(context.Background(), EquationSubmission{SetID: 99})
	assert.ErrorIs(t, err, errNoSet)
}

func TestCheckCurrents(t *testing.T) {
	rec := &fakeRecorder{}
	g := newTestGrader(rec, nil)

	report, err := g.CheckCurrents(context.Background(), CurrentSubmission{
		SetID:    1,
		Name:     "Grace",
		Currents: Milliamps{83.33, 65.5, 16.67},
	})
	require.NoError(t, err)
	assert.Equal(t, SourceSolved, report.Source)
	assert.Equal(t, [3]Verdict{VerdictCorrect, VerdictAlmost, VerdictCorrect}, report.Result.Values)
	assert.Equal(t, VerdictAlmost, report.Result.Overall)
	assert.Equal(t, 1.0, report.Tolerance)

	require.Len(t, rec.currents, 1)
	got := rec.currents[0]
	assert.Equal(t, "Almost", got.Result)
	assert.Equal(t, "solved", got.ExpectedSource)
	assert.Equal(t, [3]string{"correct", "almost", "correct"}, got.Verdicts)
	assert.Equal(t, [3]float64{83.33, 65.5, 16.67}, got.Submitted)
}

func TestCheckCurrents_RecordFailureKeepsVerdict(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	rec := &fakeRecorder{err: errors.New("sheet offline")}
	g := newTestGrader(rec, zap.New(core))

	report, err := g.CheckCurrents(context.Background(), CurrentSubmission{
		SetID:    2,
		Currents: Milliamps{40, 10, 30},
	})
	require.NoError(t, err)
	assert.Equal(t, VerdictCorrect, report.Result.Overall)
	assert.Equal(t, SourceTable, report.Source)
	assert.EqualError(t, report.RecordErr, "sheet offline")
	assert.Equal(t, 1, logs.FilterMessage("attempt graded but not recorded").Len())
}

func TestCheckCurrents_SolverFailure(t *testing.T) {
	rec := &fakeRecorder{}
	g := newTestGrader(rec, nil)

	_, err := g.CheckCurrents(context.Background(), CurrentSubmission{SetID: 3})
	assert.ErrorIs(t, err, circuit.ErrInvalidParams)
	assert.Empty(t, rec.currents)
}

// blockingRecorder holds every append until release is closed.
type blockingRecorder struct {
	release chan struct{}
	calls   chan string
}

func newBlockingRecorder() *blockingRecorder {
	return &blockingRecorder{release: make(chan struct{}), calls: make(chan string, 4)}
}

func (b *blockingRecorder) AppendEquationAttempt(ctx context.Context, d store.EquationAttemptData) error {
	b.calls <- d.ID
	select {
	case <-b.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *blockingRecorder) AppendCurrentAttempt(ctx context.Context, d store.CurrentAttemptData) error {
	b.calls <- d.ID
	select {
	case <-b.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestGradeCurrents_VerdictBeforeRecording(t *testing.T) {
	rec := newBlockingRecorder()
	g := newTestGrader(rec, nil)

	report, err := g.GradeCurrents(CurrentSubmission{SetID: 1, Name: "Ada", Currents: Milliamps{83.3, 66.7, 16.7}})
	require.NoError(t, err)
	assert.Equal(t, VerdictCorrect, report.Result.Overall)
	assert.Empty(t, rec.calls, "grading must not touch the recorder")

	done := make(chan error, 1)
	go func() { done <- g.RecordCurrents(context.Background(), report) }()
	assert.Equal(t, "attempt-1", <-rec.calls)
	close(rec.release)
	require.NoError(t, <-done)
	assert.NoError(t, report.RecordErr)
}

func TestGradeEquations_VerdictBeforeRecording(t *testing.T) {
	rec := newBlockingRecorder()
	g := newTestGrader(rec, nil)

	report, err := g.GradeEquations(EquationSubmission{
		SetID:     1,
		Equations: []equation.Equation{{1, -1, -1, 0}, {-100, 0, -100, 10}, {0, 100, -100, -5}},
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeAllMatch, report.Outcome)
	assert.Empty(t, rec.calls)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = g.RecordEquations(ctx, report)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, report.RecordErr, context.Canceled)
	assert.Equal(t, OutcomeAllMatch, report.Outcome)
}

func TestRecordCurrents_UsesGradingTime(t *testing.T) {
	rec := &fakeRecorder{}
	g := newTestGrader(rec, nil)

	report, err := g.GradeCurrents(CurrentSubmission{SetID: 2, Comment: "late", Currents: Milliamps{40, 10, 30}})
	require.NoError(t, err)
	g.now = func() time.Time { return time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC) }
	require.NoError(t, g.RecordCurrents(context.Background(), report))

	require.Len(t, rec.currents, 1)
	assert.True(t, time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC).Equal(rec.currents[0].Timestamp))
	assert.Equal(t, "late", rec.currents[0].Comment)
	assert.Equal(t, "Correct", rec.currents[0].Result)
}

func TestGradeCurrents_RejectsNonFinite(t *testing.T) {
	rec := &fakeRecorder{}
	g := newTestGrader(rec, nil)

	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := g.CheckCurrents(context.Background(), CurrentSubmission{SetID: 1, Currents: Milliamps{83.3, bad, 16.7}})
		assert.ErrorIs(t, err, ErrInvalidCurrents)
		assert.Contains(t, err.Error(), "I2")
	}
	assert.Empty(t, rec.currents)
}
