package store

import (
	"context"
	"time"
)

// Kind distinguishes the two attempt tables.
type Kind string

const (
	KindEquations Kind = "equations"
	KindCurrents  Kind = "currents"
)

// EquationAttemptData captures one graded equation submission.
type EquationAttemptData struct {
	ID          string
	Timestamp   time.Time
	SetID       int
	Name        string
	Comment     string
	Equations   [][4]float64
	Matches     []bool
	Independent bool
	Result      string
}

// CurrentAttemptData captures one graded current submission. All currents
// are in milliamps.
type CurrentAttemptData struct {
	ID             string
	Timestamp      time.Time
	SetID          int
	Name           string
	Comment        string
	Submitted      [3]float64
	Expected       [3]float64
	ExpectedSource string
	ToleranceMA    float64
	Verdicts       [3]string
	Result         string
}

// AttemptRecorder receives graded attempts. Implementations include the
// local database and the remote submission webhook.
type AttemptRecorder interface {
	// AppendEquationAttempt records a graded equation submission.
	AppendEquationAttempt(ctx context.Context, data EquationAttemptData) error

	// AppendCurrentAttempt records a graded current submission.
	AppendCurrentAttempt(ctx context.Context, data CurrentAttemptData) error
}

// QueryOpts filters attempt listings.
type QueryOpts struct {
	SetID int  // 0 = all sets
	Kind  Kind // "" = both kinds
	Limit int  // max results (0 = unlimited)
	After int64
}

// Attempt is the kind-independent view of a stored attempt.
type Attempt struct {
	ID        string
	Kind      Kind
	Sequence  int64
	Timestamp time.Time
	SetID     int
	Name      string
	Result    string
}

// SetSummary counts stored attempts for one problem set by result label.
type SetSummary struct {
	SetID     int
	Equations map[string]int
	Currents  map[string]int
}

// AttemptRepo is the queryable local attempt store.
type AttemptRepo interface {
	AttemptRecorder

	// ListAttempts returns attempts newest first.
	ListAttempts(ctx context.Context, opts QueryOpts) ([]Attempt, error)

	// SetSummary counts attempts for setID grouped by result.
	SetSummary(ctx context.Context, setID int) (SetSummary, error)
}
