package store

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// tee fans one attempt out to several recorders concurrently.
type tee []AttemptRecorder

// Tee returns a recorder that forwards every attempt to all non-nil rs.
// Every recorder is called even when another fails; the failures are joined.
func Tee(rs ...AttemptRecorder) AttemptRecorder {
	var t tee
	for _, r := range rs {
		if r != nil {
			t = append(t, r)
		}
	}
	if len(t) == 1 {
		return t[0]
	}
	return t
}

func (t tee) AppendEquationAttempt(ctx context.Context, data EquationAttemptData) error {
	return t.each(func(r AttemptRecorder) error {
		return r.AppendEquationAttempt(ctx, data)
	})
}

func (t tee) AppendCurrentAttempt(ctx context.Context, data CurrentAttemptData) error {
	return t.each(func(r AttemptRecorder) error {
		return r.AppendCurrentAttempt(ctx, data)
	})
}

func (t tee) each(fn func(AttemptRecorder) error) error {
	errs := make([]error, len(t))
	var g errgroup.Group
	for i, r := range t {
		g.Go(func() error {
			errs[i] = fn(r)
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}
