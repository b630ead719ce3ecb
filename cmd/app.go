package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/phy132/kirchhoff/internal/grading"
	"github.com/phy132/kirchhoff/internal/problemset"
	"github.com/phy132/kirchhoff/internal/store"
	"github.com/phy132/kirchhoff/internal/webhook"
)

// loadBank reads the configured problem bank.
func (c *cli) loadBank() (*problemset.Bank, error) {
	bank, err := problemset.Load(c.cfg.Data.Problems, c.cfg.Data.Answers)
	if err != nil {
		return nil, fmt.Errorf("load problem bank: %w", err)
	}
	c.logger.Debug("problem bank loaded")
	return bank, nil
}

// openStore opens the attempt database.
func (c *cli) openStore() (*store.Store, error) {
	dsn, err := c.resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(c.cfg.Database.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

// session is everything a grading command needs.
type session struct {
	bank   *problemset.Bank
	store  *store.Store
	grader *grading.Grader

	// storeErr is why store is nil on a recording session.
	storeErr error

	closers []func()
}

// recordFailures tells the student, after the verdict, what could not be
// saved.
func (s *session) recordFailures(p printer, recordErr error) {
	if s.storeErr != nil {
		p.hint("attempt not saved locally: %v", s.storeErr)
	}
	if recordErr != nil {
		p.hint("attempt not recorded: %v", recordErr)
	}
}

func (s *session) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// openSession loads the bank, opens the store, wires the recorders
// (local database plus the webhook when configured) and builds the grader.
// When record is false the grader records nothing.
func (c *cli) openSession(record bool) (*session, error) {
	bank, err := c.loadBank()
	if err != nil {
		return nil, err
	}
	s := &session{bank: bank}

	var recorder store.AttemptRecorder
	if record {
		var recorders []store.AttemptRecorder

		// An unusable database never withholds a verdict.
		st, err := c.openStore()
		if err != nil {
			c.logger.Warn("attempts will not be saved locally", zap.Error(err))
			s.storeErr = err
		} else {
			s.store = st
			s.closers = append(s.closers, func() { st.Close() })
			recorders = append(recorders, store.WithLogging(st.AttemptRepo(), "database", c.logger))
		}

		wcfg := c.cfg.WebhookConfig()
		if wcfg.Enabled() {
			client, err := webhook.New(wcfg)
			if err != nil {
				s.Close()
				return nil, fmt.Errorf("webhook: %w", err)
			}
			s.closers = append(s.closers, client.Close)
			recorders = append(recorders,
				store.WithLogging(webhook.WithRetry(client, wcfg.Retry), "webhook", c.logger))
		}
		if len(recorders) > 0 {
			recorder = store.Tee(recorders...)
		}
	}

	s.grader = grading.NewGrader(bank, recorder, c.cfg.GradingConfig(), c.logger)
	return s, nil
}
