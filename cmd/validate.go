package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/phy132/kirchhoff/internal/grading"
	"github.com/phy132/kirchhoff/internal/ui/theme"
)

func newValidateCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check every problem set solves and agrees with the answer table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.openSession(false)
			if err != nil {
				return err
			}
			defer s.Close()

			findings := s.grader.Audit(s.bank.IDs())
			p := c.printer(cmd.OutOrStdout())

			failed := 0
			for _, f := range findings {
				if !f.OK() {
					failed++
				}
				renderFinding(p, f)
			}
			p.line("%d sets checked, %d failed", len(findings), failed)

			if err := grading.JoinErrors(findings); err != nil {
				c.logger.Warn("unsolvable problem sets", zap.Error(err))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d sets failed validation", failed, len(findings))
			}
			return nil
		},
	}
}

func renderFinding(p printer, f grading.Finding) {
	switch {
	case f.Err != nil:
		p.line("%s  set %-3d %v", theme.Icon(grading.VerdictIncorrect), f.SetID, f.Err)
	case !f.HasTable:
		p.line("%s  set %-3d solved %.3f, %.3f, %.3f mA",
			theme.Icon(grading.VerdictCorrect), f.SetID,
			f.Solved[0], f.Solved[1], f.Solved[2])
	default:
		v := f.Agreement.Overall
		p.line("%s  set %-3d table %.1f, %.1f, %.1f mA vs solved %.3f, %.3f, %.3f mA  %s",
			theme.Icon(v), f.SetID,
			f.Table[0], f.Table[1], f.Table[2],
			f.Solved[0], f.Solved[1], f.Solved[2],
			p.style(theme.VerdictStyle(v), v.Label()))
	}
}
