package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phy132/kirchhoff/internal/equation"
	"github.com/phy132/kirchhoff/internal/grading"
	"github.com/phy132/kirchhoff/internal/ui/theme"
)

// submittedEquations is how many equations a student must enter.
const submittedEquations = 3

func newCheckEquationsCmd(c *cli) *cobra.Command {
	var (
		setID         int
		eqs           []string
		name, comment string
	)

	cmd := &cobra.Command{
		Use:   "check-equations",
		Short: "Check three Kirchhoff equations for a problem set",
		Long: `Each --eq is "A,B,C,D" meaning A·I1 + B·I2 + C·I3 + D = 0.
Equations match the reference regardless of scale and sign.`,
		Example: `  kirchhoff check-equations --set 3 --eq "1,-1,-1,0" --eq "-100,0,-100,10" --eq "0,100,-100,-5"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(eqs) != submittedEquations {
				return fmt.Errorf("need exactly %d --eq values, got %d", submittedEquations, len(eqs))
			}
			parsed := make([]equation.Equation, len(eqs))
			for i, s := range eqs {
				eq, err := equation.Parse(s)
				if err != nil {
					return fmt.Errorf("equation %d: %w", i+1, err)
				}
				parsed[i] = eq
			}

			s, err := c.openSession(true)
			if err != nil {
				return err
			}
			defer s.Close()

			report, err := s.grader.GradeEquations(grading.EquationSubmission{
				SetID:     setID,
				Name:      name,
				Comment:   comment,
				Equations: parsed,
			})
			if err != nil {
				return err
			}

			renderEquationReport(c.printer(cmd.OutOrStdout()), parsed, report)
			s.recordFailures(c.printer(cmd.ErrOrStderr()), s.grader.RecordEquations(cmd.Context(), report))
			return nil
		},
	}

	cmd.Flags().IntVar(&setID, "set", 0, "Problem set number")
	cmd.Flags().StringArrayVar(&eqs, "eq", nil, `Equation coefficients "A,B,C,D" (repeat 3 times)`)
	cmd.Flags().StringVar(&name, "name", "", "Student name")
	cmd.Flags().StringVar(&comment, "comment", "", "Optional comment")
	_ = cmd.MarkFlagRequired("set")
	_ = cmd.MarkFlagRequired("eq")
	return cmd
}

func renderEquationReport(p printer, submitted []equation.Equation, r *grading.EquationReport) {
	p.title("Set %d · equations", r.SetID)
	for i, eq := range submitted {
		v, label := grading.VerdictIncorrect, "no match"
		if r.Matches[i] {
			v, label = grading.VerdictCorrect, "match"
		}
		p.line("  %d  %s  %s", i+1, formatEquation(eq), p.badge(v, label))
	}
	p.line("Independent: %s", yesNo(r.Independent))
	p.line("Result: %s", p.badge(theme.OutcomeVerdict(r.Outcome), string(r.Outcome)))
}

func newCheckCurrentsCmd(c *cli) *cobra.Command {
	var (
		setID         int
		i1, i2, i3    float64
		tolerance     float64
		name, comment string
	)

	cmd := &cobra.Command{
		Use:     "check-currents",
		Short:   "Check the three branch currents (mA) for a problem set",
		Example: `  kirchhoff check-currents --set 3 --i1 83.3 --i2 66.7 --i3 16.7`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("tolerance") {
				c.cfg.Grading.CurrentToleranceMA = tolerance
				if err := c.cfg.GradingConfig().Validate(); err != nil {
					return err
				}
			}

			s, err := c.openSession(true)
			if err != nil {
				return err
			}
			defer s.Close()

			report, err := s.grader.GradeCurrents(grading.CurrentSubmission{
				SetID:    setID,
				Name:     name,
				Comment:  comment,
				Currents: grading.Milliamps{i1, i2, i3},
			})
			if err != nil {
				return err
			}

			renderCurrentReport(c.printer(cmd.OutOrStdout()), report)
			s.recordFailures(c.printer(cmd.ErrOrStderr()), s.grader.RecordCurrents(cmd.Context(), report))
			return nil
		},
	}

	cmd.Flags().IntVar(&setID, "set", 0, "Problem set number")
	cmd.Flags().Float64Var(&i1, "i1", 0, "I1 in mA")
	cmd.Flags().Float64Var(&i2, "i2", 0, "I2 in mA")
	cmd.Flags().Float64Var(&i3, "i3", 0, "I3 in mA")
	cmd.Flags().Float64Var(&tolerance, "tolerance", 0, "Tolerance in mA (overrides config)")
	cmd.Flags().StringVar(&name, "name", "", "Student name")
	cmd.Flags().StringVar(&comment, "comment", "", "Optional comment")
	for _, f := range []string{"set", "i1", "i2", "i3"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}

func renderCurrentReport(p printer, r *grading.CurrentReport) {
	p.title("Set %d · currents", r.SetID)
	p.hint("reference: %s, tolerance ±%g mA", r.Source, r.Tolerance)
	p.line("      %10s  %10s", "yours", "expected")
	for i := range r.Submitted {
		v := r.Result.Values[i]
		p.line("  I%d  %10.3f  %10.3f  %s", i+1, r.Submitted[i], r.Expected[i], p.badge(v, v.Label()))
	}
	p.line("Result: %s", p.badge(r.Result.Overall, r.Result.Overall.Label()))
}
