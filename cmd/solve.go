package cmd

import (
	"github.com/spf13/cobra"

	"github.com/phy132/kirchhoff/internal/circuit"
)

func newSolveCmd(c *cli) *cobra.Command {
	var setID int

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Show the reference equations and currents for a problem set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.openSession(false)
			if err != nil {
				return err
			}
			defer s.Close()

			params, err := s.bank.Params(setID)
			if err != nil {
				return err
			}
			eqs, err := s.grader.ExpectedEquations(setID)
			if err != nil {
				return err
			}
			currents, source, err := s.grader.ExpectedCurrents(setID)
			if err != nil {
				return err
			}

			p := c.printer(cmd.OutOrStdout())
			p.title("Set %d", setID)
			p.hint("%s", params)
			for i, eq := range eqs {
				p.line("  %-10s  %s", circuit.Names[i], formatEquation(eq))
			}
			p.line("Currents (%s):", source)
			for i, v := range currents {
				p.line("  I%d = %.3f mA", i+1, v)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&setID, "set", 0, "Problem set number")
	_ = cmd.MarkFlagRequired("set")
	return cmd
}
