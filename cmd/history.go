package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phy132/kirchhoff/internal/grading"
	"github.com/phy132/kirchhoff/internal/store"
	"github.com/phy132/kirchhoff/internal/ui/components"
)

const nameWidth = 20

func newHistoryCmd(c *cli) *cobra.Command {
	var (
		setID int
		limit int
		kind  string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded attempts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k := store.Kind(kind)
			switch k {
			case "", store.KindEquations, store.KindCurrents:
			default:
				return fmt.Errorf("unknown kind %q (want %q or %q)", kind, store.KindEquations, store.KindCurrents)
			}

			st, err := c.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			repo := st.AttemptRepo()
			ctx := cmd.Context()
			attempts, err := repo.ListAttempts(ctx, store.QueryOpts{SetID: setID, Kind: k, Limit: limit})
			if err != nil {
				return fmt.Errorf("query attempts: %w", err)
			}

			p := c.printer(cmd.OutOrStdout())
			if len(attempts) == 0 {
				p.line("No attempts found.")
				return nil
			}

			p.line("%-5s  %-19s  %-4s  %-9s  %s  %s", "Seq", "Timestamp", "Set", "Kind", cell("Name", nameWidth), "Result")
			for _, a := range attempts {
				p.line("%-5d  %-19s  %-4d  %-9s  %s  %s",
					a.Sequence,
					a.Timestamp.Local().Format("2006-01-02 15:04:05"),
					a.SetID, a.Kind, cell(a.Name, nameWidth), a.Result)
			}

			if setID == 0 {
				return nil
			}
			sum, err := repo.SetSummary(ctx, setID)
			if err != nil {
				return fmt.Errorf("summarize set %d: %w", setID, err)
			}
			p.line("")
			p.title("Set %d summary", setID)
			renderShare(p, "equations", sum.Equations, string(grading.OutcomeAllMatch))
			renderShare(p, "currents ", sum.Currents, grading.VerdictCorrect.Label())
			return nil
		},
	}

	cmd.Flags().IntVar(&setID, "set", 0, "Only this problem set (also prints a summary)")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum attempts to list (0 = all)")
	cmd.Flags().StringVar(&kind, "kind", "", `"equations" or "currents" (default both)`)
	return cmd
}

// renderShare prints the share of attempts labelled ok as a bar.
func renderShare(p printer, label string, counts map[string]int, ok string) {
	total := store.Total(counts)
	if total == 0 {
		p.line("%s  no attempts", label)
		return
	}
	bar := components.NewProgressBar(label, float64(counts[ok])/float64(total), true, 50)
	bar.Plain = p.plain
	p.line("%s  (%d/%d %s)", bar.View(), counts[ok], total, ok)
}
