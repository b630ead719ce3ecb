package theme

import (
	"charm.land/lipgloss/v2"

	"github.com/phy132/kirchhoff/internal/grading"
)

// Color palette
var (
	Primary = lipgloss.Color("#8B5CF6") // Vivid Purple
	Success = lipgloss.Color("#22C55E") // Green
	Warning = lipgloss.Color("#F59E0B") // Amber
	Error   = lipgloss.Color("#F43F5E") // Rose
	TextDim = lipgloss.Color("#94A3B8") // Slate
	Border  = lipgloss.Color("#334155") // Slate
	Fill    = lipgloss.Color("#14B8A6") // Teal
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Verdicts
var (
	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Almost = lipgloss.NewStyle().
		Foreground(Warning).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Components
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	BarFilled = lipgloss.NewStyle().
			Foreground(Fill)

	BarEmpty = lipgloss.NewStyle().
			Foreground(Border)
)

// VerdictStyle returns the style for a verdict.
func VerdictStyle(v grading.Verdict) lipgloss.Style {
	switch v {
	case grading.VerdictCorrect:
		return Correct
	case grading.VerdictAlmost:
		return Almost
	default:
		return Incorrect
	}
}

// Icon returns the status icon shown next to a verdict.
func Icon(v grading.Verdict) string {
	switch v {
	case grading.VerdictCorrect:
		return "✅"
	case grading.VerdictAlmost:
		return "⚠️"
	default:
		return "❌"
	}
}

// OutcomeVerdict maps an equation outcome onto the verdict palette.
func OutcomeVerdict(o grading.EquationOutcome) grading.Verdict {
	switch o {
	case grading.OutcomeAllMatch:
		return grading.VerdictCorrect
	case grading.OutcomePartial:
		return grading.VerdictAlmost
	default:
		return grading.VerdictIncorrect
	}
}
