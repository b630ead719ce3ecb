package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/phy132/kirchhoff/internal/ui/theme"
)

// ProgressBar displays a horizontal bar, e.g. the share of correct
// attempts for a problem set.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
	// Plain renders without ANSI styling.
	Plain bool
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += p.Label + "  "
	}

	labelWidth := lipgloss.Width(result)
	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // "  100%"
	}

	barWidth := p.Width - labelWidth - percentWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	empty := barWidth - filled

	result += p.render(theme.BarFilled, strings.Repeat("█", filled))
	result += p.render(theme.BarEmpty, strings.Repeat("░", empty))

	if p.ShowPercent {
		result += p.render(theme.Hint, fmt.Sprintf("  %d%%", int(p.Percent*100)))
	}

	return result
}

func (p ProgressBar) render(s lipgloss.Style, text string) string {
	if p.Plain {
		return text
	}
	return s.Render(text)
}
