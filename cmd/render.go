package cmd

import (
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/phy132/kirchhoff/internal/equation"
	"github.com/phy132/kirchhoff/internal/grading"
	"github.com/phy132/kirchhoff/internal/ui/theme"
)

// printer writes command output, styled unless plain.
type printer struct {
	w     io.Writer
	plain bool
}

func (c *cli) printer(w io.Writer) printer {
	return printer{w: w, plain: c.noColor}
}

func (p printer) style(s lipgloss.Style, text string) string {
	if p.plain {
		return text
	}
	return s.Render(text)
}

func (p printer) line(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

func (p printer) title(format string, args ...any) {
	p.line("%s", p.style(theme.Title, fmt.Sprintf(format, args...)))
}

func (p printer) hint(format string, args ...any) {
	p.line("%s", p.style(theme.Hint, fmt.Sprintf(format, args...)))
}

// badge renders a verdict icon followed by label in the verdict's style.
func (p printer) badge(v grading.Verdict, label string) string {
	return theme.Icon(v) + " " + p.style(theme.VerdictStyle(v), label)
}

func formatEquation(eq equation.Equation) string {
	parts := make([]string, len(eq))
	for i, v := range eq {
		parts[i] = fmt.Sprintf("%10.4f", v)
	}
	return "[" + strings.Join(parts, ",") + " ]"
}

// cell fits s into exactly width terminal cells, truncating on character
// boundaries.
func cell(s string, width int) string {
	s = lipgloss.NewStyle().MaxWidth(width).Render(strings.ReplaceAll(s, "\n", " "))
	if pad := width - lipgloss.Width(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
