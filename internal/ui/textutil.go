package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"
)

const ellipsis = "…"

// fitLine truncates s to width display cells, keeping ANSI sequences intact.
func fitLine(s string, width int) string {
	if width <= 0 || ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, ellipsis)
}

// padRight pads s with spaces to width display cells.
func padRight(s string, width int) string {
	if gap := width - ansi.StringWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// wrapText wraps plain text to width, indenting continuation lines.
func wrapText(s string, width, indent int) string {
	if width <= indent+1 {
		return s
	}
	wrapped := wordwrap.String(s, width-indent)
	if indent == 0 {
		return wrapped
	}
	pad := strings.Repeat(" ", indent)
	lines := strings.Split(wrapped, "\n")
	for i := range lines {
		lines[i] = pad + lines[i]
	}
	return strings.Join(lines, "\n")
}
