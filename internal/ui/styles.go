package ui

import (
	"strings"

	"issuedeck/internal/ui/theme"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

type styles struct {
	header   lipgloss.Style
	title    lipgloss.Style
	link     lipgloss.Style
	number   lipgloss.Style
	star     lipgloss.Style
	muted    lipgloss.Style
	text     lipgloss.Style
	selected lipgloss.Style
	errTitle lipgloss.Style
	errBody  lipgloss.Style
	inputErr lipgloss.Style
	toast    lipgloss.Style
	pane     lipgloss.Style
}

func newStyles(t theme.Theme) styles {
	return styles{
		header: lipgloss.NewStyle().
			Foreground(t.Text).
			Background(t.Selection).
			Bold(true).
			Padding(0, 1),
		title:  lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		link:   lipgloss.NewStyle().Foreground(t.Secondary).Underline(true),
		number: lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		star:   lipgloss.NewStyle().Foreground(t.Accent),
		muted:  lipgloss.NewStyle().Foreground(t.TextMuted),
		text:   lipgloss.NewStyle().Foreground(t.Text),
		selected: lipgloss.NewStyle().
			Background(t.Selection).
			Foreground(t.Text).
			Bold(true),
		errTitle: lipgloss.NewStyle().Foreground(t.Error).Bold(true),
		errBody:  lipgloss.NewStyle().Foreground(t.Error),
		inputErr: lipgloss.NewStyle().Foreground(t.Error).Italic(true),
		toast: lipgloss.NewStyle().
			Foreground(t.Success).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
		pane: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
	}
}

// buildMarkdownRenderer returns a glamour renderer for the output format
// ("rich"/"dark", "light", "plain"). Plain output, or any glamour failure,
// falls back to word wrapping.
func buildMarkdownRenderer(format string, width int) func(string) string {
	fallback := func(input string) string {
		return wordwrap.String(input, width)
	}

	style := strings.ToLower(strings.TrimSpace(format))
	if style == "" || style == "rich" {
		style = "dark"
	}
	if style == "plain" {
		return fallback
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fallback
	}
	return func(input string) string {
		out, err := renderer.Render(input)
		if err != nil {
			return fallback(input)
		}
		return strings.TrimSpace(out)
	}
}
