package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"issuedeck/internal/ui"
	"issuedeck/internal/ui/theme"

	"github.com/charmbracelet/lipgloss"
)

// ExitSummary holds data for the line printed after the TUI exits.
type ExitSummary struct {
	Version string
	Session ui.Session
}

// printExitSummary prints a short session recap to w.
func printExitSummary(w io.Writer, summary ExitSummary) {
	palette := theme.Current()
	appStyle := lipgloss.NewStyle().Bold(true).Foreground(palette.Primary)
	dimStyle := lipgloss.NewStyle().Foreground(palette.TextMuted)
	statsStyle := lipgloss.NewStyle().Foreground(palette.Text)
	changeStyle := lipgloss.NewStyle().Foreground(palette.Success)

	header := appStyle.Render("issuedeck")
	if summary.Version != "" {
		header += dimStyle.Render(fmt.Sprintf(" v%s", summary.Version))
	}
	if !summary.Session.StartTime.IsZero() {
		header += dimStyle.Render(fmt.Sprintf(" • %s session", formatDuration(time.Since(summary.Session.StartTime))))
	}

	session := summary.Session
	stats := session.Stats
	line := fmt.Sprintf("%s: no issues loaded", session.Repository)
	if session.Repository == "" {
		line = "No repository opened"
	} else if stats.IssuesLoaded > 0 || stats.IssuesTotal > 0 {
		line = fmt.Sprintf("%s: %d/%d issues loaded, %d stars", session.Repository, stats.IssuesLoaded, stats.IssuesTotal, stats.Stars)
		if stats.Starred {
			line += " (starred)"
		}
	}

	var changes []string
	if session.ReactionsAdded > 0 {
		changes = append(changes, pluralize(session.ReactionsAdded, "reaction", "reactions")+" added")
	}
	if session.StarToggles > 0 {
		changes = append(changes, pluralize(session.StarToggles, "star toggle", "star toggles"))
	}
	out := statsStyle.Render(line)
	if len(changes) > 0 {
		out += " " + changeStyle.Render("("+strings.Join(changes, ", ")+")")
	}

	_, _ = fmt.Fprintln(w, header)
	_, _ = fmt.Fprintln(w, out)
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}

// formatDuration formats a duration into a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		secs := int(d.Seconds()) % 60
		if secs == 0 {
			return fmt.Sprintf("%dm", mins)
		}
		return fmt.Sprintf("%dm %ds", mins, secs)
	}
	hours := int(d.Hours())
	mins := int(d.Minutes()) % 60
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}
