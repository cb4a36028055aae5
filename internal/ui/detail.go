package ui

import (
	"fmt"
	"strings"

	"issuedeck/internal/graph"
)

// resizeDetail sizes the detail viewport to the space below the header.
func (m *App) resizeDetail() {
	if m.width == 0 || m.height == 0 {
		return
	}
	m.viewport.Width = clampDimension(m.width-4, 10, m.width)
	m.viewport.Height = clampDimension(m.height-m.chromeHeight(), minDetailHeight, m.height)
	m.detailID = ""
	m.refreshDetail()
}

// chromeHeight is the number of lines taken by header, search line and footer.
func (m *App) chromeHeight() int {
	lines := 6
	if m.help.ShowAll {
		lines += 4
	}
	return lines
}

// refreshDetail re-renders the selected issue into the viewport. Rendering
// is skipped when the same issue is already shown and unchanged.
func (m *App) refreshDetail() {
	if !m.showDetail {
		return
	}
	issue := m.selectedIssue()
	if issue == nil {
		m.viewport.SetContent("")
		m.detailID = ""
		return
	}
	id := fmt.Sprintf("%s#%d", issue.ID, issue.Reactions.TotalCount)
	if id == m.detailID {
		return
	}
	m.detailID = id
	m.viewport.SetContent(m.renderDetail(issue))
	m.viewport.GotoTop()
}

func (m *App) renderDetail(issue *graph.Issue) string {
	width := m.viewport.Width
	if width <= 0 {
		width = 80
	}
	var b strings.Builder
	b.WriteString(m.styles.title.Render(fmt.Sprintf("#%d %s", issue.Number, issue.Title)))
	b.WriteString("\n")
	if issue.URL != "" {
		b.WriteString(m.styles.link.Render(issue.URL))
		b.WriteString("\n")
	}
	if tally := formatTally(issue.ReactionTally()); tally != "" {
		b.WriteString(tally)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	body := strings.TrimSpace(issue.Body)
	if body == "" {
		b.WriteString(m.styles.muted.Render("No description provided."))
		return b.String()
	}
	render := buildMarkdownRenderer(m.outputFormat, width)
	b.WriteString(render(body))
	return b.String()
}

func formatTally(counts []graph.ReactionCount) string {
	parts := make([]string, 0, len(counts))
	for _, c := range counts {
		parts = append(parts, fmt.Sprintf("%s %d", c.Content.Emoji(), c.Count))
	}
	return strings.Join(parts, "  ")
}
