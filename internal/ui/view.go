package ui

import (
	"fmt"
	"strings"

	"issuedeck/internal/graph"

	"github.com/charmbracelet/lipgloss"
)

const errorHeading = "Something went wrong:"

// View implements tea.Model.
func (m *App) View() string {
	sections := []string{m.renderHeader(), m.renderSearchLine()}
	if body := m.renderBody(); body != "" {
		sections = append(sections, body)
	}
	sections = append(sections, m.renderFooter())
	return strings.Join(sections, "\n")
}

func (m *App) renderHeader() string {
	parts := []string{"issuedeck"}
	if m.version != "" {
		parts[0] += " " + m.version
	}
	parts = append(parts, repositoryLabel(m.path))
	if repo := m.snap.Repository(); repo != nil {
		stats := m.snap.Stats()
		parts = append(parts, fmt.Sprintf("%d/%d issues", stats.IssuesLoaded, stats.IssuesTotal))
	}
	if m.Loading() {
		parts = append(parts, m.spinner.View()+" loading")
	}
	return m.styles.header.Render(fitLine(strings.Join(parts, " │ "), m.contentWidth()))
}

func (m *App) renderSearchLine() string {
	if !m.searching {
		return m.styles.muted.Render(fmt.Sprintf("Repository: %s  (/ to change)", repositoryLabel(m.path)))
	}
	line := m.input.View()
	if m.inputErr != "" {
		line += "\n" + m.styles.inputErr.Render(m.inputErr)
	}
	return line
}

func (m *App) renderBody() string {
	var blocks []string
	if m.fetchErr != nil {
		blocks = append(blocks, m.renderErrors([]string{m.fetchErr.Error()}))
	}
	if m.snap.HasErrors() {
		messages := make([]string, len(m.snap.Errors))
		for i, e := range m.snap.Errors {
			messages[i] = e.Message
		}
		blocks = append(blocks, m.renderErrors(messages))
	}
	org := m.snap.Organization
	if org == nil {
		if len(blocks) == 0 && !m.Loading() && !m.path.IsZero() {
			blocks = append(blocks, m.styles.muted.Render("No issues loaded."))
		}
		return strings.Join(blocks, "\n")
	}
	blocks = append(blocks, m.renderOrganization(org))
	if repo := org.Repository; repo != nil {
		blocks = append(blocks, m.renderRepository(repo))
		if m.showDetail {
			blocks = append(blocks, m.styles.pane.Render(m.viewport.View()))
		} else {
			blocks = append(blocks, m.renderIssueList(repo))
		}
	}
	return strings.Join(blocks, "\n")
}

// renderErrors shows the first message prominently and the rest verbatim
// beneath it.
func (m *App) renderErrors(messages []string) string {
	if len(messages) == 0 {
		return ""
	}
	width := m.contentWidth()
	lines := []string{
		m.styles.errTitle.Render(errorHeading),
		m.styles.errBody.Render(wrapText(messages[0], width, 2)),
	}
	for _, msg := range messages[1:] {
		lines = append(lines, m.styles.muted.Render(wrapText(msg, width, 2)))
	}
	return strings.Join(lines, "\n")
}

func (m *App) renderOrganization(org *graph.Organization) string {
	line := "Issues from " + m.styles.title.Render(org.Name)
	if org.URL != "" {
		line += " " + m.styles.link.Render(org.URL)
	}
	return fitLine(line, m.contentWidth())
}

func (m *App) renderRepository(repo *graph.Repository) string {
	line := "In repository " + m.styles.title.Render(repo.Name)
	if repo.URL != "" {
		line += " " + m.styles.link.Render(repo.URL)
	}
	glyph, label := "☆", "not starred"
	if repo.ViewerHasStarred {
		glyph, label = "★", "starred"
	}
	star := m.styles.star.Render(fmt.Sprintf("%s %d", glyph, repo.Stargazers.TotalCount))
	star += m.styles.muted.Render(" " + label)
	if m.starInFlight {
		star += m.styles.muted.Render(" …")
	}
	return fitLine(line, m.contentWidth()) + "\n" + star
}

func (m *App) renderIssueList(repo *graph.Repository) string {
	edges := repo.Issues.Edges
	if len(edges) == 0 {
		return m.styles.muted.Render("No open issues.")
	}
	start, end := m.visibleRange(len(edges))
	width := m.contentWidth()
	lines := make([]string, 0, end-start+1)
	for i := start; i < end; i++ {
		lines = append(lines, m.renderIssueRow(edges[i].Node, i == m.cursor, width))
	}
	switch {
	case repo.Issues.PageInfo.HasNextPage && m.Loading():
		lines = append(lines, m.styles.muted.Render(m.spinner.View()+" loading more issues"))
	case repo.Issues.PageInfo.HasNextPage:
		lines = append(lines, m.styles.muted.Render(fmt.Sprintf("%d of %d loaded · m for more", len(edges), repo.Issues.TotalCount)))
	default:
		lines = append(lines, m.styles.muted.Render("All open issues loaded."))
	}
	return strings.Join(lines, "\n")
}

func (m *App) renderIssueRow(issue *graph.Issue, selected bool, width int) string {
	if issue == nil {
		return m.styles.muted.Render("  (missing issue)")
	}
	marker := "  "
	if selected {
		marker = "› "
	}
	number := fmt.Sprintf("#%d", issue.Number)
	rest := " " + issue.Title
	if tally := formatTally(issue.ReactionTally()); tally != "" {
		rest += "  " + tally
	}
	if m.reactionInFlight[issue.ID] {
		rest += " …"
	}
	if selected {
		return m.styles.selected.Render(padRight(fitLine(marker+number+rest, width), width))
	}
	return fitLine(marker+m.styles.number.Render(number)+m.styles.text.Render(rest), width)
}

// visibleRange returns the window of issue rows that fits the terminal and
// keeps the cursor on screen.
func (m *App) visibleRange(total int) (int, int) {
	if m.height == 0 {
		return 0, total
	}
	rows := clampDimension(m.height-m.chromeHeight()-3, 1, total)
	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	end := start + rows
	if end > total {
		end = total
	}
	return start, end
}

func (m *App) renderFooter() string {
	var lines []string
	if m.toast != "" {
		lines = append(lines, m.styles.toast.Render(m.toast))
	}
	status := fmt.Sprintf("Reaction: %s %s", m.reaction.Emoji(), m.reaction)
	lines = append(lines, m.styles.muted.Render(status))
	if m.searching {
		lines = append(lines, m.help.View(searchKeys{m.keys}))
	} else {
		lines = append(lines, m.help.View(m.keys))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *App) contentWidth() int {
	if m.width <= 0 {
		return 0
	}
	return m.width - 2
}
