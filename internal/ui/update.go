package ui

import (
	"issuedeck/internal/github"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Search):
		return m.beginSearch()
	case key.Matches(msg, m.keys.LoadMore):
		return m.startFetch(true)
	case key.Matches(msg, m.keys.Star):
		return m.toggleStar()
	case key.Matches(msg, m.keys.React):
		return m.addReaction()
	case key.Matches(msg, m.keys.Cycle):
		m.reaction = m.reaction.Next()
		return nil
	case key.Matches(msg, m.keys.Copy):
		return m.copySelectedURL()
	case key.Matches(msg, m.keys.Theme):
		return m.cycleTheme()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resizeDetail()
		return nil
	case key.Matches(msg, m.keys.Detail):
		m.showDetail = !m.showDetail
		m.detailID = ""
		m.refreshDetail()
		return nil
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(m.cursor - 1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(m.cursor + 1)
	case key.Matches(msg, m.keys.Home):
		m.moveCursor(0)
	case key.Matches(msg, m.keys.End):
		m.moveCursor(len(m.issueEdges()) - 1)
	case key.Matches(msg, m.keys.PageUp, m.keys.PageDn):
		if m.showDetail {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return cmd
		}
	}
	return nil
}

func (m *App) moveCursor(pos int) {
	m.cursor = pos
	m.clampCursor()
	m.refreshDetail()
}

// beginSearch focuses the repository input prefilled with the current path.
func (m *App) beginSearch() tea.Cmd {
	m.searching = true
	m.inputErr = ""
	m.input.SetValue(m.path.String())
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *App) endSearch() {
	m.searching = false
	m.inputErr = ""
	m.input.Blur()
}

func (m *App) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submitSearch()
	case key.Matches(msg, m.keys.Cancel):
		if m.path.IsZero() {
			return nil
		}
		m.endSearch()
		return nil
	case msg.Type == tea.KeyCtrlC:
		return tea.Quit
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.inputErr = ""
	return cmd
}

// submitSearch switches to the typed repository. Re-submitting the current
// path reloads it from the first page.
func (m *App) submitSearch() tea.Cmd {
	path, err := github.ParseRepositoryPath(m.input.Value())
	if err != nil {
		m.inputErr = err.Error()
		return nil
	}
	m.endSearch()
	if path != m.path {
		log.Event("path.change", "from", m.path.String(), "to", path.String())
		m.path = path
	}
	return m.startFetch(false)
}
