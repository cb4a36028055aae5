package ui

import (
	"context"
	"time"

	"issuedeck/internal/domain"
	"issuedeck/internal/github"
	"issuedeck/internal/graph"

	tea "github.com/charmbracelet/bubbletea"
)

const toastDuration = 3 * time.Second

// queryCompleteMsg carries the payload of an issues query.
type queryCompleteMsg struct {
	path         string
	continuation bool
	resp         graph.QueryResponse
	err          error
}

// starCompleteMsg carries the result of an add/remove star mutation.
type starCompleteMsg struct {
	repositoryID string
	direction    graph.Direction
	result       graph.StarResult
	err          error
}

// reactionCompleteMsg carries the result of an add reaction mutation.
type reactionCompleteMsg struct {
	subjectID string
	result    graph.ReactionResult
	err       error
}

type historyLoadedMsg struct {
	paths []string
	err   error
}

type historyRecordedMsg struct {
	err error
}

type toastExpiredMsg struct {
	id int
}

func requestContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (m *App) fetchIssuesCmd(path github.RepositoryPath, after string, continuation bool) tea.Cmd {
	client, timeout := m.client, m.timeout
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		resp, err := client.FetchIssues(ctx, path, after)
		return queryCompleteMsg{path: path.String(), continuation: continuation, resp: resp, err: err}
	}
}

func (m *App) starCmd(repositoryID string, direction graph.Direction) tea.Cmd {
	client, timeout := m.client, m.timeout
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		var (
			result graph.StarResult
			err    error
		)
		if direction == graph.Star {
			result, err = client.AddStar(ctx, repositoryID)
		} else {
			result, err = client.RemoveStar(ctx, repositoryID)
		}
		return starCompleteMsg{repositoryID: repositoryID, direction: direction, result: result, err: err}
	}
}

func (m *App) reactionCmd(subjectID string, content domain.ReactionContent) tea.Cmd {
	client, timeout := m.client, m.timeout
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		result, err := client.AddReaction(ctx, subjectID, content)
		return reactionCompleteMsg{subjectID: subjectID, result: result, err: err}
	}
}

func (m *App) loadHistoryCmd() tea.Cmd {
	if m.history == nil {
		return nil
	}
	store, limit, timeout := m.history, m.historyLimit, m.timeout
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		paths, err := store.Paths(ctx, limit)
		return historyLoadedMsg{paths: paths, err: err}
	}
}

func (m *App) recordHistoryCmd(path string) tea.Cmd {
	if m.history == nil {
		return nil
	}
	store, limit, timeout := m.history, m.historyLimit, m.timeout
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		if err := store.Record(ctx, path); err != nil {
			return historyRecordedMsg{err: err}
		}
		return historyRecordedMsg{err: store.Prune(ctx, limit)}
	}
}

func scheduleToastExpiry(id int) tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}
