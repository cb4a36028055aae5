package ui

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"issuedeck/internal/github"
	"issuedeck/internal/graph"

	tea "github.com/charmbracelet/bubbletea"
)

var testPath = github.RepositoryPath{Organization: "acme", Repository: "widgets"}

func testIssue(id string, number int) *graph.Issue {
	return &graph.Issue{
		ID:     id,
		Number: number,
		Title:  "Issue " + id,
		URL:    fmt.Sprintf("https://github.com/acme/widgets/issues/%d", number),
		Body:   "Body of " + id,
	}
}

// pageResponse builds a query response for repository repoID holding the
// given issue ids.
func pageResponse(repoID string, stars int, cursor string, hasNext bool, ids ...string) graph.QueryResponse {
	edges := make([]graph.IssueEdge, len(ids))
	for i, id := range ids {
		edges[i] = graph.IssueEdge{Cursor: "c-" + id, Node: testIssue(id, i+1)}
	}
	return graph.QueryResponse{
		Organization: &graph.Organization{
			Name: "Acme",
			URL:  "https://github.com/acme",
			Repository: &graph.Repository{
				ID:         repoID,
				Name:       "widgets",
				URL:        "https://github.com/acme/widgets",
				Stargazers: graph.Stargazers{TotalCount: stars},
				Issues: graph.IssueConnection{
					Edges:      edges,
					TotalCount: 10,
					PageInfo:   graph.PageInfo{EndCursor: cursor, HasNextPage: hasNext},
				},
			},
		},
	}
}

// pagedClient serves page one for an empty cursor and page two afterwards.
func pagedClient() *github.MockClient {
	client := github.NewMockClient()
	client.FetchIssuesFn = func(_ context.Context, _ github.RepositoryPath, after string) (graph.QueryResponse, error) {
		if after == "" {
			return pageResponse("R_widgets", 41, "cursor-2", true, "I_1", "I_2"), nil
		}
		return pageResponse("R_widgets", 41, "cursor-4", false, "I_3", "I_4"), nil
	}
	return client
}

type fakeHistory struct {
	mu       sync.Mutex
	recorded []string
	pruned   []int
}

func (f *fakeHistory) Record(_ context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recorded = append(f.recorded, path)
	return nil
}

func (f *fakeHistory) Prune(_ context.Context, keep int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pruned = append(f.pruned, keep)
	if len(f.recorded) > keep {
		f.recorded = f.recorded[len(f.recorded)-keep:]
	}
	return nil
}

func (f *fakeHistory) Paths(_ context.Context, limit int) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for i := len(f.recorded) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.recorded[i])
	}
	return out, nil
}

func newTestApp(t *testing.T, client github.Client) *App {
	t.Helper()
	app, err := NewApp(Config{
		Client:       client,
		Repository:   testPath,
		OutputFormat: "plain",
	})
	if err != nil {
		t.Fatalf("NewApp returned error: %v", err)
	}
	return app
}

// loadedApp returns an app with the first page of pagedClient applied.
func loadedApp(t *testing.T) (*App, *github.MockClient) {
	t.Helper()
	client := pagedClient()
	app := newTestApp(t, client)
	drive(t, app, app.Init())
	if app.snap.Repository() == nil {
		t.Fatal("expected first page to be loaded")
	}
	return app, client
}

// collectMsgs runs cmd synchronously, flattening batches.
func collectMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collectMsgs(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// drive feeds the results of cmd back into the app. Follow-up commands are
// only run for query and history results; the rest schedule timers.
func drive(t *testing.T, m *App, cmd tea.Cmd) {
	t.Helper()
	for _, msg := range collectMsgs(cmd) {
		switch msg.(type) {
		case queryCompleteMsg, historyRecordedMsg, historyLoadedMsg:
			_, next := m.Update(msg)
			drive(t, m, next)
		case starCompleteMsg, reactionCompleteMsg:
			m.Update(msg)
		}
	}
}

func press(m *App, keys string) tea.Cmd {
	var msg tea.KeyMsg
	switch keys {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)}
	}
	_, cmd := m.Update(msg)
	return cmd
}

func issueIDs(s graph.Snapshot) []string {
	repo := s.Repository()
	if repo == nil {
		return nil
	}
	ids := make([]string, len(repo.Issues.Edges))
	for i, e := range repo.Issues.Edges {
		ids[i] = e.Node.ID
	}
	return ids
}
