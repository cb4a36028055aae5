// Package ui implements the terminal issue browser. App owns the cached
// graph snapshot; every completed round trip replaces it through one of the
// graph reconcilers.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"issuedeck/internal/debug"
	"issuedeck/internal/domain"
	"issuedeck/internal/github"
	"issuedeck/internal/graph"
	"issuedeck/internal/ui/theme"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultTimeout      = 10 * time.Second
	defaultHistoryLimit = 10
	minDetailHeight     = 5
)

var log = debug.For("ui")

// writeClipboard is swapped out by tests.
var writeClipboard = clipboard.WriteAll

// History is the subset of the recent-path store the browser needs.
type History interface {
	Record(ctx context.Context, path string) error
	Paths(ctx context.Context, limit int) ([]string, error)
	Prune(ctx context.Context, keep int) error
}

// Config configures the UI application.
type Config struct {
	Client         github.Client
	Repository     github.RepositoryPath
	Reaction       domain.ReactionContent
	RequestTimeout time.Duration
	OutputFormat   string
	Version        string // shown in the header

	History      History
	HistoryLimit int

	// SaveTheme persists the chosen theme. Nil disables persistence.
	SaveTheme func(name string) error
}

// App implements the Bubble Tea model for the issue browser.
type App struct {
	snap   graph.Snapshot
	path   github.RepositoryPath
	client github.Client

	// snapPath is the path the snapshot's organization was fetched for. It
	// lags path after a switch that returned only errors.
	snapPath string

	// In-flight bookkeeping. Results for a path that is no longer current
	// are discarded when they arrive.
	queryInFlight    map[string]bool
	starInFlight     bool
	reactionInFlight map[string]bool

	fetchErr error

	cursor     int
	showDetail bool
	detailID   string
	reaction   domain.ReactionContent

	searching bool
	inputErr  string
	input     textinput.Model
	recent    []string
	spinner   spinner.Model
	viewport  viewport.Model
	help      help.Model
	keys      KeyMap

	toast   string
	toastID int

	reactionsAdded int
	starToggles    int
	started        time.Time

	width        int
	height       int
	timeout      time.Duration
	outputFormat string
	version      string
	styles       styles

	history      History
	historyLimit int
	saveTheme    func(string) error
}

// NewApp creates a browser for cfg.Repository. Nothing is fetched until Init.
func NewApp(cfg Config) (*App, error) {
	if cfg.Client == nil {
		return nil, fmt.Errorf("ui: github client is required")
	}
	reaction := cfg.Reaction
	if reaction == "" {
		reaction = domain.ReactionHooray
	}
	if err := reaction.Validate(); err != nil {
		return nil, err
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	limit := cfg.HistoryLimit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	ti := textinput.New()
	ti.Placeholder = "organization/repository"
	ti.Prompt = "Repository: "
	ti.CharLimit = 200
	ti.ShowSuggestions = true

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	app := &App{
		path:             cfg.Repository,
		client:           cfg.Client,
		queryInFlight:    make(map[string]bool),
		reactionInFlight: make(map[string]bool),
		reaction:         reaction,
		input:            ti,
		spinner:          sp,
		viewport:         viewport.New(0, 0),
		help:             help.New(),
		keys:             DefaultKeyMap(),
		timeout:          timeout,
		outputFormat:     cfg.OutputFormat,
		version:          cfg.Version,
		history:          cfg.History,
		historyLimit:     limit,
		saveTheme:        cfg.SaveTheme,
		started:          time.Now(),
	}
	app.styles = newStyles(theme.Current())
	if app.path.IsZero() {
		app.beginSearch()
	}
	return app, nil
}

// Init loads recent paths and issues the first query.
func (m *App) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadHistoryCmd()}
	if !m.path.IsZero() {
		cmds = append(cmds, m.startFetch(false))
	} else {
		cmds = append(cmds, textinput.Blink)
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = clampDimension(msg.Width-len(m.input.Prompt)-2, 10, msg.Width)
		m.resizeDetail()
		return m, nil
	case queryCompleteMsg:
		return m, m.handleQueryComplete(msg)
	case starCompleteMsg:
		return m, m.handleStarComplete(msg)
	case reactionCompleteMsg:
		return m, m.handleReactionComplete(msg)
	case historyLoadedMsg:
		if msg.err != nil {
			log.Printf("load history: %v", msg.err)
			return m, nil
		}
		m.recent = msg.paths
		m.input.SetSuggestions(msg.paths)
		return m, nil
	case historyRecordedMsg:
		if msg.err != nil {
			log.Printf("record history: %v", msg.err)
			return m, nil
		}
		return m, m.loadHistoryCmd()
	case toastExpiredMsg:
		if msg.id == m.toastID {
			m.toast = ""
		}
		return m, nil
	case spinner.TickMsg:
		if !m.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if m.searching {
			return m, m.handleSearchKey(msg)
		}
		return m, m.handleKey(msg)
	}
	if m.searching {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// Snapshot returns the current cached graph.
func (m *App) Snapshot() graph.Snapshot {
	return m.snap
}

// Loading reports whether a query for the current path is in flight.
func (m *App) Loading() bool {
	return m.queryInFlight[m.path.String()]
}

// Session summarises what happened while the browser was open.
type Session struct {
	Repository     string
	Stats          graph.Stats
	ReactionsAdded int
	StarToggles    int
	StartTime      time.Time
}

// Session returns counters for the exit summary.
func (m *App) Session() Session {
	return Session{
		Repository:     m.path.String(),
		Stats:          m.snap.Stats(),
		ReactionsAdded: m.reactionsAdded,
		StarToggles:    m.starToggles,
		StartTime:      m.started,
	}
}

// startFetch issues a query for the current path. Continuations use the
// cached end cursor. Returns nil when a query for the path is already in
// flight or there is nothing more to load.
func (m *App) startFetch(continuation bool) tea.Cmd {
	key := m.path.String()
	if m.queryInFlight[key] {
		log.Event("query.skip", "path", key, "reason", "in flight")
		return nil
	}
	after := ""
	if continuation && m.snapPath != key {
		log.Event("query.restart", "path", key, "loaded", m.snapPath)
		continuation = false
	}
	if continuation {
		cursor, ok := m.snap.NextCursor()
		if !ok {
			return nil
		}
		after = cursor
	}
	m.queryInFlight[key] = true
	m.fetchErr = nil
	log.Event("query.start", "path", key, "after", after, "continuation", continuation)
	return tea.Batch(m.fetchIssuesCmd(m.path, after, continuation), m.spinner.Tick)
}

func (m *App) handleQueryComplete(msg queryCompleteMsg) tea.Cmd {
	delete(m.queryInFlight, msg.path)
	if msg.path != m.path.String() {
		log.Event("query.stale", "path", msg.path, "current", m.path.String())
		return nil
	}
	if msg.err != nil {
		log.Event("query.failed", "path", msg.path, "err", msg.err)
		m.fetchErr = msg.err
		return nil
	}

	m.snap = graph.MergeIssuePage(m.snap, msg.resp, msg.continuation)
	if msg.resp.Organization != nil {
		m.snapPath = msg.path
	}
	stats := m.snap.Stats()
	log.Event("query.complete",
		"path", msg.path,
		"continuation", msg.continuation,
		"issues", stats.IssuesLoaded,
		"errors", len(m.snap.Errors),
	)
	if !msg.continuation {
		m.cursor = 0
		m.showDetail = false
	}
	m.clampCursor()
	m.refreshDetail()
	if msg.continuation || m.snap.HasErrors() || m.snap.Repository() == nil {
		return nil
	}
	return m.recordHistoryCmd(msg.path)
}

func (m *App) toggleStar() tea.Cmd {
	repo := m.snap.Repository()
	if repo == nil {
		return m.showToast("Nothing loaded to star")
	}
	if m.stale() {
		return m.showToast(notLoadedToast(m.path))
	}
	if m.starInFlight {
		return nil
	}
	m.starInFlight = true
	direction := graph.Toggle(repo.ViewerHasStarred)
	log.Event("star.start", "repository", repo.ID, "direction", direction)
	return m.starCmd(repo.ID, direction)
}

func (m *App) handleStarComplete(msg starCompleteMsg) tea.Cmd {
	m.starInFlight = false
	if msg.err != nil {
		log.Event("star.failed", "repository", msg.repositoryID, "err", msg.err)
		return m.showToast(fmt.Sprintf("%s failed: %v", msg.direction, msg.err))
	}
	repo := m.snap.Repository()
	if repo == nil || repo.ID != msg.repositoryID {
		log.Event("star.stale", "repository", msg.repositoryID)
		return nil
	}
	next, err := graph.ApplyStarToggle(m.snap, msg.result, msg.direction)
	if err != nil {
		return m.showToast(err.Error())
	}
	m.snap = next
	m.starToggles++
	return nil
}

func (m *App) addReaction() tea.Cmd {
	issue := m.selectedIssue()
	if issue == nil {
		return m.showToast("No issue selected")
	}
	if m.stale() {
		return m.showToast(notLoadedToast(m.path))
	}
	if m.reactionInFlight[issue.ID] {
		return nil
	}
	m.reactionInFlight[issue.ID] = true
	log.Event("reaction.start", "subject", issue.ID, "content", m.reaction)
	return m.reactionCmd(issue.ID, m.reaction)
}

func (m *App) handleReactionComplete(msg reactionCompleteMsg) tea.Cmd {
	delete(m.reactionInFlight, msg.subjectID)
	if msg.err != nil {
		log.Event("reaction.failed", "subject", msg.subjectID, "err", msg.err)
		return m.showToast(fmt.Sprintf("Reaction failed: %v", msg.err))
	}
	if _, ok := m.snap.FindIssue(msg.result.SubjectID); !ok {
		log.Event("reaction.unmatched", "subject", msg.result.SubjectID)
		return nil
	}
	next, err := graph.ApplyReactionAdd(m.snap, msg.result)
	if err != nil {
		return m.showToast(err.Error())
	}
	m.snap = next
	m.reactionsAdded++
	m.refreshDetail()
	return nil
}

func (m *App) copySelectedURL() tea.Cmd {
	issue := m.selectedIssue()
	if issue == nil || issue.URL == "" {
		return nil
	}
	if err := writeClipboard(issue.URL); err != nil {
		return m.showToast(fmt.Sprintf("Copy failed: %v", err))
	}
	return m.showToast(fmt.Sprintf("Copied %s", issue.URL))
}

func (m *App) cycleTheme() tea.Cmd {
	name := theme.CycleTheme()
	m.styles = newStyles(theme.Current())
	if m.saveTheme != nil {
		if err := m.saveTheme(name); err != nil {
			log.Printf("save theme: %v", err)
		}
	}
	return m.showToast(fmt.Sprintf("Theme: %s", name))
}

// stale reports whether the snapshot on screen belongs to another path.
func (m *App) stale() bool {
	return m.snapPath != m.path.String()
}

func notLoadedToast(p github.RepositoryPath) string {
	return fmt.Sprintf("%s is not loaded", repositoryLabel(p))
}

func (m *App) showToast(text string) tea.Cmd {
	m.toastID++
	m.toast = text
	return scheduleToastExpiry(m.toastID)
}

func (m *App) issueEdges() []graph.IssueEdge {
	repo := m.snap.Repository()
	if repo == nil {
		return nil
	}
	return repo.Issues.Edges
}

func (m *App) selectedIssue() *graph.Issue {
	edges := m.issueEdges()
	if m.cursor < 0 || m.cursor >= len(edges) {
		return nil
	}
	return edges[m.cursor].Node
}

func (m *App) clampCursor() {
	n := len(m.issueEdges())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func clampDimension(value, minValue, maxValue int) int {
	if maxValue < minValue {
		maxValue = minValue
	}
	if value < minValue {
		return minValue
	}
	if value > maxValue {
		return maxValue
	}
	return value
}

func repositoryLabel(p github.RepositoryPath) string {
	if p.IsZero() {
		return "(none)"
	}
	return strings.TrimSpace(p.String())
}
