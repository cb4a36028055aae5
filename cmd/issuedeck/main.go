package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"issuedeck/internal/config"
	"issuedeck/internal/debug"
	"issuedeck/internal/domain"
	"issuedeck/internal/github"
	"issuedeck/internal/history"
	"issuedeck/internal/ui"
	"issuedeck/internal/ui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
)

const historyOpenTimeout = 3 * time.Second

func main() {
	if err := config.Initialize(); err != nil {
		fmt.Printf("Error initializing config: %v\n", err)
		os.Exit(1)
	}

	versionFlag := flag.Bool("version", false, "Print version information and exit")
	debugFlag := flag.Bool("debug", false, "Write a debug log to ~/.issuedeck/debug.log")
	repoFlag := flag.String("repo", config.GetString(config.KeyRepositoryPath), "Repository to open (organization/repository)")
	pageSizeFlag := flag.Int("page-size", config.GetInt(config.KeyIssuesPageSize), "Issues fetched per page (1-100)")
	outputFormatFlag := flag.String("output-format", config.GetString(config.KeyOutputFormat), "Detail pane markdown style (rich, dark, light, plain)")
	flag.Parse()

	if *versionFlag {
		printVersion(os.Stdout)
		os.Exit(0)
	}

	visited := map[string]struct{}{}
	flag.CommandLine.Visit(func(f *flag.Flag) {
		visited[f.Name] = struct{}{}
	})
	overrides := flagOverrides(runtimeFlags{
		repo:         repoFlag,
		pageSize:     pageSizeFlag,
		outputFormat: outputFormatFlag,
	}, visited)
	if err := config.ApplyOverrides(overrides); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	debugPath := config.GetString(config.KeyDebugLogPath)
	if err := debug.Init(debug.Options{Enable: *debugFlag, Path: debugPath}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: debug log disabled: %v\n", err)
	} else if *debugFlag {
		fmt.Fprintf(os.Stderr, "Debug log: %s\n", debugLogPath(debugPath))
	}
	defer debug.Close()

	appCfg, closeHistory, err := buildAppConfig(settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeHistory()

	session, err := runProgram(appCfg, ui.NewApp, func(app *ui.App) programRunner {
		return tea.NewProgram(app, tea.WithAltScreen())
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	printExitSummary(os.Stdout, ExitSummary{Version: Version, Session: session})
}

// buildAppConfig turns settings into a UI config. The returned func closes
// the history store and is always non-nil.
func buildAppConfig(settings config.Settings) (ui.Config, func(), error) {
	noop := func() {}

	var repo github.RepositoryPath
	if raw := strings.TrimSpace(settings.Repository.Path); raw != "" {
		parsed, err := github.ParseRepositoryPath(raw)
		if err != nil {
			return ui.Config{}, noop, err
		}
		repo = parsed
	}

	reaction, err := domain.ParseReactionContent(settings.Reaction.Content)
	if err != nil {
		return ui.Config{}, noop, fmt.Errorf("%s: %w", config.KeyReactionContent, err)
	}

	if name := strings.TrimSpace(settings.Theme); name != "" && !theme.SetTheme(name) {
		debug.Logf("unknown theme %q, using %s", name, theme.CurrentName())
	}

	client := github.NewClient(
		github.WithEndpoint(settings.GitHub.Endpoint),
		github.WithToken(settings.GitHub.Token),
		github.WithPageSize(settings.Issues.PageSize),
		github.WithReactionCount(settings.Reactions.PageSize),
	)
	if strings.TrimSpace(settings.GitHub.Token) == "" {
		fmt.Fprintln(os.Stderr, "Warning: no GitHub token configured; set GITHUB_TOKEN or github.token")
	}

	cfg := ui.Config{
		Client:         client,
		Repository:     repo,
		Reaction:       reaction,
		RequestTimeout: settings.RequestTimeout(),
		OutputFormat:   resolveOutputFormat(settings.Output.Format, termenv.HasDarkBackground),
		Version:        Version,
		HistoryLimit:   settings.History.Limit,
		SaveTheme:      config.SaveTheme,
	}

	closeHistory := noop
	if path := historyPath(settings); path != "" {
		ctx, cancel := context.WithTimeout(context.Background(), historyOpenTimeout)
		store, err := history.Open(ctx, path)
		cancel()
		if err != nil {
			debug.Logf("history disabled: %v", err)
		} else {
			cfg.History = store
			closeHistory = func() { _ = store.Close() }
		}
	}
	return cfg, closeHistory, nil
}

// historyPath returns the configured history database, defaulting to
// ~/.issuedeck/history.db.
// debugLogPath reports where debug output is written.
func debugLogPath(configured string) string {
	if p := strings.TrimSpace(configured); p != "" {
		return p
	}
	p, err := debug.GetLogPath()
	if err != nil {
		return "(unknown)"
	}
	return p
}

func historyPath(settings config.Settings) string {
	if path := strings.TrimSpace(settings.History.Path); path != "" {
		return path
	}
	dir, err := config.Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, history.FileName)
}

// resolveOutputFormat maps "rich" to the glamour style matching the
// terminal background.
func resolveOutputFormat(format string, darkBackground func() bool) string {
	f := strings.ToLower(strings.TrimSpace(format))
	if f != "" && f != "rich" {
		return f
	}
	if darkBackground != nil && !darkBackground() {
		return "light"
	}
	return "dark"
}

type programRunner interface {
	Run() (tea.Model, error)
}

type programFactory func(*ui.App) programRunner

func runProgram(cfg ui.Config, builder func(ui.Config) (*ui.App, error), factory programFactory) (ui.Session, error) {
	app, err := builder(cfg)
	if err != nil {
		return ui.Session{}, fmt.Errorf("initialize UI: %w", err)
	}
	if factory == nil {
		return ui.Session{}, fmt.Errorf("program factory is nil")
	}
	prog := factory(app)
	if prog == nil {
		return ui.Session{}, fmt.Errorf("program is nil")
	}
	if _, err := prog.Run(); err != nil {
		return ui.Session{}, fmt.Errorf("run UI: %w", err)
	}
	return app.Session(), nil
}

type runtimeFlags struct {
	repo         *string
	pageSize     *int
	outputFormat *string
}

// flagOverrides returns config overrides for flags given on the command line.
func flagOverrides(flags runtimeFlags, visited map[string]struct{}) map[string]any {
	overrides := map[string]any{}
	if flagWasExplicitlySet("repo", visited) && flags.repo != nil {
		overrides[config.KeyRepositoryPath] = strings.TrimSpace(*flags.repo)
	}
	if flagWasExplicitlySet("page-size", visited) && flags.pageSize != nil {
		overrides[config.KeyIssuesPageSize] = *flags.pageSize
	}
	if flagWasExplicitlySet("output-format", visited) && flags.outputFormat != nil {
		overrides[config.KeyOutputFormat] = strings.TrimSpace(*flags.outputFormat)
	}
	return overrides
}

func flagWasExplicitlySet(name string, visited map[string]struct{}) bool {
	_, ok := visited[name]
	return ok
}
