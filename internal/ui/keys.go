package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keyboard shortcuts of the issue browser.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Home   key.Binding
	End    key.Binding
	PageUp key.Binding
	PageDn key.Binding

	Search   key.Binding
	LoadMore key.Binding
	Star     key.Binding
	React    key.Binding
	Cycle    key.Binding
	Copy     key.Binding
	Detail   key.Binding
	Theme    key.Binding
	Help     key.Binding
	Quit     key.Binding

	// Search input
	Submit key.Binding
	Cancel key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "top"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "bottom"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+b"),
			key.WithHelp("PgUp", "scroll detail up"),
		),
		PageDn: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+f"),
			key.WithHelp("PgDn", "scroll detail down"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "repository"),
		),
		LoadMore: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "more issues"),
		),
		Star: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "star/unstar"),
		),
		React: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "react"),
		),
		Cycle: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "next reaction"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy url"),
		),
		Detail: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("⏎", "detail"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("⏎", "search"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.LoadMore, k.Star, k.React, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Home, k.End},
		{k.Search, k.LoadMore, k.Detail, k.PageUp, k.PageDn},
		{k.Star, k.React, k.Cycle, k.Copy},
		{k.Theme, k.Help, k.Quit},
	}
}

// searchKeys is the help shown while the repository input is focused.
type searchKeys struct {
	KeyMap
}

func (k searchKeys) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Submit,
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "complete recent")),
		k.Cancel,
	}
}

func (k searchKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
