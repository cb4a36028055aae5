// Package theme holds the color palettes used by the issue browser.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme is a small semantic palette. Every color adapts to light and dark
// terminals.
type Theme struct {
	Primary   lipgloss.AdaptiveColor // header background, focused borders
	Secondary lipgloss.AdaptiveColor // links, field labels
	Accent    lipgloss.AdaptiveColor // issue numbers, star glyph
	Error     lipgloss.AdaptiveColor
	Success   lipgloss.AdaptiveColor
	Text      lipgloss.AdaptiveColor
	TextMuted lipgloss.AdaptiveColor
	Selection lipgloss.AdaptiveColor // selected row background
	Border    lipgloss.AdaptiveColor
}

func adaptive(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

// Tokyo Night
// https://github.com/enkia/tokyo-night-vscode-theme
var tokyonight = Theme{
	Primary:   adaptive("#2e7de9", "#7aa2f7"),
	Secondary: adaptive("#007197", "#7dcfff"),
	Accent:    adaptive("#8c6c3e", "#e0af68"),
	Error:     adaptive("#f52a65", "#f7768e"),
	Success:   adaptive("#587539", "#9ece6a"),
	Text:      adaptive("#3760bf", "#c0caf5"),
	TextMuted: adaptive("#848cb5", "#565f89"),
	Selection: adaptive("#b7c1e3", "#283457"),
	Border:    adaptive("#a8aecb", "#3b4261"),
}

// Dracula
// https://draculatheme.com/contribute
var dracula = Theme{
	Primary:   adaptive("#7e57c2", "#bd93f9"),
	Secondary: adaptive("#0097a7", "#8be9fd"),
	Accent:    adaptive("#f9a825", "#f1fa8c"),
	Error:     adaptive("#d32f2f", "#ff5555"),
	Success:   adaptive("#388e3c", "#50fa7b"),
	Text:      adaptive("#282a36", "#f8f8f2"),
	TextMuted: adaptive("#6272a4", "#6272a4"),
	Selection: adaptive("#e0e0e0", "#44475a"),
	Border:    adaptive("#bdbdbd", "#44475a"),
}

// Nord
// https://www.nordtheme.com/docs/colors-and-palettes
var nord = Theme{
	Primary:   adaptive("#5e81ac", "#88c0d0"),
	Secondary: adaptive("#5e81ac", "#81a1c1"),
	Accent:    adaptive("#d08770", "#ebcb8b"),
	Error:     adaptive("#bf616a", "#bf616a"),
	Success:   adaptive("#a3be8c", "#a3be8c"),
	Text:      adaptive("#2e3440", "#eceff4"),
	TextMuted: adaptive("#4c566a", "#616e88"),
	Selection: adaptive("#d8dee9", "#434c5e"),
	Border:    adaptive("#d8dee9", "#4c566a"),
}

// Gruvbox
// https://github.com/morhetz/gruvbox
var gruvbox = Theme{
	Primary:   adaptive("#076678", "#83a598"),
	Secondary: adaptive("#427b58", "#8ec07c"),
	Accent:    adaptive("#b57614", "#fabd2f"),
	Error:     adaptive("#9d0006", "#fb4934"),
	Success:   adaptive("#79740e", "#b8bb26"),
	Text:      adaptive("#3c3836", "#ebdbb2"),
	TextMuted: adaptive("#7c6f64", "#928374"),
	Selection: adaptive("#ebdbb2", "#3c3836"),
	Border:    adaptive("#d5c4a1", "#504945"),
}

func init() {
	RegisterTheme("tokyonight", tokyonight)
	RegisterTheme("dracula", dracula)
	RegisterTheme("nord", nord)
	RegisterTheme("gruvbox", gruvbox)
}
