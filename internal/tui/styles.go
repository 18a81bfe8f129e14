// Package tui is the terminal front-end of the portfolio. It drives the same
// viewstate model as the web shell.
package tui

import (
	"github.com/adekomen/portfolio/internal/viewstate"

	"github.com/charmbracelet/lipgloss"
)

type palette struct {
	Fg      string
	Muted   string
	Accent  string
	Success string
	Danger  string
	Border  string
	Tag     string
}

var palettes = map[viewstate.Theme]palette{
	viewstate.ThemeLight: {
		Fg:      "#1f2937",
		Muted:   "#6b7280",
		Accent:  "#2563eb",
		Success: "#16a34a",
		Danger:  "#dc2626",
		Border:  "#d1d5db",
		Tag:     "#dbeafe",
	},
	viewstate.ThemeDark: {
		Fg:      "#f3f4f6",
		Muted:   "#9ca3af",
		Accent:  "#60a5fa",
		Success: "#4ade80",
		Danger:  "#f87171",
		Border:  "#374151",
		Tag:     "#1e3a8a",
	},
}

// Styles contains every style the views use for one theme.
type Styles struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Text          lipgloss.Style
	Muted         lipgloss.Style
	Success       lipgloss.Style
	Error         lipgloss.Style
	Sidebar       lipgloss.Style
	SidebarItem   lipgloss.Style
	SidebarActive lipgloss.Style
	Card          lipgloss.Style
	CardSelected  lipgloss.Style
	Tag           lipgloss.Style
	Modal         lipgloss.Style
	Input         lipgloss.Style
	InputFocused  lipgloss.Style
}

// StylesFor returns the styles for theme.
func StylesFor(theme viewstate.Theme) Styles {
	p, ok := palettes[theme]
	if !ok {
		p = palettes[viewstate.ThemeLight]
	}
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.Accent)),
		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.Fg)),
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Fg)),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Muted)),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Success)),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Danger)),
		Sidebar: lipgloss.NewStyle().
			Width(sidebarWidth).
			Padding(1, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(lipgloss.Color(p.Border)),
		SidebarItem: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Muted)),
		SidebarActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.Accent)),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.Border)).
			Padding(0, 1),
		CardSelected: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.Accent)).
			Padding(0, 1),
		Tag: lipgloss.NewStyle().
			Background(lipgloss.Color(p.Tag)).
			Foreground(lipgloss.Color(p.Fg)).
			Padding(0, 1),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color(p.Accent)).
			Padding(1, 2),
		Input: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(p.Border)),
		InputFocused: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(p.Accent)),
	}
}
