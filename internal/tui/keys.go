package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Quit        key.Binding
	Theme       key.Binding
	Sidebar     key.Binding
	NextSection key.Binding
	PrevSection key.Binding
	Up          key.Binding
	Down        key.Binding
	PrevPage    key.Binding
	NextPage    key.Binding
	Filter      key.Binding
	Open        key.Binding
	Close       key.Binding
	Edit        key.Binding
	NextField   key.Binding
	Submit      key.Binding
	OpenCV      key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quitter")),
		Theme:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "thème")),
		Sidebar:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "menu")),
		NextSection: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "section suivante")),
		PrevSection: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "section précédente")),
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "haut")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "bas")),
		PrevPage:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "précédent")),
		NextPage:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "suivant")),
		Filter:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filtre")),
		Open:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "détails")),
		Close:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "fermer")),
		Edit:        key.NewBinding(key.WithKeys("enter", "i"), key.WithHelp("i", "écrire")),
		NextField:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "champ suivant")),
		Submit:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "envoyer")),
		OpenCV:      key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "ouvrir le CV")),
	}
}

func matches(msg tea.KeyMsg, b key.Binding) bool {
	return key.Matches(msg, b)
}
