package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"showcase/internal/slider"
)

// KeyMap holds the page-level bindings. Keys it does not match go to the
// focused slider.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Top       key.Binding
	Bottom    key.Binding
	NextFocus key.Binding
	PrevFocus key.Binding
	Direction key.Binding
	Reload    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d", " "),
			key.WithHelp("pgdn", "page down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "bottom"),
		),
		NextFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next slider"),
		),
		PrevFocus: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous slider"),
		),
		Direction: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "flip direction"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// helpKeys joins the page bindings with the focused slider's for the help bar
type helpKeys struct {
	page   KeyMap
	slider *slider.KeyMap
}

func (h helpKeys) ShortHelp() []key.Binding {
	bindings := []key.Binding{h.page.Down, h.page.NextFocus}
	if h.slider != nil {
		bindings = append(bindings, h.slider.ShortHelp()...)
	}
	return append(bindings, h.page.Help, h.page.Quit)
}

func (h helpKeys) FullHelp() [][]key.Binding {
	groups := [][]key.Binding{
		{h.page.Up, h.page.Down, h.page.PageUp, h.page.PageDown, h.page.Top, h.page.Bottom},
		{h.page.NextFocus, h.page.PrevFocus, h.page.Direction, h.page.Reload, h.page.Help, h.page.Quit},
	}
	if h.slider != nil {
		groups = append(groups, h.slider.FullHelp()...)
	}
	return groups
}
