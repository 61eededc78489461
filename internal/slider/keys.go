package slider

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"showcase/internal/domain"
)

// KeyMap holds the bindings a focused slider responds to. Left and Right
// activate the arrow button they point at, so their meaning flips with the
// reading direction.
type KeyMap struct {
	Left  key.Binding
	Right key.Binding
	First key.Binding
	Last  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left panel"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right panel"),
		),
		First: key.NewBinding(
			key.WithKeys("home", "0"),
			key.WithHelp("home", "first panel"),
		),
		Last: key.NewBinding(
			key.WithKeys("end", "$"),
			key.WithHelp("end", "last panel"),
		),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Left, k.Right, k.First, k.Last}}
}

// Intent maps a key press to a navigation request
func (k KeyMap) Intent(msg tea.KeyMsg, dir domain.Direction, total int) (domain.NavIntent, bool) {
	switch {
	case key.Matches(msg, k.Left):
		if dir == domain.RTL {
			return domain.NavIntent{Kind: domain.NavNext}, true
		}
		return domain.NavIntent{Kind: domain.NavPrevious}, true
	case key.Matches(msg, k.Right):
		if dir == domain.RTL {
			return domain.NavIntent{Kind: domain.NavPrevious}, true
		}
		return domain.NavIntent{Kind: domain.NavNext}, true
	case key.Matches(msg, k.First):
		return domain.NavIntent{Kind: domain.NavGoTo, Index: 0}, true
	case key.Matches(msg, k.Last):
		return domain.NavIntent{Kind: domain.NavGoTo, Index: total - 1}, true
	}
	return domain.NavIntent{}, false
}
