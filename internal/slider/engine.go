// Package slider implements the responsive carousel: a paged engine for
// compact terminals, a scroll-linked pan engine for wide ones, and the
// coordinator that keeps exactly one of them bound at a time.
package slider

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrNotMeasured is returned when an engine is attached to a container that
// has not been laid out yet
var ErrNotMeasured = errors.New("slider: container not measured")

// Bounds is the measured placement of a slider container
type Bounds struct {
	// Offset is the scroll position at which the container top reaches the viewport top
	Offset float64
	Width  int
	Height int
}

// Measured reports whether the bounds describe a laid-out container
func (b Bounds) Measured() bool {
	return b.Width > 0 && b.Height > 0
}

// Scroller is the page a scroll-pan engine binds to
type Scroller interface {
	ScrollY() float64
	ScrollTo(y float64, smooth bool) tea.Cmd
	OnScroll(fn func(y float64)) (unsubscribe func())
	Pin(start, span float64) (release func())
}

// Engine is one interaction model behind the Coordinator
type Engine interface {
	Name() string
	Attach(b Bounds) (tea.Cmd, error)
	Detach()
	Attached() bool
	Next() tea.Cmd
	Previous() tea.Cmd
	GoTo(index int) tea.Cmd
	Index() int
	Total() int
	OnIndexChange(fn func(index int))
	Update(msg tea.Msg) tea.Cmd
}

// clampIndex keeps index inside [0, total-1]; an empty sequence is always 0
func clampIndex(index, total int) int {
	if total <= 0 || index < 0 {
		return 0
	}
	if index > total-1 {
		return total - 1
	}
	return index
}
