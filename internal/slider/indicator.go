package slider

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"showcase/internal/domain"
)

// Button identifies a navigation control in the indicator bar
type Button int

const (
	ButtonNone Button = iota
	ButtonPrevious
	ButtonNext
)

const (
	arrowLeft  = "←"
	arrowRight = "→"
)

// IndicatorStyles styles the indicator bar
type IndicatorStyles struct {
	Counter  lipgloss.Style
	Button   lipgloss.Style
	Focused  lipgloss.Style
	Disabled lipgloss.Style
}

// DefaultIndicatorStyles returns the standard indicator look
func DefaultIndicatorStyles() IndicatorStyles {
	return IndicatorStyles{
		Counter:  lipgloss.NewStyle().Foreground(lipgloss.Color("250")).PaddingLeft(2),
		Button:   lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Padding(0, 1),
		Focused:  lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("214")).Padding(0, 1),
		Disabled: lipgloss.NewStyle().Faint(true).Background(lipgloss.Color("236")).Padding(0, 1),
	}
}

// Indicator renders "index / total" and the previous/next controls. It holds
// no slider state; everything it shows is passed in.
//
// The two buttons always sit left to right as ← then →. In LTR the left one
// is Previous; in RTL the reading direction is mirrored and the left one is
// Next.
type Indicator struct {
	Styles IndicatorStyles
}

// NewIndicator creates an indicator with the default styles
func NewIndicator() Indicator {
	return Indicator{Styles: DefaultIndicatorStyles()}
}

// Label returns the position text
func (Indicator) Label(index, total int) string {
	if total <= 0 {
		return "0 / 0"
	}
	return fmt.Sprintf("%d / %d", clampIndex(index, total)+1, total)
}

// Glyphs returns the arrows for the previous and next controls
func (Indicator) Glyphs(dir domain.Direction) (previous, next string) {
	if dir == domain.RTL {
		return arrowRight, arrowLeft
	}
	return arrowLeft, arrowRight
}

func (ind Indicator) glyph(b Button, dir domain.Direction) string {
	previous, next := ind.Glyphs(dir)
	if b == ButtonNext {
		return next
	}
	return previous
}

// PreviousEnabled reports whether there is a panel before index
func PreviousEnabled(index, total int) bool {
	return total > 1 && index > 0
}

// NextEnabled reports whether there is a panel after index
func NextEnabled(index, total int) bool {
	return total > 1 && index < total-1
}

// Render draws the bar: the two arrow buttons followed by the counter
func (ind Indicator) Render(index, total int, dir domain.Direction, focused bool) string {
	left, right := ind.slots(dir)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		ind.button(ind.glyph(left, dir), ind.enabled(left, index, total), focused),
		" ",
		ind.button(ind.glyph(right, dir), ind.enabled(right, index, total), focused),
		ind.Styles.Counter.Render(ind.Label(index, total)),
	)
}

// HitTest maps a column relative to the bar's left edge to the button under it.
// Disabled buttons report ButtonNone.
func (ind Indicator) HitTest(x, index, total int, dir domain.Direction) Button {
	w := ind.buttonWidth()
	left, right := ind.slots(dir)
	var hit Button
	switch {
	case x >= 0 && x < w:
		hit = left
	case x > w && x <= 2*w:
		hit = right
	default:
		return ButtonNone
	}
	if !ind.enabled(hit, index, total) {
		return ButtonNone
	}
	return hit
}

// Intent translates a button into a navigation request
func (Indicator) Intent(b Button) (domain.NavIntent, bool) {
	switch b {
	case ButtonPrevious:
		return domain.NavIntent{Kind: domain.NavPrevious}, true
	case ButtonNext:
		return domain.NavIntent{Kind: domain.NavNext}, true
	}
	return domain.NavIntent{}, false
}

// slots returns which button sits on the left and which on the right
func (Indicator) slots(dir domain.Direction) (left, right Button) {
	if dir == domain.RTL {
		return ButtonNext, ButtonPrevious
	}
	return ButtonPrevious, ButtonNext
}

func (Indicator) enabled(b Button, index, total int) bool {
	switch b {
	case ButtonPrevious:
		return PreviousEnabled(index, total)
	case ButtonNext:
		return NextEnabled(index, total)
	}
	return false
}

func (ind Indicator) button(glyph string, enabled, focused bool) string {
	switch {
	case !enabled:
		return ind.Styles.Disabled.Render(glyph)
	case focused:
		return ind.Styles.Focused.Render(glyph)
	default:
		return ind.Styles.Button.Render(glyph)
	}
}

func (ind Indicator) buttonWidth() int {
	return lipgloss.Width(ind.Styles.Button.Render(arrowLeft))
}
