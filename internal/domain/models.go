package domain

import "strings"

// Direction is the reading direction a slider advances in
type Direction int

const (
	LTR Direction = iota
	RTL
)

// ParseDirection converts "ltr"/"rtl" into a Direction, defaulting to LTR
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), "rtl") {
		return RTL
	}
	return LTR
}

func (d Direction) String() string {
	if d == RTL {
		return "rtl"
	}
	return "ltr"
}

// Flip returns the opposite direction
func (d Direction) Flip() Direction {
	if d == RTL {
		return LTR
	}
	return RTL
}

// Mode is the viewport class derived from the terminal width
type Mode int

const (
	Compact Mode = iota
	Expanded
)

func (m Mode) String() string {
	if m == Expanded {
		return "expanded"
	}
	return "compact"
}

// Breakpoint configures the paged layout from a minimum width upwards
type Breakpoint struct {
	MinWidth int `toml:"min_width"`
	Visible  int `toml:"visible"`
	Gap      int `toml:"gap"`
}

// Breakpoints is a width-to-layout mapping
type Breakpoints []Breakpoint

// DefaultBreakpoints shows a single panel with no gap at every width
func DefaultBreakpoints() Breakpoints {
	return Breakpoints{{MinWidth: 0, Visible: 1, Gap: 0}}
}

// Resolve returns the breakpoint with the largest MinWidth not above width.
// Visible is always at least 1 and Gap never negative.
func (b Breakpoints) Resolve(width int) Breakpoint {
	best := Breakpoint{MinWidth: -1, Visible: 1}
	for _, bp := range b {
		if bp.MinWidth <= width && bp.MinWidth > best.MinWidth {
			best = bp
		}
	}
	if best.Visible < 1 {
		best.Visible = 1
	}
	if best.Gap < 0 {
		best.Gap = 0
	}
	if best.MinWidth < 0 {
		best.MinWidth = 0
	}
	return best
}

// Sizing is the panel width hint used by the scroll-pan layout.
// An empty Fractions means every panel fills the container.
type Sizing struct {
	Fractions []float64 `toml:"fractions"`
}

// Full reports whether panels take the whole container width
func (s Sizing) Full() bool {
	return len(s.Fractions) == 0
}

// PanelWidth returns the width of panel i inside a container of the given width.
// Panels past the end of Fractions reuse the first fraction.
func (s Sizing) PanelWidth(i, width int) int {
	if s.Full() {
		return width
	}
	f := s.Fractions[0]
	if i >= 0 && i < len(s.Fractions) && s.Fractions[i] > 0 {
		f = s.Fractions[i]
	}
	if f <= 0 || f > 1 {
		f = 1
	}
	w := int(float64(width)*f + 0.5)
	if w < 1 {
		w = 1
	}
	return w
}

// NavKind identifies a navigation request
type NavKind int

const (
	NavPrevious NavKind = iota
	NavNext
	NavGoTo
)

// NavIntent is a transient navigation request
type NavIntent struct {
	Kind  NavKind
	Index int // only for NavGoTo
}
