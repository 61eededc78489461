package slider

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"showcase/internal/domain"
)

// Panel is one unit of slider content. The slider never looks inside it.
type Panel interface {
	Render(width, height int) string
}

// PanelFunc adapts a function to Panel
type PanelFunc func(width, height int) string

func (f PanelFunc) Render(width, height int) string { return f(width, height) }

type slotKey struct {
	index, width, height int
}

// PanelHost lays panels out as fixed-size slots for whichever engine is
// active. Rendered slots are cached until the sequence or a size changes.
type PanelHost struct {
	panels []Panel
	cache  map[slotKey]string
}

// NewPanelHost creates a host for the given sequence
func NewPanelHost(panels []Panel) *PanelHost {
	h := &PanelHost{}
	h.SetPanels(panels)
	return h
}

// SetPanels replaces the whole sequence
func (h *PanelHost) SetPanels(panels []Panel) {
	h.panels = panels
	h.cache = make(map[slotKey]string)
}

func (h *PanelHost) Len() int { return len(h.panels) }

// Slot renders panel i into exactly width x height cells
func (h *PanelHost) Slot(i, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	key := slotKey{i, width, height}
	if s, ok := h.cache[key]; ok {
		return s
	}
	var content string
	if i >= 0 && i < len(h.panels) && h.panels[i] != nil {
		content = h.panels[i].Render(width, height)
	}
	s := fit(content, width, height)
	h.cache[key] = s
	return s
}

// Paged renders count panels from start, separated by gap columns. RTL lays
// them out right to left.
func (h *PanelHost) Paged(start, count, gap, width, height int, dir domain.Direction) string {
	if count <= 0 || len(h.panels) == 0 {
		return blank(width, height)
	}
	slotW := (width - gap*(count-1)) / count
	if slotW <= 0 {
		slotW, gap, count = width, 0, 1
	}

	slots := make([]string, 0, 2*count-1)
	for k := 0; k < count; k++ {
		i := start + k
		if dir == domain.RTL {
			i = start + count - 1 - k
		}
		if k > 0 && gap > 0 {
			slots = append(slots, blank(gap, height))
		}
		slots = append(slots, h.Slot(i, slotW, height))
	}
	return fit(lipgloss.JoinHorizontal(lipgloss.Top, slots...), width, height)
}

// Strip renders the horizontal strip of all panels at the given widths and
// crops it to the container at the engine's translation. In RTL the strip is
// reversed and starts anchored to the right edge.
func (h *PanelHost) Strip(widths []int, translation, width, height int, dir domain.Direction) string {
	if len(widths) == 0 || width <= 0 {
		return blank(width, height)
	}

	n := len(widths)
	slots := make([]string, n)
	stripWidth := 0
	for k := range widths {
		i := k
		if dir == domain.RTL {
			i = n - 1 - k
		}
		slots[k] = h.Slot(i, widths[i], height)
		stripWidth += widths[i]
	}
	strip := lipgloss.JoinHorizontal(lipgloss.Top, slots...)

	x := -translation
	if dir == domain.RTL {
		x = stripWidth - width - translation
	}
	if x < 0 {
		x = 0
	}

	lines := strings.Split(strip, "\n")
	for i, line := range lines {
		lines[i] = ansi.Cut(line, x, x+width)
	}
	return fit(strings.Join(lines, "\n"), width, height)
}

// fit pads or crops s to exactly width x height cells
func fit(s string, width, height int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i, line := range lines {
		w := ansi.StringWidth(line)
		switch {
		case w > width:
			lines[i] = ansi.Truncate(line, width, "")
		case w < width:
			lines[i] = line + strings.Repeat(" ", width-w)
		}
	}
	return strings.Join(lines, "\n")
}

func blank(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	return fit("", width, height)
}
