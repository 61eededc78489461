package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"showcase/internal/config"
)

// statColumnWidth is the narrowest a stat column may get before the grid
// drops a column
const statColumnWidth = 24

// StatusState contains everything the bottom status bar shows
type StatusState struct {
	Width     int
	Mode      string
	Direction string
	Focused   string
	Index     int
	Total     int
	Message   string
	IsError   bool
	Help      help.Model
	KeyMap    help.KeyMap
}

// Renderer renders the presentational page sections
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Styles returns the styles the renderer draws with
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Hero renders the two-line opener followed by a blank line
func (r *Renderer) Hero(hero config.Hero, width int) string {
	lines := []string{
		r.styles.HeroLine1.Render(truncate(hero.Line1, width)),
		r.styles.HeroLine2.Render(truncate(hero.Line2, width)),
		"",
	}
	return strings.Join(lines, "\n")
}

// SectionTitle renders a slider heading; the focused slider is highlighted
func (r *Renderer) SectionTitle(title string, focused bool, width int) string {
	style := r.styles.Section
	marker := "  "
	if focused {
		style = r.styles.SectionFocus
		marker = "▸ "
	}
	return style.Render(truncate(marker+title, width))
}

// Overview renders the stats grid under its heading. The number of columns
// follows the width.
func (r *Renderer) Overview(ov config.Overview, width int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(r.styles.Section.Render(truncate(ov.Heading, width)))
	b.WriteString("\n\n")

	cols := StatColumns(width, len(ov.Stats))
	if cols == 0 {
		return b.String()
	}
	colWidth := width / cols

	var rows []string
	for i := 0; i < len(ov.Stats); i += cols {
		end := min(i+cols, len(ov.Stats))
		cells := make([]string, 0, cols)
		for _, s := range ov.Stats[i:end] {
			cells = append(cells, r.stat(s, colWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	b.WriteString(strings.Join(rows, "\n\n"))
	b.WriteString("\n")
	return b.String()
}

// StatColumns returns how many stat columns fit into width
func StatColumns(width, stats int) int {
	if stats == 0 || width <= 0 {
		return 0
	}
	cols := max(width/statColumnWidth, 1)
	if cols >= 4 {
		cols = 4
	} else if cols == 3 {
		cols = 2
	}
	return min(cols, stats)
}

func (r *Renderer) stat(s config.Stat, width int) string {
	inner := max(width-3, 1) // border, padding and one column of separation
	subtitle := s.Subtitle
	if subtitle == "" {
		subtitle = " "
	}
	lines := []string{
		r.styles.StatTitle.Render(truncate(s.Title, inner)),
		r.styles.StatSubtitle.Render(truncate(subtitle, inner)),
		truncate(r.styles.StatValue.Render(s.Value)+" "+r.styles.StatUnit.Render(s.Unit), inner),
	}
	return r.styles.StatBox.Width(width - 1).Render(strings.Join(lines, "\n"))
}

// Footer renders the closing line of the page
func (r *Renderer) Footer(width int) string {
	return "\n" + r.styles.Footer.Render(truncate("Miraf District · Khobar", width))
}

// StatusBar renders the single bottom row: mode, direction, focused slider
// position and the short help
func (r *Renderer) StatusBar(s StatusState) string {
	left := fmt.Sprintf("%s · %s", s.Mode, s.Direction)
	if s.Focused != "" {
		left += fmt.Sprintf(" · %s %d/%d", s.Focused, s.Index+1, s.Total)
	}
	if s.Message != "" {
		style := r.styles.Status
		if s.IsError {
			style = r.styles.StatusError
		}
		left += "  " + style.Render(s.Message)
	}
	left = r.styles.Status.Render(left)

	var right string
	if s.KeyMap != nil {
		h := s.Help
		h.Width = max(s.Width-lipgloss.Width(left)-2, 0)
		right = h.View(s.KeyMap)
	}

	gap := s.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 || right == "" {
		return truncate(left, s.Width)
	}
	return left + strings.Repeat(" ", gap) + right
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}
