package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"showcase/internal/config"
)

// Markdown renders panel bodies with glamour. Renderers are created per wrap
// width and reused.
type Markdown struct {
	style     string
	renderers map[int]*glamour.TermRenderer
}

// NewMarkdown creates a markdown renderer using a fixed glamour style so the
// output does not depend on querying the terminal
func NewMarkdown(style string) *Markdown {
	if style == "" {
		style = "dark"
	}
	return &Markdown{style: style, renderers: make(map[int]*glamour.TermRenderer)}
}

// Render returns the body wrapped to width with surrounding blank lines
// removed. When glamour fails the plain text is returned.
func (m *Markdown) Render(body string, width int) []string {
	if strings.TrimSpace(body) == "" || width <= 0 {
		return nil
	}
	r, ok := m.renderers[width]
	if !ok {
		var err error
		r, err = glamour.NewTermRenderer(
			glamour.WithStylePath(m.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return strings.Split(body, "\n")
		}
		m.renderers[width] = r
	}
	out, err := r.Render(body)
	if err != nil {
		return strings.Split(body, "\n")
	}
	return trimBlank(strings.Split(out, "\n"))
}

func trimBlank(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(ansi.Strip(lines[start])) == "" {
		start++
	}
	for end > start && strings.TrimSpace(ansi.Strip(lines[end-1])) == "" {
		end--
	}
	return lines[start:end]
}

// Card is one slider panel: a bordered box with a title, a markdown body and
// an optional caption on the last row
type Card struct {
	Title   string
	Body    string
	Caption string

	styles *Styles
	md     *Markdown
}

// NewCards builds the panels of one slider from its configuration
func NewCards(panels []config.PanelConfig, styles *Styles, md *Markdown) []*Card {
	cards := make([]*Card, 0, len(panels))
	for _, p := range panels {
		cards = append(cards, &Card{
			Title:   p.Title,
			Body:    p.Body,
			Caption: p.Caption,
			styles:  styles,
			md:      md,
		})
	}
	return cards
}

// Render draws the card into exactly width x height cells
func (c *Card) Render(width, height int) string {
	if width < 4 || height < 3 {
		return c.styles.CardTitle.Render(truncate(c.Title, width))
	}
	innerW := width - 4 // border and horizontal padding
	innerH := height - 2

	lines := []string{c.styles.CardTitle.Render(truncate(c.Title, innerW))}
	if c.Body != "" {
		lines = append(lines, c.md.Render(c.Body, innerW)...)
	}

	var caption string
	if c.Caption != "" {
		caption = c.styles.Caption.Render(truncate(c.Caption, innerW))
		innerH--
	}
	if len(lines) > innerH {
		lines = lines[:max(innerH, 0)]
	}
	for i, l := range lines {
		lines[i] = truncate(l, innerW)
	}
	for len(lines) < innerH {
		lines = append(lines, "")
	}
	if caption != "" {
		lines = append(lines, caption)
	}

	return c.styles.Card.
		Width(width - 2).
		Height(height - 2).
		MaxHeight(height).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
