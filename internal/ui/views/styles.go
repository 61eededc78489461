package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the page
type Styles struct {
	Title        lipgloss.Style
	HeroLine1    lipgloss.Style
	HeroLine2    lipgloss.Style
	Section      lipgloss.Style
	SectionFocus lipgloss.Style
	StatTitle    lipgloss.Style
	StatSubtitle lipgloss.Style
	StatValue    lipgloss.Style
	StatUnit     lipgloss.Style
	StatBox      lipgloss.Style
	Card         lipgloss.Style
	CardTitle    lipgloss.Style
	Caption      lipgloss.Style
	Footer       lipgloss.Style
	Dim          lipgloss.Style
	Status       lipgloss.Style
	StatusError  lipgloss.Style
	Help         lipgloss.Style
	Main         lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		HeroLine1: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		HeroLine2: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")),
		Section: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")),
		SectionFocus: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("226")),
		StatTitle:    lipgloss.NewStyle().Bold(true),
		StatSubtitle: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatValue: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")),
		StatUnit: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("238")).
			PaddingLeft(1),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		CardTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Caption: lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("245")),
		Footer:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Dim:         lipgloss.NewStyle().Faint(true),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Help:        lipgloss.NewStyle().Faint(true),
		Main:        lipgloss.NewStyle().Padding(0, 2),
	}
}
