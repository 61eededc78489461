package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"showcase/internal/slider"
)

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	title   lipgloss.Style
	section lipgloss.Style
	key     lipgloss.Style
	desc    lipgloss.Style
	note    lipgloss.Style
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		section: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginTop(1),
		key:  lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		desc: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		note: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")),
	}
}

// RenderHelpContentPlain generates help content with colors for the pager
func (r *HelpRenderer) RenderHelpContentPlain(page KeyMap, sk slider.KeyMap) string {
	var help strings.Builder

	help.WriteString(r.title.Render("Showcase Help"))
	help.WriteString("\n")

	r.writeSection(&help, "Page", page.Up, page.Down, page.PageUp, page.PageDown, page.Top, page.Bottom)
	r.writeSection(&help, "Sliders", page.NextFocus, page.PrevFocus, sk.Left, sk.Right, sk.First, sk.Last)
	help.WriteString(r.note.Render("  Arrow keys press the button they point at, so in rtl ← moves forward."))
	help.WriteString("\n")
	help.WriteString(r.note.Render("  Wide terminals pan sliders as the page scrolls; narrow ones page them."))
	help.WriteString("\n")
	r.writeSection(&help, "Mouse", mouseHelp("wheel", "scroll the page"), mouseHelp("click ←/→", "previous/next panel"), mouseHelp("drag", "swipe a paged slider"))
	r.writeSection(&help, "Other", page.Direction, page.Reload, page.Help, page.Quit)

	return strings.TrimRight(help.String(), "\n")
}

func (r *HelpRenderer) writeSection(b *strings.Builder, title string, bindings ...key.Binding) {
	b.WriteString(r.section.Render(title))
	b.WriteString("\n")
	width := 0
	for _, k := range bindings {
		width = max(width, lipgloss.Width(k.Help().Key))
	}
	for _, k := range bindings {
		h := k.Help()
		pad := strings.Repeat(" ", width-lipgloss.Width(h.Key))
		b.WriteString(fmt.Sprintf("  %s%s  %s\n", r.key.Render(h.Key), pad, r.desc.Render(h.Desc)))
	}
	b.WriteString("\n")
}

func mouseHelp(keys, desc string) key.Binding {
	return key.NewBinding(key.WithHelp(keys, desc))
}

// HelpOps shows the help text in an external pager
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps(program *tea.Program) *HelpOps {
	return &HelpOps{
		program: program,
	}
}

// SetProgram sets the program whose terminal the pager borrows
func (h *HelpOps) SetProgram(p *tea.Program) {
	h.program = p
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(helpContent))
	if err != nil {
		return fmt.Errorf("failed to open pager: %w", err)
	}

	// Don't write the document back onto our screen on exit
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
