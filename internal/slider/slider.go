package slider

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"showcase/internal/domain"
	"showcase/internal/eventbus"
)

// DefaultHeight is the panel area height used when Options.Height is unset
const DefaultHeight = 10

// Options configures a slider
type Options struct {
	ID            string
	Panels        []Panel
	Direction     domain.Direction
	AutoAdvance   time.Duration // compact only; zero disables
	ShowIndicator bool
	Breakpoints   domain.Breakpoints
	Sizing        domain.Sizing
	Height        int // panel rows, not counting the indicator

	// ScrollPanEnabled allows the scroll-linked pan in expanded mode. When
	// false the slider pages at every width.
	ScrollPanEnabled bool
	SwipeThreshold   int
}

// DefaultOptions returns options with every default applied
func DefaultOptions() Options {
	return Options{
		AutoAdvance:      DefaultAutoAdvance,
		Breakpoints:      domain.DefaultBreakpoints(),
		Height:           DefaultHeight,
		ScrollPanEnabled: true,
		SwipeThreshold:   DefaultSwipeThreshold,
	}
}

// Model is the embeddable slider component. It keeps one stable surface
// (panels, indicator, navigation, direction) while the Coordinator swaps the
// engine underneath.
type Model struct {
	opts      Options
	coord     *Coordinator
	host      *PanelHost
	indicator Indicator
	keys      KeyMap
	focused   bool
	log       *zap.Logger
}

// New creates a slider bound to the page scroller. No engine is attached until
// the first Layout.
func New(opts Options, scroller Scroller, mode domain.Mode, bus eventbus.EventBus, log *zap.Logger) *Model {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	m := &Model{
		opts:      opts,
		host:      NewPanelHost(opts.Panels),
		indicator: NewIndicator(),
		keys:      DefaultKeyMap(),
		log:       log,
	}
	m.coord = NewCoordinator(CoordinatorOptions{
		ID:               opts.ID,
		Total:            len(opts.Panels),
		Direction:        opts.Direction,
		AutoAdvance:      opts.AutoAdvance,
		Breakpoints:      opts.Breakpoints,
		Sizing:           opts.Sizing,
		SwipeThreshold:   opts.SwipeThreshold,
		ScrollPanEnabled: opts.ScrollPanEnabled,
	}, scroller, mode, bus, log)
	return m
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) ID() string                  { return m.opts.ID }
func (m *Model) Index() int                  { return m.coord.Index() }
func (m *Model) Total() int                  { return m.coord.Total() }
func (m *Model) Direction() domain.Direction { return m.coord.Direction() }
func (m *Model) State() State                { return m.coord.State() }
func (m *Model) Keys() KeyMap                { return m.keys }
func (m *Model) PinSpan() float64            { return m.coord.PinSpan() }

// Engine returns the active engine, nil while none is bound
func (m *Model) Engine() Engine { return m.coord.Active() }

func (m *Model) Focus()        { m.focused = true }
func (m *Model) Blur()         { m.focused = false }
func (m *Model) Focused() bool { return m.focused }

// Height is the number of rows View occupies
func (m *Model) Height() int {
	if m.opts.ShowIndicator {
		return m.opts.Height + 2
	}
	return m.opts.Height
}

// PanelHeight is the number of rows of panel content
func (m *Model) PanelHeight() int { return m.opts.Height }

// Layout tells the slider where it sits on the page
func (m *Model) Layout(b Bounds) tea.Cmd {
	b.Height = m.opts.Height
	return m.coord.Layout(b)
}

// SetMode reports a viewport class change
func (m *Model) SetMode(mode domain.Mode) tea.Cmd {
	return m.coord.SetMode(mode)
}

// SetPanels replaces the panel sequence and rebuilds the engine
func (m *Model) SetPanels(panels []Panel) tea.Cmd {
	m.log.Debug("Panels replaced", zap.String("slider", m.opts.ID), zap.Int("count", len(panels)))
	m.opts.Panels = panels
	m.host.SetPanels(panels)
	return m.coord.SetPanels(len(panels))
}

func (m *Model) SetDirection(dir domain.Direction) tea.Cmd {
	m.opts.Direction = dir
	return m.coord.SetDirection(dir)
}

func (m *Model) Next() tea.Cmd          { return m.coord.Next() }
func (m *Model) Previous() tea.Cmd      { return m.coord.Previous() }
func (m *Model) GoTo(index int) tea.Cmd { return m.coord.GoTo(index) }

// Close releases the engine; the slider stays renderable
func (m *Model) Close() {
	m.coord.Close()
}

// Update handles key presses while focused, engine messages, and mouse
// events whose coordinates are relative to the slider's top-left corner.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.focused {
			return nil
		}
		intent, ok := m.keys.Intent(msg, m.Direction(), m.Total())
		if !ok {
			return nil
		}
		return m.coord.Navigate(intent)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m.coord.Update(msg)
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.opts.ShowIndicator && msg.Y == m.opts.Height+1 &&
		msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		b := m.indicator.HitTest(msg.X, m.Index(), m.Total(), m.Direction())
		if intent, ok := m.indicator.Intent(b); ok {
			return m.coord.Navigate(intent)
		}
		return nil
	}
	// presses start drags only inside the panel area; motion and release
	// follow the pointer wherever it goes
	if msg.Action == tea.MouseActionPress && (msg.Y < 0 || msg.Y >= m.opts.Height) {
		return nil
	}
	return m.coord.Update(msg)
}

// View renders the panel area and, when enabled, the indicator bar
func (m *Model) View() string {
	width := m.coord.Bounds().Width
	if width <= 0 {
		return ""
	}
	height := m.opts.Height
	dir := m.Direction()

	var body string
	switch e := m.coord.Active().(type) {
	case *ScrollPanEngine:
		body = m.host.Strip(e.PanelWidths(), e.Translation(), width, height, dir)
	case *PagedEngine:
		start, count := e.Visible()
		body = m.host.Paged(start, count, e.Layout().Gap, width, height, dir)
	default:
		body = m.host.Paged(m.Index(), 1, 0, width, height, dir)
	}

	if !m.opts.ShowIndicator {
		return body
	}
	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n\n")
	b.WriteString(m.indicator.Render(m.Index(), m.Total(), dir, m.focused))
	return b.String()
}
