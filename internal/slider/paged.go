package slider

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"showcase/internal/domain"
)

const (
	DefaultAutoAdvance    = 5 * time.Second
	DefaultSwipeThreshold = 6
)

// PagedOptions configures a PagedEngine
type PagedOptions struct {
	Total          int
	Direction      domain.Direction
	AutoAdvance    time.Duration // zero disables
	Breakpoints    domain.Breakpoints
	SwipeThreshold int // columns of horizontal drag needed to page
}

type autoAdvanceMsg struct {
	e   *PagedEngine
	gen int
}

// PagedEngine shows whole panels and pages between them with keys, swipes
// and an optional auto-advance timer. It never wraps around.
type PagedEngine struct {
	opts     PagedOptions
	index    int
	width    int
	attached bool
	onIndex  func(int)

	// timer generation; bumping it cancels a pending auto-advance tick
	gen int

	dragging     bool
	dragStartX   int
	dragConsumed bool
}

// NewPagedEngine creates a detached engine positioned at seed
func NewPagedEngine(opts PagedOptions, seed int) *PagedEngine {
	if opts.SwipeThreshold <= 0 {
		opts.SwipeThreshold = DefaultSwipeThreshold
	}
	if len(opts.Breakpoints) == 0 {
		opts.Breakpoints = domain.DefaultBreakpoints()
	}
	return &PagedEngine{
		opts:  opts,
		index: clampIndex(seed, opts.Total),
	}
}

func (e *PagedEngine) Name() string { return "paged" }

// Attach binds the engine. Paging works at any width, so unmeasured bounds
// only affect the breakpoint layout.
func (e *PagedEngine) Attach(b Bounds) (tea.Cmd, error) {
	if e.attached {
		return nil, nil
	}
	e.attached = true
	e.width = b.Width
	return e.schedule(), nil
}

// Detach cancels the timer and any drag in progress. Safe to call repeatedly.
func (e *PagedEngine) Detach() {
	if !e.attached {
		return
	}
	e.attached = false
	e.dragging = false
	e.gen++
}

func (e *PagedEngine) Attached() bool { return e.attached }
func (e *PagedEngine) Index() int     { return e.index }
func (e *PagedEngine) Total() int     { return e.opts.Total }

func (e *PagedEngine) OnIndexChange(fn func(int)) {
	e.onIndex = fn
}

// Resize updates the width used to resolve breakpoints
func (e *PagedEngine) Resize(width int) {
	e.width = width
}

// Layout returns the breakpoint for the current width
func (e *PagedEngine) Layout() domain.Breakpoint {
	return e.opts.Breakpoints.Resolve(e.width)
}

// Visible returns the first shown panel and how many are shown
func (e *PagedEngine) Visible() (start, count int) {
	count = e.Layout().Visible
	if count > e.opts.Total {
		count = e.opts.Total
	}
	start = e.index
	if start > e.opts.Total-count {
		start = e.opts.Total - count
	}
	if start < 0 {
		start = 0
	}
	return start, count
}

func (e *PagedEngine) Next() tea.Cmd {
	return e.GoTo(e.index + 1)
}

func (e *PagedEngine) Previous() tea.Cmd {
	return e.GoTo(e.index - 1)
}

// GoTo moves to index, clamped. It counts as user interaction and restarts
// the auto-advance countdown.
func (e *PagedEngine) GoTo(index int) tea.Cmd {
	if !e.attached {
		return nil
	}
	e.move(index)
	return e.restart()
}

func (e *PagedEngine) Update(msg tea.Msg) tea.Cmd {
	if !e.attached {
		return nil
	}
	switch msg := msg.(type) {
	case autoAdvanceMsg:
		if msg.e != e || msg.gen != e.gen || e.dragging {
			return nil
		}
		e.move(e.index + 1)
		return e.schedule()

	case tea.MouseMsg:
		return e.handleMouse(msg)
	}
	return nil
}

// handleMouse expects coordinates relative to the slider
func (e *PagedEngine) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch {
	case msg.Button == tea.MouseButtonWheelRight:
		return e.page(1)
	case msg.Button == tea.MouseButtonWheelLeft:
		return e.page(-1)

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		e.dragging = true
		e.dragStartX = msg.X
		e.dragConsumed = false
		// Hold the timer while the pointer is down
		e.gen++
		return nil

	case msg.Action == tea.MouseActionMotion && e.dragging:
		dx := msg.X - e.dragStartX
		if e.dragConsumed || abs(dx) < e.opts.SwipeThreshold {
			return nil
		}
		e.dragConsumed = true
		// Dragging content towards the reading direction reveals the next panel
		if dx < 0 {
			e.move(e.index + e.sign())
		} else {
			e.move(e.index - e.sign())
		}
		return nil

	case msg.Action == tea.MouseActionRelease && e.dragging:
		e.dragging = false
		return e.restart()
	}
	return nil
}

// page moves one step along the physical axis, mirrored for RTL
func (e *PagedEngine) page(physical int) tea.Cmd {
	return e.GoTo(e.index + physical*e.sign())
}

func (e *PagedEngine) sign() int {
	if e.opts.Direction == domain.RTL {
		return -1
	}
	return 1
}

func (e *PagedEngine) move(index int) {
	index = clampIndex(index, e.opts.Total)
	if index == e.index {
		return
	}
	e.index = index
	if e.onIndex != nil {
		e.onIndex(index)
	}
}

func (e *PagedEngine) restart() tea.Cmd {
	e.gen++
	return e.schedule()
}

func (e *PagedEngine) schedule() tea.Cmd {
	if !e.attached || e.opts.AutoAdvance <= 0 || e.opts.Total <= 1 || e.index >= e.opts.Total-1 {
		return nil
	}
	msg := autoAdvanceMsg{e: e, gen: e.gen}
	return tea.Tick(e.opts.AutoAdvance, func(time.Time) tea.Msg { return msg })
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
