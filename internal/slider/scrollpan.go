package slider

import (
	"math"

	tea "github.com/charmbracelet/bubbletea"

	"showcase/internal/domain"
)

// ScrollPanOptions configures a ScrollPanEngine
type ScrollPanOptions struct {
	Total     int
	Direction domain.Direction
	Sizing    domain.Sizing
}

// ScrollPanEngine pins the slider while the page scrolls through a span of
// (panels-1) container widths and pans the panel strip in step with it.
// Everything is measured in Attach; scroll ticks only do arithmetic.
type ScrollPanEngine struct {
	opts     ScrollPanOptions
	scroller Scroller
	onIndex  func(int)

	index    int
	attached bool

	bounds     Bounds
	widths     []int
	stripWidth int
	travel     int
	start      float64
	span       float64
	progress   float64

	// seeded is set while the page sits outside the span and the index still
	// comes from the coordinator's seed rather than from progress. The strip
	// shows the seeded panel until the scroll position moves the progress.
	seeded bool

	unsubscribe func()
	release     func()
}

// NewScrollPanEngine creates a detached engine whose index starts at seed
func NewScrollPanEngine(opts ScrollPanOptions, scroller Scroller, seed int) *ScrollPanEngine {
	return &ScrollPanEngine{
		opts:     opts,
		scroller: scroller,
		index:    clampIndex(seed, opts.Total),
	}
}

func (e *ScrollPanEngine) Name() string { return "scroll-pan" }

// Attach measures the container and binds the pin region and scroll listener.
// Unmeasured bounds leave the engine detached with ErrNotMeasured.
func (e *ScrollPanEngine) Attach(b Bounds) (tea.Cmd, error) {
	if e.attached {
		return nil, nil
	}
	if !b.Measured() {
		return nil, ErrNotMeasured
	}
	e.bounds = b
	e.measure()
	e.attached = true

	n := e.opts.Total
	if n <= 1 {
		// Static display: nothing to pin, nothing to listen to
		e.index = 0
		e.progress = 0
		e.seeded = false
		return nil, nil
	}

	e.start = b.Offset
	e.span = float64((n - 1) * b.Width)
	e.release = e.scroller.Pin(e.start, e.span)
	e.unsubscribe = e.scroller.OnScroll(e.onScroll)

	y := e.scroller.ScrollY()
	e.progress = e.progressAt(y)
	if y > e.start && y < e.start+e.span {
		e.seeded = false
		e.setIndex(e.derive(e.progress))
	} else {
		e.seeded = e.index != e.derive(e.progress)
	}
	return nil, nil
}

func (e *ScrollPanEngine) measure() {
	n := e.opts.Total
	e.widths = make([]int, n)
	e.stripWidth = 0
	for i := range e.widths {
		e.widths[i] = e.opts.Sizing.PanelWidth(i, e.bounds.Width)
		e.stripWidth += e.widths[i]
	}
	e.travel = e.stripWidth - e.bounds.Width
	if e.travel < 0 {
		e.travel = 0
	}
}

// Detach releases the scroll listener and the pin. Safe to call repeatedly.
func (e *ScrollPanEngine) Detach() {
	if e.unsubscribe != nil {
		e.unsubscribe()
		e.unsubscribe = nil
	}
	if e.release != nil {
		e.release()
		e.release = nil
	}
	e.attached = false
}

func (e *ScrollPanEngine) Attached() bool { return e.attached }
func (e *ScrollPanEngine) Index() int     { return e.index }
func (e *ScrollPanEngine) Total() int     { return e.opts.Total }

func (e *ScrollPanEngine) OnIndexChange(fn func(int)) {
	e.onIndex = fn
}

func (e *ScrollPanEngine) Update(tea.Msg) tea.Cmd { return nil }

// Progress is the position inside the pinned span, in [0,1]
func (e *ScrollPanEngine) Progress() float64 { return e.progress }

// Span returns the scroll range [start, end] the engine is pinned over
func (e *ScrollPanEngine) Span() (start, end float64) {
	return e.start, e.start + e.span
}

// PinSpan is the scroll distance the engine consumes
func (e *ScrollPanEngine) PinSpan() float64 {
	if !e.attached {
		return 0
	}
	return e.span
}

// PanelWidths returns the measured width of every panel
func (e *ScrollPanEngine) PanelWidths() []int { return e.widths }

// StripWidth is the combined width of all panels
func (e *ScrollPanEngine) StripWidth() int { return e.stripWidth }

// Translation is how far the strip is shifted, in columns: negative (towards
// the left) for LTR and positive for RTL
func (e *ScrollPanEngine) Translation() int {
	shift := int(math.Round(e.shown() * float64(e.travel)))
	if e.opts.Direction == domain.RTL {
		return shift
	}
	return -shift
}

// Seeded reports whether the shown panel is the seed rather than one derived
// from the scroll position
func (e *ScrollPanEngine) Seeded() bool { return e.seeded }

func (e *ScrollPanEngine) Next() tea.Cmd {
	return e.GoTo(e.current() + 1)
}

func (e *ScrollPanEngine) Previous() tea.Cmd {
	return e.GoTo(e.current() - 1)
}

// current is the panel on screen
func (e *ScrollPanEngine) current() int {
	if e.seeded {
		return e.index
	}
	return e.derive(e.progress)
}

// shown is the progress the strip is drawn at
func (e *ScrollPanEngine) shown() float64 {
	n := e.opts.Total
	if e.seeded && n > 1 {
		return float64(e.index) / float64(n-1)
	}
	return e.progress
}

// GoTo smooth-scrolls the page to the offset that shows index. The index
// itself follows the scroll position as the page moves.
func (e *ScrollPanEngine) GoTo(index int) tea.Cmd {
	if !e.attached || e.opts.Total <= 1 {
		return nil
	}
	return e.scroller.ScrollTo(e.TargetFor(index), true)
}

// TargetFor returns the scroll offset at which index is current
func (e *ScrollPanEngine) TargetFor(index int) float64 {
	n := e.opts.Total
	if n <= 1 {
		return e.start
	}
	index = clampIndex(index, n)
	return e.start + float64(index)/float64(n-1)*e.span
}

func (e *ScrollPanEngine) onScroll(y float64) {
	p := e.progressAt(y)
	if p == e.progress {
		return
	}
	e.progress = p
	e.seeded = false
	e.setIndex(e.derive(p))
}

func (e *ScrollPanEngine) progressAt(y float64) float64 {
	if e.span <= 0 {
		return 0
	}
	return math.Min(math.Max((y-e.start)/e.span, 0), 1)
}

func (e *ScrollPanEngine) derive(p float64) int {
	return clampIndex(int(math.Round(p*float64(e.opts.Total-1))), e.opts.Total)
}

func (e *ScrollPanEngine) setIndex(i int) {
	if i == e.index {
		return
	}
	e.index = i
	if e.onIndex != nil {
		e.onIndex(i)
	}
}
