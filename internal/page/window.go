package page

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"showcase/internal/eventbus"
	"showcase/internal/motion"
)

// settleDistance is how close (in cells) a smooth scroll gets before snapping
const settleDistance = 0.5

// FrameMsg advances a smooth scroll by one animation frame
type FrameMsg struct {
	w   *Window
	gen int
}

type pinRegion struct {
	start float64
	span  float64
}

// Window is the scrollable page every section lives in. It owns the scroll
// position, the pin regions that hold sections in place while scroll input is
// consumed, and the scroll listener registry shared by all sliders.
//
// Scroll positions are in cells. Outside pin regions one cell of scroll moves
// the page by one row.
type Window struct {
	bus eventbus.EventBus
	log *zap.Logger

	scrollY        float64
	contentHeight  int
	viewportHeight int

	pins    map[int]pinRegion
	nextPin int

	animating bool
	target    float64
	velocity  float64
	gen       int
}

// NewWindow creates a window publishing scroll events on bus
func NewWindow(bus eventbus.EventBus, log *zap.Logger) *Window {
	if log == nil {
		log = zap.NewNop()
	}
	return &Window{
		bus:  bus,
		log:  log,
		pins: make(map[int]pinRegion),
	}
}

// ScrollY returns the current scroll position
func (w *Window) ScrollY() float64 {
	return w.scrollY
}

// ViewportHeight returns the number of visible rows
func (w *Window) ViewportHeight() int {
	return w.viewportHeight
}

// SetViewportHeight updates the number of visible rows
func (w *Window) SetViewportHeight(rows int) {
	if rows < 0 {
		rows = 0
	}
	w.viewportHeight = rows
	w.clamp()
}

// ContentHeight returns the page height in rows, pin spans excluded
func (w *Window) ContentHeight() int {
	return w.contentHeight
}

// SetContentHeight updates the page height in rows, pin spans excluded
func (w *Window) SetContentHeight(rows int) {
	if rows < 0 {
		rows = 0
	}
	w.contentHeight = rows
	w.clamp()
}

// PinnedSpan is the total scroll distance consumed by pin regions
func (w *Window) PinnedSpan() float64 {
	total := 0.0
	for _, p := range w.pins {
		total += p.span
	}
	return total
}

// MaxScroll is the largest reachable scroll position. It never ends inside a
// pin region: a section pinned near the bottom of the page still gets its
// whole span, with blank rows below the content if needed.
func (w *Window) MaxScroll() float64 {
	limit := float64(w.contentHeight-w.viewportHeight) + w.PinnedSpan()
	for _, p := range w.pins {
		limit = math.Max(limit, p.start+p.span)
	}
	return math.Max(limit, 0)
}

// VisualOffset is the first content row shown at the current scroll position.
// Scrolling inside a pin region does not move the page.
func (w *Window) VisualOffset() int {
	y := w.scrollY
	consumed := 0.0
	for _, p := range w.pins {
		consumed += math.Min(math.Max(w.scrollY-p.start, 0), p.span)
	}
	return int(math.Round(y - consumed))
}

// Pin holds the page still while the scroll position moves through
// [start, start+span]. The returned release function is idempotent and leaves
// the scroll position alone so a pin can be re-registered in place; call
// Clamp once the pins are settled.
func (w *Window) Pin(start, span float64) func() {
	if span <= 0 {
		return func() {}
	}
	id := w.nextPin
	w.nextPin++
	w.pins[id] = pinRegion{start: start, span: span}
	w.log.Debug("Pin registered", zap.Int("id", id), zap.Float64("start", start), zap.Float64("span", span))

	released := false
	return func() {
		if released {
			return
		}
		released = true
		delete(w.pins, id)
		w.log.Debug("Pin released", zap.Int("id", id))
	}
}

// PinCount returns the number of live pin regions
func (w *Window) PinCount() int {
	return len(w.pins)
}

// OnScroll registers fn for every scroll position change
func (w *Window) OnScroll(fn func(y float64)) func() {
	return w.bus.Subscribe(eventbus.EventScrolled, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.ScrolledEvent); ok {
			fn(ev.Y)
		}
	})
}

// ListenerCount returns the number of live scroll listeners
func (w *Window) ListenerCount() int {
	return w.bus.HandlerCount(eventbus.EventScrolled)
}

// ScrollBy applies user scroll input. It interrupts any smooth scroll.
func (w *Window) ScrollBy(delta float64) {
	w.cancel()
	w.set(w.scrollY + delta)
}

// ScrollTo moves to y, animated when smooth is set. The returned command
// drives the animation frames.
func (w *Window) ScrollTo(y float64, smooth bool) tea.Cmd {
	y = w.bound(y)
	if !smooth || y == w.scrollY {
		w.cancel()
		w.set(y)
		return nil
	}
	w.target = y
	if !w.animating {
		w.velocity = 0
	}
	w.animating = true
	w.gen++
	return w.frame()
}

// Animating reports whether a smooth scroll is in flight
func (w *Window) Animating() bool {
	return w.animating
}

// Update advances animation frames addressed to this window
func (w *Window) Update(msg tea.Msg) tea.Cmd {
	f, ok := msg.(FrameMsg)
	if !ok || f.w != w || f.gen != w.gen {
		return nil
	}
	if w.Step() {
		return w.frame()
	}
	return nil
}

// Step advances a smooth scroll by one frame and reports whether it is still running
func (w *Window) Step() bool {
	if !w.animating {
		return false
	}
	// Pins released mid-flight can pull the bottom of the page above the target
	w.target = w.bound(w.target)
	pos, vel := motion.Spring().Update(w.scrollY, w.velocity, w.target)
	w.velocity = vel
	if math.Abs(w.target-pos) < settleDistance && math.Abs(vel) < settleDistance {
		target := w.target
		w.cancel()
		w.set(target)
		return false
	}
	w.set(pos)
	return true
}

func (w *Window) frame() tea.Cmd {
	msg := FrameMsg{w: w, gen: w.gen}
	return tea.Tick(motion.FrameInterval(), func(_ time.Time) tea.Msg { return msg })
}

func (w *Window) cancel() {
	if w.animating {
		w.animating = false
		w.velocity = 0
		w.gen++
	}
}

func (w *Window) bound(y float64) float64 {
	return math.Min(math.Max(y, 0), w.MaxScroll())
}

// Clamp pulls the scroll position back inside the page after pins changed
func (w *Window) Clamp() {
	w.clamp()
}

func (w *Window) clamp() {
	w.set(w.scrollY)
}

func (w *Window) set(y float64) {
	y = w.bound(y)
	if y == w.scrollY {
		return
	}
	w.scrollY = y
	w.bus.Publish(eventbus.ScrolledEvent{Y: y})
}
