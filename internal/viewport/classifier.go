package viewport

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"showcase/internal/domain"
	"showcase/internal/eventbus"
)

// Mode is re-exported so callers only need this package
type Mode = domain.Mode

const (
	Compact  = domain.Compact
	Expanded = domain.Expanded
)

const (
	DefaultThreshold = 100
	DefaultDebounce  = 150 * time.Millisecond
)

// settleMsg fires once a resize burst has been quiet for the debounce period
type settleMsg struct {
	id  *Classifier
	seq int
}

// Classifier turns terminal widths into a Compact/Expanded mode.
// Resizes are debounced; subscribers only hear about real mode changes.
type Classifier struct {
	threshold int
	debounce  time.Duration
	mode      Mode
	width     int
	seq       int
	stopped   bool

	subs   map[int]func(Mode)
	nextID int

	bus eventbus.EventBus
	log *zap.Logger
}

// NewClassifier classifies width immediately so the first frame uses the right mode.
// A width of zero or less means there is no terminal and yields Compact.
func NewClassifier(threshold int, debounce time.Duration, width int) *Classifier {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if debounce < 0 {
		debounce = DefaultDebounce
	}
	c := &Classifier{
		threshold: threshold,
		debounce:  debounce,
		width:     width,
		subs:      make(map[int]func(Mode)),
		log:       zap.NewNop(),
	}
	c.mode = c.classify(width)
	return c
}

// SetBus publishes ModeChangedEvent on b for every settled mode change
func (c *Classifier) SetBus(b eventbus.EventBus) {
	c.bus = b
}

// SetLogger replaces the no-op logger
func (c *Classifier) SetLogger(l *zap.Logger) {
	if l != nil {
		c.log = l
	}
}

func (c *Classifier) classify(width int) Mode {
	if width <= 0 || width < c.threshold {
		return Compact
	}
	return Expanded
}

// Mode returns the current settled mode
func (c *Classifier) Mode() Mode {
	return c.mode
}

// Width returns the most recently observed width
func (c *Classifier) Width() int {
	return c.width
}

// Threshold returns the width at which Expanded begins
func (c *Classifier) Threshold() int {
	return c.threshold
}

// Observe records a resize. Any earlier pending settle is superseded.
func (c *Classifier) Observe(width int) tea.Cmd {
	if c.stopped {
		return nil
	}
	c.width = width
	c.seq++
	msg := settleMsg{id: c, seq: c.seq}
	if c.debounce == 0 {
		return func() tea.Msg { return msg }
	}
	return tea.Tick(c.debounce, func(time.Time) tea.Msg { return msg })
}

// Update consumes settle messages and reports whether the mode changed
func (c *Classifier) Update(msg tea.Msg) bool {
	m, ok := msg.(settleMsg)
	if !ok || m.id != c || c.stopped || m.seq != c.seq {
		return false
	}
	next := c.classify(c.width)
	if next == c.mode {
		return false
	}
	prev := c.mode
	c.mode = next
	c.log.Info("Viewport mode changed",
		zap.Stringer("from", prev),
		zap.Stringer("to", next),
		zap.Int("width", c.width))

	// Copy in case a subscriber unsubscribes while being notified
	subs := make([]func(Mode), 0, len(c.subs))
	for id := 0; id < c.nextID; id++ {
		if fn, ok := c.subs[id]; ok {
			subs = append(subs, fn)
		}
	}
	for _, fn := range subs {
		fn(next)
	}
	if c.bus != nil {
		c.bus.Publish(eventbus.ModeChangedEvent{From: prev, To: next, Width: c.width})
	}
	return true
}

// Subscribe registers fn for mode changes and returns its unsubscribe function
func (c *Classifier) Subscribe(fn func(Mode)) func() {
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	return func() { delete(c.subs, id) }
}

// SubscriberCount returns the number of live mode subscribers
func (c *Classifier) SubscriberCount() int {
	return len(c.subs)
}

// Stop cancels any pending settle and ignores later resizes
func (c *Classifier) Stop() {
	c.stopped = true
	c.seq++
}
