package slider

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"showcase/internal/domain"
	"showcase/internal/eventbus"
)

// State is the Coordinator's active interaction model
type State int

const (
	CompactActive State = iota
	ExpandedActive
)

func (s State) String() string {
	if s == ExpandedActive {
		return "expanded"
	}
	return "compact"
}

// CoordinatorOptions is everything the Coordinator needs to build either engine
type CoordinatorOptions struct {
	ID               string
	Total            int
	Direction        domain.Direction
	AutoAdvance      time.Duration
	Breakpoints      domain.Breakpoints
	Sizing           domain.Sizing
	SwipeThreshold   int
	ScrollPanEnabled bool
}

// Coordinator owns the slider's engine lifecycle. At most one engine is live
// at a time and every replacement goes through release first, so two engines
// never hold scroll listeners or pins together. It is also the single source
// of the index shown to the user.
type Coordinator struct {
	opts     CoordinatorOptions
	scroller Scroller
	bus      eventbus.EventBus
	log      *zap.Logger

	mode   domain.Mode
	active Engine
	index  int
	bounds Bounds

	pending    bool
	rebuilding bool
	queued     bool
	closed     bool

	onIndex func(index int)
}

// NewCoordinator creates a coordinator in the given mode. No engine is bound
// until the first Layout.
func NewCoordinator(opts CoordinatorOptions, scroller Scroller, mode domain.Mode, bus eventbus.EventBus, log *zap.Logger) *Coordinator {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Total < 0 {
		opts.Total = 0
	}
	return &Coordinator{
		opts:     opts,
		scroller: scroller,
		bus:      bus,
		log:      log.With(zap.String("slider", opts.ID)),
		mode:     mode,
		pending:  true,
	}
}

// OnIndexChange registers the consumer of index changes
func (c *Coordinator) OnIndexChange(fn func(index int)) {
	c.onIndex = fn
}

// State returns which engine the current mode calls for
func (c *Coordinator) State() State {
	if c.mode == domain.Expanded && c.opts.ScrollPanEnabled {
		return ExpandedActive
	}
	return CompactActive
}

// Mode returns the last mode the coordinator was told about
func (c *Coordinator) Mode() domain.Mode { return c.mode }

// Active returns the bound engine, or nil between teardown and rebuild
func (c *Coordinator) Active() Engine { return c.active }

// Pending reports whether an engine is waiting for a measurable layout
func (c *Coordinator) Pending() bool { return c.pending }

func (c *Coordinator) Index() int                  { return c.index }
func (c *Coordinator) Total() int                  { return c.opts.Total }
func (c *Coordinator) Direction() domain.Direction { return c.opts.Direction }
func (c *Coordinator) Bounds() Bounds              { return c.bounds }

// PinSpan is the scroll distance the active engine consumes
func (c *Coordinator) PinSpan() float64 {
	if sp, ok := c.active.(*ScrollPanEngine); ok {
		return sp.PinSpan()
	}
	return 0
}

// SetMode switches engines when the mode calls for a different one
func (c *Coordinator) SetMode(mode domain.Mode) tea.Cmd {
	if mode == c.mode {
		return nil
	}
	before := c.State()
	c.mode = mode
	if c.State() == before {
		return nil
	}
	return c.rebuild("mode " + mode.String())
}

// SetPanels replaces the panel count; the engine is rebuilt around it
func (c *Coordinator) SetPanels(total int) tea.Cmd {
	if total < 0 {
		total = 0
	}
	c.opts.Total = total
	cmd := c.rebuild("panels")
	if i := clampIndex(c.index, total); i != c.index {
		c.setIndex(i)
	}
	return cmd
}

// SetDirection rebuilds the engine for a new reading direction
func (c *Coordinator) SetDirection(dir domain.Direction) tea.Cmd {
	if dir == c.opts.Direction {
		return nil
	}
	c.opts.Direction = dir
	return c.rebuild("direction " + dir.String())
}

// Layout records the container's measured bounds. It binds a pending engine
// and rebuilds the scroll-pan engine when its geometry changed.
func (c *Coordinator) Layout(b Bounds) tea.Cmd {
	changed := b != c.bounds
	c.bounds = b
	if c.active == nil {
		if c.pending || changed {
			return c.rebuild("layout")
		}
		return nil
	}
	switch e := c.active.(type) {
	case *ScrollPanEngine:
		if changed {
			return c.rebuild("resize")
		}
	case *PagedEngine:
		e.Resize(b.Width)
	}
	return nil
}

func (c *Coordinator) Next() tea.Cmd {
	if c.active == nil {
		return nil
	}
	return c.active.Next()
}

func (c *Coordinator) Previous() tea.Cmd {
	if c.active == nil {
		return nil
	}
	return c.active.Previous()
}

func (c *Coordinator) GoTo(index int) tea.Cmd {
	if c.active == nil {
		return nil
	}
	return c.active.GoTo(index)
}

// Navigate applies a navigation intent to the active engine
func (c *Coordinator) Navigate(intent domain.NavIntent) tea.Cmd {
	switch intent.Kind {
	case domain.NavPrevious:
		return c.Previous()
	case domain.NavNext:
		return c.Next()
	default:
		return c.GoTo(intent.Index)
	}
}

// Update forwards engine messages (timers, pointer input) to the active engine
func (c *Coordinator) Update(msg tea.Msg) tea.Cmd {
	if c.active == nil {
		return nil
	}
	return c.active.Update(msg)
}

// Close releases the active engine for good
func (c *Coordinator) Close() {
	c.closed = true
	c.release()
}

// rebuild tears down the active engine and binds a fresh one. A rebuild
// requested while one is running is queued and runs after it completes.
func (c *Coordinator) rebuild(reason string) tea.Cmd {
	if c.rebuilding {
		c.queued = true
		return nil
	}
	c.rebuilding = true
	defer func() { c.rebuilding = false }()

	var cmds []tea.Cmd
	for {
		c.queued = false
		cmds = append(cmds, c.rebuildOnce(reason))
		if !c.queued {
			break
		}
		reason = "queued"
	}
	return tea.Batch(cmds...)
}

func (c *Coordinator) rebuildOnce(reason string) tea.Cmd {
	c.release()
	if c.closed {
		return nil
	}

	eng := c.newEngine()
	eng.OnIndexChange(func(i int) { c.forward(eng, i) })
	cmd, err := eng.Attach(c.bounds)
	if err != nil {
		eng.Detach()
		c.pending = true
		if errors.Is(err, ErrNotMeasured) {
			c.log.Debug("Engine attach deferred until layout", zap.String("engine", eng.Name()), zap.String("reason", reason))
		} else {
			c.log.Warn("Engine attach failed", zap.String("engine", eng.Name()), zap.Error(err))
		}
		return nil
	}

	c.active = eng
	c.pending = false
	c.log.Debug("Engine attached",
		zap.String("engine", eng.Name()),
		zap.String("reason", reason),
		zap.Int("index", eng.Index()),
		zap.Int("total", eng.Total()))
	if c.bus != nil {
		c.bus.Publish(eventbus.EngineAttachedEvent{SliderID: c.opts.ID, Engine: eng.Name()})
	}
	// The engine may have derived a different index from the scroll position
	c.forward(eng, eng.Index())
	return cmd
}

func (c *Coordinator) newEngine() Engine {
	if c.State() == ExpandedActive {
		return NewScrollPanEngine(ScrollPanOptions{
			Total:     c.opts.Total,
			Direction: c.opts.Direction,
			Sizing:    c.opts.Sizing,
		}, c.scroller, c.index)
	}
	return NewPagedEngine(PagedOptions{
		Total:          c.opts.Total,
		Direction:      c.opts.Direction,
		AutoAdvance:    c.opts.AutoAdvance,
		Breakpoints:    c.opts.Breakpoints,
		SwipeThreshold: c.opts.SwipeThreshold,
	}, c.index)
}

func (c *Coordinator) release() {
	if c.active == nil {
		return
	}
	eng := c.active
	c.active = nil
	eng.Detach()
	c.log.Debug("Engine detached", zap.String("engine", eng.Name()))
	if c.bus != nil {
		c.bus.Publish(eventbus.EngineDetachedEvent{SliderID: c.opts.ID, Engine: eng.Name()})
	}
}

// forward publishes index changes from the active engine only
func (c *Coordinator) forward(from Engine, index int) {
	if from != c.active {
		return
	}
	c.setIndex(index)
}

func (c *Coordinator) setIndex(index int) {
	if index == c.index {
		return
	}
	c.index = index
	if c.onIndex != nil {
		c.onIndex(index)
	}
	if c.bus != nil {
		c.bus.Publish(eventbus.IndexChangedEvent{SliderID: c.opts.ID, Index: index, Total: c.opts.Total})
	}
}
