package slider

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"showcase/internal/domain"
	"showcase/internal/eventbus"
	"showcase/internal/page"
)

var measured = Bounds{Offset: testOffset, Width: testWidth, Height: testHeight}

type coordFixture struct {
	bus     eventbus.EventBus
	page    *page.Window
	c       *Coordinator
	indexes []int
	events  []eventbus.DomainEvent
}

func newCoordFixture(t *testing.T, total int, mode domain.Mode) *coordFixture {
	t.Helper()
	f := &coordFixture{bus: eventbus.New(nil)}
	f.page = page.NewWindow(f.bus, nil)
	f.page.SetContentHeight(100)
	f.page.SetViewportHeight(20)

	for _, et := range []eventbus.EventType{eventbus.EventIndexChanged, eventbus.EventEngineAttached, eventbus.EventEngineDetached} {
		f.bus.Subscribe(et, func(e eventbus.DomainEvent) { f.events = append(f.events, e) })
	}

	f.c = NewCoordinator(CoordinatorOptions{
		ID:               "test",
		Total:            total,
		AutoAdvance:      time.Second,
		ScrollPanEnabled: true,
	}, f.page, mode, f.bus, nil)
	f.c.OnIndexChange(func(i int) { f.indexes = append(f.indexes, i) })
	return f
}

// assertSingleEngine checks that at most one engine holds page resources
func (f *coordFixture) assertSingleEngine(t *testing.T) {
	t.Helper()
	assert.LessOrEqual(t, f.page.ListenerCount(), 1, "scroll listeners leaked")
	assert.LessOrEqual(t, f.page.PinCount(), 1, "pins leaked")
	if f.c.State() == CompactActive {
		assert.Zero(t, f.page.ListenerCount(), "compact mode holds no scroll listener")
		assert.Zero(t, f.page.PinCount())
	}
}

func TestCoordinatorNavigationBeforeLayoutIsNoop(t *testing.T) {
	f := newCoordFixture(t, 5, domain.Compact)

	assert.Nil(t, f.c.Active())
	assert.True(t, f.c.Pending())
	assert.Nil(t, f.c.Next())
	assert.Nil(t, f.c.GoTo(3))
	assert.Equal(t, 0, f.c.Index())
	assert.Empty(t, f.indexes)
}

func TestCoordinatorBindsOnFirstLayout(t *testing.T) {
	f := newCoordFixture(t, 5, domain.Compact)

	cmd := f.c.Layout(measured)
	assert.NotNil(t, cmd, "the paged engine schedules auto-advance")
	require.NotNil(t, f.c.Active())
	assert.Equal(t, "paged", f.c.Active().Name())
	assert.Equal(t, CompactActive, f.c.State())
	assert.False(t, f.c.Pending())
	f.assertSingleEngine(t)
}

func TestCoordinatorModeFlipPreservesIndex(t *testing.T) {
	f := newCoordFixture(t, 5, domain.Compact)
	f.c.Layout(measured)

	f.c.GoTo(3)
	require.Equal(t, 3, f.c.Index())

	f.c.SetMode(domain.Expanded)
	require.NotNil(t, f.c.Active())
	assert.Equal(t, "scroll-pan", f.c.Active().Name())
	assert.Equal(t, 3, f.c.Index(), "the expanded engine starts at the shown panel")
	f.assertSingleEngine(t)

	f.c.SetMode(domain.Compact)
	assert.Equal(t, "paged", f.c.Active().Name())
	assert.Equal(t, 3, f.c.Index())
	f.assertSingleEngine(t)

	assert.Equal(t, []int{3}, f.indexes, "a mode flip is not an index change")
}

func TestCoordinatorRapidFlipsNeverStackEngines(t *testing.T) {
	f := newCoordFixture(t, 5, domain.Compact)
	f.c.Layout(measured)

	for i := 0; i < 50; i++ {
		if i%2 == 0 {
			f.c.SetMode(domain.Expanded)
		} else {
			f.c.SetMode(domain.Compact)
		}
		f.assertSingleEngine(t)
	}
	assert.Equal(t, CompactActive, f.c.State())

	attached, detached := 0, 0
	for _, e := range f.events {
		switch e.(type) {
		case eventbus.EngineAttachedEvent:
			attached++
		case eventbus.EngineDetachedEvent:
			detached++
		}
	}
	assert.Equal(t, 51, attached)
	assert.Equal(t, 50, detached, "every engine but the live one was released")
}

func TestCoordinatorSameModeIsNoop(t *testing.T) {
	f := newCoordFixture(t, 5, domain.Expanded)
	f.c.Layout(measured)
	eng := f.c.Active()

	assert.Nil(t, f.c.SetMode(domain.Expanded))
	assert.Same(t, eng, f.c.Active())
}

func TestCoordinatorDefersUntilMeasured(t *testing.T) {
	f := newCoordFixture(t, 5, domain.Expanded)

	f.c.Layout(Bounds{Offset: testOffset})
	assert.Nil(t, f.c.Active())
	assert.True(t, f.c.Pending())
	assert.Zero(t, f.page.ListenerCount())
	assert.Nil(t, f.c.Next())

	f.c.Layout(measured)
	require.NotNil(t, f.c.Active())
	assert.Equal(t, "scroll-pan", f.c.Active().Name())
	assert.False(t, f.c.Pending())
	assert.Equal(t, 1, f.page.ListenerCount())
}

func TestCoordinatorExpandedScrollDrivesIndex(t *testing.T) {
	f := newCoordFixture(t, 5, domain.Expanded)
	f.c.Layout(measured)

	f.page.ScrollTo(testOffset+float64(3*testWidth), false)
	assert.Equal(t, 3, f.c.Index())

	f.c.Previous()
	for i := 0; f.page.Step(); i++ {
		require.Less(t, i, 10000)
	}
	assert.Equal(t, 2, f.c.Index())
	assert.Equal(t, []int{3, 2}, f.indexes)

	var published []int
	for _, e := range f.events {
		if ic, ok := e.(eventbus.IndexChangedEvent); ok {
			assert.Equal(t, "test", ic.SliderID)
			assert.Equal(t, 5, ic.Total)
			published = append(published, ic.Index)
		}
	}
	assert.Equal(t, f.indexes, published)
}

func TestCoordinatorResizeRebuildsExpanded(t *testing.T) {
	f := newCoordFixture(t, 5, domain.Expanded)
	f.c.Layout(measured)
	first := f.c.Active()

	assert.Nil(t, f.c.Layout(measured))
	assert.Same(t, first, f.c.Active(), "unchanged bounds keep the engine")

	wider := measured
	wider.Width = 160
	f.c.Layout(wider)
	assert.NotSame(t, first, f.c.Active())
	assert.False(t, first.Attached())
	assert.Equal(t, float64(4*160), f.c.PinSpan())
	f.assertSingleEngine(t)
}

func TestCoordinatorCompactResizeKeepsEngine(t *testing.T) {
	f := newCoordFixture(t, 5, domain.Compact)
	f.c.Layout(measured)
	first := f.c.Active()

	f.c.Layout(Bounds{Width: 40, Height: 10})
	assert.Same(t, first, f.c.Active())
	assert.Zero(t, f.c.PinSpan())
}

func TestCoordinatorStaleEngineIsIgnored(t *testing.T) {
	f := newCoordFixture(t, 5, domain.Compact)
	f.c.Layout(measured)
	old := f.c.Active()

	f.c.SetMode(domain.Expanded)
	f.c.forward(old, 4)
	assert.Equal(t, 0, f.c.Index(), "a released engine cannot move the index")
}

func TestCoordinatorEmptyAndSingle(t *testing.T) {
	for _, mode := range []domain.Mode{domain.Compact, domain.Expanded} {
		empty := newCoordFixture(t, 0, mode)
		empty.c.Layout(measured)
		assert.Equal(t, 0, empty.c.Index())
		assert.Equal(t, 0, empty.c.Total())
		empty.c.Next()
		assert.Empty(t, empty.indexes)
		assert.Zero(t, empty.page.PinCount())

		single := newCoordFixture(t, 1, mode)
		single.c.Layout(measured)
		single.c.Next()
		single.c.Previous()
		assert.Equal(t, 0, single.c.Index())
		assert.Zero(t, single.page.ListenerCount())
		assert.Zero(t, single.c.PinSpan())
	}
}

func TestCoordinatorSetPanelsClampsIndex(t *testing.T) {
	f := newCoordFixture(t, 5, domain.Compact)
	f.c.Layout(measured)
	f.c.GoTo(4)

	f.c.SetPanels(2)
	assert.Equal(t, 1, f.c.Index())
	assert.Equal(t, 2, f.c.Active().Total())
}

func TestCoordinatorScrollPanDisabledForcesPaged(t *testing.T) {
	f := newCoordFixture(t, 5, domain.Compact)
	f.c.opts.ScrollPanEnabled = false
	f.c.Layout(measured)
	eng := f.c.Active()

	assert.Nil(t, f.c.SetMode(domain.Expanded))
	assert.Equal(t, CompactActive, f.c.State())
	assert.Same(t, eng, f.c.Active())
	assert.Zero(t, f.page.PinCount())
}

func TestCoordinatorDirectionRebuilds(t *testing.T) {
	f := newCoordFixture(t, 5, domain.Expanded)
	f.c.Layout(measured)
	f.page.ScrollTo(testOffset+float64(testWidth), false)
	require.Equal(t, 1, f.c.Index())

	f.c.SetDirection(domain.RTL)
	assert.Equal(t, domain.RTL, f.c.Direction())
	assert.Equal(t, 1, f.c.Index())
	assert.Equal(t, testWidth, f.c.Active().(*ScrollPanEngine).Translation())
	f.assertSingleEngine(t)
}

func TestCoordinatorClose(t *testing.T) {
	f := newCoordFixture(t, 5, domain.Expanded)
	f.c.Layout(measured)
	f.c.Close()

	assert.Nil(t, f.c.Active())
	assert.Zero(t, f.page.ListenerCount())
	assert.Zero(t, f.page.PinCount())

	f.c.SetMode(domain.Compact)
	assert.Nil(t, f.c.Active(), "a closed coordinator never rebinds")
}

func TestCoordinatorRebuildKeepsScrollInsideSpan(t *testing.T) {
	f := newCoordFixture(t, 5, domain.Expanded)
	f.page.SetContentHeight(30)
	f.c.Layout(Bounds{Offset: 5, Width: 40, Height: testHeight})

	f.page.ScrollBy(125)
	require.Equal(t, 3, f.c.Index())

	f.c.Layout(Bounds{Offset: 5, Width: 42, Height: testHeight})
	assert.Equal(t, 125.0, f.page.ScrollY(), "re-pinning must not move the page")
	assert.Equal(t, 3, f.c.Index())

	f.c.SetDirection(domain.RTL)
	assert.Equal(t, 125.0, f.page.ScrollY())
	assert.Equal(t, 3, f.c.Index())
	f.assertSingleEngine(t)
}

func TestCoordinatorModeFlipShowsSeededPanel(t *testing.T) {
	f := newCoordFixture(t, 5, domain.Compact)
	f.c.Layout(measured)
	f.c.GoTo(3)

	f.c.SetMode(domain.Expanded)
	sp := f.c.Active().(*ScrollPanEngine)
	assert.Equal(t, 3, f.c.Index())
	assert.Equal(t, -3*testWidth, sp.Translation(), "the strip shows the panel the indicator names")

	f.c.Next()
	for i := 0; f.page.Step(); i++ {
		require.Less(t, i, 10000)
	}
	assert.Equal(t, 4, f.c.Index(), "next steps from the shown panel")
	assert.False(t, sp.Seeded())
}
