package slider

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"showcase/internal/domain"
)

func TestIndicatorLabel(t *testing.T) {
	ind := NewIndicator()

	tests := []struct {
		index, total int
		want         string
	}{
		{0, 0, "0 / 0"},
		{0, 1, "1 / 1"},
		{2, 5, "3 / 5"},
		{4, 5, "5 / 5"},
		{9, 5, "5 / 5"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ind.Label(tt.index, tt.total))
	}
}

func TestIndicatorGlyphs(t *testing.T) {
	ind := NewIndicator()

	prev, next := ind.Glyphs(domain.LTR)
	assert.Equal(t, "←", prev)
	assert.Equal(t, "→", next)

	prev, next = ind.Glyphs(domain.RTL)
	assert.Equal(t, "→", prev, "RTL previous points right")
	assert.Equal(t, "←", next)
}

func TestIndicatorEnabledStates(t *testing.T) {
	assert.False(t, PreviousEnabled(0, 5))
	assert.True(t, NextEnabled(0, 5))
	assert.True(t, PreviousEnabled(4, 5))
	assert.False(t, NextEnabled(4, 5))

	for _, total := range []int{0, 1} {
		assert.False(t, PreviousEnabled(0, total))
		assert.False(t, NextEnabled(0, total))
	}
}

func TestIndicatorRender(t *testing.T) {
	ind := NewIndicator()

	out := ansi.Strip(ind.Render(1, 5, domain.LTR, false))
	assert.True(t, strings.HasPrefix(out, " ← "), out)
	assert.Contains(t, out, " → ")
	assert.True(t, strings.HasSuffix(out, "2 / 5"), out)

	// RTL draws the next glyph in the left slot, so the bar keeps ← then →
	prev, next := ind.Glyphs(domain.RTL)
	rtl := ansi.Strip(ind.Render(1, 5, domain.RTL, false))
	assert.True(t, strings.HasPrefix(rtl, " "+next+" "), rtl)
	assert.Contains(t, rtl, " "+prev+" ")

	empty := ansi.Strip(ind.Render(0, 0, domain.RTL, true))
	assert.True(t, strings.HasSuffix(empty, "0 / 0"))
}

func TestIndicatorHitTest(t *testing.T) {
	ind := NewIndicator()
	// " ← " + " " + " → "
	leftX, rightX := 1, 5

	assert.Equal(t, ButtonNone, ind.HitTest(leftX, 0, 5, domain.LTR), "previous is disabled at the first panel")
	assert.Equal(t, ButtonNext, ind.HitTest(rightX, 0, 5, domain.LTR))
	assert.Equal(t, ButtonPrevious, ind.HitTest(leftX, 2, 5, domain.LTR))
	assert.Equal(t, ButtonNone, ind.HitTest(3, 2, 5, domain.LTR), "the gap between buttons")
	assert.Equal(t, ButtonNone, ind.HitTest(20, 2, 5, domain.LTR))

	assert.Equal(t, ButtonNext, ind.HitTest(leftX, 2, 5, domain.RTL), "the left arrow advances in RTL")
	assert.Equal(t, ButtonPrevious, ind.HitTest(rightX, 2, 5, domain.RTL))
	assert.Equal(t, ButtonNone, ind.HitTest(leftX, 4, 5, domain.RTL))

	assert.Equal(t, ButtonNone, ind.HitTest(leftX, 0, 1, domain.LTR))
	assert.Equal(t, ButtonNone, ind.HitTest(rightX, 0, 1, domain.LTR))
}

func TestIndicatorIntent(t *testing.T) {
	ind := NewIndicator()

	intent, ok := ind.Intent(ButtonNext)
	assert.True(t, ok)
	assert.Equal(t, domain.NavNext, intent.Kind)

	_, ok = ind.Intent(ButtonNone)
	assert.False(t, ok)
}
