package ui

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"showcase/internal/slider"
)

func TestRenderHelpContent(t *testing.T) {
	out := ansi.Strip(NewHelpRenderer().RenderHelpContentPlain(DefaultKeyMap(), slider.DefaultKeyMap()))

	for _, want := range []string{
		"Showcase Help",
		"Page", "Sliders", "Mouse", "Other",
		"scroll down", "next slider", "left panel", "first panel",
		"flip direction", "reload", "quit",
	} {
		assert.Contains(t, out, want)
	}
}

func TestHelpKeysIncludeFocusedSlider(t *testing.T) {
	sk := slider.DefaultKeyMap()
	withSlider := helpKeys{page: DefaultKeyMap(), slider: &sk}
	without := helpKeys{page: DefaultKeyMap()}

	assert.Len(t, withSlider.ShortHelp(), len(without.ShortHelp())+2)
	assert.Len(t, withSlider.FullHelp(), 3)
	assert.Len(t, without.FullHelp(), 2)
}

func TestShowHelpInPagerNeedsProgram(t *testing.T) {
	err := NewHelpOps(nil).ShowHelpInPager("help")
	assert.EqualError(t, err, "program not set")
}
