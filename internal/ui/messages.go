package ui

import (
	"showcase/internal/config"
)

// ContentReloadedMsg delivers configuration read after the file changed
type ContentReloadedMsg struct {
	Config *config.Config
}

// ContentErrorMsg reports a configuration file that could not be loaded
type ContentErrorMsg struct {
	Err error
}

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
