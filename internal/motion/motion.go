// Package motion holds the process-wide animation settings shared by every
// scroll-linked animation. Registration happens once per process.
package motion

import (
	"sync"
	"time"

	"github.com/charmbracelet/harmonica"
)

const (
	DefaultFPS = 60

	// Spring tuning for smooth page scrolls: fast, with no visible overshoot.
	angularFrequency = 9.0
	dampingRatio     = 1.0
)

// Settings are fixed after registration
type Settings struct {
	FPS           int
	FrameInterval time.Duration
	Spring        harmonica.Spring
}

var (
	once     sync.Once
	settings Settings
)

// Register configures the animation settings. Only the first call has any
// effect; later calls return false and leave the settings untouched.
func Register(fps int) bool {
	registered := false
	once.Do(func() {
		if fps <= 0 {
			fps = DefaultFPS
		}
		settings = Settings{
			FPS:           fps,
			FrameInterval: time.Second / time.Duration(fps),
			Spring:        harmonica.NewSpring(harmonica.FPS(fps), angularFrequency, dampingRatio),
		}
		registered = true
	})
	return registered
}

// Current returns the registered settings, registering defaults if needed
func Current() Settings {
	Register(DefaultFPS)
	return settings
}

// FrameInterval is the delay between animation frames
func FrameInterval() time.Duration {
	return Current().FrameInterval
}

// Spring returns the shared spring used to animate scroll positions
func Spring() harmonica.Spring {
	return Current().Spring
}
