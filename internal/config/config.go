package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"showcase/internal/domain"
	"showcase/internal/eventbus"
)

// DefaultFileName is looked up in the working directory when no path is given
const DefaultFileName = ".showcase.toml"

const (
	DefaultCompactThreshold = 100
	DefaultResizeDebounceMS = 150
	DefaultScrollStep       = 3
	DefaultFPS              = 60
	DefaultAutoAdvanceMS    = 5000
	DefaultSliderHeight     = 10
)

// Config represents the showcase content and settings
type Config struct {
	Version  int            `toml:"version"`
	UI       UISettings     `toml:"ui"`
	Hero     Hero           `toml:"hero"`
	Overview Overview       `toml:"overview"`
	Sliders  []SliderConfig `toml:"sliders"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	CompactThreshold int    `toml:"compact_threshold"`
	ResizeDebounceMS int    `toml:"resize_debounce_ms"`
	ScrollStep       int    `toml:"scroll_step"`
	Direction        string `toml:"direction"`
	FPS              int    `toml:"fps"`
}

// Debounce is the resize settle delay
func (u UISettings) Debounce() time.Duration {
	return time.Duration(u.ResizeDebounceMS) * time.Millisecond
}

// Hero is the two-line page opener
type Hero struct {
	Line1 string `toml:"line1"`
	Line2 string `toml:"line2"`
}

// Overview is the stats section
type Overview struct {
	Heading string `toml:"heading"`
	Stats   []Stat `toml:"stats"`
}

type Stat struct {
	Title    string `toml:"title"`
	Subtitle string `toml:"subtitle,omitempty"`
	Value    string `toml:"value"`
	Unit     string `toml:"unit"`
}

// SliderConfig describes one slider on the page
type SliderConfig struct {
	ID            string              `toml:"id"`
	Title         string              `toml:"title"`
	Direction     string              `toml:"direction,omitempty"` // overrides ui.direction
	AutoAdvanceMS *int                `toml:"auto_advance_ms,omitempty"`
	ShowIndicator bool                `toml:"show_indicator"`
	Height        int                 `toml:"height,omitempty"`
	ScrollPan     *bool               `toml:"scroll_pan,omitempty"`
	Sizing        []float64           `toml:"sizing,omitempty"`
	Breakpoints   []domain.Breakpoint `toml:"breakpoints,omitempty"`
	Panels        []PanelConfig       `toml:"panels"`
}

// PanelConfig is one slider panel; Body is markdown
type PanelConfig struct {
	Title   string `toml:"title"`
	Body    string `toml:"body,omitempty"`
	Caption string `toml:"caption,omitempty"`
}

// AutoAdvance returns the compact auto-advance delay; zero disables it
func (s SliderConfig) AutoAdvance() time.Duration {
	ms := DefaultAutoAdvanceMS
	if s.AutoAdvanceMS != nil {
		ms = *s.AutoAdvanceMS
	}
	if ms <= 0 {
		return 0
	}
	return time.Duration(ms) * time.Millisecond
}

// ScrollPanEnabled reports whether the slider pans with the page when expanded
func (s SliderConfig) ScrollPanEnabled() bool {
	return s.ScrollPan == nil || *s.ScrollPan
}

// DirectionFor resolves the slider's direction against the page direction
func (s SliderConfig) DirectionFor(page domain.Direction) domain.Direction {
	if s.Direction == "" {
		return page
	}
	return domain.ParseDirection(s.Direction)
}

// Direction returns the page-wide reading direction
func (c *Config) Direction() domain.Direction {
	return domain.ParseDirection(c.UI.Direction)
}

// Normalize fills zero values with defaults
func (c *Config) Normalize() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.UI.CompactThreshold <= 0 {
		c.UI.CompactThreshold = DefaultCompactThreshold
	}
	if c.UI.ResizeDebounceMS <= 0 {
		c.UI.ResizeDebounceMS = DefaultResizeDebounceMS
	}
	if c.UI.ScrollStep <= 0 {
		c.UI.ScrollStep = DefaultScrollStep
	}
	if c.UI.FPS <= 0 {
		c.UI.FPS = DefaultFPS
	}
	if c.UI.Direction == "" {
		c.UI.Direction = domain.LTR.String()
	}
	for i := range c.Sliders {
		if c.Sliders[i].Height <= 0 {
			c.Sliders[i].Height = DefaultSliderHeight
		}
	}
}

// Validate reports configuration the page cannot be built from
func (c *Config) Validate() error {
	var errs []error
	seen := make(map[string]bool)
	for i, s := range c.Sliders {
		if s.ID == "" {
			errs = append(errs, fmt.Errorf("slider %d: missing id", i))
			continue
		}
		if seen[s.ID] {
			errs = append(errs, fmt.Errorf("slider %q: duplicate id", s.ID))
		}
		seen[s.ID] = true
		for _, bp := range s.Breakpoints {
			if bp.MinWidth < 0 {
				errs = append(errs, fmt.Errorf("slider %q: breakpoint min_width %d is negative", s.ID, bp.MinWidth))
			}
		}
	}
	return errors.Join(errs...)
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	Reload() (*Config, error)
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service for path, or for
// DefaultFileName in the working directory when path is empty
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultFileName
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

func (cs *configService) Path() string { return cs.filePath }

// Load reads the configuration file. A missing file is created from the
// defaults.
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := cs.Save(cfg); err != nil {
			return nil, err
		}
		cs.publish()
		return cfg, nil
	}

	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		return nil, err
	}
	cs.publish()
	return cfg, nil
}

// Reload re-reads an existing file. Unlike Load it never writes defaults, so
// a file deleted mid-edit is reported instead of silently recreated.
// ContentReloadedEvent handlers run on the caller's goroutine, which is the
// watcher's for file changes.
func (cs *configService) Reload() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		return nil, err
	}
	cs.publish()
	return cfg, nil
}

func (cs *configService) publish() {
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ContentReloadedEvent{Path: cs.filePath})
	}
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		UI: UISettings{
			CompactThreshold: DefaultCompactThreshold,
			ResizeDebounceMS: DefaultResizeDebounceMS,
			ScrollStep:       DefaultScrollStep,
			Direction:        domain.LTR.String(),
			FPS:              DefaultFPS,
		},
		Hero: Hero{
			Line1: "A space where",
			Line2: "life is amplified",
		},
		Overview: Overview{
			Heading: "Overview",
			Stats: []Stat{
				{Title: "Miraf Residences", Value: "152", Unit: "units"},
				{Title: "Business Tower", Subtitle: "Offices Area", Value: "20,202", Unit: "sqm"},
				{Title: "Hotel INDIGO", Value: "240", Unit: "keys"},
				{Title: "The Plaza at Miraf", Subtitle: "Retail + Clinic NLA", Value: "28,992", Unit: "sqm"},
			},
		},
		Sliders: []SliderConfig{
			{
				ID:            "district",
				Title:         "The District",
				ShowIndicator: true,
				Height:        DefaultSliderHeight,
				Panels: []PanelConfig{
					{Title: "About the District", Body: "Miraf District is a mixed-use development in **Khobar** featuring different components."},
					{Title: "Residential towers", Body: "Miraf Residence blends comfort and sophistication, offering a peaceful sanctuary surrounded by lush landscapes and premium amenities."},
					{Title: "Retail", Body: "A vibrant hub where commerce, entertainment, and community seamlessly converge."},
					{Title: "Hospitality", Body: "Hotel Indigo elevates Miraf District with modern elegance, blending local charm, art and culture."},
					{Title: "Offices", Body: "Miraf Offices span *18 floors*, blending refined design with panoramic views."},
				},
			},
			{
				ID:            "gallery",
				Title:         "Gallery",
				ShowIndicator: true,
				Height:        8,
				Sizing:        []float64{0.5},
				Breakpoints: []domain.Breakpoint{
					{MinWidth: 0, Visible: 1, Gap: 0},
					{MinWidth: 60, Visible: 2, Gap: 2},
				},
				Panels: []PanelConfig{
					{Title: "The Plaza", Caption: "Retail and dining"},
					{Title: "Residences", Caption: "152 units"},
					{Title: "Hotel Indigo", Caption: "240 keys"},
					{Title: "Business Tower", Caption: "20,202 sqm"},
				},
			},
		},
	}
}
