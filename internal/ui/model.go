package ui

import (
	"reflect"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"go.uber.org/zap"

	"showcase/internal/config"
	"showcase/internal/domain"
	"showcase/internal/eventbus"
	"showcase/internal/page"
	"showcase/internal/slider"
	"showcase/internal/ui/views"
	"showcase/internal/viewport"
)

const (
	pagePadding  = 2 // columns on each side of the page
	statusHeight = 1
)

type blockKind int

const (
	textBlock blockKind = iota
	sliderBlock
)

// block is one vertical section of the page
type block struct {
	kind   blockKind
	render func(width int) string // text blocks
	slider int                    // slider blocks, index into Model.sliders
	top    int                    // first document row
	height int
}

// section is a slider together with the configuration it was built from
type section struct {
	cfg   config.SliderConfig
	model *slider.Model
}

// Model represents the UI state
type Model struct {
	bus       eventbus.EventBus
	config    *config.Config
	configSvc config.ConfigService
	log       *zap.Logger

	width  int
	height int

	window     *page.Window
	classifier *viewport.Classifier
	modeCmds   []tea.Cmd // queued by the mode subscription, returned from Update
	unsubMode  func()
	direction  domain.Direction
	sliders    []*section
	blocks     []block
	focus      int // index into sliders, -1 when there are none

	// drag follows the slider a press started in until release
	drag    *section
	dragTop int

	keys         KeyMap
	help         help.Model
	renderer     *views.Renderer
	markdown     *views.Markdown
	helpRenderer *HelpRenderer
	helpOps      *HelpOps

	status      string
	statusError bool
	inPagerMode bool // tracks if we're currently in pager mode

	// Program reference for terminal management
	program *tea.Program
	onReady func()
}

// NewModel creates the page. width is the terminal width known before the
// program starts; it decides the first mode so sliders never start on the
// wrong engine.
func NewModel(cfg *config.Config, configSvc config.ConfigService, bus eventbus.EventBus, log *zap.Logger, width int) *Model {
	if log == nil {
		log = zap.NewNop()
	}
	classifier := viewport.NewClassifier(cfg.UI.CompactThreshold, cfg.UI.Debounce(), width)
	classifier.SetBus(bus)
	classifier.SetLogger(log)

	m := &Model{
		bus:          bus,
		config:       cfg,
		configSvc:    configSvc,
		log:          log,
		window:       page.NewWindow(bus, log),
		classifier:   classifier,
		direction:    cfg.Direction(),
		focus:        -1,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		renderer:     views.NewRenderer(),
		markdown:     views.NewMarkdown("dark"),
		helpRenderer: NewHelpRenderer(),
		helpOps:      NewHelpOps(nil),
	}
	for _, sc := range cfg.Sliders {
		m.sliders = append(m.sliders, m.newSection(sc))
	}
	m.setFocus(0)

	m.unsubMode = classifier.Subscribe(func(mode domain.Mode) {
		m.modeCmds = append(m.modeCmds, m.applyMode(mode))
	})
	bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.ErrorEvent); ok {
			m.setStatus(ev.Message, true)
		}
	})

	log.Info("Page created",
		zap.Int("sliders", len(m.sliders)),
		zap.Stringer("mode", classifier.Mode()),
		zap.Stringer("direction", m.direction))
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps.SetProgram(p)
}

// OnReady registers fn to run once, after the first layout
func (m *Model) OnReady(fn func()) {
	m.onReady = fn
}

// SetDirection overrides the page reading direction
func (m *Model) SetDirection(dir domain.Direction) tea.Cmd {
	if dir == m.direction {
		return nil
	}
	m.direction = dir
	var cmds []tea.Cmd
	for _, s := range m.sliders {
		cmds = append(cmds, s.model.SetDirection(s.cfg.DirectionFor(dir)))
	}
	return tea.Batch(cmds...)
}

func (m *Model) Direction() domain.Direction { return m.direction }
func (m *Model) Mode() domain.Mode           { return m.classifier.Mode() }
func (m *Model) Window() *page.Window        { return m.window }

// Slider returns the slider with the given id
func (m *Model) Slider(id string) *slider.Model {
	for _, s := range m.sliders {
		if s.cfg.ID == id {
			return s.model
		}
	}
	return nil
}

// Focused returns the slider receiving key presses, nil when there is none
func (m *Model) Focused() *slider.Model {
	if m.focus < 0 || m.focus >= len(m.sliders) {
		return nil
	}
	return m.sliders[m.focus].model
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return tea.SetWindowTitle("showcase")
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.classifier.Update(msg) {
		cmds := m.modeCmds
		m.modeCmds = nil
		return m, tea.Batch(cmds...)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		cmd := tea.Batch(m.classifier.Observe(msg.Width), m.layout())
		if m.onReady != nil && len(m.blocks) > 0 {
			m.onReady()
			m.onReady = nil
		}
		return m, cmd

	case page.FrameMsg:
		return m, m.window.Update(msg)

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case ContentReloadedMsg:
		return m, m.applyConfig(msg.Config)

	case ContentErrorMsg:
		m.log.Warn("Content reload failed", zap.Error(msg.Err))
		m.setStatus("reload failed: "+msg.Err.Error(), true)
		return m, nil

	case helpPagerMsg:
		if msg.err != nil {
			// Pager failed: log only
			m.log.Warn("Help pager failed", zap.Error(msg.err))
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil
	}

	// Engine messages such as auto-advance ticks find their own slider
	cmds := make([]tea.Cmd, 0, len(m.sliders))
	for _, s := range m.sliders {
		cmds = append(cmds, s.model.Update(msg))
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	step := float64(m.config.UI.ScrollStep)
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Close()
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		return m.fetchHelpPager(m.helpRenderer.RenderHelpContentPlain(m.keys, slider.DefaultKeyMap()))
	case key.Matches(msg, m.keys.Up):
		m.window.ScrollBy(-step)
	case key.Matches(msg, m.keys.Down):
		m.window.ScrollBy(step)
	case key.Matches(msg, m.keys.PageUp):
		m.window.ScrollBy(-float64(m.window.ViewportHeight()))
	case key.Matches(msg, m.keys.PageDown):
		m.window.ScrollBy(float64(m.window.ViewportHeight()))
	case key.Matches(msg, m.keys.Top):
		return m.window.ScrollTo(0, true)
	case key.Matches(msg, m.keys.Bottom):
		return m.window.ScrollTo(m.window.MaxScroll(), true)
	case key.Matches(msg, m.keys.NextFocus):
		m.cycleFocus(1)
	case key.Matches(msg, m.keys.PrevFocus):
		m.cycleFocus(-1)
	case key.Matches(msg, m.keys.Direction):
		cmd := m.SetDirection(m.direction.Flip())
		m.setStatus("direction "+m.direction.String(), false)
		return tea.Batch(cmd, m.layout())
	case key.Matches(msg, m.keys.Reload):
		return m.reload()
	default:
		if s := m.Focused(); s != nil {
			return s.Update(msg)
		}
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.drag != nil && (msg.Action == tea.MouseActionMotion || msg.Action == tea.MouseActionRelease) {
		s := m.drag
		if msg.Action == tea.MouseActionRelease {
			m.drag = nil
		}
		return s.model.Update(m.local(msg, m.dragTop))
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.window.ScrollBy(-float64(m.config.UI.ScrollStep))
		return nil
	case tea.MouseButtonWheelDown:
		m.window.ScrollBy(float64(m.config.UI.ScrollStep))
		return nil
	}

	i, top, ok := m.sliderAt(msg.Y)
	if !ok {
		return nil
	}
	s := m.sliders[i]
	local := m.local(msg, top)
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		m.setFocus(i)
		if local.Y < s.model.PanelHeight() {
			m.drag = s
			m.dragTop = top
		}
	}
	return s.model.Update(local)
}

// sliderAt maps a screen row to the slider drawn there
func (m *Model) sliderAt(y int) (index, top int, ok bool) {
	if y < 0 || y >= m.window.ViewportHeight() {
		return 0, 0, false
	}
	row := m.window.VisualOffset() + y
	for _, b := range m.blocks {
		if b.kind == sliderBlock && row >= b.top && row < b.top+b.height {
			return b.slider, b.top - m.window.VisualOffset(), true
		}
	}
	return 0, 0, false
}

// local converts screen coordinates to slider coordinates
func (m *Model) local(msg tea.MouseMsg, top int) tea.MouseMsg {
	msg.X -= pagePadding
	msg.Y -= top
	return msg
}

func (m *Model) setFocus(i int) {
	if len(m.sliders) == 0 {
		m.focus = -1
		return
	}
	i = ((i % len(m.sliders)) + len(m.sliders)) % len(m.sliders)
	if s := m.Focused(); s != nil {
		s.Blur()
	}
	m.focus = i
	m.sliders[i].model.Focus()
}

func (m *Model) cycleFocus(delta int) {
	if m.focus < 0 {
		m.setFocus(0)
		return
	}
	m.setFocus(m.focus + delta)
}

func (m *Model) setStatus(msg string, isError bool) {
	m.status = msg
	m.statusError = isError
}

// applyMode swaps every slider onto the engine for mode, then re-lays the
// page because pin spans appear or vanish with the mode
func (m *Model) applyMode(mode domain.Mode) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.sliders)+1)
	for _, s := range m.sliders {
		cmds = append(cmds, s.model.SetMode(mode))
	}
	cmds = append(cmds, m.layout())
	return tea.Batch(cmds...)
}

func (m *Model) contentWidth() int {
	return m.width - 2*pagePadding
}

// compose lists the page sections in order: hero, the first slider, the
// overview, any further sliders, footer
func (m *Model) compose() []block {
	blocks := []block{{kind: textBlock, render: func(w int) string {
		return m.renderer.Hero(m.config.Hero, w)
	}}}
	for i := range m.sliders {
		blocks = append(blocks, m.sectionBlocks(i)...)
		if i == 0 {
			blocks = append(blocks, m.overviewBlock())
		}
	}
	if len(m.sliders) == 0 {
		blocks = append(blocks, m.overviewBlock())
	}
	return append(blocks, block{kind: textBlock, render: m.renderer.Footer})
}

func (m *Model) overviewBlock() block {
	return block{kind: textBlock, render: func(w int) string {
		return m.renderer.Overview(m.config.Overview, w)
	}}
}

func (m *Model) sectionBlocks(i int) []block {
	s := m.sliders[i]
	title := block{kind: textBlock, render: func(w int) string {
		return "\n" + m.renderer.SectionTitle(s.cfg.Title, i == m.focus, w) + "\n"
	}}
	return []block{title, {kind: sliderBlock, slider: i}}
}

// layout measures every section top-down. A slider's scroll offset is its
// document row plus the pin spans of the sliders above it.
func (m *Model) layout() tea.Cmd {
	width := m.contentWidth()
	if width <= 0 || m.height <= statusHeight {
		return nil
	}
	m.window.SetViewportHeight(m.height - statusHeight)

	m.blocks = m.compose()
	row := 0
	for i := range m.blocks {
		b := &m.blocks[i]
		b.top = row
		if b.kind == sliderBlock {
			b.height = m.sliders[b.slider].model.Height()
		} else {
			b.height = lipgloss.Height(b.render(width))
		}
		row += b.height
	}
	m.window.SetContentHeight(row)

	var cmds []tea.Cmd
	spans := 0.0
	for _, b := range m.blocks {
		if b.kind != sliderBlock {
			continue
		}
		s := m.sliders[b.slider].model
		cmds = append(cmds, s.Layout(slider.Bounds{Offset: float64(b.top) + spans, Width: width}))
		spans += s.PinSpan()
	}
	// Rebuilt engines re-pin in place; only now is the page extent final
	m.window.Clamp()
	return tea.Batch(cmds...)
}

func (m *Model) newSection(sc config.SliderConfig) *section {
	opts := slider.DefaultOptions()
	opts.ID = sc.ID
	opts.Panels = m.panels(sc)
	opts.Direction = sc.DirectionFor(m.direction)
	opts.AutoAdvance = sc.AutoAdvance()
	opts.ShowIndicator = sc.ShowIndicator
	opts.Height = sc.Height
	opts.ScrollPanEnabled = sc.ScrollPanEnabled()
	opts.Sizing = domain.Sizing{Fractions: sc.Sizing}
	if len(sc.Breakpoints) > 0 {
		opts.Breakpoints = sc.Breakpoints
	}
	return &section{
		cfg:   sc,
		model: slider.New(opts, m.window, m.classifier.Mode(), m.bus, m.log),
	}
}

func (m *Model) panels(sc config.SliderConfig) []slider.Panel {
	cards := views.NewCards(sc.Panels, m.renderer.Styles(), m.markdown)
	panels := make([]slider.Panel, len(cards))
	for i, c := range cards {
		panels[i] = c
	}
	return panels
}

// applyConfig swaps in reloaded content. Sliders whose settings are unchanged
// only get new panels; the rest are rebuilt from scratch.
func (m *Model) applyConfig(cfg *config.Config) tea.Cmd {
	if cfg == nil {
		return nil
	}
	m.config = cfg

	var cmds []tea.Cmd
	old := make(map[string]*section, len(m.sliders))
	for _, s := range m.sliders {
		old[s.cfg.ID] = s
	}
	var focusedID string
	if s := m.Focused(); s != nil {
		focusedID = s.ID()
	}

	next := make([]*section, 0, len(cfg.Sliders))
	for _, sc := range cfg.Sliders {
		s, ok := old[sc.ID]
		if ok && sameSettings(s.cfg, sc) {
			delete(old, sc.ID)
			s.cfg = sc
			cmds = append(cmds, s.model.SetPanels(m.panels(sc)))
			next = append(next, s)
			continue
		}
		next = append(next, m.newSection(sc))
	}
	for _, s := range old {
		s.model.Close()
	}
	if m.drag != nil && !containsSection(next, m.drag) {
		m.drag = nil
	}

	m.sliders = next
	m.focus = -1
	for i, s := range next {
		if s.cfg.ID == focusedID {
			m.focus = i
		}
	}
	if m.focus < 0 {
		m.setFocus(0)
	} else {
		m.sliders[m.focus].model.Focus()
	}

	m.log.Info("Content applied", zap.Int("sliders", len(next)))
	m.setStatus("content reloaded", false)
	cmds = append(cmds, m.layout())
	return tea.Batch(cmds...)
}

// sameSettings reports whether two slider configurations differ only in
// their panels
func sameSettings(a, b config.SliderConfig) bool {
	a.Panels, b.Panels = nil, nil
	a.Title, b.Title = "", ""
	return reflect.DeepEqual(a, b)
}

func containsSection(list []*section, s *section) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

// reload re-reads the content file
func (m *Model) reload() tea.Cmd {
	if m.configSvc == nil {
		return nil
	}
	cfg, err := m.configSvc.Reload()
	if err != nil {
		m.bus.Publish(eventbus.ErrorEvent{Message: "reload failed: " + err.Error(), Err: err})
		return nil
	}
	return m.applyConfig(cfg)
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	if m.program == nil {
		return nil
	}
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := m.helpOps.ShowHelpInPager(helpContent)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return helpPagerMsg{err: err}
	}
}

// Close releases every slider engine and stops the classifier
func (m *Model) Close() {
	for _, s := range m.sliders {
		s.model.Close()
	}
	m.unsubMode()
	m.classifier.Stop()
	m.log.Info("Page closed")
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}
	if m.width == 0 || len(m.blocks) == 0 {
		return "Loading..."
	}

	width := m.contentWidth()
	doc := m.document(width)
	offset := m.window.VisualOffset()
	rows := m.window.ViewportHeight()
	indent := strings.Repeat(" ", pagePadding)

	var b strings.Builder
	for i := 0; i < rows; i++ {
		if r := offset + i; r >= 0 && r < len(doc) {
			b.WriteString(indent)
			b.WriteString(doc[r])
		}
		b.WriteString("\n")
	}
	b.WriteString(m.statusBar())
	return b.String()
}

// document renders every block into exactly its measured number of rows
func (m *Model) document(width int) []string {
	var lines []string
	for _, b := range m.blocks {
		var out string
		if b.kind == sliderBlock {
			out = m.sliders[b.slider].model.View()
		} else {
			out = b.render(width)
		}
		rows := strings.Split(out, "\n")
		for i := 0; i < b.height; i++ {
			if i < len(rows) {
				lines = append(lines, ansi.Truncate(rows[i], width, ""))
			} else {
				lines = append(lines, "")
			}
		}
	}
	return lines
}

func (m *Model) statusBar() string {
	state := views.StatusState{
		Width:     m.width,
		Mode:      m.classifier.Mode().String(),
		Direction: m.direction.String(),
		Message:   m.status,
		IsError:   m.statusError,
		Help:      m.help,
	}
	keys := helpKeys{page: m.keys}
	if s := m.Focused(); s != nil {
		sk := s.Keys()
		keys.slider = &sk
		state.Focused = s.ID()
		state.Index = s.Index()
		state.Total = s.Total()
		if state.Total == 0 {
			state.Index = -1
		}
	}
	state.KeyMap = keys
	return m.renderer.StatusBar(state)
}
