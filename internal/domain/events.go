package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventScrolled        EventType = "Scrolled"
	EventModeChanged     EventType = "ModeChanged"
	EventIndexChanged    EventType = "IndexChanged"
	EventEngineAttached  EventType = "EngineAttached"
	EventEngineDetached  EventType = "EngineDetached"
	EventContentReloaded EventType = "ContentReloaded"
	EventError           EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// ScrolledEvent is emitted whenever the page scroll position changes
type ScrolledEvent struct {
	Y float64
}

func (e ScrolledEvent) Type() EventType { return EventScrolled }

// ModeChangedEvent is emitted when the viewport class settles on a new mode
type ModeChangedEvent struct {
	From  Mode
	To    Mode
	Width int
}

func (e ModeChangedEvent) Type() EventType { return EventModeChanged }

// IndexChangedEvent is emitted when a slider's active engine reports a new index
type IndexChangedEvent struct {
	SliderID string
	Index    int
	Total    int
}

func (e IndexChangedEvent) Type() EventType { return EventIndexChanged }

// EngineAttachedEvent is emitted after an engine took over a slider
type EngineAttachedEvent struct {
	SliderID string
	Engine   string
}

func (e EngineAttachedEvent) Type() EventType { return EventEngineAttached }

// EngineDetachedEvent is emitted after an engine released all of its bindings
type EngineDetachedEvent struct {
	SliderID string
	Engine   string
}

func (e EngineDetachedEvent) Type() EventType { return EventEngineDetached }

// ContentReloadedEvent is emitted when the content file was re-read
type ContentReloadedEvent struct {
	Path string
}

func (e ContentReloadedEvent) Type() EventType { return EventContentReloaded }

// ErrorEvent is emitted when a recoverable error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
