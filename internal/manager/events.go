package manager

// Event names published by the manager.
const (
	EventReloadStart   = "reload_start"
	EventReloadReady   = "reload_ready"
	EventReloadFailed  = "reload_failed"
	EventReloadPartial = "reload_partial"
)

// Event represents a manager lifecycle event.
// Minimal and stable: name + models dir and optional fields via key/values.
type Event struct {
	Name   string
	Dir    string
	Fields map[string]any
}

// EventPublisher receives events from the manager. Implementations should be
// lightweight and non-blocking; Publish must not panic.
type EventPublisher interface {
	Publish(Event)
}

// noopPublisher is the default; it drops events.
type noopPublisher struct{}

func (noopPublisher) Publish(Event) {}
