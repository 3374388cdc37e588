package track

// Handle identifies a tracked object in a table.
// Handle 0 is reserved and always invalid.
type Handle uint32

// EventType distinguishes lifecycle notifications.
type EventType uint8

const (
	EventCreated EventType = iota
	EventDestroyed
)

func (t EventType) String() string {
	switch t {
	case EventCreated:
		return "created"
	case EventDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Event represents an object lifecycle event.
type Event struct {
	Value  any
	Kind   string
	Handle Handle
	Type   EventType
}

// Observer receives notifications about object lifecycle events.
// Observers are called synchronously on the goroutine that created or
// destroyed the object and must not call back into the table.
type Observer interface {
	OnObjectEvent(Event)
}

// Entry is a snapshot of one live tracked object.
type Entry struct {
	Value  any
	Kind   string
	Handle Handle
}
