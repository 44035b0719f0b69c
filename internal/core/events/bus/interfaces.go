package bus

import "github.com/google/uuid"

// Event types published by the arena.
const (
	AttackStarted  = "attack.started"
	AttackFinished = "attack.finished"
	MinionHit      = "minion.hit"
	MinionDied     = "minion.died"
	PlayerHurt     = "player.hurt"
)

// Event is an immutable notification about something that happened during a
// tick.
type Event struct {
	Type  string         `json:"type"`
	Tick  uint64         `json:"tick"`
	Actor uuid.UUID      `json:"actor"`
	Data  map[string]any `json:"data,omitempty"`
}

// EventHandler is invoked synchronously in the publisher's goroutine. Errors
// are joined and returned from Publish.
type EventHandler func(event Event) error

// Subscription is a registered handler. Cancel is safe to call repeatedly.
type Subscription interface {
	ID() string
	EventType() string
	IsActive() bool
	Cancel()
}

// EventBus is a thread-safe in-process pub/sub keyed by Event.Type. The
// wildcard type "*" receives every event.
type EventBus interface {
	Publish(event Event) error
	Subscribe(eventType string, handler EventHandler) Subscription
	Published() uint64
}
