package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rosscornwall/hirehop-cleanup/internal/domain"
)

// EntityCreatedEvent wraps a normalized entity creation for dispatch. It
// carries the detecting source for diagnostics; consumers act on the entity
// alone.
type EntityCreatedEvent struct {
	// ID is a unique identifier for this event instance.
	ID uuid.UUID `json:"id"`

	// Source names the extractor that produced the event.
	Source string `json:"source"`

	// Entity is the normalized creation event.
	Entity domain.EntityCreated `json:"entity"`

	// EmittedAt is the timestamp when the event was emitted.
	EmittedAt time.Time `json:"emitted_at"`
}

// NewEntityCreatedEvent creates an event for the given source and entity.
func NewEntityCreatedEvent(source string, entity domain.EntityCreated) *EntityCreatedEvent {
	return &EntityCreatedEvent{
		ID:        uuid.New(),
		Source:    source,
		Entity:    entity,
		EmittedAt: time.Now().UTC(),
	}
}

// Handler defines an interface for components that can handle events.
type Handler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *EntityCreatedEvent) error
}

// Emitter defines an interface for components that can emit events. This
// lets extractors publish creations without knowledge of the handlers.
type Emitter interface {
	// Emit publishes the given event to all registered handlers.
	Emit(ctx context.Context, event *EntityCreatedEvent) error
}
