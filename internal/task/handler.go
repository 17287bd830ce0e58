package task

import (
	"context"
	"log/slog"

	"github.com/rosscornwall/hirehop-cleanup/internal/domain"
	"github.com/rosscornwall/hirehop-cleanup/internal/events"
)

// Ledger answers whether an entity has already been handled this session,
// marking it handled as part of a positive answer.
type Ledger interface {
	ShouldProcess(key string) bool
}

// EntityScheduler schedules one cleanup task per entity asynchronously.
type EntityScheduler interface {
	Schedule(ctx context.Context, entity domain.EntityCreated) <-chan domain.Outcome
}

// CleanupTaskHandler bridges the event pipeline to the scheduler. It
// consults the dedup ledger and fires a task submission for first-seen
// entities. Submission is fire-and-forget: HandleEvent never blocks on the
// host endpoint and never returns an error for scheduling failures, so a
// failed submission can never disturb the host's save path.
type CleanupTaskHandler struct {
	ledger    Ledger
	scheduler EntityScheduler
	logger    *slog.Logger
}

// NewCleanupTaskHandler creates the handler.
func NewCleanupTaskHandler(ledger Ledger, scheduler EntityScheduler, logger *slog.Logger) *CleanupTaskHandler {
	return &CleanupTaskHandler{
		ledger:    ledger,
		scheduler: scheduler,
		logger:    logger.With("component", "cleanup_task_handler"),
	}
}

// HandleEvent processes one entity-creation event. The ledger check and
// mark happen synchronously in the handling turn; the submission itself is
// detached from the event's context so it survives the handling turn.
func (h *CleanupTaskHandler) HandleEvent(ctx context.Context, event *events.EntityCreatedEvent) error {
	key := event.Entity.DedupKey()
	if !h.ledger.ShouldProcess(key) {
		h.logger.Debug("entity already handled this session",
			"dedup_key", key, "event_id", event.ID, "source", event.Source)
		return nil
	}

	h.logger.Info("new entity detected",
		"kind", event.Entity.Kind,
		"entity_id", event.Entity.ID,
		"display_name", event.Entity.DisplayName,
		"source", event.Source)

	outcomes := h.scheduler.Schedule(context.WithoutCancel(ctx), event.Entity)
	go func() {
		for outcome := range outcomes {
			if !outcome.Created() {
				h.logger.Debug("cleanup task not created",
					"status", outcome.Status,
					"reason", outcome.Reason,
					"dedup_key", key)
			}
		}
	}()
	return nil
}

// Ensure CleanupTaskHandler implements events.Handler.
var _ events.Handler = (*CleanupTaskHandler)(nil)
