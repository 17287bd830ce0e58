package task

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rosscornwall/hirehop-cleanup/internal/domain"
	"github.com/rosscornwall/hirehop-cleanup/internal/host"
)

// SchedulerConfig configures how cleanup tasks are built.
type SchedulerConfig struct {
	// AssigneeID is the fixed user the task is assigned to. Ignored when
	// AssignToCreator is set.
	AssigneeID string

	// AssignToCreator assigns the task to the acting user from the session
	// context instead of the fixed assignee.
	AssignToCreator bool

	// DueDays is the non-negative due-date offset in days.
	DueDays int

	// TitleTemplate and DescriptionTemplate accept the placeholders
	// {company}, {name}, and {created_by}.
	TitleTemplate       string
	DescriptionTemplate string

	// Location is the local zone used for the due timestamp. Nil falls back
	// to the system zone.
	Location *time.Location
}

// Scheduler builds a task request for an entity-creation event and submits
// it to the host. One submission per call, no retries; outcomes are
// reported on the returned channel for callers who care and safely ignored
// by callers who don't.
type Scheduler struct {
	cfg      SchedulerConfig
	creator  Creator
	session  host.SessionContext
	notifier host.Notifier
	logger   *slog.Logger

	// now is swappable for tests.
	now func() time.Time
}

// NewScheduler creates a scheduler. notifier may be nil when the host
// offers no notification capability.
func NewScheduler(
	cfg SchedulerConfig,
	creator Creator,
	session host.SessionContext,
	notifier host.Notifier,
	logger *slog.Logger,
) *Scheduler {
	return &Scheduler{
		cfg:      cfg,
		creator:  creator,
		session:  session,
		notifier: notifier,
		logger:   logger.With("component", "task_scheduler"),
		now:      time.Now,
	}
}

// Schedule submits one cleanup task for the entity as a one-shot
// asynchronous operation. The channel receives exactly one outcome and is
// then closed. No failure propagates beyond the outcome value.
func (s *Scheduler) Schedule(ctx context.Context, entity domain.EntityCreated) <-chan domain.Outcome {
	out := make(chan domain.Outcome, 1)
	go func() {
		defer close(out)
		out <- s.schedule(ctx, entity)
	}()
	return out
}

func (s *Scheduler) schedule(ctx context.Context, entity domain.EntityCreated) (outcome domain.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("task scheduling panicked", "panic", r, "entity_id", entity.ID)
			outcome = domain.Outcome{
				Status: domain.OutcomeTransportFailed,
				Reason: fmt.Sprintf("panic: %v", r),
			}
		}
	}()

	req, err := s.buildRequest(entity)
	if err != nil {
		s.logger.Debug("task request rejected before submission",
			"error", err, "entity_id", entity.ID)
		return domain.Outcome{Status: domain.OutcomeRejected, Reason: err.Error()}
	}

	outcome = s.creator.CreateTask(ctx, req)
	switch outcome.Status {
	case domain.OutcomeCreated:
		s.logger.Info("cleanup task created",
			"kind", entity.Kind,
			"entity_id", entity.ID,
			"display_name", displayName(entity))
		if s.notifier != nil {
			s.notifier.Notify("Cleanup task created for " + displayName(entity))
		}
	case domain.OutcomeRejected:
		s.logger.Debug("task submission rejected",
			"reason", outcome.Reason, "entity_id", entity.ID)
	case domain.OutcomeTransportFailed:
		s.logger.Debug("task submission transport failure",
			"reason", outcome.Reason, "entity_id", entity.ID)
	}
	return outcome
}

// buildRequest renders the task payload for the entity.
func (s *Scheduler) buildRequest(entity domain.EntityCreated) (*domain.TaskRequest, error) {
	name := displayName(entity)
	bindings := map[string]string{
		"company":    name,
		"name":       name,
		"created_by": s.session.UserDisplayName(),
	}

	now := s.now()
	due := ComputeDueDate(now, s.cfg.DueDays, s.cfg.Location)

	assignee := s.cfg.AssigneeID
	if s.cfg.AssignToCreator {
		assignee = s.session.UserID()
	}

	req := &domain.TaskRequest{
		Title:            Render(s.cfg.TitleTemplate, bindings),
		Description:      Render(s.cfg.DescriptionTemplate, bindings),
		DueDate:          due.DateOnly,
		DTStart:          now.UTC().Format(dateLayout),
		LocalTimestamp:   due.LocalTimestamp,
		TimeZone:         due.TimeZone,
		AssigneeID:       assignee,
		Priority:         domain.PriorityNormal,
		Status:           domain.StatusOpen,
		LinkedEntityID:   entity.ID,
		LinkedEntityKind: entity.Kind,
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// displayName resolves the name used in task text, substituting the
// fallback literal when the event carried none.
func displayName(entity domain.EntityCreated) string {
	if entity.DisplayName == "" {
		return domain.FallbackContactName
	}
	return entity.DisplayName
}
