package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/rosscornwall/hirehop-cleanup/internal/domain"
)

// SourceWidgetSave identifies events produced by the widget-save interceptor.
const SourceWidgetSave = "widget_save"

// Widget is the minimal view of the host UI component whose save behavior
// gets wrapped: pre-save field values and the current record identifier.
// The host assigns the identifier asynchronously after a save.
type Widget interface {
	// Field returns the current value of a named form field, or "".
	Field(name string) string

	// RecordID returns the record identifier, or "" / "0" while unsaved.
	RecordID() string
}

// SaveFunc is the widget's save operation.
type SaveFunc func(ctx context.Context) error

// WidgetSaveInterceptor wraps a widget's save operation with observation
// logic. The original save is always invoked and its outcome returned
// untouched; the interceptor only watches inputs and, after an observation
// delay, the server-assigned identifier.
//
// The fixed delay is a best-effort synchronization point: the host exposes
// no save-completed callback, so the identifier is read after the delay and
// the event is skipped if it never materialized. Prefer the webhook ingress
// where the host can deliver completed saves directly.
type WidgetSaveInterceptor struct {
	kind    domain.EntityKind
	delay   time.Duration
	emitter Emitter
	logger  *slog.Logger

	// after is swappable for tests.
	after func(time.Duration) <-chan time.Time
}

// NewWidgetSaveInterceptor creates an interceptor emitting events of the
// given kind after the given observation delay.
func NewWidgetSaveInterceptor(
	kind domain.EntityKind,
	delay time.Duration,
	emitter Emitter,
	logger *slog.Logger,
) *WidgetSaveInterceptor {
	return &WidgetSaveInterceptor{
		kind:    kind,
		delay:   delay,
		emitter: emitter,
		logger:  logger.With("component", "widget_save_interceptor", "kind", string(kind)),
		after:   time.After,
	}
}

// WrapSave returns a SaveFunc that delegates to save unconditionally and
// returns its result unchanged, even if the observation logic fails. When
// the pre-save identifier marked the record as unsaved and at least one
// captured field is non-empty, an event is emitted after the delay.
func (i *WidgetSaveInterceptor) WrapSave(w Widget, save SaveFunc) SaveFunc {
	return func(ctx context.Context) error {
		preID, company, name := i.captureState(w)

		err := save(ctx)

		if isUnsavedID(preID) && (company != "" || name != "") {
			go i.observe(context.WithoutCancel(ctx), w, company, name)
		}
		return err
	}
}

// captureState reads the pre-save widget state. A panicking widget yields
// zero values so the save path stays untouched.
func (i *WidgetSaveInterceptor) captureState(w Widget) (preID, company, name string) {
	defer func() {
		if r := recover(); r != nil {
			i.logger.Debug("widget state capture panicked", "panic", r)
			preID, company, name = "", "", ""
		}
	}()
	return w.RecordID(), w.Field("company"), w.Field("name")
}

// observe waits out the delay, reads the server-assigned identifier, and
// emits the creation event if one appeared.
func (i *WidgetSaveInterceptor) observe(ctx context.Context, w Widget, company, name string) {
	defer func() {
		if r := recover(); r != nil {
			i.logger.Debug("widget observation panicked", "panic", r)
		}
	}()

	<-i.after(i.delay)

	id := w.RecordID()
	if isUnsavedID(id) {
		i.logger.Debug("no identifier assigned after delay, skipping event")
		return
	}

	displayName := company
	if displayName == "" {
		displayName = name
	}
	entity, err := domain.NewEntityCreated(i.kind, id, displayName)
	if err != nil {
		i.logger.Debug("discarding invalid creation candidate", "error", err)
		return
	}

	if err := i.emitter.Emit(ctx, NewEntityCreatedEvent(SourceWidgetSave, *entity)); err != nil {
		i.logger.Debug("event emission failed", "error", err, "entity_id", entity.ID)
	}
}

// isUnsavedID reports whether an identifier marks the record as unsaved.
func isUnsavedID(id string) bool {
	return id == "" || id == "0"
}
