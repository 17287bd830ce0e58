package events

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rosscornwall/hirehop-cleanup/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockHandler records the events it receives and can be made to fail.
type mockHandler struct {
	mu           sync.Mutex
	handledCount int
	lastEvent    *EntityCreatedEvent
	handlerError error
}

func (m *mockHandler) HandleEvent(_ context.Context, event *EntityCreatedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handledCount++
	m.lastEvent = event
	return m.handlerError
}

func (m *mockHandler) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.handledCount
}

func testEntity(t *testing.T) domain.EntityCreated {
	t.Helper()
	entity, err := domain.NewEntityCreated(domain.KindCompany, "42", "Acme")
	require.NoError(t, err)
	return *entity
}

func TestInMemoryEmitter(t *testing.T) {
	t.Run("emit event with no handlers", func(t *testing.T) {
		emitter := NewInMemoryEmitter(newTestLogger())
		event := NewEntityCreatedEvent(SourceGenericSave, testEntity(t))

		// Should not error even with no handlers.
		assert.NoError(t, emitter.Emit(context.Background(), event))
	})

	t.Run("emit event with successful handlers", func(t *testing.T) {
		emitter := NewInMemoryEmitter(newTestLogger())

		handler1 := &mockHandler{}
		handler2 := &mockHandler{}
		emitter.RegisterHandler(handler1)
		emitter.RegisterHandler(handler2)

		event := NewEntityCreatedEvent(SourceGenericSave, testEntity(t))
		require.NoError(t, emitter.Emit(context.Background(), event))

		assert.Equal(t, 1, handler1.count())
		assert.Equal(t, 1, handler2.count())
		assert.Equal(t, event, handler1.lastEvent)
		assert.Equal(t, event, handler2.lastEvent)
	})

	t.Run("emit event with failing handler", func(t *testing.T) {
		emitter := NewInMemoryEmitter(newTestLogger())

		successHandler := &mockHandler{}
		failingHandler := &mockHandler{handlerError: errors.New("handler error")}
		emitter.RegisterHandler(failingHandler)
		emitter.RegisterHandler(successHandler)

		event := NewEntityCreatedEvent(SourceGenericSave, testEntity(t))
		err := emitter.Emit(context.Background(), event)
		assert.Error(t, err)
		assert.Equal(t, "handler error", err.Error())

		// The failure must not stop delivery to the other handler.
		assert.Equal(t, 1, successHandler.count())
		assert.Equal(t, 1, failingHandler.count())
	})
}

func TestNewEntityCreatedEvent(t *testing.T) {
	event := NewEntityCreatedEvent(SourceWidgetSave, testEntity(t))

	assert.NotEqual(t, event.ID.String(), "00000000-0000-0000-0000-000000000000")
	assert.Equal(t, SourceWidgetSave, event.Source)
	assert.Equal(t, "42", event.Entity.ID)
	assert.False(t, event.EmittedAt.IsZero())
}
