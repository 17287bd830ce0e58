package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rosscornwall/hirehop-cleanup/internal/dedup"
	"github.com/rosscornwall/hirehop-cleanup/internal/domain"
	"github.com/rosscornwall/hirehop-cleanup/internal/events"
	"github.com/rosscornwall/hirehop-cleanup/internal/host"
	"github.com/rosscornwall/hirehop-cleanup/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pipeline wires the full detection pipeline against a fake host task
// endpoint that counts submissions.
type pipeline struct {
	router      http.Handler
	ledger      *dedup.Ledger
	submissions *atomic.Int32
	lastMainID  *atomic.Value
}

func newPipeline(t *testing.T) *pipeline {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	submissions := &atomic.Int32{}
	lastMainID := &atomic.Value{}
	taskEndpoint := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		submissions.Add(1)
		lastMainID.Store(r.PostForm.Get("main_id"))
		_, _ = w.Write([]byte(`{"rows":[{"ID":7}]}`))
	}))
	t.Cleanup(taskEndpoint.Close)

	ledger := dedup.NewLedger()
	client := task.NewClient(task.ClientConfig{
		BaseURL:      taskEndpoint.URL,
		EndpointPath: "/php_functions/todo_save.php",
		Timeout:      2 * time.Second,
	}, logger)
	scheduler := task.NewScheduler(task.SchedulerConfig{
		AssigneeID:    "1",
		DueDays:       2,
		TitleTemplate: "🧹 Data Cleanup: {company}",
		Location:      time.UTC,
	}, client, host.StaticSession{ID: "9", Name: "Ross"}, nil, logger)

	emitter := events.NewInMemoryEmitter(logger)
	emitter.RegisterHandler(task.NewCleanupTaskHandler(ledger, scheduler, logger))

	extractors := []events.Extractor{
		events.NewGenericSaveExtractor(events.DefaultGenericSaveConfig(), logger),
		events.NewEntitySaveExtractor(events.EntitySaveConfig{
			URLPattern: "company_save.php",
			Kind:       domain.KindCompany,
		}, logger),
		events.NewEntitySaveExtractor(events.EntitySaveConfig{
			URLPattern: "contact_save.php",
			Kind:       domain.KindContact,
		}, logger),
	}

	handler := NewSaveHandler(extractors, emitter, ledger, logger)
	return &pipeline{
		router:      NewRouter(handler),
		ledger:      ledger,
		submissions: submissions,
		lastMainID:  lastMainID,
	}
}

func (p *pipeline) notify(t *testing.T, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/hooks/save-complete", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	p.router.ServeHTTP(rec, req)
	return rec
}

func TestSaveCompleteEndpoint(t *testing.T) {
	t.Run("generic save insert schedules one task, duplicates none", func(t *testing.T) {
		p := newPipeline(t)

		notification := map[string]any{
			"url":      "/php_functions/save.php",
			"status":   200,
			"response": `{"action":1,"data":[{"ID":42,"COMPANY":"Acme","cID":7}]}`,
		}

		rec := p.notify(t, notification)
		assert.Equal(t, http.StatusAccepted, rec.Code)

		var body SaveNotificationResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, 1, body.Detected)

		require.Eventually(t, func() bool {
			return p.submissions.Load() == 1
		}, 2*time.Second, 10*time.Millisecond)
		assert.Equal(t, "42", p.lastMainID.Load())

		// The identical response arriving again must not schedule a second
		// task.
		rec = p.notify(t, notification)
		assert.Equal(t, http.StatusAccepted, rec.Code)

		time.Sleep(100 * time.Millisecond)
		assert.Equal(t, int32(1), p.submissions.Load())
	})

	t.Run("company save insert schedules, update does not", func(t *testing.T) {
		p := newPipeline(t)

		rec := p.notify(t, map[string]any{
			"url":      "/php_functions/company_save.php",
			"status":   200,
			"request":  "id=0&name=Acme",
			"response": `{"id":99}`,
		})
		assert.Equal(t, http.StatusAccepted, rec.Code)

		require.Eventually(t, func() bool {
			return p.submissions.Load() == 1
		}, 2*time.Second, 10*time.Millisecond)
		assert.Equal(t, "99", p.lastMainID.Load())

		rec = p.notify(t, map[string]any{
			"url":      "/php_functions/company_save.php",
			"status":   200,
			"request":  "id=99&name=Acme",
			"response": `{"id":99}`,
		})
		assert.Equal(t, http.StatusAccepted, rec.Code)

		time.Sleep(100 * time.Millisecond)
		assert.Equal(t, int32(1), p.submissions.Load())
	})

	t.Run("unrelated traffic is accepted and ignored", func(t *testing.T) {
		p := newPipeline(t)

		rec := p.notify(t, map[string]any{
			"url":      "/php_functions/items_list.php",
			"status":   200,
			"response": `{"items":[]}`,
		})
		assert.Equal(t, http.StatusAccepted, rec.Code)

		var body SaveNotificationResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, 0, body.Detected)

		time.Sleep(50 * time.Millisecond)
		assert.Equal(t, int32(0), p.submissions.Load())
	})

	t.Run("undecodable body is a bad request", func(t *testing.T) {
		p := newPipeline(t)

		req := httptest.NewRequest(http.MethodPost, "/hooks/save-complete",
			bytes.NewReader([]byte(`not json`)))
		rec := httptest.NewRecorder()
		p.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("health endpoint reports processed count", func(t *testing.T) {
		p := newPipeline(t)
		p.notify(t, map[string]any{
			"url":      "/php_functions/save.php",
			"status":   200,
			"response": `{"action":1,"data":[{"ID":42,"COMPANY":"Acme","cID":7}]}`,
		})

		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		rec := httptest.NewRecorder()
		p.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var body HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "ok", body.Status)
		assert.Equal(t, 1, body.Processed)
	})
}
