package task

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rosscornwall/hirehop-cleanup/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testTaskRequest() *domain.TaskRequest {
	return &domain.TaskRequest{
		Title:            "🧹 Data Cleanup: Acme",
		Description:      "Review and complete details",
		DueDate:          "2024-01-03",
		DTStart:          "2024-01-01",
		LocalTimestamp:   "2024-01-03 09:30:00",
		TimeZone:         "Europe/London",
		AssigneeID:       "1",
		Priority:         domain.PriorityNormal,
		Status:           domain.StatusOpen,
		LinkedEntityID:   "42",
		LinkedEntityKind: domain.KindCompany,
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL:      server.URL,
		EndpointPath: "/php_functions/todo_save.php",
		Timeout:      2 * time.Second,
	}, newTestLogger())
	return client, server
}

func TestClientCreateTask(t *testing.T) {
	t.Run("created on response with rows", func(t *testing.T) {
		var gotForm map[string]string
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			gotForm = map[string]string{}
			for key := range r.PostForm {
				gotForm[key] = r.PostForm.Get(key)
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"rows":[{"ID":7}]}`))
		})

		outcome := client.CreateTask(context.Background(), testTaskRequest())

		assert.Equal(t, domain.OutcomeCreated, outcome.Status)
		assert.Equal(t, "0", gotForm["id"])
		assert.Equal(t, "42", gotForm["main_id"])
		assert.Equal(t, "2", gotForm["type"])
		assert.Equal(t, "🧹 Data Cleanup: Acme", gotForm["summary"])
		assert.Equal(t, "2024-01-03", gotForm["due"])
		assert.Equal(t, "2024-01-01", gotForm["dtstart"])
		assert.Equal(t, "2024-01-03 09:30:00", gotForm["local"])
		assert.Equal(t, "Europe/London", gotForm["tz"])
		assert.Equal(t, "1", gotForm["user_id"])
		assert.Equal(t, "1", gotForm["priority"])
		assert.Equal(t, "0", gotForm["status"])
	})

	t.Run("created on response with id", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"id":7}`))
		})

		outcome := client.CreateTask(context.Background(), testTaskRequest())
		assert.Equal(t, domain.OutcomeCreated, outcome.Status)
	})

	t.Run("rejected on error-shaped response", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"error":"duplicate"}`))
		})

		outcome := client.CreateTask(context.Background(), testTaskRequest())
		assert.Equal(t, domain.OutcomeRejected, outcome.Status)
		assert.Equal(t, "duplicate", outcome.Reason)
	})

	t.Run("rejected on response without created rows", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"rows":[]}`))
		})

		outcome := client.CreateTask(context.Background(), testTaskRequest())
		assert.Equal(t, domain.OutcomeRejected, outcome.Status)
	})

	t.Run("transport failure on non-JSON body", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>login required</html>`))
		})

		outcome := client.CreateTask(context.Background(), testTaskRequest())
		assert.Equal(t, domain.OutcomeTransportFailed, outcome.Status)
	})

	t.Run("transport failure on connection error", func(t *testing.T) {
		client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
		server.Close()

		outcome := client.CreateTask(context.Background(), testTaskRequest())
		assert.Equal(t, domain.OutcomeTransportFailed, outcome.Status)
		assert.NotEmpty(t, outcome.Reason)
	})

	t.Run("contact tasks use the contact type code", func(t *testing.T) {
		var gotType string
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			gotType = r.PostForm.Get("type")
			_, _ = w.Write([]byte(`{"rows":[{}]}`))
		})

		req := testTaskRequest()
		req.LinkedEntityKind = domain.KindContact
		outcome := client.CreateTask(context.Background(), req)

		assert.Equal(t, domain.OutcomeCreated, outcome.Status)
		assert.Equal(t, "1", gotType)
	})
}
