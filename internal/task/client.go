package task

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rosscornwall/hirehop-cleanup/internal/domain"
	"github.com/tidwall/gjson"
)

// Creator submits a task request to the host and classifies the result.
type Creator interface {
	CreateTask(ctx context.Context, req *domain.TaskRequest) domain.Outcome
}

// ClientConfig configures the host task-endpoint client.
type ClientConfig struct {
	// BaseURL is the host application's base URL.
	BaseURL string

	// EndpointPath is the task-creation endpoint path, e.g.
	// "/php_functions/todo_save.php".
	EndpointPath string

	// Timeout bounds each submission attempt.
	Timeout time.Duration
}

// Client talks to the host's task-creation endpoint. Submissions are
// form-encoded POSTs; the host answers with JSON. The client never retries:
// a failed submission degrades to "no reminder task created".
type Client struct {
	http   *resty.Client
	path   string
	logger *slog.Logger
}

// NewClient creates a task-endpoint client.
func NewClient(cfg ClientConfig, logger *slog.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	return &Client{
		http:   httpClient,
		path:   cfg.EndpointPath,
		logger: logger.With("component", "task_client"),
	}
}

// CreateTask submits the request and classifies the response. Transport
// problems and non-JSON bodies report TransportFailed; an error-shaped body
// reports Rejected; a body without an error field and with at least one
// created row or id reports Created.
func (c *Client) CreateTask(ctx context.Context, req *domain.TaskRequest) domain.Outcome {
	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(formFields(req)).
		Post(c.path)
	if err != nil {
		c.logger.Debug("task submission transport failure", "error", err)
		return domain.Outcome{Status: domain.OutcomeTransportFailed, Reason: err.Error()}
	}

	body := resp.String()
	if !gjson.Valid(body) {
		c.logger.Debug("task endpoint returned non-JSON body",
			"status", resp.StatusCode())
		return domain.Outcome{Status: domain.OutcomeTransportFailed, Reason: "non-JSON response"}
	}
	parsed := gjson.Parse(body)

	if errField := parsed.Get("error"); errField.Exists() {
		return domain.Outcome{Status: domain.OutcomeRejected, Reason: errField.String()}
	}

	if hasCreatedRow(parsed) {
		return domain.Outcome{Status: domain.OutcomeCreated}
	}
	return domain.Outcome{Status: domain.OutcomeRejected, Reason: "no created rows in response"}
}

// hasCreatedRow reports whether the response carries at least one created
// row or a created id.
func hasCreatedRow(parsed gjson.Result) bool {
	if rows := parsed.Get("rows"); rows.IsArray() && len(rows.Array()) > 0 {
		return true
	}
	if id := parsed.Get("id"); id.Exists() && id.String() != "" && id.String() != "0" {
		return true
	}
	return false
}

// formFields flattens the request into the host's form encoding. A new task
// is always submitted with id=0; main_id and type link it to the entity.
func formFields(req *domain.TaskRequest) map[string]string {
	fields := map[string]string{
		"id":       "0",
		"main_id":  req.LinkedEntityID,
		"type":     strconv.Itoa(entityTypeCode(req.LinkedEntityKind)),
		"summary":  req.Title,
		"title":    req.Title,
		"dtstart":  req.DTStart,
		"due":      req.DueDate,
		"status":   strconv.Itoa(int(req.Status)),
		"priority": strconv.Itoa(int(req.Priority)),
		"user_id":  req.AssigneeID,
		"tz":       req.TimeZone,
		"local":    req.LocalTimestamp,
	}
	if req.Description != "" {
		fields["description"] = req.Description
	}
	return fields
}

// entityTypeCode maps an entity kind to the host's record-type code used in
// the task linking field.
func entityTypeCode(kind domain.EntityKind) int {
	switch kind {
	case domain.KindCompany:
		return 2
	case domain.KindContact:
		return 1
	default:
		return 0
	}
}

// Ensure Client implements Creator.
var _ Creator = (*Client)(nil)
