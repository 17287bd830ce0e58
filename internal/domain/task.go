package domain

// TaskPriority mirrors the host's numeric priority scale.
type TaskPriority int

// Host priority values.
const (
	PriorityNormal TaskPriority = 1
)

// TaskStatus mirrors the host's numeric task status scale.
type TaskStatus int

// Host status values.
const (
	StatusOpen TaskStatus = 0
)

// TaskRequest is the outbound payload for the host's task-creation endpoint.
// It is constructed fresh per event and immutable once built; ownership is
// exclusive to the scheduler until handed to the host.
type TaskRequest struct {
	Title       string
	Description string

	// DueDate is the calendar due date, "2006-01-02".
	DueDate string

	// DTStart is the calendar start date, "2006-01-02".
	DTStart string

	// LocalTimestamp is the due date with the current local wall-clock time
	// appended, "2006-01-02 15:04:05", in the host's expected literal form.
	LocalTimestamp string

	// TimeZone is the IANA zone name reported alongside LocalTimestamp.
	TimeZone string

	AssigneeID string
	Priority   TaskPriority
	Status     TaskStatus

	// LinkedEntityID and LinkedEntityKind tie the task back to the record
	// whose creation triggered it.
	LinkedEntityID   string
	LinkedEntityKind EntityKind
}

// Validate checks the request before submission.
func (r *TaskRequest) Validate() error {
	if r.Title == "" {
		return ErrTaskTitleEmpty
	}
	if r.LinkedEntityID == "" {
		return ErrTaskLinkEmpty
	}
	return nil
}

// OutcomeStatus classifies the result of a task submission.
type OutcomeStatus string

// Submission outcome classes. No outcome triggers a retry.
const (
	// OutcomeCreated means the host acknowledged the task.
	OutcomeCreated OutcomeStatus = "created"

	// OutcomeRejected means the host returned an error-shaped response.
	OutcomeRejected OutcomeStatus = "rejected"

	// OutcomeTransportFailed means the submission failed before a usable
	// response arrived (network error, non-JSON body).
	OutcomeTransportFailed OutcomeStatus = "transport_failed"
)

// Outcome is the terminal result of one task submission attempt.
type Outcome struct {
	Status OutcomeStatus
	Reason string
}

// Created reports whether the task was acknowledged by the host.
func (o Outcome) Created() bool { return o.Status == OutcomeCreated }
