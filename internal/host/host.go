// Package host declares the capabilities this service consumes from the
// surrounding business-management application: the acting user's identity
// and an optional end-user notification channel.
package host

import "log/slog"

// SessionContext exposes the current user's identity, read-only.
type SessionContext interface {
	// UserID returns the acting user's identifier.
	UserID() string

	// UserDisplayName returns the acting user's display name.
	UserDisplayName() string
}

// Notifier surfaces a short message to the end user. It is an optional
// capability: a nil Notifier means the host offers none, which is not an
// error. Callers must check for presence before invoking it.
type Notifier interface {
	Notify(message string)
}

// StaticSession is a SessionContext fixed at startup. The service runs on
// behalf of one operator session, so the identity comes from configuration.
type StaticSession struct {
	ID   string
	Name string
}

// UserID implements SessionContext.
func (s StaticSession) UserID() string { return s.ID }

// UserDisplayName implements SessionContext.
func (s StaticSession) UserDisplayName() string { return s.Name }

// LogNotifier is a Notifier that writes notices to the log. It stands in
// for the host's transient UI notification when running out of process.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a log-backed notifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "notifier")}
}

// Notify implements Notifier.
func (n *LogNotifier) Notify(message string) {
	n.logger.Info("user notice", "message", message)
}
