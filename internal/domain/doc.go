// Package domain defines the core entities of the cleanup-task pipeline:
// the normalized entity-creation event, the outbound task request, and the
// errors shared across the application.
package domain
