// Package task turns normalized entity-creation events into cleanup tasks
// in the host system: it renders the task text, computes the due date,
// submits the task over HTTP, and bridges the event pipeline to the
// scheduler through the dedup ledger.
package task
