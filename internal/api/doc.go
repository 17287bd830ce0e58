// Package api exposes the webhook ingress through which the host delivers
// completed save operations. It adapts incoming notifications into raw
// signals, runs the extractors over them, and emits any detected
// entity-creation events. Detection results never influence the HTTP
// response: a well-formed notification is always accepted.
package api
