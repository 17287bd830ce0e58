// Package events contains the detection side of the pipeline: raw save
// signals from the host, the extractors that recognize entity creations in
// them, and the emitter that dispatches normalized events to handlers.
//
// Extractors fail closed: any malformed, partial, or ambiguous signal yields
// no event. A false positive creates a visible duplicate task in the host,
// while a false negative only loses an optional reminder.
package events
