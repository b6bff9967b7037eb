// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"lead_triage_backend/platform/events"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Leads Domain Events
// =============================================================================

// BatchIngested is published when a lead batch has been scored and stored,
// replacing the previous batch.
type BatchIngested struct {
	BaseEvent
	Source  string `json:"source"`
	Count   int    `json:"count"`
	Dropped int    `json:"dropped"`
}

func (e BatchIngested) EventName() string { return "leads.batch.ingested" }
