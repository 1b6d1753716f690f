package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Dispatch outcomes
const (
	OutcomeDelivered = "delivered"
	OutcomeRejected  = "rejected" // provider answered with an error status
	OutcomeFailed    = "failed"
)

// StreamDispatch is the Redis stream that receives one entry per dispatch attempt.
const StreamDispatch = "stream:push-dispatch"

// DefaultStreamMaxLen caps the stream length (approximate trim on XADD).
const DefaultStreamMaxLen = 10000

// DispatchEvent records the outcome of one notification dispatch.
// It never carries the device token itself.
type DispatchEvent struct {
	ID               string `json:"id"`
	Route            string `json:"route"`   // gateway, messaging
	Outcome          string `json:"outcome"` // OutcomeDelivered, OutcomeRejected, OutcomeFailed
	NotificationType string `json:"notification_type"`
	Error            string `json:"error,omitempty"`
	Timestamp        int64  `json:"timestamp"` // Unix milliseconds
}

// NewDispatchEvent creates an event with a fresh ID stamped at now.
func NewDispatchEvent(route, outcome, notificationType string, err error, now time.Time) DispatchEvent {
	event := DispatchEvent{
		ID:               uuid.NewString(),
		Route:            route,
		Outcome:          outcome,
		NotificationType: notificationType,
		Timestamp:        now.UnixMilli(),
	}
	if err != nil {
		event.Error = err.Error()
	}
	return event
}

// ToMap converts the event to a map for Redis XADD.
// Redis Streams store field-value pairs, so we serialize to JSON in a "data" field.
func (e DispatchEvent) ToMap() (map[string]interface{}, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return map[string]interface{}{
		"route":   e.Route,
		"outcome": e.Outcome,
		"data":    string(data),
	}, nil
}
