// Package events is the wire contract for domain events exchanged between
// services. Payloads are immutable once published: produced exactly once by
// the owning service at the moment of a state transition, consumed
// independently by any number of subscribers.
package events

import (
	"encoding/json"
	"fmt"
	"time"
)

// BookingExchange carries booking lifecycle events. Topic type, durable.
const BookingExchange = "booking.exchange"

// Routing keys.
const (
	RKBookingCreated  = "booking.created"
	RKBookingApproved = "booking.approved"
	RKPropertyCreated = "property.created"
)

// BookingCreated is emitted after a booking is persisted in PENDING.
type BookingCreated struct {
	BookingID     string    `json:"booking_id"`
	PropertyID    int64     `json:"property_id"`
	TenantID      string    `json:"tenant_id"`
	Status        string    `json:"status"`
	CorrelationID string    `json:"correlation_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// BookingApproved is emitted after an admin decision is persisted.
type BookingApproved struct {
	BookingID     string    `json:"booking_id"`
	PropertyID    int64     `json:"property_id"`
	TenantID      string    `json:"tenant_id"`
	Status        string    `json:"status"`
	ApprovedBy    string    `json:"approved_by"`
	ApprovedAt    time.Time `json:"approved_at"`
	CorrelationID string    `json:"correlation_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Decode unmarshals an event body into its typed payload.
func Decode[T any](body []byte) (T, error) {
	var t T
	if err := json.Unmarshal(body, &t); err != nil {
		var zero T
		return zero, fmt.Errorf("decode event payload: %w", err)
	}
	return t, nil
}
