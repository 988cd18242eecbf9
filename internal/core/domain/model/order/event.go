package order

import (
	"fmt"
	"time"

	"pharmaflow/internal/core/domain/model/kernel"
	"pharmaflow/internal/pkg/errs"
)

// Well-known status labels on the event trail. Labels are free-form text;
// these are the ones the system itself writes and checks for idempotency.
const (
	LabelOrderReceived    = "Order received"
	LabelPaymentConfirmed = "Payment Confirmed"
	LabelAssigned         = "assigned"
	LabelReassigned       = "reassigned"
	LabelAccepted         = "accepted"
	LabelRejected         = "rejected"
	LabelStatusUpdated    = "status updated"
)

// SMSMarkerLabel returns the label recorded after a notification of the given
// kind was delivered. Its presence makes re-dispatch for the same
// (order, kind) a no-op.
func SMSMarkerLabel(kind string) string {
	return "sms:" + kind
}

// Event is one entry of an order's append-only audit trail. Events are never
// updated or deleted; they are the mechanism by which history is reconstructed
// and duplicate external signals are detected.
type Event struct {
	id          kernel.UUID
	orderID     kernel.UUID
	statusLabel string
	note        string
	createdAt   time.Time
}

// NewEvent creates an audit trail entry for an order.
func NewEvent(orderID kernel.UUID, statusLabel, note string) (Event, error) {
	if err := orderID.Validate(); err != nil {
		return Event{}, err
	}
	if statusLabel == "" {
		return Event{}, errs.NewValueIsRequiredError("statusLabel")
	}

	return Event{
		id:          kernel.NewUUID(),
		orderID:     orderID,
		statusLabel: statusLabel,
		note:        note,
		createdAt:   time.Now().UTC(),
	}, nil
}

// RestoreEvent reconstructs an event from persistence.
func RestoreEvent(id, orderID kernel.UUID, statusLabel, note string, createdAt time.Time) (Event, error) {
	if err := id.Validate(); err != nil {
		return Event{}, err
	}
	if err := orderID.Validate(); err != nil {
		return Event{}, err
	}
	if statusLabel == "" {
		return Event{}, errs.NewValueIsRequiredError("statusLabel")
	}

	return Event{
		id:          id,
		orderID:     orderID,
		statusLabel: statusLabel,
		note:        note,
		createdAt:   createdAt,
	}, nil
}

// ID returns the event's unique identifier.
func (e Event) ID() kernel.UUID { return e.id }

// OrderID returns the identifier of the order the event belongs to.
func (e Event) OrderID() kernel.UUID { return e.orderID }

// StatusLabel returns the descriptive tag, e.g. "Payment Confirmed".
func (e Event) StatusLabel() string { return e.statusLabel }

// Note returns the free-form detail attached to the event.
func (e Event) Note() string { return e.note }

// CreatedAt returns when the event was appended.
func (e Event) CreatedAt() time.Time { return e.createdAt }

// Validate returns an error for a zero-value event.
func (e Event) Validate() error {
	if e.statusLabel == "" {
		return fmt.Errorf("event must be created via NewEvent or RestoreEvent")
	}
	return e.orderID.Validate()
}
