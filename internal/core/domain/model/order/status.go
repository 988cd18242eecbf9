package order

import (
	"fmt"

	"pharmaflow/internal/pkg/errs"
)

// Status represents the fulfillment lifecycle state of an order.
//
// State transitions:
//
//	Received ──> Processing ──> OutForDelivery ──> Completed
//
// Transitions only move forward, one step at a time. An administrative
// override may skip forward steps, but never move backward; the override must
// be recorded on the event trail by the caller.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusReceived is the initial status when an order is created by checkout.
	StatusReceived

	// StatusProcessing indicates the order is being prepared for dispatch.
	StatusProcessing

	// StatusOutForDelivery indicates the order has left the pharmacy.
	StatusOutForDelivery

	// StatusCompleted indicates the order was delivered. Final state.
	StatusCompleted
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:        "unknown",
		StatusReceived:       "received",
		StatusProcessing:     "processing",
		StatusOutForDelivery: "out_for_delivery",
		StatusCompleted:      "completed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusReceived:       "received",
		StatusProcessing:     "processing",
		StatusOutForDelivery: "out_for_delivery",
		StatusCompleted:      "completed",
	}
}

// StatusFromString parses a wire/database status label into a Status.
// Returns an error for any label outside the valid set.
func StatusFromString(s string) (Status, error) {
	for status, label := range getValidStatusStrings() {
		if label == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the Status value is one of the valid lifecycle states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the snake_case label used on the wire and in the database.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsFinal reports whether no further transitions are possible.
func (s Status) IsFinal() bool {
	return s == StatusCompleted
}

// Advance returns the status after a regular single-step forward transition
// to next. It rejects backward moves, skips, and self-transitions.
func (s Status) Advance(next Status) (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if err := next.Validate(); err != nil {
		return 0, err
	}
	if next != s+1 {
		return 0, errs.NewValueIsInvalidErrorWithCause("status transition",
			fmt.Errorf("%s -> %s is not a forward step", s, next))
	}
	return next, nil
}

// AdvanceWithOverride returns the status after an administrative override
// transition to next. Overrides may skip forward steps but never move
// backward or repeat the current state.
func (s Status) AdvanceWithOverride(next Status) (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if err := next.Validate(); err != nil {
		return 0, err
	}
	if next <= s {
		return 0, errs.NewValueIsInvalidErrorWithCause("status transition",
			fmt.Errorf("%s -> %s does not move forward", s, next))
	}
	return next, nil
}
