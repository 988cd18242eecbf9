package order

import (
	"fmt"

	"pharmaflow/internal/pkg/errs"
)

// AckStatus represents the assigned pharmacy's acknowledgement state for an
// order.
//
// State transitions:
//
//	None ──> Pending ──┬──> Accepted
//	           ▲       └──> Rejected
//	           │
//	     (any state; reassignment resets to Pending)
//
// AckStatus is None only while no pharmacy is assigned. Assignment and
// reassignment force Pending regardless of the previous acknowledgement.
type AckStatus int

const (
	// AckUnknown represents an invalid or undefined acknowledgement state.
	AckUnknown AckStatus = iota

	// AckNone means no pharmacy has ever been assigned.
	AckNone

	// AckPending means the assigned pharmacy has not yet responded.
	AckPending

	// AckAccepted means the assigned pharmacy accepted the order.
	AckAccepted

	// AckRejected means the assigned pharmacy rejected the order.
	// Reassignment is a separate, explicit administrative action.
	AckRejected
)

func getAckStatusStrings() map[AckStatus]string {
	return map[AckStatus]string{
		AckUnknown:  "unknown",
		AckNone:     "none",
		AckPending:  "pending",
		AckAccepted: "accepted",
		AckRejected: "rejected",
	}
}

func getValidAckStatusStrings() map[AckStatus]string {
	//nolint:exhaustive // AckUnknown is intentionally excluded as it's invalid
	return map[AckStatus]string{
		AckNone:     "none",
		AckPending:  "pending",
		AckAccepted: "accepted",
		AckRejected: "rejected",
	}
}

// AckStatusFromString parses a wire/database label into an AckStatus.
func AckStatusFromString(s string) (AckStatus, error) {
	for status, label := range getValidAckStatusStrings() {
		if label == s {
			return status, nil
		}
	}
	return AckUnknown, errs.NewValueIsInvalidErrorWithCause("ack status",
		fmt.Errorf("%q is not a valid ack status", s))
}

// Validate checks that the AckStatus value is one of the valid states.
func (s AckStatus) Validate() error {
	if _, ok := getValidAckStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("ack status",
			fmt.Errorf("%d is not a valid ack status", s))
	}
	return nil
}

// String returns the label used on the wire and in the database.
func (s AckStatus) String() string {
	if str, ok := getAckStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// ValidateCanHavePharmacy validates consistency between the acknowledgement
// state and pharmacy assignment: None requires no pharmacy, every other state
// requires one.
func (s AckStatus) ValidateCanHavePharmacy(assigned bool) error {
	if assigned && s == AckNone {
		return errs.NewValueIsInvalidErrorWithCause("ack status",
			fmt.Errorf("%s is not a valid ack status for an assigned order", s))
	}
	if !assigned && s != AckNone {
		return errs.NewValueIsInvalidErrorWithCause("ack status",
			fmt.Errorf("%s is not a valid ack status without a pharmacy", s))
	}
	return nil
}
