package kernel

import (
	"crypto/rand"
	"fmt"
	"strings"

	"pharmaflow/internal/pkg/errs"
)

// trackingAlphabet excludes characters that are easy to misread over the
// phone (I, L, O, 0, 1).
const trackingAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const (
	trackingGroups    = 3
	trackingGroupSize = 3
)

// TrackingCode is the public reference of an order, e.g. "EWW-F93-9GK".
// It is handed to the customer and to the payment gateway at payment
// initiation, and is the only identifier external parties ever see.
type TrackingCode struct {
	value string
}

// NewTrackingCode generates a random code of three dash-separated groups of
// three characters.
func NewTrackingCode() TrackingCode {
	buf := make([]byte, trackingGroups*trackingGroupSize)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(fmt.Sprintf("tracking code entropy: %v", err))
	}

	groups := make([]string, 0, trackingGroups)
	for g := 0; g < trackingGroups; g++ {
		var sb strings.Builder
		for i := 0; i < trackingGroupSize; i++ {
			sb.WriteByte(trackingAlphabet[int(buf[g*trackingGroupSize+i])%len(trackingAlphabet)])
		}
		groups = append(groups, sb.String())
	}

	return TrackingCode{value: strings.Join(groups, "-")}
}

// TrackingCodeFromString parses and validates a code received from an
// external party. Input is upper-cased before validation so references
// survive case-insensitive transports.
func TrackingCodeFromString(s string) (TrackingCode, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))

	parts := strings.Split(normalized, "-")
	if len(parts) != trackingGroups {
		return TrackingCode{}, errs.NewValueIsInvalidErrorWithCause("tracking code",
			fmt.Errorf("%q does not have %d groups", s, trackingGroups))
	}
	for _, part := range parts {
		if len(part) != trackingGroupSize {
			return TrackingCode{}, errs.NewValueIsInvalidErrorWithCause("tracking code",
				fmt.Errorf("group %q is not %d characters", part, trackingGroupSize))
		}
		for _, r := range part {
			if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
				return TrackingCode{}, errs.NewValueIsInvalidErrorWithCause("tracking code",
					fmt.Errorf("%q is not an uppercase letter or digit", r))
			}
		}
	}

	return TrackingCode{value: normalized}, nil
}

// String returns the canonical "XXX-XXX-XXX" form.
func (c TrackingCode) String() string {
	return c.value
}

// IsEqual reports whether two codes are the same reference.
func (c TrackingCode) IsEqual(other TrackingCode) bool {
	return c.value == other.value
}

// Validate returns an error for the zero value.
func (c TrackingCode) Validate() error {
	if c.value == "" {
		return errs.NewValueIsRequiredError(
			"tracking code must be created via NewTrackingCode or TrackingCodeFromString")
	}
	return nil
}
