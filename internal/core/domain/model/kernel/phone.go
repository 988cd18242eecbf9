package kernel

import (
	"fmt"
	"strings"

	"pharmaflow/internal/pkg/errs"
)

// countryCallingCode replaces the domestic trunk prefix "0" when a number is
// normalized to international form.
const countryCallingCode = "233"

const (
	minPhoneDigits = 9
	maxPhoneDigits = 15
)

// Phone is a value object for a customer's mobile number. It accepts numbers
// in domestic ("0241234567") or international ("233241234567") form and keeps
// them as entered; Normalized returns the international form expected by the
// SMS gateway.
type Phone struct {
	digits string
}

// NewPhone creates a Phone from raw input. Spaces, hyphens and a leading "+"
// are stripped; the remainder must be all digits within the accepted length.
func NewPhone(raw string) (Phone, error) {
	cleaned := strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(raw))
	cleaned = strings.TrimPrefix(cleaned, "+")

	if cleaned == "" {
		return Phone{}, errs.NewValueIsRequiredError("phone")
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return Phone{}, errs.NewValueIsInvalidErrorWithCause("phone",
				fmt.Errorf("%q is not a digit", r))
		}
	}
	if len(cleaned) < minPhoneDigits || len(cleaned) > maxPhoneDigits {
		return Phone{}, errs.NewValueIsOutOfRangeError("phone digits", len(cleaned), minPhoneDigits, maxPhoneDigits)
	}

	return Phone{digits: cleaned}, nil
}

// Normalized returns the number in international form: a leading trunk "0" is
// replaced with the country calling code, anything else passes through
// unchanged (assumed already international).
func (p Phone) Normalized() string {
	if strings.HasPrefix(p.digits, "0") {
		return countryCallingCode + p.digits[1:]
	}
	return p.digits
}

// Masked returns a display-safe form keeping the leading three and trailing
// two digits, e.g. "0241234567" -> "024*****67".
func (p Phone) Masked() string {
	if len(p.digits) <= 5 {
		return strings.Repeat("*", len(p.digits))
	}
	return p.digits[:3] + strings.Repeat("*", len(p.digits)-5) + p.digits[len(p.digits)-2:]
}

// String returns the number as entered, digits only.
func (p Phone) String() string {
	return p.digits
}

// Validate returns an error for the zero value.
func (p Phone) Validate() error {
	if p.digits == "" {
		return errs.NewValueIsRequiredError("phone must be created via NewPhone")
	}
	return nil
}
