package commands

import (
	"errors"

	"pharmaflow/internal/core/domain/model/kernel"
	"pharmaflow/internal/pkg/guard"
)

var ErrConfirmPaymentCommandIsNotConstructed = errors.New(
	"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
)

// ConfirmPaymentCommand marks an order's payment as confirmed. The reference
// is the public tracking code the checkout collaborator handed to the payment
// gateway, so confirmations are matched by code rather than by internal id.
type ConfirmPaymentCommand struct {
	reference kernel.TrackingCode
	guard     guard.ConstructorGuard
}

// NewConfirmPaymentCommand creates a command from a gateway charge reference.
func NewConfirmPaymentCommand(reference string) (ConfirmPaymentCommand, error) {
	code, err := kernel.TrackingCodeFromString(reference)
	if err != nil {
		return ConfirmPaymentCommand{}, err
	}

	return ConfirmPaymentCommand{
		reference: code,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Reference returns the tracking code the payment was matched against.
func (c *ConfirmPaymentCommand) Reference() kernel.TrackingCode {
	return c.reference
}

// Validate ensures the command was created through the constructor.
func (c *ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}
