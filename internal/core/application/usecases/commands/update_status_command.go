package commands

import (
	"errors"

	"pharmaflow/internal/core/domain/model/kernel"
	"pharmaflow/internal/core/domain/model/order"
	"pharmaflow/internal/pkg/guard"
)

var ErrUpdateStatusCommandIsNotConstructed = errors.New(
	"UpdateStatusCommand must be created via NewUpdateStatusCommand constructor",
)

// UpdateStatusCommand moves an order forward along its delivery lifecycle.
// Staff normally advance one step at a time; override lets an admin skip
// forward (never backward), and the skip is called out in the audit note.
type UpdateStatusCommand struct {
	orderID  kernel.UUID
	next     order.Status
	note     string
	override bool
	guard    guard.ConstructorGuard
}

// NewUpdateStatusCommand creates a command to advance an order's status.
func NewUpdateStatusCommand(orderID kernel.UUID, next order.Status, note string, override bool) (UpdateStatusCommand, error) {
	if err := orderID.Validate(); err != nil {
		return UpdateStatusCommand{}, err
	}
	if err := next.Validate(); err != nil {
		return UpdateStatusCommand{}, err
	}

	return UpdateStatusCommand{
		orderID:  orderID,
		next:     next,
		note:     note,
		override: override,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the order to advance.
func (c *UpdateStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Next returns the target lifecycle status.
func (c *UpdateStatusCommand) Next() order.Status {
	return c.next
}

// Note returns the optional free-form audit note.
func (c *UpdateStatusCommand) Note() string {
	return c.note
}

// Override reports whether skipping intermediate statuses is permitted.
func (c *UpdateStatusCommand) Override() bool {
	return c.override
}

// Validate ensures the command was created through the constructor.
func (c *UpdateStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateStatusCommandIsNotConstructed)
}
