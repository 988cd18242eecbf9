package commands

import (
	"errors"

	"pharmaflow/internal/core/domain/model/kernel"
	"pharmaflow/internal/pkg/guard"
)

var ErrAssignPharmacyCommandIsNotConstructed = errors.New(
	"AssignPharmacyCommand must be created via NewAssignPharmacyCommand constructor",
)

// AssignPharmacyCommand routes an order to a pharmacy for fulfilment.
// Assignment is an admin action and is allowed from any acknowledgement
// state, so a rejected or unanswered order can be rerouted.
type AssignPharmacyCommand struct {
	orderID    kernel.UUID
	pharmacyID kernel.UUID
	guard      guard.ConstructorGuard
}

// NewAssignPharmacyCommand creates a command to assign an order to a pharmacy.
func NewAssignPharmacyCommand(orderID, pharmacyID kernel.UUID) (AssignPharmacyCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AssignPharmacyCommand{}, err
	}
	if err := pharmacyID.Validate(); err != nil {
		return AssignPharmacyCommand{}, err
	}

	return AssignPharmacyCommand{
		orderID:    orderID,
		pharmacyID: pharmacyID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the order to route.
func (c *AssignPharmacyCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PharmacyID returns the pharmacy receiving the order.
func (c *AssignPharmacyCommand) PharmacyID() kernel.UUID {
	return c.pharmacyID
}

// Validate ensures the command was created through the constructor.
func (c *AssignPharmacyCommand) Validate() error {
	return c.guard.Validate(ErrAssignPharmacyCommandIsNotConstructed)
}
