package commands

import (
	"errors"

	"pharmaflow/internal/core/domain/model/kernel"
	"pharmaflow/internal/pkg/errs"
	"pharmaflow/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand records a new delivery order coming from the checkout
// collaborator. The order starts in the received state with a freshly
// generated public tracking code; that code is what checkout hands to the
// payment gateway as the charge reference.
type CreateOrderCommand struct {
	phone      kernel.Phone
	totalPrice decimal.Decimal
	guard      guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
func NewCreateOrderCommand(phone kernel.Phone, totalPrice decimal.Decimal) (CreateOrderCommand, error) {
	if err := phone.Validate(); err != nil {
		return CreateOrderCommand{}, err
	}
	if !totalPrice.IsPositive() {
		return CreateOrderCommand{}, errs.NewValueIsInvalidError("totalPrice")
	}

	return CreateOrderCommand{
		phone:      phone,
		totalPrice: totalPrice,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Phone returns the customer phone number.
func (c *CreateOrderCommand) Phone() kernel.Phone {
	return c.phone
}

// TotalPrice returns the order total.
func (c *CreateOrderCommand) TotalPrice() decimal.Decimal {
	return c.totalPrice
}

// Validate ensures the command was created through the constructor.
func (c *CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}
