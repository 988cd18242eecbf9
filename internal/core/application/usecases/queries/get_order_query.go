// Package queries contains read-only operations against the order store.
// Query handlers bypass the aggregate layer and read through raw SQL for
// efficiency; they never mutate state.
package queries

import (
	"errors"
	"time"

	"pharmaflow/internal/core/domain/model/kernel"
	"pharmaflow/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves a single order by its internal identifier.
//
// Example:
//
//	query, err := queries.NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	order, err := handler.Handle(ctx, query)
type GetOrderQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the requested order's identifier.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderResponse is the read model for a single order. The customer phone is
// only ever exposed in masked form.
type OrderResponse struct {
	ID           kernel.UUID
	TrackingCode string
	Status       string
	AckStatus    string
	PharmacyID   *kernel.UUID
	TotalPrice   decimal.Decimal
	PhoneMasked  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
