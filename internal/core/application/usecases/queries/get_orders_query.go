package queries

import (
	"errors"

	"pharmaflow/internal/core/domain/model/kernel"
	"pharmaflow/internal/pkg/guard"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// GetOrdersQuery retrieves the dashboard order list, newest first. The
// optional pharmacy scope narrows the list to one pharmacy's assignments,
// which is how pharmacy users see their own queue.
type GetOrdersQuery struct {
	pharmacyID *kernel.UUID
	guard      guard.ConstructorGuard
}

// NewGetOrdersQuery creates an unscoped query over all orders.
func NewGetOrdersQuery() GetOrdersQuery {
	return GetOrdersQuery{guard: guard.NewConstructorGuard()}
}

// NewGetOrdersQueryForPharmacy creates a query scoped to one pharmacy's
// assigned orders.
func NewGetOrdersQueryForPharmacy(pharmacyID kernel.UUID) (GetOrdersQuery, error) {
	if err := pharmacyID.Validate(); err != nil {
		return GetOrdersQuery{}, err
	}

	return GetOrdersQuery{
		pharmacyID: &pharmacyID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// PharmacyID returns the scope, or nil for the unscoped list.
func (q GetOrdersQuery) PharmacyID() *kernel.UUID {
	return q.pharmacyID
}

// Validate ensures the query was created through a constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}
