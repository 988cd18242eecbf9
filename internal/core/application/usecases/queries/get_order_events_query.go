package queries

import (
	"errors"
	"time"

	"pharmaflow/internal/core/domain/model/kernel"
	"pharmaflow/internal/pkg/errs"
	"pharmaflow/internal/pkg/guard"
)

var ErrGetOrderEventsQueryIsNotConstructed = errors.New(
	"GetOrderEventsQuery must be created via NewGetOrderEventsQuery constructor",
)

const (
	minEventsLimit = 1
	maxEventsLimit = 100
)

// GetOrderEventsQuery retrieves a page of an order's audit trail, oldest
// first, so the history reads top to bottom as it happened.
type GetOrderEventsQuery struct {
	orderID kernel.UUID
	offset  int
	limit   int
	guard   guard.ConstructorGuard
}

// NewGetOrderEventsQuery creates a paginated history query.
func NewGetOrderEventsQuery(orderID kernel.UUID, offset, limit int) (GetOrderEventsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderEventsQuery{}, err
	}
	if offset < 0 {
		return GetOrderEventsQuery{}, errs.NewValueIsInvalidError("offset")
	}
	if limit < minEventsLimit || limit > maxEventsLimit {
		return GetOrderEventsQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, minEventsLimit, maxEventsLimit)
	}

	return GetOrderEventsQuery{
		orderID: orderID,
		offset:  offset,
		limit:   limit,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the order whose history is requested.
func (q GetOrderEventsQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Offset returns the number of leading events to skip.
func (q GetOrderEventsQuery) Offset() int {
	return q.offset
}

// Limit returns the page size.
func (q GetOrderEventsQuery) Limit() int {
	return q.limit
}

// Validate ensures the query was created through the constructor.
func (q GetOrderEventsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderEventsQueryIsNotConstructed)
}

// OrderEventResponse is one entry of an order's audit trail.
type OrderEventResponse struct {
	ID          kernel.UUID
	OrderID     kernel.UUID
	StatusLabel string
	Note        string
	CreatedAt   time.Time
}
