package ports

import (
	"context"

	"pharmaflow/internal/core/domain/model/kernel"
	"pharmaflow/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates and
// their append-only event trail.
//
// The conditional mutation methods (UpdateStatus, UpdateAckStatus) implement
// the store's optimistic concurrency discipline: each is a single SQL
// statement guarded by the expected current state, and reports through its
// boolean result whether the row was actually changed. A false result means
// another writer got there first; callers re-read to classify the outcome as
// an idempotent no-op or a conflict. A read-then-write sequence without that
// guard is a correctness bug.
type OrderRepository interface {
	// Add persists a new order aggregate. The public tracking code is unique;
	// a collision surfaces as a value-is-invalid error.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its internal identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByCode retrieves an order by its public tracking code. This is the
	// lookup the payment gateway path uses, since the gateway only knows the
	// reference handed out at payment initiation.
	GetByCode(ctx context.Context, code kernel.TrackingCode) (*order.Order, error)

	// UpdateStatus conditionally advances the lifecycle status. The write
	// applies only if the persisted status still equals expected; returns
	// whether a row was updated.
	UpdateStatus(ctx context.Context, id kernel.UUID, expected, next order.Status) (bool, error)

	// UpdateAckStatus conditionally moves the pharmacy acknowledgement state.
	// The write applies only if the persisted ack status still equals
	// expected AND the order is still assigned to pharmacyID, so an
	// acknowledgement racing a reassignment cannot land on the new
	// assignment. Returns whether a row was updated.
	UpdateAckStatus(ctx context.Context, id, pharmacyID kernel.UUID, expected, next order.AckStatus) (bool, error)

	// AssignPharmacy sets the assigned pharmacy and forces the ack status to
	// pending in one statement. Permitted from any ack state.
	AssignPharmacy(ctx context.Context, id, pharmacyID kernel.UUID) error

	// AppendEvent appends one entry to the order's audit trail.
	AppendEvent(ctx context.Context, event order.Event) error

	// HasEventWithLabel reports whether the order's trail already contains an
	// event with the given status label. Used for idempotency checks.
	HasEventWithLabel(ctx context.Context, orderID kernel.UUID, label string) (bool, error)

	// ListEvents returns a page of the order's trail, oldest first.
	ListEvents(ctx context.Context, orderID kernel.UUID, offset, limit int) ([]order.Event, error)

	// AcquireOrderLock takes a transaction-scoped advisory lock on the order,
	// serializing writers that must check-then-append within one transaction
	// (e.g. duplicate payment-confirmation detection). Released on
	// commit/rollback.
	AcquireOrderLock(ctx context.Context, orderID kernel.UUID) error
}
