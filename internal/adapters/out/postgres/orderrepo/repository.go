package orderrepo

import (
	"context"
	"errors"
	"hash/fnv"
	"time"

	"pharmaflow/internal/core/domain/model/kernel"
	"pharmaflow/internal/core/domain/model/order"
	"pharmaflow/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const uniqueViolationCode = "23505"

// GormOrderRepository implements ports.OrderRepository using GORM.
//
// The conditional mutations (UpdateStatus, UpdateAckStatus) are single UPDATE
// statements guarded by the expected current state. RowsAffected tells the
// caller whether the write took effect; there is deliberately no
// read-modify-write variant.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker records aggregates touched inside a unit of work.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order. A tracking code collision surfaces as a
// value-is-invalid error so callers can regenerate and retry.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return errs.NewValueIsInvalidErrorWithCause("trackingCode", err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByCode retrieves an order by its public tracking code.
func (r *GormOrderRepository) GetByCode(ctx context.Context, code kernel.TrackingCode) (*order.Order, error) {
	if err := code.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "tracking_code = ?", code.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", code.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// UpdateStatus conditionally advances the lifecycle status.
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, id kernel.UUID, expected, next order.Status) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", id.Bytes(), expected.String()).
		Updates(map[string]any{
			"status":     next.String(),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// UpdateAckStatus conditionally moves the acknowledgement state, bound to the
// pharmacy the caller believes is assigned.
func (r *GormOrderRepository) UpdateAckStatus(
	ctx context.Context,
	id, pharmacyID kernel.UUID,
	expected, next order.AckStatus,
) (bool, error) {
	if err := errors.Join(id.Validate(), pharmacyID.Validate()); err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND pharmacy_id = ? AND ack_status = ?", id.Bytes(), pharmacyID.Bytes(), expected.String()).
		Updates(map[string]any{
			"ack_status": next.String(),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// AssignPharmacy sets the pharmacy and resets the acknowledgement to pending
// in one statement.
func (r *GormOrderRepository) AssignPharmacy(ctx context.Context, id, pharmacyID kernel.UUID) error {
	if err := errors.Join(id.Validate(), pharmacyID.Validate()); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", id.Bytes()).
		Updates(map[string]any{
			"pharmacy_id": pharmacyID.Bytes(),
			"ack_status":  order.AckPending.String(),
			"updated_at":  time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}

	return nil
}

// AppendEvent appends one audit trail entry. A duplicate of a uniquely
// indexed label (the payment confirmation marker) is swallowed: the trail
// already says what this write wanted to say.
func (r *GormOrderRepository) AppendEvent(ctx context.Context, event order.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	dto := eventFromDomain(event)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return nil
		}
		return err
	}

	return nil
}

// HasEventWithLabel reports whether the trail already carries the label.
func (r *GormOrderRepository) HasEventWithLabel(ctx context.Context, orderID kernel.UUID, label string) (bool, error) {
	if err := orderID.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&OrderEventDTO{}).
		Where("order_id = ? AND status_label = ?", orderID.Bytes(), label).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// ListEvents returns a page of the trail, oldest first.
func (r *GormOrderRepository) ListEvents(ctx context.Context, orderID kernel.UUID, offset, limit int) ([]order.Event, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderEventDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at, id").
		Offset(offset).
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	events := make([]order.Event, 0, len(dtos))
	for _, dto := range dtos {
		event, err := eventToDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, nil
}

// AcquireOrderLock takes a transaction-scoped advisory lock keyed by the
// order id, serializing check-then-append sequences across competing
// transactions. The lock is released when the surrounding transaction ends.
func (r *GormOrderRepository) AcquireOrderLock(ctx context.Context, orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	h := fnv.New32a()
	h.Write([]byte(orderID.String()))

	return r.db.WithContext(ctx).Exec(`SELECT pg_advisory_xact_lock(?)`, int64(h.Sum32())).Error
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode
}
