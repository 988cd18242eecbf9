// Package orderrepo persists order aggregates and their append-only event
// trail, mapping between domain objects and database rows.
package orderrepo

import (
	"time"

	"pharmaflow/internal/core/domain/model/kernel"
	"pharmaflow/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the database representation of an order aggregate. Status and
// acknowledgement are stored as their string forms so the conditional update
// statements and dashboard SQL stay readable.
type OrderDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TrackingCode string          `gorm:"type:varchar(16);uniqueIndex"`
	Status       string          `gorm:"type:varchar(32);index"`
	PharmacyID   *uuid.UUID      `gorm:"type:uuid;index"`
	AckStatus    string          `gorm:"type:varchar(32)"`
	TotalPrice   decimal.Decimal `gorm:"type:numeric(12,2)"`
	Phone        string          `gorm:"type:varchar(20)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderEventDTO is one row of the append-only audit trail.
type OrderEventDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	StatusLabel string    `gorm:"type:varchar(64)"`
	Note        string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"index"`
}

// TableName overrides GORM's default naming to use "order_events".
func (OrderEventDTO) TableName() string {
	return "order_events"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var pharmacyID *uuid.UUID
	if id := aggregate.Pharmacy(); id != nil {
		raw := id.Bytes()
		pharmacyID = &raw
	}

	return OrderDTO{
		ID:           aggregate.ID().Bytes(),
		TrackingCode: aggregate.TrackingCode().String(),
		Status:       aggregate.Status().String(),
		PharmacyID:   pharmacyID,
		AckStatus:    aggregate.AckStatus().String(),
		TotalPrice:   aggregate.TotalPrice(),
		Phone:        aggregate.Phone().String(),
		CreatedAt:    aggregate.CreatedAt(),
		UpdatedAt:    aggregate.UpdatedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	code, err := kernel.TrackingCodeFromString(dto.TrackingCode)
	if err != nil {
		return nil, err
	}

	phone, err := kernel.NewPhone(dto.Phone)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	ackStatus, err := order.AckStatusFromString(dto.AckStatus)
	if err != nil {
		return nil, err
	}

	var pharmacyID *kernel.UUID
	if dto.PharmacyID != nil {
		pID, pharmacyErr := kernel.UUIDFromBytes((*dto.PharmacyID)[:])
		if pharmacyErr != nil {
			return nil, pharmacyErr
		}
		pharmacyID = &pID
	}

	return order.RestoreOrder(
		id, code, phone, dto.TotalPrice,
		status, pharmacyID, ackStatus,
		dto.CreatedAt, dto.UpdatedAt,
	)
}

func eventFromDomain(event order.Event) OrderEventDTO {
	return OrderEventDTO{
		ID:          event.ID().Bytes(),
		OrderID:     event.OrderID().Bytes(),
		StatusLabel: event.StatusLabel(),
		Note:        event.Note(),
		CreatedAt:   event.CreatedAt(),
	}
}

func eventToDomain(dto OrderEventDTO) (order.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.Event{}, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return order.Event{}, err
	}

	return order.RestoreEvent(id, orderID, dto.StatusLabel, dto.Note, dto.CreatedAt)
}
