package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pharmaflow/internal/core/domain/model/kernel"
	"pharmaflow/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order row from the database.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order lookups.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns the order, or an object-not-found error when the id does not
// exist.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			tracking_code,
			status,
			ack_status,
			pharmacy_id,
			total_price,
			phone,
			created_at,
			updated_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	resp, err := scanOrderRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return OrderResponse{}, errs.NewObjectNotFoundError("orderID", query.OrderID().String())
		}
		return OrderResponse{}, err
	}

	return resp, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrderRow(row rowScanner) (OrderResponse, error) {
	var (
		id         uuid.UUID
		code       string
		status     string
		ackStatus  string
		pharmacyID uuid.NullUUID
		totalPrice decimal.Decimal
		phone      string
		createdAt  time.Time
		updatedAt  time.Time
	)

	if err := row.Scan(&id, &code, &status, &ackStatus, &pharmacyID, &totalPrice, &phone, &createdAt, &updatedAt); err != nil {
		return OrderResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return OrderResponse{}, err
	}

	resp := OrderResponse{
		ID:           orderID,
		TrackingCode: code,
		Status:       status,
		AckStatus:    ackStatus,
		TotalPrice:   totalPrice,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}

	if pharmacyID.Valid {
		pid, err := kernel.UUIDFromBytes(pharmacyID.UUID[:])
		if err != nil {
			return OrderResponse{}, err
		}
		resp.PharmacyID = &pid
	}

	storedPhone, err := kernel.NewPhone(phone)
	if err != nil {
		return OrderResponse{}, err
	}
	resp.PhoneMasked = storedPhone.Masked()

	return resp, nil
}
