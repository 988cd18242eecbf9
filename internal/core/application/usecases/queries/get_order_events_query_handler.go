package queries

import (
	"context"
	"time"

	"pharmaflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderEventsQueryHandler reads a page of an order's audit trail.
type GetOrderEventsQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderEventsQueryHandler creates a handler for order history queries.
func NewGetOrderEventsQueryHandler(db *gorm.DB) GetOrderEventsQueryHandler {
	return GetOrderEventsQueryHandler{db: db}
}

// Handle returns the requested page, oldest events first.
func (h GetOrderEventsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderEventsQuery,
) ([]OrderEventResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			status_label,
			note,
			created_at
		FROM order_events
		WHERE order_id = ?
		ORDER BY created_at, id
		OFFSET ? LIMIT ?
	`, query.OrderID().Bytes(), query.Offset(), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]OrderEventResponse, 0)
	for rows.Next() {
		var (
			id        uuid.UUID
			orderID   uuid.UUID
			label     string
			note      string
			createdAt time.Time
		)
		if err = rows.Scan(&id, &orderID, &label, &note, &createdAt); err != nil {
			return nil, err
		}

		eventID, err := kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		eventOrderID, err := kernel.UUIDFromBytes(orderID[:])
		if err != nil {
			return nil, err
		}

		events = append(events, OrderEventResponse{
			ID:          eventID,
			OrderID:     eventOrderID,
			StatusLabel: label,
			Note:        note,
			CreatedAt:   createdAt,
		})
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
