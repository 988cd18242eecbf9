package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetOrdersQueryHandler reads the order list from the database.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for order list queries.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle returns matching orders, newest first.
func (h GetOrdersQueryHandler) Handle(ctx context.Context, query GetOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	const baseQuery = `
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
	`

	tx := h.db.WithContext(ctx)
	var rows *gorm.DB
	if scope := query.PharmacyID(); scope != nil {
		rows = tx.Raw(baseQuery+` WHERE pharmacy_id = ? ORDER BY created_at DESC`, scope.Bytes())
	} else {
		rows = tx.Raw(baseQuery + ` ORDER BY created_at DESC`)
	}

	result, err := rows.Rows()
	if err != nil {
		return nil, err
	}
	defer result.Close()

	orders := make([]OrderResponse, 0)
	for result.Next() {
		resp, err := scanOrderRow(result)
		if err != nil {
			return nil, err
		}
		orders = append(orders, resp)
	}
	if err = result.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
