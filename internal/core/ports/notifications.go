package ports

import (
	"context"
	"time"
)

// Notification kinds dispatched on significant order transitions.
const (
	NotificationConfirmation = "confirmation"
	NotificationShipping     = "shipping"
	NotificationDelivery     = "delivery"
)

// SMSMessage is one text message addressed to an international-form number.
type SMSMessage struct {
	To   string
	Body string
}

// SMSSender delivers a message through the external SMS gateway.
// Implementations return an error on transport failure or a non-2xx gateway
// response; callers decide whether that failure may propagate.
type SMSSender interface {
	Send(ctx context.Context, message SMSMessage) error
}

// OrderChange is one entry of the order table's change feed, pushed to live
// dashboard subscribers.
type OrderChange struct {
	OrderID    string    `json:"order_id"`
	Code       string    `json:"code"`
	Status     string    `json:"status"`
	AckStatus  string    `json:"ack_status"`
	PharmacyID *string   `json:"pharmacy_id,omitempty"`
	Label      string    `json:"label"`
	Note       string    `json:"note,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ChangePublisher receives a change notification after a mutation commits.
// Publishing must never block the mutation path.
type ChangePublisher interface {
	Publish(change OrderChange)
}
