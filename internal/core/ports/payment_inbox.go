package ports

import (
	"context"
	"time"
)

// UnmatchedPayment is a verified payment confirmation whose tracking code did
// not match any order at the time the webhook arrived. It is retained for a
// bounded number of rematch attempts so a creation-order race or replica lag
// does not permanently drop the confirmation.
type UnmatchedPayment struct {
	Reference   string
	AmountMinor int64
	Currency    string
	Attempts    int
	ReceivedAt  time.Time
}

// PaymentInboxRepository stores unmatched payment confirmations between
// rematch attempts. Recording the same reference twice is a no-op.
type PaymentInboxRepository interface {
	Record(ctx context.Context, reference string, amountMinor int64, currency string) error
	ListDue(ctx context.Context, maxAttempts int) ([]UnmatchedPayment, error)
	IncrementAttempts(ctx context.Context, reference string) error
	Remove(ctx context.Context, reference string) error
}
