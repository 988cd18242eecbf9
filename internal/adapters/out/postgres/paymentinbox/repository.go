// Package paymentinbox stores verified payment confirmations that matched no
// order, so a rematch job can retry them later instead of dropping money on
// the floor.
package paymentinbox

import (
	"context"
	"errors"
	"time"

	"pharmaflow/internal/core/ports"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const uniqueViolationCode = "23505"

// UnmatchedPaymentDTO is one parked payment confirmation.
type UnmatchedPaymentDTO struct {
	Reference   string `gorm:"type:varchar(16);primaryKey"`
	AmountMinor int64
	Currency    string `gorm:"type:varchar(8)"`
	Attempts    int
	ReceivedAt  time.Time
}

// TableName overrides GORM's default naming to use "payment_inbox".
func (UnmatchedPaymentDTO) TableName() string {
	return "payment_inbox"
}

// GormPaymentInboxRepository implements ports.PaymentInboxRepository.
type GormPaymentInboxRepository struct {
	db *gorm.DB
}

// NewGormPaymentInboxRepository creates a repository for the payment inbox.
func NewGormPaymentInboxRepository(db *gorm.DB) *GormPaymentInboxRepository {
	return &GormPaymentInboxRepository{db: db}
}

// Record parks an unmatched confirmation. The reference is the primary key,
// so a webhook retry that re-records the same reference is a no-op.
func (r *GormPaymentInboxRepository) Record(ctx context.Context, reference string, amountMinor int64, currency string) error {
	dto := UnmatchedPaymentDTO{
		Reference:   reference,
		AmountMinor: amountMinor,
		Currency:    currency,
		ReceivedAt:  time.Now().UTC(),
	}

	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode {
			return nil
		}
		return err
	}

	return nil
}

// ListDue returns parked confirmations that still have attempts left,
// oldest first.
func (r *GormPaymentInboxRepository) ListDue(ctx context.Context, maxAttempts int) ([]ports.UnmatchedPayment, error) {
	var dtos []UnmatchedPaymentDTO
	err := r.db.WithContext(ctx).
		Where("attempts < ?", maxAttempts).
		Order("received_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	payments := make([]ports.UnmatchedPayment, 0, len(dtos))
	for _, dto := range dtos {
		payments = append(payments, ports.UnmatchedPayment{
			Reference:   dto.Reference,
			AmountMinor: dto.AmountMinor,
			Currency:    dto.Currency,
			Attempts:    dto.Attempts,
			ReceivedAt:  dto.ReceivedAt,
		})
	}

	return payments, nil
}

// IncrementAttempts bumps the rematch counter after a failed attempt.
func (r *GormPaymentInboxRepository) IncrementAttempts(ctx context.Context, reference string) error {
	return r.db.WithContext(ctx).
		Model(&UnmatchedPaymentDTO{}).
		Where("reference = ?", reference).
		UpdateColumn("attempts", gorm.Expr("attempts + 1")).Error
}

// Remove deletes a confirmation once it has been matched or given up on.
func (r *GormPaymentInboxRepository) Remove(ctx context.Context, reference string) error {
	return r.db.WithContext(ctx).
		Delete(&UnmatchedPaymentDTO{}, "reference = ?", reference).Error
}
