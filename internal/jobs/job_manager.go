package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"pharmaflow/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	paymentRematchJob   *PaymentRematchJob
	staleAckReminderJob *StaleAckReminderJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	paymentUoWFactory commands.PaymentUoWFactory,
	confirmPayment commands.ConfirmPaymentCommandHandler,
	db *gorm.DB,
	maxRematchAttempts int,
	ackReminderThreshold time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		paymentRematchJob:   NewPaymentRematchJob(paymentUoWFactory, confirmPayment, maxRematchAttempts, logger),
		staleAckReminderJob: NewStaleAckReminderJob(db, ackReminderThreshold, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.paymentRematchJob.Start(); err != nil {
		return fmt.Errorf("failed to start payment rematch job: %w", err)
	}

	if err := jm.staleAckReminderJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.paymentRematchJob.Stop()
		return fmt.Errorf("failed to start stale ack reminder job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.paymentRematchJob.Stop()
	jm.staleAckReminderJob.Stop()
}
