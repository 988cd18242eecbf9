package jobs

import (
	"context"
	"errors"
	"log/slog"

	"pharmaflow/internal/core/application/usecases/commands"
	"pharmaflow/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// PaymentRematchJob replays parked payment confirmations against the order
// store. A webhook can arrive before its order row is visible (creation-order
// race, replica lag); the webhook path parks such payments in the inbox and
// this job retries them until they match or their attempts run out.
type PaymentRematchJob struct {
	uowFactory     commands.PaymentUoWFactory
	confirmPayment commands.ConfirmPaymentCommandHandler
	maxAttempts    int
	cron           *cron.Cron
	logger         *slog.Logger
}

// NewPaymentRematchJob creates a job that rematches parked payments every 30
// seconds, giving up on a reference after maxAttempts misses.
func NewPaymentRematchJob(
	uowFactory commands.PaymentUoWFactory,
	confirmPayment commands.ConfirmPaymentCommandHandler,
	maxAttempts int,
	logger *slog.Logger,
) *PaymentRematchJob {
	return &PaymentRematchJob{
		uowFactory:     uowFactory,
		confirmPayment: confirmPayment,
		maxAttempts:    maxAttempts,
		cron:           cron.New(cron.WithSeconds()),
		logger:         logger.With("component", "payment_rematch_job"),
	}
}

// Start begins the rematch job on its 30 second cadence.
func (j *PaymentRematchJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()
		if err := j.run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Payment rematch run failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Payment rematch job started (running every 30 seconds)")
	return nil
}

// Stop stops the rematch job.
func (j *PaymentRematchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Payment rematch job stopped")
}

func (j *PaymentRematchJob) run(ctx context.Context) error {
	uow := j.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	inbox := uow.PaymentInboxRepository()
	due, err := inbox.ListDue(ctx, j.maxAttempts)
	if err != nil {
		return err
	}

	for _, payment := range due {
		cmd, err := commands.NewConfirmPaymentCommand(payment.Reference)
		if err != nil {
			j.logger.WarnContext(ctx, "Dropping unparseable parked reference",
				"reference", payment.Reference, "error", err)
			if err := inbox.Remove(ctx, payment.Reference); err != nil {
				return err
			}
			continue
		}

		// The confirmation handler runs in its own transaction; this
		// transaction only maintains the inbox bookkeeping.
		_, err = j.confirmPayment.Handle(ctx, cmd)
		switch {
		case err == nil:
			j.logger.InfoContext(ctx, "Rematched parked payment", "reference", payment.Reference)
			if err := inbox.Remove(ctx, payment.Reference); err != nil {
				return err
			}
		case errors.Is(err, errs.ErrObjectNotFound):
			if err := inbox.IncrementAttempts(ctx, payment.Reference); err != nil {
				return err
			}
			if payment.Attempts+1 >= j.maxAttempts {
				j.logger.WarnContext(ctx, "Giving up on parked payment, attempts exhausted",
					"reference", payment.Reference, "attempts", payment.Attempts+1)
			}
		default:
			j.logger.ErrorContext(ctx, "Rematch attempt failed",
				"reference", payment.Reference, "error", err)
		}
	}

	return uow.Commit(ctx)
}
