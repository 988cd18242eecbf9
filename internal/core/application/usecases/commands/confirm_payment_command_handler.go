package commands

import (
	"context"

	"pharmaflow/internal/core/domain/model/order"
	"pharmaflow/internal/core/ports"
)

// ConfirmPaymentCommandHandler records a payment confirmation on the order's
// audit trail. The webhook that feeds it delivers at least once, so the
// handler is idempotent: exactly one "Payment Confirmed" event per order no
// matter how often the gateway retries. Confirmation never advances the
// lifecycle status; staff move the order forward explicitly.
type ConfirmPaymentCommandHandler struct {
	uowFactory    OrderUoWFactory
	changes       ports.ChangePublisher
	notifications NotificationDispatcher
}

// NewConfirmPaymentCommandHandler creates a handler for payment confirmations.
func NewConfirmPaymentCommandHandler(
	uowFactory OrderUoWFactory,
	changes ports.ChangePublisher,
	notifications NotificationDispatcher,
) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{
		uowFactory:    uowFactory,
		changes:       changes,
		notifications: notifications,
	}
}

// Handle applies the confirmation. Unknown references surface as an
// object-not-found error so the caller can park the payment for rematching.
func (h ConfirmPaymentCommandHandler) Handle(ctx context.Context, command ConfirmPaymentCommand) (Outcome, error) {
	if err := command.Validate(); err != nil {
		return OutcomeUnknown, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return OutcomeUnknown, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	confirmed, err := orderRepo.GetByCode(ctx, command.Reference())
	if err != nil {
		return OutcomeUnknown, err
	}

	// Serialize concurrent retries for the same order so the
	// check-then-append below cannot double-log the confirmation.
	if err = orderRepo.AcquireOrderLock(ctx, confirmed.ID()); err != nil {
		return OutcomeUnknown, err
	}

	if confirmed.Status() != order.StatusReceived {
		return OutcomeAlreadyApplied, nil
	}
	logged, err := orderRepo.HasEventWithLabel(ctx, confirmed.ID(), order.LabelPaymentConfirmed)
	if err != nil {
		return OutcomeUnknown, err
	}
	if logged {
		return OutcomeAlreadyApplied, nil
	}

	event, err := order.NewEvent(confirmed.ID(), order.LabelPaymentConfirmed, "")
	if err != nil {
		return OutcomeUnknown, err
	}
	if err = orderRepo.AppendEvent(ctx, event); err != nil {
		return OutcomeUnknown, err
	}
	if err = uow.Commit(ctx); err != nil {
		return OutcomeUnknown, err
	}

	h.changes.Publish(orderChange(confirmed, order.LabelPaymentConfirmed, ""))
	h.notifications.Dispatch(confirmed.ID(), ports.NotificationConfirmation)

	return OutcomeApplied, nil
}
