package commands

import (
	"context"
	"fmt"

	"pharmaflow/internal/core/domain/model/order"
	"pharmaflow/internal/core/ports"
	"pharmaflow/internal/pkg/errs"
)

// UpdateStatusCommandHandler advances an order's lifecycle status. The write
// is conditional on the status the handler read, so two staff members racing
// to advance the same order produce exactly one transition; the loser is
// reported as a no-op when they asked for the state the order ended up in.
type UpdateStatusCommandHandler struct {
	uowFactory    OrderUoWFactory
	changes       ports.ChangePublisher
	notifications NotificationDispatcher
}

// NewUpdateStatusCommandHandler creates a handler for status transitions.
func NewUpdateStatusCommandHandler(
	uowFactory OrderUoWFactory,
	changes ports.ChangePublisher,
	notifications NotificationDispatcher,
) UpdateStatusCommandHandler {
	return UpdateStatusCommandHandler{
		uowFactory:    uowFactory,
		changes:       changes,
		notifications: notifications,
	}
}

// Handle advances the order and records the transition.
func (h UpdateStatusCommandHandler) Handle(ctx context.Context, command UpdateStatusCommand) (Outcome, error) {
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
	advanced, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return OutcomeUnknown, err
	}

	expected := advanced.Status()
	if expected == command.Next() {
		return OutcomeAlreadyApplied, nil
	}

	if err = advanced.AdvanceTo(command.Next(), command.Override()); err != nil {
		return OutcomeUnknown, err
	}

	updated, err := orderRepo.UpdateStatus(ctx, advanced.ID(), expected, command.Next())
	if err != nil {
		return OutcomeUnknown, err
	}
	if !updated {
		current, err := orderRepo.Get(ctx, command.OrderID())
		if err != nil {
			return OutcomeUnknown, err
		}
		if current.Status() == command.Next() {
			return OutcomeAlreadyApplied, nil
		}

		return OutcomeUnknown, errs.NewVersionIsInvalidError(
			"status",
			fmt.Errorf("order moved to %s while advancing to %s", current.Status(), command.Next()),
		)
	}

	note := transitionNote(expected, command.Next(), command.Note(), command.Override())
	event, err := order.NewEvent(advanced.ID(), order.LabelStatusUpdated, note)
	if err != nil {
		return OutcomeUnknown, err
	}
	if err = orderRepo.AppendEvent(ctx, event); err != nil {
		return OutcomeUnknown, err
	}
	if err = uow.Commit(ctx); err != nil {
		return OutcomeUnknown, err
	}

	h.changes.Publish(orderChange(advanced, order.LabelStatusUpdated, note))

	switch command.Next() {
	case order.StatusOutForDelivery:
		h.notifications.Dispatch(advanced.ID(), ports.NotificationShipping)
	case order.StatusCompleted:
		h.notifications.Dispatch(advanced.ID(), ports.NotificationDelivery)
	}

	return OutcomeApplied, nil
}

func transitionNote(from, to order.Status, note string, override bool) string {
	transition := fmt.Sprintf("%s -> %s", from, to)
	if override {
		transition += " (override)"
	}
	if note != "" {
		transition += ": " + note
	}

	return transition
}
