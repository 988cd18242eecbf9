package commands

import (
	"context"
	"errors"

	"pharmaflow/internal/core/domain/model/kernel"
	"pharmaflow/internal/core/domain/model/order"
	"pharmaflow/internal/core/ports"
)

// ErrActorNotAssigned is returned when the acknowledging user is not linked
// to the pharmacy the order is assigned to.
var ErrActorNotAssigned = errors.New("user is not linked to the assigned pharmacy")

// AcknowledgeAssignmentCommandHandler applies a pharmacy's accept or reject
// decision. The write is a conditional update bound to both the pending state
// and the pharmacy that was asked, so a decision racing a reassignment can
// never land on the new assignment. Repeating a decision that already took
// effect is a no-op, not an error.
type AcknowledgeAssignmentCommandHandler struct {
	uowFactory UoWFactory
	changes    ports.ChangePublisher
}

// NewAcknowledgeAssignmentCommandHandler creates a handler for
// acknowledgement decisions.
func NewAcknowledgeAssignmentCommandHandler(uowFactory UoWFactory, changes ports.ChangePublisher) AcknowledgeAssignmentCommandHandler {
	return AcknowledgeAssignmentCommandHandler{
		uowFactory: uowFactory,
		changes:    changes,
	}
}

// Handle records the decision on the order.
func (h AcknowledgeAssignmentCommandHandler) Handle(ctx context.Context, command AcknowledgeAssignmentCommand) (Outcome, error) {
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
	acknowledged, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return OutcomeUnknown, err
	}

	assignedID := acknowledged.Pharmacy()
	if assignedID == nil {
		return OutcomeUnknown, order.ErrNoPharmacyAssigned
	}

	assigned, err := uow.PharmacyRepository().Get(ctx, *assignedID)
	if err != nil {
		return OutcomeUnknown, err
	}
	if !assigned.IsOwnedBy(command.ActorUserID()) {
		return OutcomeUnknown, ErrActorNotAssigned
	}

	// Walk the aggregate through the transition first so invalid moves are
	// rejected with the domain's own errors before any write is attempted.
	already, err := acknowledge(acknowledged, command.Target())
	if err != nil {
		return OutcomeUnknown, err
	}
	if already {
		return OutcomeAlreadyApplied, nil
	}

	updated, err := orderRepo.UpdateAckStatus(ctx, acknowledged.ID(), *assignedID, order.AckPending, command.Target())
	if err != nil {
		return OutcomeUnknown, err
	}
	if !updated {
		// Lost a race with another decision or a reassignment. Re-read to
		// tell a duplicate of our own decision from a genuine conflict.
		return classifyLostAck(ctx, orderRepo, command, *assignedID)
	}

	label := order.LabelAccepted
	if command.Target() == order.AckRejected {
		label = order.LabelRejected
	}
	event, err := order.NewEvent(acknowledged.ID(), label, "by pharmacy "+assigned.Name())
	if err != nil {
		return OutcomeUnknown, err
	}
	if err = orderRepo.AppendEvent(ctx, event); err != nil {
		return OutcomeUnknown, err
	}
	if err = uow.Commit(ctx); err != nil {
		return OutcomeUnknown, err
	}

	h.changes.Publish(orderChange(acknowledged, label, event.Note()))

	return OutcomeApplied, nil
}

func acknowledge(o *order.Order, target order.AckStatus) (already bool, err error) {
	if target == order.AckAccepted {
		return o.Accept()
	}

	return o.Reject()
}

func classifyLostAck(
	ctx context.Context,
	orderRepo ports.OrderRepository,
	command AcknowledgeAssignmentCommand,
	askedPharmacy kernel.UUID,
) (Outcome, error) {
	current, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return OutcomeUnknown, err
	}

	stillOurs := current.Pharmacy() != nil && current.Pharmacy().IsEqual(askedPharmacy)
	if stillOurs && current.AckStatus() == command.Target() {
		return OutcomeAlreadyApplied, nil
	}

	return OutcomeUnknown, order.ErrAckConflict
}
