package commands

import (
	"context"
	"fmt"

	"pharmaflow/internal/core/domain/model/order"
	"pharmaflow/internal/core/ports"
)

// AssignPharmacyCommandHandler routes an order to a pharmacy. A first
// assignment and a reassignment both force the acknowledgement state back to
// pending, so the receiving pharmacy always has to answer for itself; the
// audit event for a reassignment cites both the previous and the new
// pharmacy.
type AssignPharmacyCommandHandler struct {
	uowFactory UoWFactory
	changes    ports.ChangePublisher
}

// NewAssignPharmacyCommandHandler creates a handler for pharmacy assignment.
func NewAssignPharmacyCommandHandler(uowFactory UoWFactory, changes ports.ChangePublisher) AssignPharmacyCommandHandler {
	return AssignPharmacyCommandHandler{
		uowFactory: uowFactory,
		changes:    changes,
	}
}

// Handle assigns the pharmacy and records the routing decision.
func (h AssignPharmacyCommandHandler) Handle(ctx context.Context, command AssignPharmacyCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	// Existence check first so a typo'd pharmacy id fails before the order
	// is touched.
	if _, err := uow.PharmacyRepository().Get(ctx, command.PharmacyID()); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	assigned, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	previous, err := assigned.AssignPharmacy(command.PharmacyID())
	if err != nil {
		return err
	}

	label := order.LabelAssigned
	note := fmt.Sprintf("assigned to pharmacy %s", command.PharmacyID())
	if previous != nil {
		label = order.LabelReassigned
		note = fmt.Sprintf("reassigned from pharmacy %s to pharmacy %s", previous, command.PharmacyID())
	}

	event, err := order.NewEvent(assigned.ID(), label, note)
	if err != nil {
		return err
	}

	if err = orderRepo.AssignPharmacy(ctx, assigned.ID(), command.PharmacyID()); err != nil {
		return err
	}
	if err = orderRepo.AppendEvent(ctx, event); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.changes.Publish(orderChange(assigned, label, note))

	return nil
}
