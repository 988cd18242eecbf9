package commands

import (
	"context"

	"pharmaflow/internal/core/domain/model/kernel"
	"pharmaflow/internal/core/domain/model/order"
	"pharmaflow/internal/core/ports"
)

// CreateOrderCommandHandler persists a new order together with its first
// audit event and announces it on the change feed.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	changes    ports.ChangePublisher
}

// NewCreateOrderCommandHandler creates a handler for order registration.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, changes ports.ChangePublisher) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		changes:    changes,
	}
}

// Handle registers the order and returns the created aggregate so callers can
// expose the generated tracking code.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, command CreateOrderCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	newOrder, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewTrackingCode(),
		command.Phone(),
		command.TotalPrice(),
	)
	if err != nil {
		return nil, err
	}

	event, err := order.NewEvent(newOrder.ID(), order.LabelOrderReceived, "")
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	if err = orderRepo.Add(ctx, newOrder); err != nil {
		return nil, err
	}
	if err = orderRepo.AppendEvent(ctx, event); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.changes.Publish(orderChange(newOrder, order.LabelOrderReceived, ""))

	return newOrder, nil
}
