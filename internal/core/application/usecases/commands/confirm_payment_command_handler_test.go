package commands_test

import (
	"errors"
	"testing"

	"pharmaflow/internal/core/application/usecases/commands"
	"pharmaflow/internal/core/domain/model/order"
	"pharmaflow/internal/core/ports"
	"pharmaflow/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestConfirmPaymentCommandHandler_Handle_Applied(t *testing.T) {
	ctx := t.Context()
	confirmed := testOrder(t)
	cmd, err := commands.NewConfirmPaymentCommand(confirmed.TrackingCode().String())
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetByCode", ctx, confirmed.TrackingCode()).Return(confirmed, nil).Once(),
		repo.On("AcquireOrderLock", ctx, confirmed.ID()).Return(nil).Once(),
		repo.On("HasEventWithLabel", ctx, confirmed.ID(), order.LabelPaymentConfirmed).Return(false, nil).Once(),
		repo.On("AppendEvent", ctx, mock.AnythingOfType("order.Event")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	changes := new(MockChangePublisher)
	changes.On("Publish", mock.AnythingOfType("ports.OrderChange")).Once()
	notifications := new(MockNotificationDispatcher)
	notifications.On("Dispatch", confirmed.ID(), ports.NotificationConfirmation).Once()

	h := commands.NewConfirmPaymentCommandHandler(factory, changes, notifications)
	outcome, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.True(t, outcome.Applied())

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	changes.AssertExpectations(t)
	notifications.AssertExpectations(t)
}

func TestConfirmPaymentCommandHandler_Handle_DuplicateEventIsNoOp(t *testing.T) {
	ctx := t.Context()
	confirmed := testOrder(t)
	cmd, err := commands.NewConfirmPaymentCommand(confirmed.TrackingCode().String())
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetByCode", ctx, confirmed.TrackingCode()).Return(confirmed, nil).Once(),
		repo.On("AcquireOrderLock", ctx, confirmed.ID()).Return(nil).Once(),
		repo.On("HasEventWithLabel", ctx, confirmed.ID(), order.LabelPaymentConfirmed).Return(true, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	changes := new(MockChangePublisher)
	notifications := new(MockNotificationDispatcher)

	h := commands.NewConfirmPaymentCommandHandler(factory, changes, notifications)
	outcome, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, commands.OutcomeAlreadyApplied, outcome)

	// A no-op must not append, publish, or notify.
	repo.AssertNotCalled(t, "AppendEvent", mock.Anything, mock.Anything)
	changes.AssertNotCalled(t, "Publish", mock.Anything)
	notifications.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestConfirmPaymentCommandHandler_Handle_OrderBeyondReceivedIsNoOp(t *testing.T) {
	ctx := t.Context()
	shipped := restoredOrder(t, order.StatusOutForDelivery, nil, order.AckNone)
	cmd, err := commands.NewConfirmPaymentCommand(shipped.TrackingCode().String())
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetByCode", ctx, shipped.TrackingCode()).Return(shipped, nil).Once(),
		repo.On("AcquireOrderLock", ctx, shipped.ID()).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConfirmPaymentCommandHandler(factory, new(MockChangePublisher), new(MockNotificationDispatcher))
	outcome, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, commands.OutcomeAlreadyApplied, outcome)
	repo.AssertNotCalled(t, "HasEventWithLabel", mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmPaymentCommandHandler_Handle_UnknownReference(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewConfirmPaymentCommand("EWW-F93-9GK")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	notFound := errs.NewObjectNotFoundError("trackingCode", "EWW-F93-9GK")
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetByCode", ctx, mock.AnythingOfType("kernel.TrackingCode")).Return(nil, notFound).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConfirmPaymentCommandHandler(factory, new(MockChangePublisher), new(MockNotificationDispatcher))
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestConfirmPaymentCommandHandler_Handle_InvalidReference(t *testing.T) {
	_, err := commands.NewConfirmPaymentCommand("not-a-code")
	require.Error(t, err)
}

func TestConfirmPaymentCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	confirmed := testOrder(t)
	cmd, err := commands.NewConfirmPaymentCommand(confirmed.TrackingCode().String())
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetByCode", ctx, confirmed.TrackingCode()).Return(confirmed, nil).Once(),
		repo.On("AcquireOrderLock", ctx, confirmed.ID()).Return(nil).Once(),
		repo.On("HasEventWithLabel", ctx, confirmed.ID(), order.LabelPaymentConfirmed).Return(false, nil).Once(),
		repo.On("AppendEvent", ctx, mock.AnythingOfType("order.Event")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifications := new(MockNotificationDispatcher)

	h := commands.NewConfirmPaymentCommandHandler(factory, new(MockChangePublisher), notifications)
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	notifications.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}
