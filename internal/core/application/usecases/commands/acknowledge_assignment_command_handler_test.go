package commands_test

import (
	"testing"

	"pharmaflow/internal/core/application/usecases/commands"
	"pharmaflow/internal/core/domain/model/kernel"
	"pharmaflow/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAcknowledgeAssignmentCommandHandler_Handle_Accept(t *testing.T) {
	ctx := t.Context()
	userID := kernel.NewUUID()
	assigned := testPharmacy(t, userID)
	pharmacyID := assigned.ID()
	pending := restoredOrder(t, order.StatusReceived, &pharmacyID, order.AckPending)

	cmd, err := commands.NewAcknowledgeAssignmentCommand(pending.ID(), userID, commands.DecisionAccept)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	pharmacyRepo := new(MockPharmacyRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, pending.ID()).Return(pending, nil).Once(),
		uow.On("PharmacyRepository").Return(pharmacyRepo).Once(),
		pharmacyRepo.On("Get", ctx, pharmacyID).Return(assigned, nil).Once(),
		orderRepo.On("UpdateAckStatus", ctx, pending.ID(), pharmacyID, order.AckPending, order.AckAccepted).Return(true, nil).Once(),
		orderRepo.On("AppendEvent", ctx, mock.AnythingOfType("order.Event")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	changes := new(MockChangePublisher)
	changes.On("Publish", mock.AnythingOfType("ports.OrderChange")).Once()

	h := commands.NewAcknowledgeAssignmentCommandHandler(factory, changes)
	outcome, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.True(t, outcome.Applied())

	orderRepo.AssertExpectations(t)
	pharmacyRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	changes.AssertExpectations(t)
}

func TestAcknowledgeAssignmentCommandHandler_Handle_RepeatedAcceptIsNoOp(t *testing.T) {
	ctx := t.Context()
	userID := kernel.NewUUID()
	assigned := testPharmacy(t, userID)
	pharmacyID := assigned.ID()
	accepted := restoredOrder(t, order.StatusReceived, &pharmacyID, order.AckAccepted)

	cmd, err := commands.NewAcknowledgeAssignmentCommand(accepted.ID(), userID, commands.DecisionAccept)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	pharmacyRepo := new(MockPharmacyRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, accepted.ID()).Return(accepted, nil).Once(),
		uow.On("PharmacyRepository").Return(pharmacyRepo).Once(),
		pharmacyRepo.On("Get", ctx, pharmacyID).Return(assigned, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	changes := new(MockChangePublisher)

	h := commands.NewAcknowledgeAssignmentCommandHandler(factory, changes)
	outcome, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, commands.OutcomeAlreadyApplied, outcome)

	orderRepo.AssertNotCalled(t, "UpdateAckStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	orderRepo.AssertNotCalled(t, "AppendEvent", mock.Anything, mock.Anything)
	changes.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestAcknowledgeAssignmentCommandHandler_Handle_AcceptAfterRejectIsConflict(t *testing.T) {
	ctx := t.Context()
	userID := kernel.NewUUID()
	assigned := testPharmacy(t, userID)
	pharmacyID := assigned.ID()
	rejected := restoredOrder(t, order.StatusReceived, &pharmacyID, order.AckRejected)

	cmd, err := commands.NewAcknowledgeAssignmentCommand(rejected.ID(), userID, commands.DecisionAccept)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	pharmacyRepo := new(MockPharmacyRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, rejected.ID()).Return(rejected, nil).Once(),
		uow.On("PharmacyRepository").Return(pharmacyRepo).Once(),
		pharmacyRepo.On("Get", ctx, pharmacyID).Return(assigned, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAcknowledgeAssignmentCommandHandler(factory, new(MockChangePublisher))
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrAckConflict)
}

func TestAcknowledgeAssignmentCommandHandler_Handle_NoPharmacyAssigned(t *testing.T) {
	ctx := t.Context()
	unassigned := testOrder(t)

	cmd, err := commands.NewAcknowledgeAssignmentCommand(unassigned.ID(), kernel.NewUUID(), commands.DecisionReject)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, unassigned.ID()).Return(unassigned, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAcknowledgeAssignmentCommandHandler(factory, new(MockChangePublisher))
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrNoPharmacyAssigned)
}

func TestAcknowledgeAssignmentCommandHandler_Handle_ActorNotLinkedToAssignedPharmacy(t *testing.T) {
	ctx := t.Context()
	assigned := testPharmacy(t, kernel.NewUUID())
	pharmacyID := assigned.ID()
	pending := restoredOrder(t, order.StatusReceived, &pharmacyID, order.AckPending)

	// A different pharmacy's user tries to accept someone else's assignment.
	intruder := kernel.NewUUID()
	cmd, err := commands.NewAcknowledgeAssignmentCommand(pending.ID(), intruder, commands.DecisionAccept)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	pharmacyRepo := new(MockPharmacyRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, pending.ID()).Return(pending, nil).Once(),
		uow.On("PharmacyRepository").Return(pharmacyRepo).Once(),
		pharmacyRepo.On("Get", ctx, pharmacyID).Return(assigned, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAcknowledgeAssignmentCommandHandler(factory, new(MockChangePublisher))
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrActorNotAssigned)
	orderRepo.AssertNotCalled(t, "UpdateAckStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAcknowledgeAssignmentCommandHandler_Handle_LostRaceToSameDecision(t *testing.T) {
	ctx := t.Context()
	userID := kernel.NewUUID()
	assigned := testPharmacy(t, userID)
	pharmacyID := assigned.ID()
	pending := restoredOrder(t, order.StatusReceived, &pharmacyID, order.AckPending)

	cmd, err := commands.NewAcknowledgeAssignmentCommand(pending.ID(), userID, commands.DecisionAccept)
	require.NoError(t, err)

	// Same order as persisted after the concurrent accept won.
	nowAccepted := restoredOrder(t, order.StatusReceived, &pharmacyID, order.AckAccepted)

	orderRepo := new(MockOrderRepository)
	pharmacyRepo := new(MockPharmacyRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, pending.ID()).Return(pending, nil).Once(),
		uow.On("PharmacyRepository").Return(pharmacyRepo).Once(),
		pharmacyRepo.On("Get", ctx, pharmacyID).Return(assigned, nil).Once(),
		orderRepo.On("UpdateAckStatus", ctx, pending.ID(), pharmacyID, order.AckPending, order.AckAccepted).Return(false, nil).Once(),
		orderRepo.On("Get", ctx, pending.ID()).Return(nowAccepted, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAcknowledgeAssignmentCommandHandler(factory, new(MockChangePublisher))
	outcome, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, commands.OutcomeAlreadyApplied, outcome)
}

func TestAcknowledgeAssignmentCommandHandler_Handle_LostRaceToReassignment(t *testing.T) {
	ctx := t.Context()
	userID := kernel.NewUUID()
	assigned := testPharmacy(t, userID)
	pharmacyID := assigned.ID()
	pending := restoredOrder(t, order.StatusReceived, &pharmacyID, order.AckPending)

	cmd, err := commands.NewAcknowledgeAssignmentCommand(pending.ID(), userID, commands.DecisionAccept)
	require.NoError(t, err)

	// An admin rerouted the order to another pharmacy mid-flight; our accept
	// must not stick to the new assignment.
	otherPharmacy := kernel.NewUUID()
	rerouted := restoredOrder(t, order.StatusReceived, &otherPharmacy, order.AckPending)

	orderRepo := new(MockOrderRepository)
	pharmacyRepo := new(MockPharmacyRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, pending.ID()).Return(pending, nil).Once(),
		uow.On("PharmacyRepository").Return(pharmacyRepo).Once(),
		pharmacyRepo.On("Get", ctx, pharmacyID).Return(assigned, nil).Once(),
		orderRepo.On("UpdateAckStatus", ctx, pending.ID(), pharmacyID, order.AckPending, order.AckAccepted).Return(false, nil).Once(),
		orderRepo.On("Get", ctx, pending.ID()).Return(rerouted, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAcknowledgeAssignmentCommandHandler(factory, new(MockChangePublisher))
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrAckConflict)
}

func TestAcknowledgeAssignmentCommandHandler_Handle_UnknownDecision(t *testing.T) {
	_, err := commands.NewAcknowledgeAssignmentCommand(kernel.NewUUID(), kernel.NewUUID(), "maybe")
	require.Error(t, err)
}
