package commands_test

import (
	"testing"

	"pharmaflow/internal/core/application/usecases/commands"
	"pharmaflow/internal/core/domain/model/kernel"
	"pharmaflow/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	phone := testPhone(t)
	cmd, err := commands.NewCreateOrderCommand(phone, decimal.NewFromInt(120))
	require.NoError(t, err)
	assert.Equal(t, phone, cmd.Phone())
	assert.True(t, cmd.TotalPrice().Equal(decimal.NewFromInt(120)))
	assert.NoError(t, cmd.Validate())
}

func TestNewCreateOrderCommand_InvalidPhone(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.Phone{}, decimal.NewFromInt(120))
	require.Error(t, err)
}

func TestNewCreateOrderCommand_NonPositiveTotal(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(testPhone(t), decimal.Zero)
	require.Error(t, err)
}

func TestNewConfirmPaymentCommand_ValidReference(t *testing.T) {
	cmd, err := commands.NewConfirmPaymentCommand("EWW-F93-9GK")
	require.NoError(t, err)
	assert.Equal(t, "EWW-F93-9GK", cmd.Reference().String())
	assert.NoError(t, cmd.Validate())
}

func TestNewConfirmPaymentCommand_LowercaseReferenceIsAccepted(t *testing.T) {
	cmd, err := commands.NewConfirmPaymentCommand("eww-f93-9gk")
	require.NoError(t, err)
	assert.Equal(t, "EWW-F93-9GK", cmd.Reference().String())
}

func TestNewConfirmPaymentCommand_InvalidReference(t *testing.T) {
	_, err := commands.NewConfirmPaymentCommand("EWW-F93")
	require.Error(t, err)
}

func TestNewAssignPharmacyCommand_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()
	pharmacyID := kernel.NewUUID()
	cmd, err := commands.NewAssignPharmacyCommand(orderID, pharmacyID)
	require.NoError(t, err)
	assert.True(t, cmd.OrderID().IsEqual(orderID))
	assert.True(t, cmd.PharmacyID().IsEqual(pharmacyID))
}

func TestNewAssignPharmacyCommand_InvalidPharmacyID(t *testing.T) {
	_, err := commands.NewAssignPharmacyCommand(kernel.NewUUID(), kernel.UUID{})
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewAcknowledgeAssignmentCommand_MapsDecisions(t *testing.T) {
	accept, err := commands.NewAcknowledgeAssignmentCommand(kernel.NewUUID(), kernel.NewUUID(), commands.DecisionAccept)
	require.NoError(t, err)
	assert.Equal(t, order.AckAccepted, accept.Target())

	reject, err := commands.NewAcknowledgeAssignmentCommand(kernel.NewUUID(), kernel.NewUUID(), commands.DecisionReject)
	require.NoError(t, err)
	assert.Equal(t, order.AckRejected, reject.Target())
}

func TestNewUpdateStatusCommand_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()
	cmd, err := commands.NewUpdateStatusCommand(orderID, order.StatusProcessing, "picking", false)
	require.NoError(t, err)
	assert.Equal(t, order.StatusProcessing, cmd.Next())
	assert.Equal(t, "picking", cmd.Note())
	assert.False(t, cmd.Override())
}

func TestNewUpdateStatusCommand_InvalidStatus(t *testing.T) {
	_, err := commands.NewUpdateStatusCommand(kernel.NewUUID(), order.StatusUnknown, "", false)
	require.Error(t, err)
}
