package commands

import (
	"errors"
	"fmt"

	"pharmaflow/internal/core/domain/model/kernel"
	"pharmaflow/internal/core/domain/model/order"
	"pharmaflow/internal/pkg/errs"
	"pharmaflow/internal/pkg/guard"
)

var ErrAcknowledgeAssignmentCommandIsNotConstructed = errors.New(
	"AcknowledgeAssignmentCommand must be created via NewAcknowledgeAssignmentCommand constructor",
)

// Acknowledgement decisions a pharmacy can submit.
const (
	DecisionAccept = "accept"
	DecisionReject = "reject"
)

// AcknowledgeAssignmentCommand records a pharmacy's answer to an assignment.
// The actor is the authenticated user submitting the decision; the handler
// checks that user against the assigned pharmacy before applying anything.
type AcknowledgeAssignmentCommand struct {
	orderID     kernel.UUID
	actorUserID kernel.UUID
	target      order.AckStatus
	guard       guard.ConstructorGuard
}

// NewAcknowledgeAssignmentCommand creates a command from a pharmacy decision.
func NewAcknowledgeAssignmentCommand(orderID, actorUserID kernel.UUID, decision string) (AcknowledgeAssignmentCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AcknowledgeAssignmentCommand{}, err
	}
	if err := actorUserID.Validate(); err != nil {
		return AcknowledgeAssignmentCommand{}, err
	}

	var target order.AckStatus
	switch decision {
	case DecisionAccept:
		target = order.AckAccepted
	case DecisionReject:
		target = order.AckRejected
	default:
		return AcknowledgeAssignmentCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"decision", fmt.Errorf("unknown decision %q", decision),
		)
	}

	return AcknowledgeAssignmentCommand{
		orderID:     orderID,
		actorUserID: actorUserID,
		target:      target,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the order being acknowledged.
func (c *AcknowledgeAssignmentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorUserID returns the authenticated user submitting the decision.
func (c *AcknowledgeAssignmentCommand) ActorUserID() kernel.UUID {
	return c.actorUserID
}

// Target returns the acknowledgement state the decision maps to.
func (c *AcknowledgeAssignmentCommand) Target() order.AckStatus {
	return c.target
}

// Validate ensures the command was created through the constructor.
func (c *AcknowledgeAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrAcknowledgeAssignmentCommandIsNotConstructed)
}
