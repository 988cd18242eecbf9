// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations: each command is a
// constructor-guarded value, and each handler validates, manages its unit of
// work, applies the mutation with its paired audit event, and only then
// triggers side effects (change feed, notifications).
package commands

import (
	"context"

	"pharmaflow/internal/core/domain/model/kernel"
	"pharmaflow/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// PharmacyRepoFactory provides access to the pharmacy repository within a transaction.
	PharmacyRepoFactory interface {
		PharmacyRepository() ports.PharmacyRepository
	}

	// PaymentInboxRepoFactory provides access to the payment inbox within a transaction.
	PaymentInboxRepoFactory interface {
		PaymentInboxRepository() ports.PaymentInboxRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// PaymentUoW manages transactions for the payment reconciliation path,
	// which touches the order trail and the unmatched-payment inbox.
	PaymentUoW interface {
		TxManager
		OrderRepoFactory
		PaymentInboxRepoFactory
	}

	// PaymentUoWFactory creates new payment unit of work instances.
	PaymentUoWFactory interface {
		Create() PaymentUoW
	}

	// UoW manages transactions across order and pharmacy aggregates.
	UoW interface {
		TxManager
		OrderRepoFactory
		PharmacyRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)

// NotificationDispatcher triggers a customer SMS for an order. Dispatch is
// fire-and-forget: implementations run asynchronously and swallow failures
// after logging them, so a gateway outage can never fail the mutation that
// triggered the message.
type NotificationDispatcher interface {
	Dispatch(orderID kernel.UUID, kind string)
}
