// Package postgres provides the GORM-based Unit of Work implementation that
// binds the order, pharmacy, and payment inbox repositories to one database
// transaction. A state mutation and its audit event commit together or not
// at all.
package postgres

import (
	"context"

	"pharmaflow/internal/adapters/out/postgres/orderrepo"
	"pharmaflow/internal/adapters/out/postgres/paymentinbox"
	"pharmaflow/internal/adapters/out/postgres/pharmacyrepo"
	"pharmaflow/internal/core/domain/model/kernel"
	"pharmaflow/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate is an aggregate modified during the unit of work. Tracking
// gives post-commit hooks (change feed, notifications) access to what changed.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one GORM
// connection pool. Each business operation gets a fresh instance with its own
// transaction state.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based units of work.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork ready for one business transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction across the
// repositories. Repository accessors return instances bound to the active
// transaction, or to the main connection when none has been started.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin starts a new database transaction. Calling Begin again on an active
// unit of work is a no-op rather than a nested transaction.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes the transaction. The transaction cannot be reused after.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction. Safe to call from a deferred cleanup
// after Commit; it then reports gorm.ErrInvalidTransaction, which such
// callers ignore.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// OrderRepository returns an order repository bound to the current
// transaction.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// PharmacyRepository returns a pharmacy repository bound to the current
// transaction.
func (uow *GormUnitOfWork) PharmacyRepository() ports.PharmacyRepository {
	return pharmacyrepo.NewGormPharmacyRepository(uow.conn(), uow)
}

// PaymentInboxRepository returns a payment inbox repository bound to the
// current transaction.
func (uow *GormUnitOfWork) PaymentInboxRepository() ports.PaymentInboxRepository {
	return paymentinbox.NewGormPaymentInboxRepository(uow.conn())
}

// TrackAggregate registers a domain aggregate as modified within this unit
// of work. Called by the repositories on add/update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
