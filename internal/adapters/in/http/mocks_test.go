package http_test

import (
	"context"

	"pharmaflow/internal/core/application/usecases/commands"
	"pharmaflow/internal/core/domain/model/kernel"
	"pharmaflow/internal/core/domain/model/order"
	"pharmaflow/internal/core/domain/model/pharmacy"
	"pharmaflow/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByCode(ctx context.Context, code kernel.TrackingCode) (*order.Order, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id kernel.UUID, expected, next order.Status) (bool, error) {
	args := m.Called(ctx, id, expected, next)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) UpdateAckStatus(ctx context.Context, id, pharmacyID kernel.UUID, expected, next order.AckStatus) (bool, error) {
	args := m.Called(ctx, id, pharmacyID, expected, next)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) AssignPharmacy(ctx context.Context, id, pharmacyID kernel.UUID) error {
	args := m.Called(ctx, id, pharmacyID)
	return args.Error(0)
}

func (m *MockOrderRepository) AppendEvent(ctx context.Context, event order.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockOrderRepository) HasEventWithLabel(ctx context.Context, orderID kernel.UUID, label string) (bool, error) {
	args := m.Called(ctx, orderID, label)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) ListEvents(ctx context.Context, orderID kernel.UUID, offset, limit int) ([]order.Event, error) {
	args := m.Called(ctx, orderID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Event), args.Error(1)
}

func (m *MockOrderRepository) AcquireOrderLock(ctx context.Context, orderID kernel.UUID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type MockPharmacyRepository struct{ mock.Mock }

func (m *MockPharmacyRepository) Add(ctx context.Context, p *pharmacy.Pharmacy) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPharmacyRepository) Update(ctx context.Context, p *pharmacy.Pharmacy) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPharmacyRepository) Get(ctx context.Context, id kernel.UUID) (*pharmacy.Pharmacy, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pharmacy.Pharmacy), args.Error(1)
}

func (m *MockPharmacyRepository) GetByUser(ctx context.Context, userID kernel.UUID) (*pharmacy.Pharmacy, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pharmacy.Pharmacy), args.Error(1)
}

type MockPaymentInboxRepository struct{ mock.Mock }

func (m *MockPaymentInboxRepository) Record(ctx context.Context, reference string, amountMinor int64, currency string) error {
	args := m.Called(ctx, reference, amountMinor, currency)
	return args.Error(0)
}

func (m *MockPaymentInboxRepository) ListDue(ctx context.Context, maxAttempts int) ([]ports.UnmatchedPayment, error) {
	args := m.Called(ctx, maxAttempts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.UnmatchedPayment), args.Error(1)
}

func (m *MockPaymentInboxRepository) IncrementAttempts(ctx context.Context, reference string) error {
	args := m.Called(ctx, reference)
	return args.Error(0)
}

func (m *MockPaymentInboxRepository) Remove(ctx context.Context, reference string) error {
	args := m.Called(ctx, reference)
	return args.Error(0)
}

// MockUoW serves the order-only, payment, and cross-aggregate unit of work
// interfaces so one transactional fixture backs every handler under test.
type MockUoW struct {
	mock.Mock
	orderRepo    *MockOrderRepository
	pharmacyRepo *MockPharmacyRepository
	inboxRepo    *MockPaymentInboxRepository
}

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.orderRepo
}

func (m *MockUoW) PharmacyRepository() ports.PharmacyRepository {
	return m.pharmacyRepo
}

func (m *MockUoW) PaymentInboxRepository() ports.PaymentInboxRepository {
	return m.inboxRepo
}

type MockOrderUoWFactory struct{ uow *MockUoW }

func (f *MockOrderUoWFactory) Create() commands.OrderUoW { return f.uow }

type MockPaymentUoWFactory struct{ uow *MockUoW }

func (f *MockPaymentUoWFactory) Create() commands.PaymentUoW { return f.uow }

type MockUoWFactory struct{ uow *MockUoW }

func (f *MockUoWFactory) Create() commands.UoW { return f.uow }

type MockChangePublisher struct{ mock.Mock }

func (m *MockChangePublisher) Publish(change ports.OrderChange) {
	m.Called(change)
}

type MockNotificationDispatcher struct{ mock.Mock }

func (m *MockNotificationDispatcher) Dispatch(orderID kernel.UUID, kind string) {
	m.Called(orderID, kind)
}

type MockAuthenticator struct{ mock.Mock }

func (m *MockAuthenticator) Resolve(ctx context.Context, token string) (*ports.Identity, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.Identity), args.Error(1)
}

type MockRoleRepository struct{ mock.Mock }

func (m *MockRoleRepository) RolesForUser(ctx context.Context, userID kernel.UUID) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
