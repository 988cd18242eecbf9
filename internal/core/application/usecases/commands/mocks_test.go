package commands_test

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

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockUoW struct{ MockOrderUoW }

func (m *MockUoW) PharmacyRepository() ports.PharmacyRepository {
	args := m.Called()
	return args.Get(0).(ports.PharmacyRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockChangePublisher struct{ mock.Mock }

func (m *MockChangePublisher) Publish(change ports.OrderChange) {
	m.Called(change)
}

type MockNotificationDispatcher struct{ mock.Mock }

func (m *MockNotificationDispatcher) Dispatch(orderID kernel.UUID, kind string) {
	m.Called(orderID, kind)
}
