package commands_test

import (
	"testing"
	"time"

	"pharmaflow/internal/core/domain/model/kernel"
	"pharmaflow/internal/core/domain/model/order"
	"pharmaflow/internal/core/domain/model/pharmacy"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func testPhone(t *testing.T) kernel.Phone {
	t.Helper()
	phone, err := kernel.NewPhone("0241234567")
	require.NoError(t, err)
	return phone
}

func testOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewTrackingCode(), testPhone(t), decimal.NewFromInt(120))
	require.NoError(t, err)
	return o
}

// restoredOrder rebuilds an order in an arbitrary persisted state.
func restoredOrder(t *testing.T, status order.Status, pharmacyID *kernel.UUID, ack order.AckStatus) *order.Order {
	t.Helper()
	now := time.Now().UTC()
	o, err := order.RestoreOrder(
		kernel.NewUUID(), kernel.NewTrackingCode(), testPhone(t), decimal.NewFromInt(120),
		status, pharmacyID, ack, now, now,
	)
	require.NoError(t, err)
	return o
}

func testPharmacy(t *testing.T, userID kernel.UUID) *pharmacy.Pharmacy {
	t.Helper()
	p, err := pharmacy.NewPharmacy(kernel.NewUUID(), "HealthPlus Pharmacy", "Osu, Accra")
	require.NoError(t, err)
	require.NoError(t, p.LinkUser(userID))
	return p
}
