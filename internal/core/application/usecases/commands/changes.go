package commands

import (
	"time"

	"pharmaflow/internal/core/domain/model/order"
	"pharmaflow/internal/core/ports"
)

// orderChange builds the change-feed payload for a committed mutation.
func orderChange(o *order.Order, label, note string) ports.OrderChange {
	var pharmacyID *string
	if id := o.Pharmacy(); id != nil {
		s := id.String()
		pharmacyID = &s
	}

	return ports.OrderChange{
		OrderID:    o.ID().String(),
		Code:       o.TrackingCode().String(),
		Status:     o.Status().String(),
		AckStatus:  o.AckStatus().String(),
		PharmacyID: pharmacyID,
		Label:      label,
		Note:       note,
		OccurredAt: time.Now().UTC(),
	}
}
