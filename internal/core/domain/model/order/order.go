package order

import (
	"errors"
	"fmt"
	"time"

	"pharmaflow/internal/core/domain/model/kernel"
	"pharmaflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrNoPharmacyAssigned is returned when an acknowledgement is attempted on
	// an order that has no assigned pharmacy.
	ErrNoPharmacyAssigned = errors.New("order has no assigned pharmacy")

	// ErrAckConflict is returned when an acknowledgement is attempted from a
	// state where the pharmacy already responded differently.
	ErrAckConflict = errors.New("acknowledgement conflicts with current ack status")
)

// Order is the aggregate root for a delivery order. It carries the public
// tracking code used by the payment gateway and customer tracking, the
// fulfillment lifecycle status, and the assigned pharmacy's acknowledgement
// state.
//
// Invariants:
//   - status only moves forward along the lifecycle (see Status)
//   - ackStatus is None exactly while no pharmacy is assigned
//   - total price is positive
//   - instances are only created through NewOrder/RestoreOrder
type Order struct {
	id           kernel.UUID
	trackingCode kernel.TrackingCode
	status       Status
	pharmacyID   *kernel.UUID
	ackStatus    AckStatus
	totalPrice   decimal.Decimal
	phone        kernel.Phone
	createdAt    time.Time
	updatedAt    time.Time

	isConstructed bool
}

// NewOrder creates an order in the Received state with no pharmacy assigned.
// The checkout collaborator is the only caller; every later change goes
// through the guarded mutation methods.
func NewOrder(id kernel.UUID, code kernel.TrackingCode, phone kernel.Phone, totalPrice decimal.Decimal) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		status:        StatusReceived,
		ackStatus:     AckNone,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setTrackingCode(code),
		o.setPhone(phone),
		o.setTotalPrice(totalPrice),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence, re-checking the
// cross-field invariants so corrupt rows cannot masquerade as valid
// aggregates.
func RestoreOrder(
	id kernel.UUID,
	code kernel.TrackingCode,
	phone kernel.Phone,
	totalPrice decimal.Decimal,
	status Status,
	pharmacyID *kernel.UUID,
	ackStatus AckStatus,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setTrackingCode(code),
		o.setPhone(phone),
		o.setTotalPrice(totalPrice),
		status.Validate(),
		ackStatus.Validate(),
		ackStatus.ValidateCanHavePharmacy(pharmacyID != nil),
	); err != nil {
		return nil, err
	}
	if pharmacyID != nil {
		if err := pharmacyID.Validate(); err != nil {
			return nil, err
		}
		cp := *pharmacyID
		o.pharmacyID = &cp
	}

	o.status = status
	o.ackStatus = ackStatus
	return o, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory method. Call it when receiving aggregates across boundaries.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's internal identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// TrackingCode returns the public reference known to external parties.
func (o *Order) TrackingCode() kernel.TrackingCode { return o.trackingCode }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// Pharmacy returns the assigned pharmacy's ID, or nil if unassigned.
func (o *Order) Pharmacy() *kernel.UUID { return o.pharmacyID }

// AckStatus returns the pharmacy acknowledgement state.
func (o *Order) AckStatus() AckStatus { return o.ackStatus }

// TotalPrice returns the order total.
func (o *Order) TotalPrice() decimal.Decimal { return o.totalPrice }

// Phone returns the customer's phone number.
func (o *Order) Phone() kernel.Phone { return o.phone }

// PhoneMasked returns the display-safe phone form for dashboards and logs.
func (o *Order) PhoneMasked() string { return o.phone.Masked() }

// CreatedAt returns when the order was created.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// UpdatedAt returns when the order was last mutated.
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// AssignPharmacy assigns or reassigns the order to a pharmacy and forces the
// acknowledgement state back to Pending. Reassignment is allowed from any
// acknowledgement state, including Accepted and Rejected (re-routing a
// previously handled order). The previous pharmacy, if any, is returned so
// the caller can cite both parties on the audit event.
func (o *Order) AssignPharmacy(pharmacyID kernel.UUID) (*kernel.UUID, error) {
	if err := pharmacyID.Validate(); err != nil {
		return nil, err
	}

	previous := o.pharmacyID
	o.pharmacyID = &pharmacyID
	o.ackStatus = AckPending
	o.touch()
	return previous, nil
}

// Accept records the assigned pharmacy's acceptance. A repeated accept is a
// no-op signalled through the returned flag, not an error, so retries stay
// safe. Accept from Rejected is a conflict; the rejection stands until an
// explicit reassignment.
func (o *Order) Accept() (already bool, err error) {
	return o.acknowledge(AckAccepted)
}

// Reject records the assigned pharmacy's rejection. Symmetric to Accept; it
// does not auto-reassign.
func (o *Order) Reject() (already bool, err error) {
	return o.acknowledge(AckRejected)
}

func (o *Order) acknowledge(target AckStatus) (bool, error) {
	if o.pharmacyID == nil {
		return false, ErrNoPharmacyAssigned
	}
	switch o.ackStatus {
	case target:
		return true, nil
	case AckPending:
		o.ackStatus = target
		o.touch()
		return false, nil
	default:
		return false, fmt.Errorf("%w: %s", ErrAckConflict, o.ackStatus)
	}
}

// AdvanceTo moves the lifecycle status forward. Regular advances go one step
// at a time; override allows an administrative forward skip, which the caller
// must note on the transition event.
func (o *Order) AdvanceTo(next Status, override bool) error {
	advance := o.status.Advance
	if override {
		advance = o.status.AdvanceWithOverride
	}

	newStatus, err := advance(next)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch()
	return nil
}

func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setTrackingCode(code kernel.TrackingCode) error {
	if err := code.Validate(); err != nil {
		return err
	}
	o.trackingCode = code
	return nil
}

func (o *Order) setPhone(phone kernel.Phone) error {
	if err := phone.Validate(); err != nil {
		return err
	}
	o.phone = phone
	return nil
}

func (o *Order) setTotalPrice(totalPrice decimal.Decimal) error {
	if !totalPrice.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("totalPrice",
			fmt.Errorf("%s is not greater than 0", totalPrice))
	}
	o.totalPrice = totalPrice
	return nil
}
