package pharmacy

import (
	"errors"

	"pharmaflow/internal/core/domain/model/kernel"
	"pharmaflow/internal/pkg/errs"
	"pharmaflow/internal/pkg/guard"
)

// Domain errors for pharmacy operations.
var (
	// ErrNameIsRequired is returned when attempting to create a pharmacy without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrLocationIsRequired is returned when attempting to create a pharmacy without a location.
	ErrLocationIsRequired = errs.NewValueIsRequiredError("location")
	// ErrPharmacyIsNotConstructed is returned when using an improperly initialized Pharmacy.
	ErrPharmacyIsNotConstructed = errors.New("Pharmacy must be created via NewPharmacy constructor")
)

// Pharmacy is a fulfillment partner that orders are assigned to. A pharmacy
// may be linked to a user identity; only that identity may acknowledge
// assignments on the pharmacy's behalf.
type Pharmacy struct {
	id       kernel.UUID
	name     string
	location string
	userID   *kernel.UUID
	guard    guard.ConstructorGuard
}

// NewPharmacy creates a Pharmacy with the given identity, display name and
// location label. The pharmacy starts unlinked; call LinkUser once the owning
// account exists.
func NewPharmacy(id kernel.UUID, name, location string) (*Pharmacy, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, ErrNameIsRequired
	}
	if location == "" {
		return nil, ErrLocationIsRequired
	}

	return &Pharmacy{
		id:       id,
		name:     name,
		location: location,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// RestorePharmacy reconstructs a pharmacy from persistence.
func RestorePharmacy(id kernel.UUID, name, location string, userID *kernel.UUID) (*Pharmacy, error) {
	p, err := NewPharmacy(id, name, location)
	if err != nil {
		return nil, err
	}
	if userID != nil {
		if err := p.LinkUser(*userID); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Validate ensures the Pharmacy was created through its constructor.
func (p *Pharmacy) Validate() error {
	if p == nil {
		return ErrPharmacyIsNotConstructed
	}
	return p.guard.Validate(ErrPharmacyIsNotConstructed)
}

// ID returns the pharmacy's unique identifier.
func (p *Pharmacy) ID() kernel.UUID { return p.id }

// Name returns the pharmacy's display name.
func (p *Pharmacy) Name() string { return p.name }

// Location returns the pharmacy's location label.
func (p *Pharmacy) Location() string { return p.location }

// User returns the owning user identity, or nil while unlinked.
func (p *Pharmacy) User() *kernel.UUID { return p.userID }

// LinkUser binds the pharmacy to the user identity allowed to acknowledge its
// assignments.
func (p *Pharmacy) LinkUser(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	p.userID = &userID
	return nil
}

// IsOwnedBy reports whether userID is the pharmacy's linked identity.
func (p *Pharmacy) IsOwnedBy(userID kernel.UUID) bool {
	return p.userID != nil && p.userID.IsEqual(userID)
}
