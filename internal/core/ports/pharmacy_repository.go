package ports

import (
	"context"

	"pharmaflow/internal/core/domain/model/kernel"
	"pharmaflow/internal/core/domain/model/pharmacy"
)

// PharmacyRepository defines the persistence contract for fulfillment
// partners.
type PharmacyRepository interface {
	// Add persists a new pharmacy.
	Add(ctx context.Context, aggregate *pharmacy.Pharmacy) error

	// Update persists changes to an existing pharmacy (e.g. user linking).
	Update(ctx context.Context, aggregate *pharmacy.Pharmacy) error

	// Get retrieves a pharmacy by its identifier.
	Get(ctx context.Context, id kernel.UUID) (*pharmacy.Pharmacy, error)

	// GetByUser retrieves the pharmacy linked to the given user identity.
	GetByUser(ctx context.Context, userID kernel.UUID) (*pharmacy.Pharmacy, error)
}
