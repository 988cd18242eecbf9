package pharmacyrepo

import (
	"context"
	"errors"

	"pharmaflow/internal/core/domain/model/kernel"
	"pharmaflow/internal/core/domain/model/pharmacy"
	"pharmaflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPharmacyRepository implements ports.PharmacyRepository using GORM.
type GormPharmacyRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPharmacyRepository creates a new GORM pharmacy repository.
func NewGormPharmacyRepository(db *gorm.DB, tracker aggregateTracker) *GormPharmacyRepository {
	return &GormPharmacyRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new pharmacy.
func (r *GormPharmacyRepository) Add(ctx context.Context, aggregate *pharmacy.Pharmacy) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves changes to an existing pharmacy.
func (r *GormPharmacyRepository) Update(ctx context.Context, aggregate *pharmacy.Pharmacy) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&PharmacyDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("pharmacy", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a pharmacy by ID.
func (r *GormPharmacyRepository) Get(ctx context.Context, id kernel.UUID) (*pharmacy.Pharmacy, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PharmacyDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("pharmacy", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByUser retrieves the pharmacy linked to a user account.
func (r *GormPharmacyRepository) GetByUser(ctx context.Context, userID kernel.UUID) (*pharmacy.Pharmacy, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	var dto PharmacyDTO
	if err := r.db.WithContext(ctx).First(&dto, "user_id = ?", userID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("pharmacy", userID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
