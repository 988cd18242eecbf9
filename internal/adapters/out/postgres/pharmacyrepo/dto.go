// Package pharmacyrepo persists pharmacy aggregates.
package pharmacyrepo

import (
	"pharmaflow/internal/core/domain/model/kernel"
	"pharmaflow/internal/core/domain/model/pharmacy"

	"github.com/google/uuid"
)

// PharmacyDTO is the database representation of a pharmacy.
type PharmacyDTO struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name     string     `gorm:"type:varchar(255)"`
	Location string     `gorm:"type:varchar(255)"`
	UserID   *uuid.UUID `gorm:"type:uuid;uniqueIndex"`
}

// TableName overrides GORM's default naming to use "pharmacies".
func (PharmacyDTO) TableName() string {
	return "pharmacies"
}

func fromDomain(aggregate *pharmacy.Pharmacy) PharmacyDTO {
	var userID *uuid.UUID
	if id := aggregate.User(); id != nil {
		raw := id.Bytes()
		userID = &raw
	}

	return PharmacyDTO{
		ID:       aggregate.ID().Bytes(),
		Name:     aggregate.Name(),
		Location: aggregate.Location(),
		UserID:   userID,
	}
}

func toDomain(dto PharmacyDTO) (*pharmacy.Pharmacy, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var userID *kernel.UUID
	if dto.UserID != nil {
		uID, userErr := kernel.UUIDFromBytes((*dto.UserID)[:])
		if userErr != nil {
			return nil, userErr
		}
		userID = &uID
	}

	return pharmacy.RestorePharmacy(id, dto.Name, dto.Location, userID)
}
