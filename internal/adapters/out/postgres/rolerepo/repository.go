package rolerepo

import (
	"context"
	"errors"

	"pharmaflow/internal/core/domain/model/kernel"
	"pharmaflow/internal/core/ports"
	"pharmaflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRoleRepository implements ports.Authenticator and ports.RoleRepository
// over the users and user_roles tables.
type GormRoleRepository struct {
	db *gorm.DB
}

// NewGormRoleRepository creates a repository for identity and role lookups.
func NewGormRoleRepository(db *gorm.DB) *GormRoleRepository {
	return &GormRoleRepository{db: db}
}

// Resolve maps a bearer token to the account that owns it.
func (r *GormRoleRepository) Resolve(ctx context.Context, token string) (*ports.Identity, error) {
	if token == "" {
		return nil, errs.NewValueIsRequiredError("token")
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "api_token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("token", "bearer")
		}
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return &ports.Identity{
		UserID: userID,
		Email:  dto.Email,
	}, nil
}

// RolesForUser returns the user's stored role grants. A user with no grants
// gets an empty set, not an error.
func (r *GormRoleRepository) RolesForUser(ctx context.Context, userID kernel.UUID) ([]string, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	var dtos []UserRoleDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "user_id = ?", userID.Bytes()).Error; err != nil {
		return nil, err
	}

	roles := make([]string, 0, len(dtos))
	for _, dto := range dtos {
		roles = append(roles, dto.Role)
	}

	return roles, nil
}
