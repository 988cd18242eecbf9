// Package rolerepo resolves authenticated identities and role grants from
// the user tables.
package rolerepo

import (
	"time"

	"github.com/google/uuid"
)

// UserDTO is an account known to the system. Tokens are opaque API keys
// issued out of band; session issuance is not this system's concern.
type UserDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex"`
	APIToken  string    `gorm:"type:varchar(128);uniqueIndex"`
	CreatedAt time.Time
}

// TableName overrides GORM's default naming to use "users".
func (UserDTO) TableName() string {
	return "users"
}

// UserRoleDTO is one role grant in the role-assignment join table.
type UserRoleDTO struct {
	UserID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role   string    `gorm:"type:varchar(32);primaryKey"`
}

// TableName overrides GORM's default naming to use "user_roles".
func (UserRoleDTO) TableName() string {
	return "user_roles"
}
