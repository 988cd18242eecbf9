package ports

import (
	"context"

	"pharmaflow/internal/core/domain/model/kernel"
)

// Role names used by the access gate.
const (
	RoleAdmin    = "admin"
	RolePharmacy = "pharmacy"
)

// Identity is the authenticated caller resolved from request credentials.
// Session mechanics live outside this system; all the gate needs is who the
// caller is.
type Identity struct {
	UserID kernel.UUID
	Email  string
}

// Authenticator resolves request credentials into an identity.
// A nil identity with a nil error never occurs; unknown credentials surface
// as an object-not-found error.
type Authenticator interface {
	Resolve(ctx context.Context, token string) (*Identity, error)
}

// RoleRepository resolves a user's role set from the role-assignment join
// table. The configuration-driven admin email allow-list is unioned in by the
// access gate, not here, so the table stays the single source of stored
// grants.
type RoleRepository interface {
	RolesForUser(ctx context.Context, userID kernel.UUID) ([]string, error)
}
