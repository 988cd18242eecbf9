package http

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"pharmaflow/internal/core/ports"
	"pharmaflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Echo context keys under which the gate stores the resolved caller.
const (
	identityContextKey = "auth.identity"
	rolesContextKey    = "auth.roles"
)

// DefaultRoutePolicies maps route patterns ("METHOD /echo/path") to the roles
// allowed through. A nil role slice marks the route public; routes absent
// from the table are not gated (webhook and swagger verify themselves).
func DefaultRoutePolicies() map[string][]string {
	operator := []string{ports.RoleAdmin, ports.RolePharmacy}
	return map[string][]string{
		"POST /orders":                          nil,
		"GET /orders":                           operator,
		"GET /orders/:orderId":                  operator,
		"GET /orders/:orderId/events":           operator,
		"GET /orders/stream":                    operator,
		"PUT /orders/:orderId/reassign":         {ports.RoleAdmin},
		"PUT /orders/:orderId/status":           {ports.RoleAdmin},
		"POST /orders/:orderId/pharmacy/accept": {ports.RolePharmacy},
		"POST /orders/:orderId/pharmacy/reject": {ports.RolePharmacy},
	}
}

// AccessGate authenticates bearer tokens and authorizes callers against a
// declarative route policy table. Authentication failures yield 401,
// an authenticated caller without an intersecting role yields 403.
type AccessGate struct {
	authenticator ports.Authenticator
	roles         ports.RoleRepository
	adminEmails   map[string]struct{}
	policies      map[string][]string
	log           *slog.Logger
}

// NewAccessGate builds the gate. adminEmails force-grant the admin role to
// matching identities on top of their stored role set.
func NewAccessGate(
	authenticator ports.Authenticator,
	roles ports.RoleRepository,
	adminEmails []string,
	policies map[string][]string,
	log *slog.Logger,
) *AccessGate {
	allowList := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email != "" {
			allowList[email] = struct{}{}
		}
	}
	return &AccessGate{
		authenticator: authenticator,
		roles:         roles,
		adminEmails:   allowList,
		policies:      policies,
		log:           log.With("component", "access_gate"),
	}
}

// Middleware returns the echo middleware enforcing the policy table.
func (g *AccessGate) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			required, gated := g.policies[c.Request().Method+" "+c.Path()]
			if !gated || required == nil {
				return next(c)
			}

			token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if token == "" {
				return errorResponse(c, http.StatusUnauthorized, "Authentication required")
			}

			ctx := c.Request().Context()
			identity, err := g.authenticator.Resolve(ctx, token)
			if err != nil {
				if errors.Is(err, errs.ErrObjectNotFound) || errors.Is(err, errs.ErrValueIsRequired) {
					return errorResponse(c, http.StatusUnauthorized, "Authentication required")
				}
				g.log.ErrorContext(ctx, "Failed to resolve identity", "error", err)
				return errorResponse(c, http.StatusInternalServerError, "Internal error")
			}

			grants, err := g.roles.RolesForUser(ctx, identity.UserID)
			if err != nil {
				g.log.ErrorContext(ctx, "Failed to load roles", "user_id", identity.UserID.String(), "error", err)
				return errorResponse(c, http.StatusInternalServerError, "Internal error")
			}
			if _, allowed := g.adminEmails[strings.ToLower(identity.Email)]; allowed && !slices.Contains(grants, ports.RoleAdmin) {
				grants = append(grants, ports.RoleAdmin)
			}

			c.Set(identityContextKey, identity)
			c.Set(rolesContextKey, grants)

			if !hasAnyRole(grants, required) {
				return errorResponse(c, http.StatusForbidden, "Forbidden")
			}

			return next(c)
		}
	}
}

// IdentityFromContext returns the identity the gate stored for this request.
func IdentityFromContext(c echo.Context) (*ports.Identity, bool) {
	identity, ok := c.Get(identityContextKey).(*ports.Identity)
	return identity, ok
}

// RolesFromContext returns the role set the gate stored for this request.
func RolesFromContext(c echo.Context) []string {
	roles, _ := c.Get(rolesContextKey).([]string)
	return roles
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

func hasRole(grants []string, role string) bool {
	return slices.Contains(grants, role)
}

func hasAnyRole(grants, required []string) bool {
	for _, role := range required {
		if slices.Contains(grants, role) {
			return true
		}
	}
	return false
}
