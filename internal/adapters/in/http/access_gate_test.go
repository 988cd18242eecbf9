package http_test

import (
	"log/slog"
	gohttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	adapter "pharmaflow/internal/adapters/in/http"
	"pharmaflow/internal/core/domain/model/kernel"
	"pharmaflow/internal/core/ports"
	"pharmaflow/internal/pkg/errs"
)

type gateFixture struct {
	authenticator *MockAuthenticator
	roles         *MockRoleRepository
	e             *echo.Echo
	handlerCalled bool
}

func newGateFixture(adminEmails ...string) *gateFixture {
	f := &gateFixture{
		authenticator: &MockAuthenticator{},
		roles:         &MockRoleRepository{},
	}

	gate := adapter.NewAccessGate(
		f.authenticator, f.roles, adminEmails, adapter.DefaultRoutePolicies(), slog.Default())

	f.e = echo.New()
	f.e.Use(gate.Middleware())
	probe := func(c echo.Context) error {
		f.handlerCalled = true
		return c.NoContent(gohttp.StatusOK)
	}
	f.e.GET("/orders", probe)
	f.e.POST("/orders", probe)
	f.e.PUT("/orders/:orderId/reassign", probe)
	f.e.GET("/health", probe)
	return f
}

func (f *gateFixture) request(method, target, token string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, nil)
	if token != "" {
		request.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	f.e.ServeHTTP(recorder, request)
	return recorder
}

func TestGateRejectsMissingToken(t *testing.T) {
	f := newGateFixture()

	recorder := f.request(gohttp.MethodGet, "/orders", "")

	assert.Equal(t, gohttp.StatusUnauthorized, recorder.Code)
	assert.False(t, f.handlerCalled)
}

func TestGateRejectsUnknownToken(t *testing.T) {
	f := newGateFixture()
	f.authenticator.On("Resolve", mock.Anything, "bad-token").
		Return(nil, errs.NewObjectNotFoundError("token", "bearer"))

	recorder := f.request(gohttp.MethodGet, "/orders", "bad-token")

	assert.Equal(t, gohttp.StatusUnauthorized, recorder.Code)
	assert.False(t, f.handlerCalled)
}

func TestGateForbidsCallerWithoutRequiredRole(t *testing.T) {
	f := newGateFixture()
	identity := &ports.Identity{UserID: kernel.NewUUID(), Email: "clerk@pharmacy.example"}
	f.authenticator.On("Resolve", mock.Anything, "pharmacy-token").Return(identity, nil)
	f.roles.On("RolesForUser", mock.Anything, identity.UserID).Return([]string{ports.RolePharmacy}, nil)

	recorder := f.request(gohttp.MethodPut, "/orders/"+kernel.NewUUID().String()+"/reassign", "pharmacy-token")

	assert.Equal(t, gohttp.StatusForbidden, recorder.Code)
	assert.False(t, f.handlerCalled)
}

func TestGateAdmitsCallerWithRequiredRole(t *testing.T) {
	f := newGateFixture()
	identity := &ports.Identity{UserID: kernel.NewUUID(), Email: "ops@example.com"}
	f.authenticator.On("Resolve", mock.Anything, "admin-token").Return(identity, nil)
	f.roles.On("RolesForUser", mock.Anything, identity.UserID).Return([]string{ports.RoleAdmin}, nil)

	recorder := f.request(gohttp.MethodPut, "/orders/"+kernel.NewUUID().String()+"/reassign", "admin-token")

	assert.Equal(t, gohttp.StatusOK, recorder.Code)
	assert.True(t, f.handlerCalled)
}

func TestGateGrantsAdminThroughEmailAllowList(t *testing.T) {
	f := newGateFixture("Boss@Example.COM")
	identity := &ports.Identity{UserID: kernel.NewUUID(), Email: "boss@example.com"}
	f.authenticator.On("Resolve", mock.Anything, "boss-token").Return(identity, nil)
	f.roles.On("RolesForUser", mock.Anything, identity.UserID).Return([]string{}, nil)

	recorder := f.request(gohttp.MethodPut, "/orders/"+kernel.NewUUID().String()+"/reassign", "boss-token")

	assert.Equal(t, gohttp.StatusOK, recorder.Code)
}

func TestGateLeavesPublicRouteOpen(t *testing.T) {
	f := newGateFixture()

	recorder := f.request(gohttp.MethodPost, "/orders", "")

	assert.Equal(t, gohttp.StatusOK, recorder.Code)
	f.authenticator.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
}

func TestGateIgnoresRoutesOutsidePolicyTable(t *testing.T) {
	f := newGateFixture()

	recorder := f.request(gohttp.MethodGet, "/health", "")

	assert.Equal(t, gohttp.StatusOK, recorder.Code)
}
