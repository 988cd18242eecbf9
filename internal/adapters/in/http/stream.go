package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"pharmaflow/internal/core/ports"
	"pharmaflow/internal/pkg/errs"
	"pharmaflow/internal/realtime"

	"github.com/labstack/echo/v4"
)

// StreamHandler serves the live order change feed as server-sent events.
// Each connection owns one broadcaster subscription and one heartbeat ticker;
// both are released synchronously when the client disconnects, so reconnect
// churn cannot leak subscriptions.
type StreamHandler struct {
	broadcaster *realtime.Broadcaster
	pharmacies  ports.PharmacyRepository
	heartbeat   time.Duration
	retry       time.Duration
	log         *slog.Logger
}

// NewStreamHandler creates the SSE handler. retry is the reconnect interval
// advertised to clients, heartbeat the ping cadence keeping intermediaries
// from closing an idle connection.
func NewStreamHandler(
	broadcaster *realtime.Broadcaster,
	pharmacies ports.PharmacyRepository,
	heartbeat, retry time.Duration,
	log *slog.Logger,
) *StreamHandler {
	return &StreamHandler{
		broadcaster: broadcaster,
		pharmacies:  pharmacies,
		heartbeat:   heartbeat,
		retry:       retry,
		log:         log.With("component", "order_stream"),
	}
}

// Handle processes GET /orders/stream.
func (h *StreamHandler) Handle(c echo.Context) error {
	scope, err := h.scopeForCaller(c)
	if err != nil {
		return domainErrorResponse(c, err)
	}

	response := c.Response()
	response.Header().Set(echo.HeaderContentType, "text/event-stream")
	response.Header().Set("Cache-Control", "no-cache")
	response.Header().Set("Connection", "keep-alive")
	response.WriteHeader(http.StatusOK)

	fmt.Fprintf(response, "retry: %d\n\n", h.retry.Milliseconds())
	response.Flush()

	changes, unsubscribe := h.broadcaster.Subscribe(scope)
	defer unsubscribe()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			fmt.Fprint(response, "event: ping\ndata: {}\n\n")
			response.Flush()
		case change, open := <-changes:
			if !open {
				return nil
			}
			data, err := json.Marshal(change)
			if err != nil {
				h.log.ErrorContext(ctx, "Failed to encode change", "error", err)
				continue
			}
			fmt.Fprintf(response, "data: %s\n\n", data)
			response.Flush()
		}
	}
}

// scopeForCaller narrows the feed: admins see every order, pharmacy callers
// only changes of orders assigned to their pharmacy.
func (h *StreamHandler) scopeForCaller(c echo.Context) (realtime.Scope, error) {
	if hasRole(RolesFromContext(c), ports.RoleAdmin) {
		return realtime.ScopeAll(), nil
	}

	identity, ok := IdentityFromContext(c)
	if !ok {
		return realtime.Scope{}, errs.NewValueIsRequiredError("identity")
	}
	p, err := h.pharmacies.GetByUser(c.Request().Context(), identity.UserID)
	if err != nil {
		return realtime.Scope{}, err
	}
	return realtime.ScopePharmacy(p.ID().String()), nil
}
