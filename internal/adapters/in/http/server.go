package http

import (
	"errors"
	"net/http"

	"pharmaflow/internal/core/application/usecases/commands"
	"pharmaflow/internal/core/application/usecases/queries"
	"pharmaflow/internal/core/domain/model/kernel"
	"pharmaflow/internal/core/domain/model/order"
	"pharmaflow/internal/core/ports"
	"pharmaflow/internal/generated/servers"
	"pharmaflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// Server implements the generated ServerInterface for the operator API.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler    commands.CreateOrderCommandHandler
	assignPharmacyHandler commands.AssignPharmacyCommandHandler
	acknowledgeHandler    commands.AcknowledgeAssignmentCommandHandler
	updateStatusHandler   commands.UpdateStatusCommandHandler

	// Query handlers
	getOrderHandler       queries.GetOrderQueryHandler
	getOrdersHandler      queries.GetOrdersQueryHandler
	getOrderEventsHandler queries.GetOrderEventsQueryHandler

	// Pharmacy lookup for scoping pharmacy-role callers to their own orders.
	pharmacies ports.PharmacyRepository
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	assignPharmacyHandler commands.AssignPharmacyCommandHandler,
	acknowledgeHandler commands.AcknowledgeAssignmentCommandHandler,
	updateStatusHandler commands.UpdateStatusCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
	getOrderEventsHandler queries.GetOrderEventsQueryHandler,
	pharmacies ports.PharmacyRepository,
) *Server {
	return &Server{
		createOrderHandler:    createOrderHandler,
		assignPharmacyHandler: assignPharmacyHandler,
		acknowledgeHandler:    acknowledgeHandler,
		updateStatusHandler:   updateStatusHandler,
		getOrderHandler:       getOrderHandler,
		getOrdersHandler:      getOrdersHandler,
		getOrderEventsHandler: getOrderEventsHandler,
		pharmacies:            pharmacies,
	}
}

// CreateOrder handles POST /orders - registers a paid checkout as a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var newOrder servers.NewOrder
	if err := ctx.Bind(&newOrder); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	phone, err := kernel.NewPhone(newOrder.Phone)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid phone: "+err.Error())
	}
	totalPrice, err := decimal.NewFromString(newOrder.TotalPrice)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid total_price")
	}

	cmd, err := commands.NewCreateOrderCommand(phone, totalPrice)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid order data: "+err.Error())
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainErrorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderFromAggregate(created))
}

// GetOrders handles GET /orders - lists orders visible to the caller.
// Admin callers see everything; pharmacy callers only their assignments.
func (s *Server) GetOrders(ctx echo.Context) error {
	query, err := s.orderListQuery(ctx)
	if err != nil {
		return domainErrorResponse(ctx, err)
	}

	orders, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, http.StatusInternalServerError, "Failed to retrieve orders")
	}

	response := make([]servers.Order, len(orders))
	for i, o := range orders {
		response[i] = orderFromResponse(o)
	}

	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) orderListQuery(ctx echo.Context) (queries.GetOrdersQuery, error) {
	if hasRole(RolesFromContext(ctx), ports.RoleAdmin) {
		return queries.NewGetOrdersQuery(), nil
	}

	identity, ok := IdentityFromContext(ctx)
	if !ok {
		return queries.GetOrdersQuery{}, errs.NewValueIsRequiredError("identity")
	}
	p, err := s.pharmacies.GetByUser(ctx.Request().Context(), identity.UserID)
	if err != nil {
		return queries.GetOrdersQuery{}, err
	}
	return queries.NewGetOrdersQueryForPharmacy(p.ID())
}

// GetOrder handles GET /orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	orderID, err := kernel.UUIDFromString(orderId.String())
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid order id")
	}

	found, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainErrorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromResponse(found))
}

// GetOrderEvents handles GET /orders/{orderId}/events.
func (s *Server) GetOrderEvents(ctx echo.Context, orderId openapi_types.UUID, params servers.GetOrderEventsParams) error {
	orderID, err := kernel.UUIDFromString(orderId.String())
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid order id")
	}

	offset := 0
	if params.Offset != nil {
		offset = *params.Offset
	}
	limit := 50
	if params.Limit != nil {
		limit = *params.Limit
	}

	orderQuery, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid order id")
	}
	if _, err := s.getOrderHandler.Handle(ctx.Request().Context(), orderQuery); err != nil {
		return domainErrorResponse(ctx, err)
	}

	query, err := queries.NewGetOrderEventsQuery(orderID, offset, limit)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid pagination: "+err.Error())
	}

	events, err := s.getOrderEventsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, http.StatusInternalServerError, "Failed to retrieve events")
	}

	response := make([]servers.OrderEvent, len(events))
	for i, event := range events {
		response[i] = eventFromResponse(event)
	}

	return ctx.JSON(http.StatusOK, response)
}

// ReassignOrder handles PUT /orders/{orderId}/reassign.
func (s *Server) ReassignOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	orderID, err := kernel.UUIDFromString(orderId.String())
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid order id")
	}

	var body servers.ReassignRequest
	if err := ctx.Bind(&body); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	pharmacyID, err := kernel.UUIDFromString(body.PharmacyId.String())
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "pharmacy_id is required")
	}

	cmd, err := commands.NewAssignPharmacyCommand(orderID, pharmacyID)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "pharmacy_id is required")
	}

	if err := s.assignPharmacyHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainErrorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.Ack{Ok: true})
}

// AcceptOrder handles POST /orders/{orderId}/pharmacy/accept.
func (s *Server) AcceptOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	return s.acknowledge(ctx, orderId, commands.DecisionAccept)
}

// RejectOrder handles POST /orders/{orderId}/pharmacy/reject.
func (s *Server) RejectOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	return s.acknowledge(ctx, orderId, commands.DecisionReject)
}

func (s *Server) acknowledge(ctx echo.Context, orderId openapi_types.UUID, decision string) error {
	orderID, err := kernel.UUIDFromString(orderId.String())
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid order id")
	}

	identity, ok := IdentityFromContext(ctx)
	if !ok {
		return errorResponse(ctx, http.StatusUnauthorized, "Authentication required")
	}

	cmd, err := commands.NewAcknowledgeAssignmentCommand(orderID, identity.UserID, decision)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request: "+err.Error())
	}

	outcome, err := s.acknowledgeHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainErrorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ackFromOutcome(outcome))
}

// UpdateOrderStatus handles PUT /orders/{orderId}/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context, orderId openapi_types.UUID) error {
	orderID, err := kernel.UUIDFromString(orderId.String())
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid order id")
	}

	var body servers.StatusUpdateRequest
	if err := ctx.Bind(&body); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	next, err := order.StatusFromString(string(body.Status))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Unknown status: "+string(body.Status))
	}

	note := ""
	if body.Note != nil {
		note = *body.Note
	}
	override := false
	if body.Override != nil {
		override = *body.Override
	}

	cmd, err := commands.NewUpdateStatusCommand(orderID, next, note, override)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request: "+err.Error())
	}

	outcome, err := s.updateStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainErrorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ackFromOutcome(outcome))
}

func ackFromOutcome(outcome commands.Outcome) servers.Ack {
	ack := servers.Ack{Ok: true}
	if outcome == commands.OutcomeAlreadyApplied {
		already := true
		ack.Already = &already
	}
	return ack
}

func orderFromAggregate(o *order.Order) servers.Order {
	response := servers.Order{
		Id:           o.ID().Bytes(),
		TrackingCode: o.TrackingCode().String(),
		Status:       servers.OrderStatus(o.Status().String()),
		AckStatus:    servers.OrderAckStatus(o.AckStatus().String()),
		TotalPrice:   o.TotalPrice().StringFixed(2),
		PhoneMasked:  o.PhoneMasked(),
		CreatedAt:    o.CreatedAt(),
		UpdatedAt:    o.UpdatedAt(),
	}
	if pharmacyID := o.Pharmacy(); pharmacyID != nil {
		id := pharmacyID.Bytes()
		response.PharmacyId = &id
	}
	return response
}

func orderFromResponse(o queries.OrderResponse) servers.Order {
	response := servers.Order{
		Id:           o.ID.Bytes(),
		TrackingCode: o.TrackingCode,
		Status:       servers.OrderStatus(o.Status),
		AckStatus:    servers.OrderAckStatus(o.AckStatus),
		TotalPrice:   o.TotalPrice.StringFixed(2),
		PhoneMasked:  o.PhoneMasked,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
	if o.PharmacyID != nil {
		id := o.PharmacyID.Bytes()
		response.PharmacyId = &id
	}
	return response
}

func eventFromResponse(event queries.OrderEventResponse) servers.OrderEvent {
	response := servers.OrderEvent{
		Id:          event.ID.Bytes(),
		OrderId:     event.OrderID.Bytes(),
		StatusLabel: event.StatusLabel,
		CreatedAt:   event.CreatedAt,
	}
	if event.Note != "" {
		note := event.Note
		response.Note = &note
	}
	return response
}

func errorResponse(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, servers.Error{
		Code:    int32(code),
		Message: message,
	})
}

func domainErrorResponse(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return errorResponse(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, commands.ErrActorNotAssigned):
		return errorResponse(ctx, http.StatusForbidden, err.Error())
	case errors.Is(err, order.ErrAckConflict),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return errorResponse(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, order.ErrNoPharmacyAssigned),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	default:
		return errorResponse(ctx, http.StatusInternalServerError, "Internal error")
	}
}
