// Package http provides the inbound REST adapter.
// It translates HTTP requests into commands and queries and maps domain
// errors onto HTTP status codes.
package http

import (
	"errors"
	"net/http"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/deliveryrequest"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	echoswagger "github.com/swaggo/echo-swagger"
)

// driverIDHeader carries the acting driver's identity on driver-facing routes.
const driverIDHeader = "X-Driver-ID"

// Error is the uniform error payload of the API.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// GeoPoint is the wire representation of a coordinate pair.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DeliveryRequest is one delivery offer in the driver's feed.
type DeliveryRequest struct {
	ID            uuid.UUID `json:"id"`
	OrderID       uuid.UUID `json:"order_id"`
	Status        string    `json:"status"`
	VenueLocation GeoPoint  `json:"venue_location"`
	CreatedAt     time.Time `json:"created_at"`
}

// OrderInSearch is one searching order in the monitoring feed.
type OrderInSearch struct {
	ID                         uuid.UUID `json:"id"`
	VenueLocation              GeoPoint  `json:"venue_location"`
	SearchRadiusKm             float64   `json:"search_radius_km"`
	StartedLookingForDriversAt time.Time `json:"started_looking_for_drivers_at"`
	PendingRequests            int       `json:"pending_requests"`
}

// resolveRequestBody is the PATCH body for delivery request resolution.
type resolveRequestBody struct {
	Status string `json:"status"`
}

// updateOrderBody is the PATCH body for order updates. Exactly one of the
// fields must be set.
type updateOrderBody struct {
	Status         *string `json:"status"`
	DeliveryStatus *string `json:"delivery_status"`
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	startDriverSearchHandler    commands.StartDriverSearchCommandHandler
	acceptRequestHandler        commands.AcceptDeliveryRequestCommandHandler
	rejectRequestHandler        commands.RejectDeliveryRequestCommandHandler
	updateDeliveryStatusHandler commands.UpdateDeliveryStatusCommandHandler

	getDriverRequestsHandler queries.GetDriverDeliveryRequestsQueryHandler
	getOrdersInSearchHandler queries.GetOrdersInSearchQueryHandler

	// initialRadiusKm is the configured radius a fresh driver search starts with.
	initialRadiusKm float64
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	startDriverSearchHandler commands.StartDriverSearchCommandHandler,
	acceptRequestHandler commands.AcceptDeliveryRequestCommandHandler,
	rejectRequestHandler commands.RejectDeliveryRequestCommandHandler,
	updateDeliveryStatusHandler commands.UpdateDeliveryStatusCommandHandler,
	getDriverRequestsHandler queries.GetDriverDeliveryRequestsQueryHandler,
	getOrdersInSearchHandler queries.GetOrdersInSearchQueryHandler,
	initialRadiusKm float64,
) *Server {
	return &Server{
		startDriverSearchHandler:    startDriverSearchHandler,
		acceptRequestHandler:        acceptRequestHandler,
		rejectRequestHandler:        rejectRequestHandler,
		updateDeliveryStatusHandler: updateDeliveryStatusHandler,
		getDriverRequestsHandler:    getDriverRequestsHandler,
		getOrdersInSearchHandler:    getOrdersInSearchHandler,
		initialRadiusKm:             initialRadiusKm,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.GET("/delivery-requests", s.GetDeliveryRequests)
	api.PATCH("/delivery-requests/:id", s.ResolveDeliveryRequest)
	api.PATCH("/orders/:id", s.UpdateOrder)
	api.GET("/orders/in-search", s.GetOrdersInSearch)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoswagger.WrapHandler)
}

// GetDeliveryRequests handles GET /api/v1/delivery-requests - the acting
// driver's delivery request feed, optionally filtered by status and paged
// past the last declined order.
func (s *Server) GetDeliveryRequests(ctx echo.Context) error {
	driverID, err := driverFromHeader(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Missing or invalid " + driverIDHeader + " header",
		})
	}

	queryParams := ctx.Request().URL.Query()

	var statusNames []string
	if queryParams.Has("status") {
		if bindErr := runtime.BindQueryParameter(
			"form", false, false, "status", queryParams, &statusNames); bindErr != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid status parameter",
			})
		}
	}

	statuses := make([]deliveryrequest.Status, 0, len(statusNames))
	for _, name := range statusNames {
		status, parseErr := deliveryrequest.StatusFromString(name)
		if parseErr != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid status value: " + name,
			})
		}
		statuses = append(statuses, status)
	}

	var lastRejectedOrderID *kernel.UUID
	if queryParams.Has("last_rejected_order_id") {
		var raw uuid.UUID
		if bindErr := runtime.BindQueryParameter(
			"form", false, false, "last_rejected_order_id", queryParams, &raw); bindErr != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid last_rejected_order_id parameter",
			})
		}
		cursor, idErr := kernel.UUIDFromBytes(raw[:])
		if idErr != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid last_rejected_order_id parameter",
			})
		}
		lastRejectedOrderID = &cursor
	}

	query, err := queries.NewGetDriverDeliveryRequestsQuery(driverID, statuses, lastRejectedOrderID)
	if err != nil {
		return s.mapError(ctx, err)
	}

	requests, err := s.getDriverRequestsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.mapError(ctx, err)
	}

	response := make([]DeliveryRequest, len(requests))
	for i, request := range requests {
		response[i] = DeliveryRequest{
			ID:      request.ID.Bytes(),
			OrderID: request.OrderID.Bytes(),
			Status:  request.Status.String(),
			VenueLocation: GeoPoint{
				Latitude:  request.VenueLocation.Latitude(),
				Longitude: request.VenueLocation.Longitude(),
			},
			CreatedAt: request.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ResolveDeliveryRequest handles PATCH /api/v1/delivery-requests/:id - the
// acting driver accepts or declines one of their offers.
func (s *Server) ResolveDeliveryRequest(ctx echo.Context) error {
	driverID, err := driverFromHeader(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Missing or invalid " + driverIDHeader + " header",
		})
	}

	requestID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid delivery request id",
		})
	}

	var body resolveRequestBody
	if bindErr := ctx.Bind(&body); bindErr != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	switch body.Status {
	case deliveryrequest.StatusAccepted.String():
		cmd, cmdErr := commands.NewAcceptDeliveryRequestCommand(requestID, driverID)
		if cmdErr != nil {
			return s.mapError(ctx, cmdErr)
		}
		if handleErr := s.acceptRequestHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
			return s.mapError(ctx, handleErr)
		}
	case deliveryrequest.StatusRejected.String():
		cmd, cmdErr := commands.NewRejectDeliveryRequestCommand(requestID, driverID)
		if cmdErr != nil {
			return s.mapError(ctx, cmdErr)
		}
		if handleErr := s.rejectRequestHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
			return s.mapError(ctx, handleErr)
		}
	default:
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: `Status must be "accepted" or "rejected"`,
		})
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateOrder handles PATCH /api/v1/orders/:id - starts the driver search
// (status "looking_for_driver", the venue confirmation trigger) or advances
// the delivery status of an accepted order.
func (s *Server) UpdateOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	var body updateOrderBody
	if bindErr := ctx.Bind(&body); bindErr != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	switch {
	case body.Status != nil && body.DeliveryStatus == nil:
		if *body.Status != order.StatusLookingForDriver.String() {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: `Only a transition to "looking_for_driver" can be requested`,
			})
		}

		cmd, cmdErr := commands.NewStartDriverSearchCommand(orderID, s.initialRadiusKm)
		if cmdErr != nil {
			return s.mapError(ctx, cmdErr)
		}
		if handleErr := s.startDriverSearchHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
			return s.mapError(ctx, handleErr)
		}
	case body.DeliveryStatus != nil && body.Status == nil:
		newStatus, parseErr := order.DeliveryStatusFromString(*body.DeliveryStatus)
		if parseErr != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid delivery status: " + *body.DeliveryStatus,
			})
		}

		cmd, cmdErr := commands.NewUpdateDeliveryStatusCommand(orderID, newStatus)
		if cmdErr != nil {
			return s.mapError(ctx, cmdErr)
		}
		if handleErr := s.updateDeliveryStatusHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
			return s.mapError(ctx, handleErr)
		}
	default:
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: `Exactly one of "status" and "delivery_status" must be set`,
		})
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrdersInSearch handles GET /api/v1/orders/in-search - the monitoring
// feed of orders currently looking for a driver.
func (s *Server) GetOrdersInSearch(ctx echo.Context) error {
	query := queries.NewGetOrdersInSearchQuery()

	orders, err := s.getOrdersInSearchHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.mapError(ctx, err)
	}

	response := make([]OrderInSearch, len(orders))
	for i, searching := range orders {
		response[i] = OrderInSearch{
			ID: searching.ID.Bytes(),
			VenueLocation: GeoPoint{
				Latitude:  searching.VenueLocation.Latitude(),
				Longitude: searching.VenueLocation.Longitude(),
			},
			SearchRadiusKm:             searching.SearchRadiusKm,
			StartedLookingForDriversAt: searching.StartedLookingForDriversAt,
			PendingRequests:            searching.PendingRequests,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// driverFromHeader reads the acting driver's id off the request header.
func driverFromHeader(ctx echo.Context) (kernel.UUID, error) {
	raw := ctx.Request().Header.Get(driverIDHeader)
	if raw == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError("driver id")
	}
	return kernel.UUIDFromString(raw)
}

// mapError translates domain and application errors onto HTTP status codes.
// Not-found masking keeps the response identical whether the object is absent
// or addressed to a different driver.
func (s *Server) mapError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: "object with this id does not exist",
		})
	case errors.Is(err, commands.ErrRequestNoLongerAvailable):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: "delivery request is no longer available",
		})
	case errors.Is(err, commands.ErrOrderNotLookingForDriver):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: "order isn't looking for drivers",
		})
	case errors.Is(err, errs.ErrValueIsRequired):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsInvalid) || errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusUnprocessableEntity, Error{
			Code:    http.StatusUnprocessableEntity,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "internal error",
		})
	}
}
