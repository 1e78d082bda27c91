// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/deliveryrequest"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetDriverDeliveryRequestsQueryIsNotConstructed = errors.New(
	"GetDriverDeliveryRequestsQuery must be created via NewGetDriverDeliveryRequestsQuery constructor",
)

// GetDriverDeliveryRequestsQuery retrieves the delivery requests addressed to
// one driver, optionally filtered by status. Drivers poll this read model to
// see their open offers.
//
// The optional lastRejectedOrderID cursor skips orders up to and including
// the one the driver last declined, so a polling client does not keep seeing
// the offer it just turned down while the resolution propagates.
//
// Example:
//
//	query, err := NewGetDriverDeliveryRequestsQuery(
//	    driverID, []deliveryrequest.Status{deliveryrequest.StatusPending}, nil)
//	if err != nil {
//	    return err
//	}
//	requests, err := handler.Handle(ctx, query)
type GetDriverDeliveryRequestsQuery struct { //nolint:recvcheck //using for validation
	driverID            kernel.UUID
	statuses            []deliveryrequest.Status
	lastRejectedOrderID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDriverDeliveryRequestsQuery creates a query for one driver's requests.
// An empty status slice means no status filter; lastRejectedOrderID may be nil.
func NewGetDriverDeliveryRequestsQuery(
	driverID kernel.UUID,
	statuses []deliveryrequest.Status,
	lastRejectedOrderID *kernel.UUID,
) (GetDriverDeliveryRequestsQuery, error) {
	if err := driverID.Validate(); err != nil {
		return GetDriverDeliveryRequestsQuery{}, err
	}

	for _, status := range statuses {
		if err := status.Validate(); err != nil {
			return GetDriverDeliveryRequestsQuery{}, err
		}
	}

	if lastRejectedOrderID != nil {
		if err := lastRejectedOrderID.Validate(); err != nil {
			return GetDriverDeliveryRequestsQuery{}, err
		}
	}

	return GetDriverDeliveryRequestsQuery{
		driverID:            driverID,
		statuses:            statuses,
		lastRejectedOrderID: lastRejectedOrderID,
		guard:               guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDriverDeliveryRequestsQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverDeliveryRequestsQueryIsNotConstructed)
}

// DriverID returns the driver whose requests are read.
func (q GetDriverDeliveryRequestsQuery) DriverID() kernel.UUID {
	return q.driverID
}

// Statuses returns the status filter; empty means all statuses.
func (q GetDriverDeliveryRequestsQuery) Statuses() []deliveryrequest.Status {
	return q.statuses
}

// LastRejectedOrderID returns the paging cursor, nil when absent.
func (q GetDriverDeliveryRequestsQuery) LastRejectedOrderID() *kernel.UUID {
	return q.lastRejectedOrderID
}

// GetDriverDeliveryRequestsQueryResponse is one delivery request in the
// driver's read model, with the venue location for distance display.
type GetDriverDeliveryRequestsQueryResponse struct {
	ID            kernel.UUID
	OrderID       kernel.UUID
	Status        deliveryrequest.Status
	VenueLocation kernel.GeoPoint
	CreatedAt     time.Time
}
