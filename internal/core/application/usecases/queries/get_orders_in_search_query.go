package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetOrdersInSearchQueryIsNotConstructed = errors.New(
	"GetOrdersInSearchQuery must be created via NewGetOrdersInSearchQuery constructor",
)

// GetOrdersInSearchQuery retrieves every order currently looking for a driver,
// with the search progress needed for monitoring: how long the search has run,
// the current radius, and how many offers are still open.
type GetOrdersInSearchQuery struct {
	guard guard.ConstructorGuard
}

// NewGetOrdersInSearchQuery creates a query for orders in active driver search.
// This is a parameterless query; it always covers the whole searching set.
func NewGetOrdersInSearchQuery() GetOrdersInSearchQuery {
	return GetOrdersInSearchQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersInSearchQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersInSearchQueryIsNotConstructed)
}

// GetOrdersInSearchQueryResponse is one searching order in the monitoring
// read model.
type GetOrdersInSearchQueryResponse struct {
	ID                         kernel.UUID
	VenueLocation              kernel.GeoPoint
	SearchRadiusKm             float64
	StartedLookingForDriversAt time.Time
	PendingRequests            int
}
