package queries

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/deliveryrequest"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersInSearchQueryHandler reads the searching orders from the database
// with a per-order count of still-pending offers.
type GetOrdersInSearchQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersInSearchQueryHandler creates a handler for search monitoring queries.
// Requires a GORM database connection for query execution.
func NewGetOrdersInSearchQueryHandler(db *gorm.DB) GetOrdersInSearchQueryHandler {
	return GetOrdersInSearchQueryHandler{db: db}
}

// Handle executes the query. Orders come back oldest search first.
func (h GetOrdersInSearchQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersInSearchQuery,
) ([]GetOrdersInSearchQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetOrdersInSearchQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.venue_latitude,
			o.venue_longitude,
			o.search_radius_km,
			o.started_looking_for_drivers_at,
			(
				SELECT COUNT(*)
				FROM delivery_requests dr
				WHERE dr.order_id = o.id AND dr.status = ?
			) AS pending_requests
		FROM orders o
		WHERE o.status = ?
		ORDER BY o.started_looking_for_drivers_at
	`, int(deliveryrequest.StatusPending), int(order.StatusLookingForDriver)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var response GetOrdersInSearchQueryResponse
		var id uuid.UUID
		var venueLatitude, venueLongitude float64
		var startedAt time.Time

		err = rows.Scan(
			&id,
			&venueLatitude,
			&venueLongitude,
			&response.SearchRadiusKm,
			&startedAt,
			&response.PendingRequests,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		response.ID = orderID

		venueLocation, locErr := kernel.NewGeoPoint(venueLatitude, venueLongitude)
		if locErr != nil {
			return nil, locErr
		}
		response.VenueLocation = venueLocation

		response.StartedLookingForDriversAt = startedAt
		orders = append(orders, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
