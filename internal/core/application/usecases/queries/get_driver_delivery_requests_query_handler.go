package queries

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/deliveryrequest"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GetDriverDeliveryRequestsQueryHandler reads one driver's delivery requests
// straight from the database. Uses direct SQL for optimal read performance in
// the CQRS pattern; the aggregate layer is bypassed on purpose.
type GetDriverDeliveryRequestsQueryHandler struct {
	db *gorm.DB
}

// NewGetDriverDeliveryRequestsQueryHandler creates a handler for driver request queries.
// Requires a GORM database connection for query execution.
func NewGetDriverDeliveryRequestsQueryHandler(db *gorm.DB) GetDriverDeliveryRequestsQueryHandler {
	return GetDriverDeliveryRequestsQueryHandler{db: db}
}

// Handle executes the query for the driver's requests.
// Results join the order's venue location and come back oldest offer first.
func (h GetDriverDeliveryRequestsQueryHandler) Handle(
	ctx context.Context,
	query GetDriverDeliveryRequestsQuery,
) ([]GetDriverDeliveryRequestsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			dr.id,
			dr.order_id,
			dr.status,
			dr.created_at,
			o.venue_latitude,
			o.venue_longitude
		FROM delivery_requests dr
		JOIN orders o ON o.id = dr.order_id
		WHERE dr.driver_id = ?
	`
	args := []any{query.DriverID().Bytes()}

	if statuses := query.Statuses(); len(statuses) > 0 {
		statusValues := make([]int64, 0, len(statuses))
		for _, status := range statuses {
			statusValues = append(statusValues, int64(status))
		}
		sql += ` AND dr.status = ANY(?)`
		args = append(args, pq.Array(statusValues))
	}

	if cursor := query.LastRejectedOrderID(); cursor != nil {
		sql += ` AND dr.order_id > ?`
		args = append(args, cursor.Bytes())
	}

	sql += ` ORDER BY dr.created_at, dr.id`

	requests := make([]GetDriverDeliveryRequestsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var response GetDriverDeliveryRequestsQueryResponse
		var id, orderID uuid.UUID
		var status int
		var createdAt time.Time
		var venueLatitude, venueLongitude float64

		err = rows.Scan(
			&id,
			&orderID,
			&status,
			&createdAt,
			&venueLatitude,
			&venueLongitude,
		)
		if err != nil {
			return nil, err
		}

		requestID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		response.ID = requestID

		requestOrderID, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return nil, idErr
		}
		response.OrderID = requestOrderID

		venueLocation, locErr := kernel.NewGeoPoint(venueLatitude, venueLongitude)
		if locErr != nil {
			return nil, locErr
		}
		response.VenueLocation = venueLocation

		response.Status = deliveryrequest.Status(status)
		response.CreatedAt = createdAt
		requests = append(requests, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}
