package ports

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/deliveryrequest"
	"dispatch/internal/core/domain/model/kernel"
)

// ErrDuplicateDeliveryRequest is returned by Add when a request for the same
// (driver, order) pair already exists. Backed by a unique index in storage.
var ErrDuplicateDeliveryRequest = errors.New("delivery request for this driver and order already exists")

// DeliveryRequestRepository defines the persistence contract for delivery
// request aggregates. Requests are never hard-deleted; resolved requests
// remain as the audit trail of every offer the system made.
type DeliveryRequestRepository interface {
	// Add persists a new delivery request. Returns ErrDuplicateDeliveryRequest
	// if a request for the same driver and order already exists.
	Add(ctx context.Context, aggregate *deliveryrequest.DeliveryRequest) error

	// Update persists changes to an existing delivery request.
	Update(ctx context.Context, aggregate *deliveryrequest.DeliveryRequest) error

	// Get retrieves a delivery request by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*deliveryrequest.DeliveryRequest, error)

	// GetAllPendingByOrder retrieves every request for the order still
	// awaiting a driver decision.
	GetAllPendingByOrder(ctx context.Context, orderID kernel.UUID) ([]*deliveryrequest.DeliveryRequest, error)
}
