// Package ports defines the contracts between the application core and
// infrastructure: repositories, the unit of work, and external collaborator
// services. These interfaces enable dependency inversion and testability.
package ports

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// ErrOrderAlreadyTaken is returned by AcceptIfLookingForDriver when the order
// left the looking_for_driver status between read and update. Exactly one of
// several concurrent accepts observes a successful update; all others get
// this error.
var ErrOrderAlreadyTaken = errors.New("order is no longer looking for a driver")

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// AcceptIfLookingForDriver persists the accepted aggregate with a guard on
	// the stored status: the row is written only if it is still in
	// looking_for_driver. Returns ErrOrderAlreadyTaken when the guard fails.
	// This is the first-accept-wins arbitration point.
	AcceptIfLookingForDriver(ctx context.Context, aggregate *order.Order) error

	// GetAllStalePending retrieves orders still in pending status created
	// at or before the given cutoff, oldest first.
	GetAllStalePending(ctx context.Context, cutoff time.Time) ([]*order.Order, error)

	// GetAllLookingForDriver retrieves all orders currently searching for a
	// driver, oldest search first.
	GetAllLookingForDriver(ctx context.Context) ([]*order.Order, error)
}
