package ports

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
)

// DriverRepository defines the persistence contract for driver aggregates.
type DriverRepository interface {
	// Add persists a new driver aggregate to storage.
	// The driver must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *driver.Driver) error

	// Update persists changes to an existing driver aggregate.
	// The driver must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *driver.Driver) error

	// Get retrieves a driver aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	// GetAllAvailableExcluding retrieves all drivers that hold no current
	// delivery request and have never been offered the given order. The
	// exclusion makes repeated dispatch of the same order idempotent: a
	// driver who already holds a request for the order (in any status)
	// never receives a second one.
	GetAllAvailableExcluding(ctx context.Context, orderID kernel.UUID) ([]*driver.Driver, error)
}
