package driver

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for driver operations.
var (
	// ErrNameIsRequired is returned when attempting to create a driver without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrDriverIsNotConstructed is returned when using an improperly initialized Driver.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver or RestoreDriver constructor")
	// ErrDriverIsBusy is returned when assigning a current delivery request to a driver
	// who already holds one. This is the exclusivity invariant preventing double-dispatch.
	ErrDriverIsBusy = errors.New("driver already holds an active delivery request")
	// ErrDriverHasNoCurrentRequest is returned when clearing a current delivery request
	// from a driver who holds none.
	ErrDriverHasNoCurrentRequest = errors.New("driver holds no active delivery request")
)

// Driver represents a delivery driver in the marketplace.
// It is an aggregate root that manages driver identity, the last reported
// position, and the exclusivity invariant around active delivery work.
//
// Availability is implicit: a driver is available for new delivery requests
// exactly when they hold no current delivery request. The current request is
// set only when the driver accepts an offer and cleared when the delivery
// reaches a terminal state (delivered or returned) or is explicitly freed.
//
// Business rules:
//   - Driver must have a valid UUID and a non-empty name
//   - A driver holds at most one current delivery request at a time
//   - A driver without a reported location never appears in proximity results
type Driver struct {
	// id uniquely identifies the driver
	id kernel.UUID
	// name is the human-readable name of the driver
	name string
	// lastKnownLocation is the most recently reported position (nil if never reported)
	lastKnownLocation *kernel.GeoPoint
	// currentDeliveryRequestID is the accepted delivery request the driver is working on
	currentDeliveryRequestID *kernel.UUID
	// guard ensures the driver was properly constructed
	guard guard.ConstructorGuard
}

// NewDriver creates a new Driver with the specified identity.
// This is the only way to create a fresh Driver instance; drivers start with
// no reported location and no current delivery request.
//
// Parameters:
//   - id: Unique identifier for the driver (must be valid UUID)
//   - name: Human-readable name (must be non-empty)
//
// Returns:
//   - *Driver: A fully initialized driver
//   - error: Validation error if any parameter is invalid
func NewDriver(id kernel.UUID, name string) (*Driver, error) {
	driver := &Driver{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		driver.setID(id),
		driver.setName(name),
	); err != nil {
		return nil, err
	}

	return driver, nil
}

// RestoreDriver reconstructs a Driver aggregate from persistent storage,
// including the last reported location and the current delivery request
// reference. The restored driver behaves identically to one that reached
// the same state through normal domain operations.
func RestoreDriver(
	id kernel.UUID,
	name string,
	lastKnownLocation *kernel.GeoPoint,
	currentDeliveryRequestID *kernel.UUID,
) (*Driver, error) {
	driver := &Driver{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		driver.setID(id),
		driver.setName(name),
	); err != nil {
		return nil, err
	}

	if lastKnownLocation != nil {
		if err := lastKnownLocation.Validate(); err != nil {
			return nil, err
		}
		location := *lastKnownLocation
		driver.lastKnownLocation = &location
	}

	if currentDeliveryRequestID != nil {
		if err := currentDeliveryRequestID.Validate(); err != nil {
			return nil, err
		}
		requestID := *currentDeliveryRequestID
		driver.currentDeliveryRequestID = &requestID
	}

	return driver, nil
}

// Validate ensures the Driver instance was properly constructed through a constructor.
func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

// IsEqual compares two drivers by their unique identifiers.
func (d *Driver) IsEqual(other *Driver) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the driver's unique identifier.
func (d *Driver) ID() kernel.UUID {
	return d.id
}

// Name returns the driver's human-readable name.
func (d *Driver) Name() string {
	return d.name
}

// LastKnownLocation returns the most recently reported position.
// Returns nil if the driver has never reported a location.
func (d *Driver) LastKnownLocation() *kernel.GeoPoint {
	return d.lastKnownLocation
}

// CurrentDeliveryRequest returns the ID of the delivery request the driver is
// actively working on. Returns nil if the driver is available.
func (d *Driver) CurrentDeliveryRequest() *kernel.UUID {
	return d.currentDeliveryRequestID
}

// IsAvailable reports whether the driver can receive new delivery requests.
// A driver is available exactly when they hold no current delivery request.
func (d *Driver) IsAvailable() bool {
	return d.currentDeliveryRequestID == nil
}

// UpdateLocation records the driver's latest reported position.
func (d *Driver) UpdateLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}

	d.lastKnownLocation = &location
	return nil
}

// AssignCurrentRequest marks the driver as actively working on the given
// delivery request. This happens exactly once per delivery, at the moment the
// driver accepts the offer.
//
// Returns ErrDriverIsBusy if the driver already holds an active request -
// the core exclusivity invariant preventing double-dispatch.
func (d *Driver) AssignCurrentRequest(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}

	if d.currentDeliveryRequestID != nil {
		return ErrDriverIsBusy
	}

	d.currentDeliveryRequestID = &requestID
	return nil
}

// ClearCurrentRequest frees the driver after the active delivery resolves
// (delivered, returned, or explicitly unassigned). The driver becomes
// available for new delivery requests again.
//
// Returns ErrDriverHasNoCurrentRequest if the driver holds no active request.
func (d *Driver) ClearCurrentRequest() error {
	if d.currentDeliveryRequestID == nil {
		return ErrDriverHasNoCurrentRequest
	}

	d.currentDeliveryRequestID = nil
	return nil
}

// setID validates and sets the driver's unique identifier.
// This is a private method used only during construction.
func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

// setName validates and sets the driver's name.
// This is a private method used only during construction.
func (d *Driver) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	d.name = name
	return nil
}
