package deliveryrequest

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for delivery request operations.
var (
	// ErrDeliveryRequestIsNotConstructed is returned when using an improperly
	// initialized DeliveryRequest.
	ErrDeliveryRequestIsNotConstructed = errors.New(
		"DeliveryRequest must be created via NewDeliveryRequest or RestoreDeliveryRequest constructor")
	// ErrCreatedAtIsRequired is returned when attempting to create a request
	// without a creation timestamp.
	ErrCreatedAtIsRequired = errs.NewValueIsRequiredError("createdAt")
)

// DeliveryRequest is an offer of a specific order to a specific driver.
//
// The aggregate records the driver's location at the moment the offer was made
// so that acceptance decisions and audits see the distance as it was when the
// offer went out, not the driver's position later. Resolution is exactly-once:
// a request leaves pending a single time and never changes again.
type DeliveryRequest struct {
	// id uniquely identifies the request
	id kernel.UUID
	// orderID is the order being offered
	orderID kernel.UUID
	// driverID is the driver the offer is addressed to
	driverID kernel.UUID
	// driverLocation is the driver's position snapshot at offer time
	driverLocation kernel.GeoPoint
	// status is the resolution state of the offer
	status Status
	// createdAt is when the offer was made
	createdAt time.Time
	// acceptedAt is when the driver accepted (nil otherwise)
	acceptedAt *time.Time
	// rejectedAt is when the driver declined (nil otherwise)
	rejectedAt *time.Time
	// guard ensures the request was properly constructed
	guard guard.ConstructorGuard
}

// NewDeliveryRequest creates a fresh Pending offer of an order to a driver.
//
// Parameters:
//   - id: Unique identifier for the request
//   - orderID: The order being offered
//   - driverID: The driver receiving the offer
//   - driverLocation: The driver's position at offer time
//   - createdAt: When the offer was made
func NewDeliveryRequest(
	id kernel.UUID,
	orderID kernel.UUID,
	driverID kernel.UUID,
	driverLocation kernel.GeoPoint,
	createdAt time.Time,
) (*DeliveryRequest, error) {
	request := &DeliveryRequest{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		request.setID(id),
		request.setOrderID(orderID),
		request.setDriverID(driverID),
		request.setDriverLocation(driverLocation),
		request.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	request.status = StatusPending
	return request, nil
}

// RestoreDeliveryRequest reconstructs a DeliveryRequest from persistent storage.
func RestoreDeliveryRequest(
	id kernel.UUID,
	orderID kernel.UUID,
	driverID kernel.UUID,
	driverLocation kernel.GeoPoint,
	status Status,
	createdAt time.Time,
	acceptedAt *time.Time,
	rejectedAt *time.Time,
) (*DeliveryRequest, error) {
	request := &DeliveryRequest{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		request.setID(id),
		request.setOrderID(orderID),
		request.setDriverID(driverID),
		request.setDriverLocation(driverLocation),
		request.setCreatedAt(createdAt),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	request.status = status
	if acceptedAt != nil {
		at := *acceptedAt
		request.acceptedAt = &at
	}
	if rejectedAt != nil {
		at := *rejectedAt
		request.rejectedAt = &at
	}
	return request, nil
}

// Validate ensures the request was properly constructed through a constructor.
func (r *DeliveryRequest) Validate() error {
	if r == nil {
		return ErrDeliveryRequestIsNotConstructed
	}
	return r.guard.Validate(ErrDeliveryRequestIsNotConstructed)
}

// IsEqual compares two requests by their unique identifiers.
func (r *DeliveryRequest) IsEqual(other *DeliveryRequest) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// ID returns the request's unique identifier.
func (r *DeliveryRequest) ID() kernel.UUID {
	return r.id
}

// OrderID returns the order this request offers.
func (r *DeliveryRequest) OrderID() kernel.UUID {
	return r.orderID
}

// DriverID returns the driver this request is addressed to.
func (r *DeliveryRequest) DriverID() kernel.UUID {
	return r.driverID
}

// DriverLocation returns the driver's position snapshot taken at offer time.
func (r *DeliveryRequest) DriverLocation() kernel.GeoPoint {
	return r.driverLocation
}

// Status returns the current resolution state of the request.
func (r *DeliveryRequest) Status() Status {
	return r.status
}

// CreatedAt returns when the offer was made.
func (r *DeliveryRequest) CreatedAt() time.Time {
	return r.createdAt
}

// AcceptedAt returns when the driver accepted, or nil.
func (r *DeliveryRequest) AcceptedAt() *time.Time {
	return r.acceptedAt
}

// RejectedAt returns when the driver declined, or nil.
func (r *DeliveryRequest) RejectedAt() *time.Time {
	return r.rejectedAt
}

// IsAddressedTo reports whether the request was offered to the given driver.
func (r *DeliveryRequest) IsAddressedTo(driverID kernel.UUID) bool {
	return r.driverID.IsEqual(driverID)
}

// Accept resolves the request as accepted by its driver at the given time.
func (r *DeliveryRequest) Accept(at time.Time) error {
	newStatus, err := r.status.Accept()
	if err != nil {
		return err
	}

	r.status = newStatus
	acceptedAt := at
	r.acceptedAt = &acceptedAt
	return nil
}

// Reject resolves the request as declined by its driver at the given time.
func (r *DeliveryRequest) Reject(at time.Time) error {
	newStatus, err := r.status.Reject()
	if err != nil {
		return err
	}

	r.status = newStatus
	rejectedAt := at
	r.rejectedAt = &rejectedAt
	return nil
}

// Miss resolves the request after another driver accepted the same order.
func (r *DeliveryRequest) Miss() error {
	newStatus, err := r.status.Miss()
	if err != nil {
		return err
	}

	r.status = newStatus
	return nil
}

// Expire resolves the request after the order timed out without acceptance.
func (r *DeliveryRequest) Expire() error {
	newStatus, err := r.status.Expire()
	if err != nil {
		return err
	}

	r.status = newStatus
	return nil
}

func (r *DeliveryRequest) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *DeliveryRequest) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("orderID", err)
	}
	r.orderID = orderID
	return nil
}

func (r *DeliveryRequest) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("driverID", err)
	}
	r.driverID = driverID
	return nil
}

func (r *DeliveryRequest) setDriverLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("driverLocation", err)
	}
	r.driverLocation = location
	return nil
}

func (r *DeliveryRequest) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return ErrCreatedAtIsRequired
	}
	r.createdAt = createdAt
	return nil
}
