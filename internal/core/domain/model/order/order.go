package order

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrDriverAlreadyAssigned is returned when attempting to assign a driver to an
	// order that already has one. Driver assignment happens exactly once.
	ErrDriverAlreadyAssigned = errors.New("order already has a driver assigned")
)

// Order represents a delivery order in the marketplace. It is the aggregate root that
// manages the order lifecycle from placement through driver search to delivery.
//
// Order follows these invariants:
//   - Must have a valid unique identifier, venue identifier, and venue location
//   - Search status transitions follow the Status state machine
//   - Delivery status transitions are only valid once the order is Accepted
//   - At most one driver is assigned, exactly at the moment a delivery request is accepted
//   - Can only be created through NewOrder or restored through RestoreOrder
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// venueID references the venue the order originates from
	venueID kernel.UUID

	// venueLocation is the pickup point and the origin of the driver search
	venueLocation kernel.GeoPoint

	// driverID is the assigned driver's ID (nil until a driver accepts)
	driverID *kernel.UUID

	// status represents the current state in the driver-search lifecycle
	status Status

	// deliveryStatus represents the physical delivery progress after acceptance
	deliveryStatus DeliveryStatus

	// rejectionReason records why the order was rejected (RejectionReasonUnknown while unset)
	rejectionReason RejectionReason

	// searchRadiusKm is the current driver-search radius, escalated by the sweeper
	searchRadiusKm float64

	createdAt                  time.Time
	startedLookingForDriversAt *time.Time
	acceptedAt                 *time.Time
	rejectedAt                 *time.Time
	outForDeliveryAt           *time.Time
	deliveredAt                *time.Time
	failedAt                   *time.Time
	returnedAt                 *time.Time

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order instance with validation. This is the only way to create
// a fresh Order, ensuring all business invariants are maintained.
//
// Parameters:
//   - id: Unique identifier for the order (must be valid UUID)
//   - venueID: Identifier of the originating venue (must be valid UUID)
//   - venueLocation: Venue pickup location with validated coordinates
//   - createdAt: Placement timestamp (must be non-zero)
//
// Returns:
//   - *Order: The created order if all validations pass, in Pending status
//     with no driver assigned and delivery not yet started
//   - error: Validation error if any parameter is invalid
func NewOrder(id, venueID kernel.UUID, venueLocation kernel.GeoPoint, createdAt time.Time) (*Order, error) {
	order := &Order{
		status:         StatusPending,
		deliveryStatus: DeliveryPending,
		isConstructed:  true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setVenueID(venueID),
		order.setVenueLocation(venueLocation),
		order.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage.
// Unlike NewOrder which creates fresh pending orders, this constructor restores
// an order to its previously persisted state, including status, driver assignment,
// and lifecycle timestamps. The restored order behaves identically to one that
// reached the same state through normal domain operations.
//
// Business Rules:
//   - Identifier, venue identifier, and venue location must be valid
//   - Status and delivery status must be valid enum values
//   - Driver assignment must be consistent with the status
//     (only Accepted orders carry a driver)
func RestoreOrder(
	id, venueID kernel.UUID,
	venueLocation kernel.GeoPoint,
	status Status,
	deliveryStatus DeliveryStatus,
	rejectionReason RejectionReason,
	driverID *kernel.UUID,
	searchRadiusKm float64,
	timestamps Timestamps,
) (*Order, error) {
	order := &Order{
		status:                     status,
		deliveryStatus:             deliveryStatus,
		rejectionReason:            rejectionReason,
		searchRadiusKm:             searchRadiusKm,
		startedLookingForDriversAt: timestamps.StartedLookingForDriversAt,
		acceptedAt:                 timestamps.AcceptedAt,
		rejectedAt:                 timestamps.RejectedAt,
		outForDeliveryAt:           timestamps.OutForDeliveryAt,
		deliveredAt:                timestamps.DeliveredAt,
		failedAt:                   timestamps.FailedAt,
		returnedAt:                 timestamps.ReturnedAt,
		isConstructed:              true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setVenueID(venueID),
		order.setVenueLocation(venueLocation),
		order.setCreatedAt(timestamps.CreatedAt),
		status.Validate(),
		deliveryStatus.Validate(),
		status.ValidateCanHaveDriver(driverID != nil),
	); err != nil {
		return nil, err
	}

	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return nil, err
		}
		driver := *driverID
		order.driverID = &driver
	}

	return order, nil
}

// Timestamps carries the lifecycle timestamps of a persisted order.
// Used by RestoreOrder to keep its signature manageable.
type Timestamps struct {
	CreatedAt                  time.Time
	StartedLookingForDriversAt *time.Time
	AcceptedAt                 *time.Time
	RejectedAt                 *time.Time
	OutForDeliveryAt           *time.Time
	DeliveredAt                *time.Time
	FailedAt                   *time.Time
	ReturnedAt                 *time.Time
}

// Validate ensures the Order instance was properly constructed through a constructor.
// This prevents bypassing validation by directly instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// VenueID returns the identifier of the originating venue.
func (o *Order) VenueID() kernel.UUID {
	return o.venueID
}

// VenueLocation returns the venue pickup location, the origin of driver search.
func (o *Order) VenueLocation() kernel.GeoPoint {
	return o.venueLocation
}

// Status returns the current driver-search status of the order.
func (o *Order) Status() Status {
	return o.status
}

// DeliveryStatus returns the current delivery progress of the order.
func (o *Order) DeliveryStatus() DeliveryStatus {
	return o.deliveryStatus
}

// RejectionReason returns why the order was rejected.
// Returns RejectionReasonUnknown while the order is not rejected.
func (o *Order) RejectionReason() RejectionReason {
	return o.rejectionReason
}

// Driver returns the assigned driver's ID.
// Returns nil if no driver is assigned.
func (o *Order) Driver() *kernel.UUID {
	return o.driverID
}

// SearchRadiusKm returns the current driver-search radius in kilometres.
// Zero until a driver search has started.
func (o *Order) SearchRadiusKm() float64 {
	return o.searchRadiusKm
}

// CreatedAt returns the placement timestamp of the order.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// StartedLookingForDriversAt returns when the driver search began, nil if it never did.
func (o *Order) StartedLookingForDriversAt() *time.Time {
	return o.startedLookingForDriversAt
}

// AcceptedAt returns when a driver accepted the order, nil if none did.
func (o *Order) AcceptedAt() *time.Time {
	return o.acceptedAt
}

// RejectedAt returns when the order was rejected, nil if it was not.
func (o *Order) RejectedAt() *time.Time {
	return o.rejectedAt
}

// OutForDeliveryAt returns when the driver picked the order up, nil if not yet.
func (o *Order) OutForDeliveryAt() *time.Time {
	return o.outForDeliveryAt
}

// DeliveredAt returns when the order was delivered, nil if not yet.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// FailedAt returns when the delivery attempt failed, nil if it did not.
func (o *Order) FailedAt() *time.Time {
	return o.failedAt
}

// ReturnedAt returns when the failed order was returned to the venue, nil if not.
func (o *Order) ReturnedAt() *time.Time {
	return o.returnedAt
}

// Age returns how long the order has existed as of now.
func (o *Order) Age(now time.Time) time.Duration {
	return now.Sub(o.createdAt)
}

// SearchDuration returns how long the driver search has been running as of now.
// Returns zero if the search never started.
func (o *Order) SearchDuration(now time.Time) time.Duration {
	if o.startedLookingForDriversAt == nil {
		return 0
	}
	return now.Sub(*o.startedLookingForDriversAt)
}

// StartDriverSearch moves the order from Pending to LookingForDriver and records
// the initial search radius. This is the entry point of the dispatch workflow,
// triggered when the venue confirms the order.
//
// Parameters:
//   - radiusKm: Initial search radius in kilometres (must be positive)
//   - at: Transition timestamp
//
// Returns:
//   - nil on success
//   - error if the radius is invalid or the transition is not allowed
func (o *Order) StartDriverSearch(radiusKm float64, at time.Time) error {
	if radiusKm <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"search radius", fmt.Errorf("%f is not greater than 0", radiusKm))
	}

	newStatus, err := o.status.StartSearch()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.searchRadiusKm = radiusKm
	o.startedLookingForDriversAt = &at
	return nil
}

// EscalateSearchRadius widens the driver-search radius by doubling it, capped at
// maxRadiusKm. Only valid while the order is looking for a driver. Escalating an
// order already at the cap leaves the radius unchanged.
//
// Returns the radius in effect after escalation.
func (o *Order) EscalateSearchRadius(maxRadiusKm float64) (float64, error) {
	if o.status != StatusLookingForDriver {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to escalate the search radius", o.status.String()),
		)
	}

	escalated := o.searchRadiusKm * 2
	if escalated > maxRadiusKm {
		escalated = maxRadiusKm
	}
	if escalated > o.searchRadiusKm {
		o.searchRadiusKm = escalated
	}

	return o.searchRadiusKm, nil
}

// AcceptBy assigns the order to the driver who accepted a delivery request and
// moves the status to Accepted.
//
// This method enforces the following business rules:
//   - The driver ID must be valid
//   - The order must be in LookingForDriver status
//   - No driver may already be assigned (assignment happens exactly once)
//
// Parameters:
//   - driverID: The ID of the accepting driver
//   - at: Acceptance timestamp
func (o *Order) AcceptBy(driverID kernel.UUID, at time.Time) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	if o.driverID != nil {
		return ErrDriverAlreadyAssigned
	}

	newStatus, err := o.status.Accept()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.driverID = &driverID
	o.acceptedAt = &at
	return nil
}

// Reject moves the order to the Rejected terminal status and records the reason.
//
// Valid from Pending (venue rejection, expiry) and LookingForDriver
// (no driver found). Rejecting an already terminal order fails.
//
// Parameters:
//   - reason: Why the order is rejected
//   - at: Rejection timestamp
func (o *Order) Reject(reason RejectionReason, at time.Time) error {
	if err := reason.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Reject()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.rejectionReason = reason
	o.rejectedAt = &at
	return nil
}

// StartDelivery marks the order as picked up by the driver (OutForDelivery).
// Only valid once the order has been accepted.
func (o *Order) StartDelivery(at time.Time) error {
	if err := o.validateAcceptedForDelivery(); err != nil {
		return err
	}

	newStatus, err := o.deliveryStatus.StartDelivery()
	if err != nil {
		return err
	}

	o.deliveryStatus = newStatus
	o.outForDeliveryAt = &at
	return nil
}

// CompleteDelivery marks the order as delivered to the customer.
// Only valid once the order has been accepted and is out for delivery.
func (o *Order) CompleteDelivery(at time.Time) error {
	if err := o.validateAcceptedForDelivery(); err != nil {
		return err
	}

	newStatus, err := o.deliveryStatus.Complete()
	if err != nil {
		return err
	}

	o.deliveryStatus = newStatus
	o.deliveredAt = &at
	return nil
}

// FailDelivery marks the delivery attempt as failed.
// Only valid once the order has been accepted and is out for delivery.
func (o *Order) FailDelivery(at time.Time) error {
	if err := o.validateAcceptedForDelivery(); err != nil {
		return err
	}

	newStatus, err := o.deliveryStatus.Fail()
	if err != nil {
		return err
	}

	o.deliveryStatus = newStatus
	o.failedAt = &at
	return nil
}

// ReturnDelivery marks a failed order as returned to the venue.
// Only valid once the order has been accepted and the delivery has failed.
func (o *Order) ReturnDelivery(at time.Time) error {
	if err := o.validateAcceptedForDelivery(); err != nil {
		return err
	}

	newStatus, err := o.deliveryStatus.Return()
	if err != nil {
		return err
	}

	o.deliveryStatus = newStatus
	o.returnedAt = &at
	return nil
}

// validateAcceptedForDelivery guards delivery transitions: they are only
// meaningful once a driver has accepted the order.
func (o *Order) validateAcceptedForDelivery() error {
	if o.status != StatusAccepted {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("delivery status can only change once the order is accepted, current status is %s",
				o.status.String()),
		)
	}
	return nil
}

// setID validates and sets the order's unique identifier.
// This is a private method used only during construction.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setVenueID validates and sets the originating venue identifier.
// This is a private method used only during construction.
func (o *Order) setVenueID(venueID kernel.UUID) error {
	if err := venueID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("venue id", err)
	}
	o.venueID = venueID
	return nil
}

// setVenueLocation validates and sets the venue pickup location.
// This is a private method used only during construction.
func (o *Order) setVenueLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	o.venueLocation = location
	return nil
}

// setCreatedAt validates and sets the placement timestamp.
// This is a private method used only during construction.
func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created at")
	}
	o.createdAt = createdAt
	return nil
}
