package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// DeliveryStatus represents the physical delivery progress of an accepted order.
// Delivery transitions are only meaningful once the order Status is Accepted;
// the Order aggregate enforces that guard.
//
// State transitions:
//
//	DeliveryPending ──> OutForDelivery ──┬──> Delivered
//	                                     └──> DeliveryFailed ──> Returned
type DeliveryStatus int

const (
	// DeliveryStatusUnknown represents an invalid or undefined delivery status.
	DeliveryStatusUnknown DeliveryStatus = iota

	// DeliveryPending is the initial delivery status. The driver has accepted
	// the order but has not yet picked it up from the venue.
	DeliveryPending

	// OutForDelivery indicates the driver has collected the order and is en route.
	OutForDelivery

	// Delivered indicates the order reached the customer. Terminal.
	Delivered

	// DeliveryFailed indicates the delivery attempt failed (customer unreachable,
	// wrong address). The order is on its way back to the venue.
	DeliveryFailed

	// Returned indicates a failed order was returned to the venue. Terminal.
	Returned
)

// getDeliveryStatusStrings returns a map of DeliveryStatus values to their string representations.
func getDeliveryStatusStrings() map[DeliveryStatus]string {
	return map[DeliveryStatus]string{
		DeliveryStatusUnknown: "unknown",
		DeliveryPending:       "pending",
		OutForDelivery:        "out_for_delivery",
		Delivered:             "delivered",
		DeliveryFailed:        "failed",
		Returned:              "returned",
	}
}

// getValidDeliveryStatusStrings returns a map of only valid DeliveryStatus values.
func getValidDeliveryStatusStrings() map[DeliveryStatus]string {
	//nolint:exhaustive // DeliveryStatusUnknown is intentionally excluded as it's invalid
	return map[DeliveryStatus]string{
		DeliveryPending: "pending",
		OutForDelivery:  "out_for_delivery",
		Delivered:       "delivered",
		DeliveryFailed:  "failed",
		Returned:        "returned",
	}
}

// DeliveryStatusFromString parses a DeliveryStatus from its wire representation.
// Returns an error for unknown values.
func DeliveryStatusFromString(s string) (DeliveryStatus, error) {
	for status, str := range getValidDeliveryStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return DeliveryStatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"delivery status", fmt.Errorf("%q is not a valid delivery status", s))
}

// Validate checks if the DeliveryStatus value is valid.
func (s DeliveryStatus) Validate() error {
	if _, ok := getValidDeliveryStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"delivery status", fmt.Errorf("%d is not a valid delivery status", s))
	}
	return nil
}

// String returns the wire name of the delivery status.
// This method implements the fmt.Stringer interface.
func (s DeliveryStatus) String() string {
	if str, ok := getDeliveryStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// FreesDriver reports whether reaching this delivery status returns the driver
// to the available pool. Delivered and Returned are the two terminal outcomes
// after which the driver no longer carries the order.
func (s DeliveryStatus) FreesDriver() bool {
	return s == Delivered || s == Returned
}

// StartDelivery transitions the delivery status to OutForDelivery.
//
// Valid transitions:
//   - DeliveryPending -> OutForDelivery (driver picked the order up)
func (s DeliveryStatus) StartDelivery() (DeliveryStatus, error) {
	if s != DeliveryPending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"delivery status",
			fmt.Errorf("%s is not a valid delivery status to go out for delivery", s.String()),
		)
	}

	return OutForDelivery, nil
}

// Complete transitions the delivery status to Delivered.
//
// Valid transitions:
//   - OutForDelivery -> Delivered
func (s DeliveryStatus) Complete() (DeliveryStatus, error) {
	if s != OutForDelivery {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"delivery status",
			fmt.Errorf("%s is not a valid delivery status to complete", s.String()),
		)
	}

	return Delivered, nil
}

// Fail transitions the delivery status to DeliveryFailed.
//
// Valid transitions:
//   - OutForDelivery -> DeliveryFailed
func (s DeliveryStatus) Fail() (DeliveryStatus, error) {
	if s != OutForDelivery {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"delivery status",
			fmt.Errorf("%s is not a valid delivery status to fail", s.String()),
		)
	}

	return DeliveryFailed, nil
}

// Return transitions the delivery status to Returned.
//
// Valid transitions:
//   - DeliveryFailed -> Returned (order brought back to the venue)
func (s DeliveryStatus) Return() (DeliveryStatus, error) {
	if s != DeliveryFailed {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"delivery status",
			fmt.Errorf("%s is not a valid delivery status to return", s.String()),
		)
	}

	return Returned, nil
}
