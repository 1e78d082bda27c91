package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// RejectionReason records why an order ended in the Rejected status.
type RejectionReason int

const (
	// RejectionReasonUnknown represents an invalid or undefined rejection reason.
	RejectionReasonUnknown RejectionReason = iota

	// RejectedByVenue indicates the venue declined the order.
	RejectedByVenue

	// NoDriverFound indicates the driver search ran past its hard timeout
	// without any driver accepting a delivery request.
	NoDriverFound

	// RejectionExpired indicates the order sat unconfirmed in the pending
	// status past the allowed age and was treated as abandoned.
	RejectionExpired
)

// getRejectionReasonStrings returns a map of RejectionReason values to their string representations.
func getRejectionReasonStrings() map[RejectionReason]string {
	return map[RejectionReason]string{
		RejectionReasonUnknown: "unknown",
		RejectedByVenue:        "rejected_by_venue",
		NoDriverFound:          "no_driver_found",
		RejectionExpired:       "expired",
	}
}

// Validate checks if the RejectionReason value is valid.
func (r RejectionReason) Validate() error {
	if r == RejectionReasonUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"rejection reason", fmt.Errorf("%d is not a valid rejection reason", r))
	}
	if _, ok := getRejectionReasonStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"rejection reason", fmt.Errorf("%d is not a valid rejection reason", r))
	}
	return nil
}

// String returns the wire name of the rejection reason.
// This method implements the fmt.Stringer interface.
func (r RejectionReason) String() string {
	if str, ok := getRejectionReasonStrings()[r]; ok {
		return str
	}
	return "unknown"
}
