package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of an order with respect to driver search.
// It implements a state machine with defined transitions to ensure orders follow
// the correct business workflow.
//
// State transitions:
//
//	Pending ──> LookingForDriver ──> Accepted
//	   │               │
//	   └───────────────┴──> Rejected
//
// Status is a value object that validates state transitions and provides string
// representations for persistence and display.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status when an order is first placed.
	// Orders in this status are waiting for the venue to confirm them.
	StatusPending

	// StatusLookingForDriver indicates a driver search is in progress.
	// Delivery requests are issued to nearby drivers while in this status.
	StatusLookingForDriver

	// StatusAccepted indicates a driver has accepted the order.
	// This is a terminal status for the search lifecycle; delivery
	// progress is tracked separately via DeliveryStatus.
	StatusAccepted

	// StatusRejected indicates the order was rejected, either by the venue,
	// because no driver was found, or because it expired unconfirmed.
	// This is a terminal status.
	StatusRejected
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:          "unknown",
		StatusPending:          "pending",
		StatusLookingForDriver: "looking_for_driver",
		StatusAccepted:         "accepted",
		StatusRejected:         "rejected",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPending:          "pending",
		StatusLookingForDriver: "looking_for_driver",
		StatusAccepted:         "accepted",
		StatusRejected:         "rejected",
	}
}

// StatusFromString parses a Status from its wire representation.
// Returns an error for unknown values.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid order status", s))
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Pending, LookingForDriver, Accepted, Rejected.
// StatusUnknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status.
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status is a terminal search state.
// Accepted and Rejected orders never re-enter driver search.
func (s Status) IsTerminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// StartSearch transitions the status to LookingForDriver.
//
// Valid transitions:
//   - Pending -> LookingForDriver (venue confirmed the order)
//
// Returns:
//   - (LookingForDriver, nil) on valid transition
//   - (0, error) if transition is not allowed from current status
func (s Status) StartSearch() (Status, error) {
	if s != StatusPending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to start a driver search", s.String()),
		)
	}

	return StatusLookingForDriver, nil
}

// Accept transitions the status to Accepted.
//
// Valid transitions:
//   - LookingForDriver -> Accepted (a driver accepted a delivery request)
//
// Returns:
//   - (Accepted, nil) on valid transition
//   - (0, error) if transition is not allowed from current status
func (s Status) Accept() (Status, error) {
	if s != StatusLookingForDriver {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to accept", s.String()),
		)
	}

	return StatusAccepted, nil
}

// Reject transitions the status to Rejected.
//
// Valid transitions:
//   - Pending -> Rejected (venue rejected, or order expired unconfirmed)
//   - LookingForDriver -> Rejected (no driver found within the time limit)
//
// Returns:
//   - (Rejected, nil) on valid transition
//   - (0, error) if transition is not allowed from current status
func (s Status) Reject() (Status, error) {
	if s != StatusPending && s != StatusLookingForDriver {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to reject", s.String()),
		)
	}

	return StatusRejected, nil
}

// ValidateCanHaveDriver validates the consistency between order status and driver assignment.
//
// Business Rules:
//   - Accepted orders must have a driver assigned
//   - Pending and LookingForDriver orders must not have a driver assigned
//   - Rejected orders must not have a driver assigned
func (s Status) ValidateCanHaveDriver(driver bool) error {
	if driver && s != StatusAccepted {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have a driver", s.String()),
		)
	}

	if !driver && s == StatusAccepted {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have no driver", s.String()),
		)
	}

	return nil
}
