package deliveryrequest

import (
	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery request offered to a driver.
//
// Every request starts Pending and resolves exactly once:
//
//	pending -> accepted  (the driver took the order)
//	pending -> rejected  (the driver declined)
//	pending -> missed    (another driver accepted the same order first)
//	pending -> expired   (the order timed out before anyone accepted)
type Status int

const (
	// StatusUnknown is the zero value and never a valid state.
	StatusUnknown Status = iota
	// StatusPending means the request awaits the driver's decision.
	StatusPending
	// StatusAccepted means the driver accepted the request.
	StatusAccepted
	// StatusRejected means the driver declined the request.
	StatusRejected
	// StatusMissed means another driver accepted the order first.
	StatusMissed
	// StatusExpired means the order timed out while the request was pending.
	StatusExpired
)

var statusNames = map[Status]string{
	StatusPending:  "pending",
	StatusAccepted: "accepted",
	StatusRejected: "rejected",
	StatusMissed:   "missed",
	StatusExpired:  "expired",
}

// StatusFromString parses a wire representation into a Status.
func StatusFromString(value string) (Status, error) {
	for status, name := range statusNames {
		if name == value {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidError("status is not a valid delivery request status: " + value)
}

// Validate checks that the status holds one of the defined values.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidError("status is not a valid delivery request status")
	}
	return nil
}

// String returns the wire representation of the status.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsPending reports whether the request still awaits a decision.
func (s Status) IsPending() bool {
	return s == StatusPending
}

// Accept transitions the status to Accepted.
// Only a Pending request can be accepted.
func (s Status) Accept() (Status, error) {
	if s != StatusPending {
		return StatusUnknown, errs.NewValueIsInvalidError(
			"status: only pending delivery requests can be accepted or rejected")
	}
	return StatusAccepted, nil
}

// Reject transitions the status to Rejected.
// Only a Pending request can be rejected.
func (s Status) Reject() (Status, error) {
	if s != StatusPending {
		return StatusUnknown, errs.NewValueIsInvalidError(
			"status: only pending delivery requests can be accepted or rejected")
	}
	return StatusRejected, nil
}

// Miss transitions the status to Missed, recording that another driver won the order.
// Only a Pending request can be missed.
func (s Status) Miss() (Status, error) {
	if s != StatusPending {
		return StatusUnknown, errs.NewValueIsInvalidError(
			"status: only pending delivery requests can be missed")
	}
	return StatusMissed, nil
}

// Expire transitions the status to Expired, recording that the order timed out.
// Only a Pending request can expire.
func (s Status) Expire() (Status, error) {
	if s != StatusPending {
		return StatusUnknown, errs.NewValueIsInvalidError(
			"status: only pending delivery requests can expire")
	}
	return StatusExpired, nil
}
