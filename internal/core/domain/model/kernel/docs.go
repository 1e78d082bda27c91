// Package kernel contains shared value objects used across all domain aggregates.
//
// The kernel provides:
//   - UUID: a validated wrapper around github.com/google/uuid used as the
//     identity type for all aggregates
//   - GeoPoint: a validated geographic coordinate pair with great-circle
//     distance computation, used for venue locations and driver positions
//
// All kernel types are immutable value objects created through constructor
// functions and validated with the ConstructorGuard pattern. The zero value
// of every kernel type is invalid and fails validation.
package kernel
