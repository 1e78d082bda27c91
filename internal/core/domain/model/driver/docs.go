// Package driver contains the Driver aggregate.
//
// A driver carries a last reported location (possibly absent) and at most
// one current delivery request. Availability is derived: a driver with no
// current request is available for new offers. The aggregate enforces
// request exclusivity so a busy driver can never be dispatched twice.
package driver
