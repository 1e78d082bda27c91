// Package deliveryrequest contains the DeliveryRequest aggregate.
//
// A delivery request is an offer of one order to one driver. At most one
// request per (driver, order) pair ever exists. Requests resolve exactly
// once from pending into accepted, rejected, missed, or expired, and the
// driver's location at offer time is captured as an immutable snapshot.
package deliveryrequest
