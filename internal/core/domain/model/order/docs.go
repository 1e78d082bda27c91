// Package order contains the Order aggregate and its state machines.
//
// An order moves through two coupled lifecycles:
//
//   - the driver-search lifecycle (Status): pending -> looking_for_driver ->
//     accepted | rejected
//   - the delivery lifecycle (DeliveryStatus), valid only after acceptance:
//     pending -> out_for_delivery -> delivered | failed -> returned
//
// All transitions are expressed as methods on the enums and the aggregate,
// so invalid transitions are rejected with descriptive validation errors
// rather than silently ignored.
package order
