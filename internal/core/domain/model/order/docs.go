// Package order implements the order aggregate and its lifecycle state
// machine for the marketplace workflow.
//
// The package contains:
//   - Order: the aggregate root mirroring one remote order's lifecycle fields
//     (status, responders, review counter, executor, rated flag)
//   - Status: the Open/InProgress/Completed state enum with transition guards
//   - Transition and Role: the closed transition/actor table consulted before
//     any workflow step is executed
//
// The aggregate enforces the core invariants: an executor is assigned iff the
// order is InProgress or Completed, responder membership is idempotent, the
// review counter never goes negative, and rating is a one-time act. All
// mutation happens through validated methods; direct struct construction is
// rejected.
package order
