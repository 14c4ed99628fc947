package order

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrInvalidTransition is returned when the state machine forbids the
	// requested transition from the order's current status.
	ErrInvalidTransition = errors.New("transition is not allowed from the current status")

	// ErrActorNotPermitted is returned when the acting participant's role is
	// not allowed to request the transition.
	ErrActorNotPermitted = errors.New("actor is not permitted to perform this transition")

	// ErrOrderAlreadyRated is returned when the customer attempts to rate the
	// executor a second time. Rating an order is a one-time, irreversible act.
	ErrOrderAlreadyRated = errors.New("order has already been rated")

	// ErrResponderNotRegistered is returned when StartWork is requested for an
	// actor who never responded to the order.
	ErrResponderNotRegistered = errors.New("responder has not responded to this order")
)

// Order is the aggregate root for one unit of marketplace work. It mirrors
// the authoritative lifecycle fields of a remote order: status, the set of
// responders, the companion review counter, the assigned executor and the
// rated flag.
//
// Order maintains these invariants:
//   - executor is non-nil iff status is InProgress or Completed
//   - a responder appears in the set at most once
//   - reviewCount is never negative
//   - hasBeenRated, once true, never reverts
//   - Can only be created through NewOrder or RestoreOrder
//
// The struct uses private fields to ensure encapsulation; every mutation goes
// through a method that consults the lifecycle state machine.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customerID is the owner/creator of the order
	customerID kernel.UUID

	// executorID is the assigned executor's ID (nil if unassigned)
	executorID *kernel.UUID

	// status represents the current state in the order lifecycle
	status Status

	// responders holds actors who expressed interest, in response order
	responders []kernel.UUID

	// reviewCount is the companion counter the remote side tracks alongside
	// the responder set; both are kept in lockstep through the workflow
	reviewCount int

	// hasBeenRated is set once the customer has rated the executor
	hasBeenRated bool

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a freshly published order in Open status with no
// responders and a zero review counter.
//
// Parameters:
//   - id: unique identifier for the order (must be a valid UUID)
//   - customerID: the owner/creator (must be a valid UUID)
//
// Returns the created order, or a validation error if any parameter is
// invalid.
func NewOrder(id kernel.UUID, customerID kernel.UUID) (*Order, error) {
	order := &Order{
		status:        Open,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomerID(customerID),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder rebuilds an order mirror from an externally observed snapshot,
// e.g. when the remote side is the first to report a lifecycle field. All
// aggregate invariants are re-validated; in particular the executor/status
// consistency rule must hold.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	executorID *kernel.UUID,
	status Status,
	responders []kernel.UUID,
	reviewCount int,
	hasBeenRated bool,
) (*Order, error) {
	order := &Order{
		isConstructed: true,
		hasBeenRated:  hasBeenRated,
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomerID(customerID),
		order.setStatus(status),
		order.setReviewCount(reviewCount),
	); err != nil {
		return nil, err
	}

	if executorID != nil {
		if err := executorID.Validate(); err != nil {
			return nil, err
		}
		executor := *executorID
		order.executorID = &executor
	}

	if err := status.ValidateCanHaveExecutor(order.executorID != nil); err != nil {
		return nil, err
	}

	for _, responder := range responders {
		if err := responder.Validate(); err != nil {
			return nil, err
		}
		order.addResponder(responder)
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory method. This prevents bypassing validation by directly
// instantiating the struct.
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

// CustomerID returns the order owner's identifier.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Executor returns the assigned executor's ID.
// Returns nil if no executor is assigned.
func (o *Order) Executor() *kernel.UUID {
	return o.executorID
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// ReviewCount returns the companion review counter.
func (o *Order) ReviewCount() int {
	return o.reviewCount
}

// HasBeenRated reports whether the customer has already rated the executor.
func (o *Order) HasBeenRated() bool {
	return o.hasBeenRated
}

// Responders returns the actors who responded to the order, in response
// order. The returned slice is a copy.
func (o *Order) Responders() []kernel.UUID {
	responders := make([]kernel.UUID, len(o.responders))
	copy(responders, o.responders)
	return responders
}

// HasResponder reports whether the actor is in the active responder set.
func (o *Order) HasResponder(actorID kernel.UUID) bool {
	for _, responder := range o.responders {
		if responder.IsEqual(actorID) {
			return true
		}
	}
	return false
}

// RoleOf classifies the acting participant relative to this order.
// An actor with an invalid (zero) UUID is RoleUnknown.
func (o *Order) RoleOf(actorID kernel.UUID) Role {
	if actorID.Validate() != nil {
		return RoleUnknown
	}
	if actorID.IsEqual(o.customerID) {
		return RoleCustomer
	}
	if o.executorID != nil && actorID.IsEqual(*o.executorID) {
		return RoleExecutor
	}
	return RoleResponder
}

// Authorize checks whether the actor may request the transition from the
// order's current state, consulting the closed state-machine tables plus the
// per-transition extra guards.
//
// Returns:
//   - nil when the transition is legal
//   - kernel.ErrUUIDIsNotConstructed for an unauthenticated (zero) actor
//   - ErrInvalidTransition when the status forbids the transition
//   - ErrActorNotPermitted when the role forbids the transition
//   - ErrOrderAlreadyRated for a repeated Rate
func (o *Order) Authorize(transition Transition, actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	if !transition.CanTransitionFrom(o.status) {
		return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, transition, o.status)
	}

	role := o.RoleOf(actorID)
	if !transition.RoleAllowed(role) {
		return fmt.Errorf("%w: %s as %s", ErrActorNotPermitted, transition, role)
	}

	if transition == Rate && o.hasBeenRated {
		return ErrOrderAlreadyRated
	}

	return nil
}

// RecordResponse applies the local mirror of a successful remote response
// registration: the actor joins the responder set (idempotently) and the
// status is set to whatever the remote side reported. When the remote
// promotes the order to InProgress, the responder becomes the executor.
//
// Guards:
//   - the order must not be Completed
//   - the customer cannot respond to their own order
//   - the assigned executor cannot respond again
func (o *Order) RecordResponse(actorID kernel.UUID, reportedStatus Status) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	if err := reportedStatus.Validate(); err != nil {
		return err
	}
	if o.status == Completed {
		return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, Respond, o.status)
	}
	if actorID.IsEqual(o.customerID) {
		return fmt.Errorf("%w: customer cannot respond to own order", ErrActorNotPermitted)
	}
	if o.executorID != nil && actorID.IsEqual(*o.executorID) {
		return fmt.Errorf("%w: executor cannot respond again", ErrActorNotPermitted)
	}

	o.addResponder(actorID)
	if reportedStatus == InProgress && o.executorID == nil {
		executor := actorID
		o.executorID = &executor
	}
	o.status = reportedStatus
	return nil
}

// StartWork moves an Open order into development with the given responder as
// executor. The responder must already be in the responder set.
func (o *Order) StartWork(executorID kernel.UUID) error {
	if err := executorID.Validate(); err != nil {
		return err
	}
	if o.status != Open {
		return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, StartWork, o.status)
	}
	if !o.HasResponder(executorID) {
		return ErrResponderNotRegistered
	}

	executor := executorID
	o.executorID = &executor
	o.status = InProgress
	return nil
}

// CompleteWork moves an InProgress order to Completed. The executor stays
// recorded on the order.
func (o *Order) CompleteWork() error {
	if o.status != InProgress {
		return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, Complete, o.status)
	}

	o.status = Completed
	return nil
}

// Reopen cancels an in-progress order: status returns to Open and the
// executor assignment is cleared.
func (o *Order) Reopen() error {
	if o.status != InProgress {
		return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, Cancel, o.status)
	}

	o.status = Open
	o.executorID = nil
	return nil
}

// AddResponder registers an actor's interest in the order without changing
// the status. Membership is idempotent. The customer cannot be a responder.
func (o *Order) AddResponder(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	if o.status == Completed {
		return fmt.Errorf("%w: cannot add responder to a %s order", ErrInvalidTransition, o.status)
	}
	if actorID.IsEqual(o.customerID) {
		return fmt.Errorf("%w: customer cannot respond to own order", ErrActorNotPermitted)
	}

	o.addResponder(actorID)
	return nil
}

// RemoveResponder removes an actor from the active responder set. Removal of
// an absent actor is a no-op. Responders cannot be removed from Completed
// orders: completion freezes the response history.
func (o *Order) RemoveResponder(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	if o.status == Completed {
		return fmt.Errorf("%w: cannot remove responder from a %s order", ErrInvalidTransition, o.status)
	}

	for i, responder := range o.responders {
		if responder.IsEqual(actorID) {
			o.responders = append(o.responders[:i], o.responders[i+1:]...)
			return nil
		}
	}
	return nil
}

// SetReviewCount mirrors the review counter reported by the remote side.
// The counter is tracked independently of the responder set because the
// remote API stores it as a separate mutable field.
func (o *Order) SetReviewCount(count int) error {
	return o.setReviewCount(count)
}

// MarkRated records that the customer has rated the executor. Only valid on
// Completed orders, and only once.
func (o *Order) MarkRated() error {
	if o.status != Completed {
		return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, Rate, o.status)
	}
	if o.hasBeenRated {
		return ErrOrderAlreadyRated
	}

	o.hasBeenRated = true
	return nil
}

// Clone returns a deep copy of the order. Workflow handlers mutate a clone
// per-step and persist it only per the transition's consistency rules, so a
// failed attempt leaves the stored mirror untouched.
func (o *Order) Clone() *Order {
	clone := *o
	clone.responders = make([]kernel.UUID, len(o.responders))
	copy(clone.responders, o.responders)
	if o.executorID != nil {
		executor := *o.executorID
		clone.executorID = &executor
	}
	return &clone
}

// Snapshot returns an immutable, serializable view of the order for
// notification events and API responses.
func (o *Order) Snapshot() Snapshot {
	snapshot := Snapshot{
		ID:           o.id.String(),
		CustomerID:   o.customerID.String(),
		Status:       o.status.String(),
		ReviewCount:  o.reviewCount,
		HasBeenRated: o.hasBeenRated,
		Responders:   make([]string, 0, len(o.responders)),
	}
	for _, responder := range o.responders {
		snapshot.Responders = append(snapshot.Responders, responder.String())
	}
	if o.executorID != nil {
		executor := o.executorID.String()
		snapshot.ExecutorID = &executor
	}
	return snapshot
}

// Snapshot is the serializable view of an order emitted after every
// successful transition.
type Snapshot struct {
	ID           string   `json:"id"`
	CustomerID   string   `json:"customerId"`
	ExecutorID   *string  `json:"executorId,omitempty"`
	Status       string   `json:"status"`
	Responders   []string `json:"responders"`
	ReviewCount  int      `json:"reviewCount"`
	HasBeenRated bool     `json:"hasBeenRated"`
}

// addResponder appends the actor if not already present.
func (o *Order) addResponder(actorID kernel.UUID) {
	if o.HasResponder(actorID) {
		return
	}
	o.responders = append(o.responders, actorID)
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

// setCustomerID validates and sets the order owner's identifier.
// This is a private method used only during construction.
func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

// setStatus validates and sets the order status.
// This is a private method used only during construction.
func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

// setReviewCount validates and sets the review counter.
// The counter must be non-negative.
func (o *Order) setReviewCount(count int) error {
	if count < 0 {
		return errs.NewValueIsInvalidErrorWithCause("reviewCount is invalid",
			fmt.Errorf("%d is not greater than or equal to 0", count))
	}
	o.reviewCount = count
	return nil
}
