package order

// Transition identifies one of the workflow operations that move an order
// through its lifecycle. The set of transitions is closed: new operations
// must be added to the tables below, never inferred from status strings.
type Transition int

const (
	// TransitionUnknown represents an invalid or undefined transition.
	TransitionUnknown Transition = iota

	// Respond records an actor's interest in executing the order.
	// The status is unchanged locally; the remote side may promote it.
	Respond

	// StartWork accepts a responder and moves the order into development.
	StartWork

	// Complete finishes an in-progress order and credits the executor.
	Complete

	// Cancel abandons an in-progress order and reopens it.
	Cancel

	// Rate records the customer's one-time rating of the executor on a
	// completed order. The status does not change.
	Rate
)

// Role classifies the acting participant relative to a specific order.
type Role int

const (
	// RoleUnknown represents an unauthenticated or undetermined actor.
	RoleUnknown Role = iota

	// RoleCustomer is the order's owner/creator.
	RoleCustomer

	// RoleExecutor is the responder currently assigned to the order.
	RoleExecutor

	// RoleResponder is any authenticated actor who is neither the customer
	// nor the assigned executor.
	RoleResponder

	// RoleSystem is an internal caller acting on the customer's behalf,
	// e.g. an acceptance triggered by the order owner's UI flow.
	RoleSystem
)

// getRoleStrings returns a map of Role values to their names.
func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:   "Unknown",
		RoleCustomer:  "Customer",
		RoleExecutor:  "Executor",
		RoleResponder: "Responder",
		RoleSystem:    "System",
	}
}

// String returns the name of the role, or "Unknown" for invalid values.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "Unknown"
}

// getTransitionStrings returns a map of Transition values to their names.
func getTransitionStrings() map[Transition]string {
	return map[Transition]string{
		TransitionUnknown: "Unknown",
		Respond:           "Respond",
		StartWork:         "StartWork",
		Complete:          "Complete",
		Cancel:            "Cancel",
		Rate:              "Rate",
	}
}

// TransitionFromString parses a transition name as produced by String.
func TransitionFromString(s string) (Transition, bool) {
	for t, str := range getTransitionStrings() {
		if t != TransitionUnknown && str == s {
			return t, true
		}
	}
	return TransitionUnknown, false
}

// String returns the name of the transition, or "Unknown" for invalid values.
func (t Transition) String() string {
	if str, ok := getTransitionStrings()[t]; ok {
		return str
	}
	return "Unknown"
}

// allowedFromStatuses is the closed table of statuses each transition may
// start from.
func allowedFromStatuses(t Transition) []Status {
	switch t {
	case Respond:
		return []Status{Open, InProgress}
	case StartWork:
		return []Status{Open}
	case Complete, Cancel:
		return []Status{InProgress}
	case Rate:
		return []Status{Completed}
	default:
		return nil
	}
}

// allowedRoles is the closed table of actor roles each transition accepts.
func allowedRoles(t Transition) []Role {
	switch t {
	case Respond:
		return []Role{RoleResponder}
	case StartWork:
		return []Role{RoleCustomer, RoleSystem}
	case Complete:
		return []Role{RoleCustomer}
	case Cancel:
		return []Role{RoleCustomer, RoleExecutor}
	case Rate:
		return []Role{RoleCustomer}
	default:
		return nil
	}
}

// CanTransitionFrom reports whether the transition may start from the given
// status, regardless of actor.
func (t Transition) CanTransitionFrom(s Status) bool {
	for _, allowed := range allowedFromStatuses(t) {
		if s == allowed {
			return true
		}
	}
	return false
}

// RoleAllowed reports whether the given role may request this transition.
func (t Transition) RoleAllowed(r Role) bool {
	for _, allowed := range allowedRoles(t) {
		if r == allowed {
			return true
		}
	}
	return false
}

// CanTransition is the pure guard consulted before executing a transition:
// it combines the status table and the role table. Extra per-transition
// guards (responder registration, one-time rating) live on the aggregate.
func CanTransition(s Status, t Transition, r Role) bool {
	return t.CanTransitionFrom(s) && t.RoleAllowed(r)
}

// NextStatus returns the status the transition targets, or Unknown for
// transitions that do not change the status on their own (Respond, whose
// resulting status is dictated by the remote response, and Rate, which never
// changes it).
func (t Transition) NextStatus() Status {
	switch t {
	case StartWork:
		return InProgress
	case Complete:
		return Completed
	case Cancel:
		return Open
	default:
		return Unknown
	}
}
