package lifecycle

import (
	"fmt"
	"strings"
)

// allowedTransitions is the adjacency list of the lifecycle graph.
// Terminal statuses map to an empty slice.
var allowedTransitions = map[Status][]Status{
	StatusInStockWorking:     {StatusWithClient},
	StatusWithClient:         {StatusReturnedFromClient, StatusSold},
	StatusReturnedFromClient: {StatusInStockWorking, StatusWithVendorRepair, StatusInOfficeTesting},
	StatusInOfficeTesting:    {StatusInStockWorking, StatusWithVendorRepair},
	StatusWithVendorRepair:   {StatusInStockWorking, StatusDisposed},
	StatusSold:               {},
	StatusDisposed:           {},
}

// UnknownStatusError indicates the stored status of an asset is not a member
// of the known enum. This is a data-integrity problem, not a user mistake.
type UnknownStatusError struct {
	Status Status
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("unknown current status: %s", e.Status)
}

// TerminalStateError rejects any transition out of a status with no successors.
type TerminalStateError struct {
	Status Status
}

func (e *TerminalStateError) Error() string {
	return fmt.Sprintf("cannot change status from '%s' - this is a terminal state", e.Status.DisplayName())
}

// InvalidTransitionError rejects a transition not present in the adjacency
// list and carries the valid alternatives for the caller's error message.
type InvalidTransitionError struct {
	From    Status
	To      Status
	Allowed []Status
}

func (e *InvalidTransitionError) Error() string {
	names := make([]string, len(e.Allowed))
	for i, s := range e.Allowed {
		names[i] = s.DisplayName()
	}
	return fmt.Sprintf("invalid transition: '%s' -> '%s'. Allowed transitions: %s",
		e.From.DisplayName(), e.To.DisplayName(), strings.Join(names, ", "))
}

// AllowedNext returns the direct successors of a status. Unknown statuses
// yield nil.
func AllowedNext(s Status) []Status {
	next, ok := allowedTransitions[s]
	if !ok {
		return nil
	}
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// IsTerminal reports whether s has an empty successor set.
func (s Status) IsTerminal() bool {
	next, ok := allowedTransitions[s]
	return ok && len(next) == 0
}

// ValidateTransition checks a requested status change against the lifecycle
// graph. A nil return means the transition is allowed. Requesting the current
// status is always a permitted no-op. The function is pure and must run
// before any state mutation is persisted.
func ValidateTransition(current, requested Status) error {
	if current == requested {
		return nil
	}

	allowed, ok := allowedTransitions[current]
	if !ok {
		return &UnknownStatusError{Status: current}
	}

	for _, s := range allowed {
		if s == requested {
			return nil
		}
	}

	if len(allowed) == 0 {
		return &TerminalStateError{Status: current}
	}

	return &InvalidTransitionError{From: current, To: requested, Allowed: AllowedNext(current)}
}
