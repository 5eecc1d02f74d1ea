package disbursement

import (
	"errors"
	"fmt"
)

// Domain errors for disbursement construction and lifecycle.
var (
	// ErrEmptyTxID is returned when a disbursement is built without a
	// broadcast transaction id.
	ErrEmptyTxID = errors.New("transaction id must not be empty")
	// ErrInvalidKind is returned for a kind other than direct or batch.
	ErrInvalidKind = errors.New("kind must be direct or batch")
	// ErrMissingRecipient is returned for a direct disbursement without a
	// recipient address.
	ErrMissingRecipient = errors.New("direct disbursement requires a recipient address")
	// ErrNonPositiveTotal is returned when the declared total is zero or
	// negative.
	ErrNonPositiveTotal = errors.New("declared total must be positive")
)

// InvalidTransitionError reports an attempt to move the state machine
// against the forward-only transition table.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid disbursement transition %s -> %s", e.From, e.To)
}

// ErrInvalidTransition matches any InvalidTransitionError via errors.Is.
var ErrInvalidTransition = errors.New("invalid disbursement transition")

// Is lets errors.Is(err, ErrInvalidTransition) succeed for typed instances.
func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
