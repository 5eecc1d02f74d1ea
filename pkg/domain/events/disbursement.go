package events

import (
	"time"

	"github.com/Wutche/payrail/pkg/domain/disbursement"
	"github.com/google/uuid"
)

// DisbursementConfirmed is published when the chain reports terminal success
// for a broadcast disbursement, before any per-leg side effects run.
type DisbursementConfirmed struct {
	EventID       uuid.UUID
	TxID          string
	Kind          disbursement.Kind
	ObservedTotal int64
	LegCount      int
	Timestamp     time.Time
}

// Type implements Event.
func (DisbursementConfirmed) Type() string { return "DisbursementConfirmed" }

// DisbursementFailed is published when the chain explicitly rejected the
// transaction. No recipient is notified of a failed disbursement.
type DisbursementFailed struct {
	EventID   uuid.UUID
	TxID      string
	Reason    string
	Timestamp time.Time
}

// Type implements Event.
func (DisbursementFailed) Type() string { return "DisbursementFailed" }

// DisbursementTimedOut is published when the poll budget was exhausted
// without a terminal answer. The outcome is inconclusive, not a failure.
type DisbursementTimedOut struct {
	EventID   uuid.UUID
	TxID      string
	Attempts  int
	Timestamp time.Time
}

// Type implements Event.
func (DisbursementTimedOut) Type() string { return "DisbursementTimedOut" }

// LegNotified is published after the notification attempt for one leg,
// whatever its outcome.
type LegNotified struct {
	EventID   uuid.UUID
	TxID      string
	LegID     uuid.UUID
	Recipient string
	State     disbursement.NotificationState
	Timestamp time.Time
}

// Type implements Event.
func (LegNotified) Type() string { return "LegNotified" }
