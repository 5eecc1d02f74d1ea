// Package dto holds the data transfer objects exchanged between the service
// layer and the persistence layer.
package dto

import (
	"time"

	"github.com/google/uuid"
)

// LegCreate is one recipient's share of an outcome being recorded.
type LegCreate struct {
	ID               uuid.UUID
	RecipientAddress string
	Amount           int64 // base units, as observed on chain
	DisplayName      string
	Notification     string
	Degraded         bool
}

// OutcomeCreate records one reconciliation outcome for a disbursement.
// Recording is append-only: a later outcome for the same transaction id may
// advance the status but never rewrite history backwards.
type OutcomeCreate struct {
	TxID          string
	Kind          string
	Status        string
	DeclaredTotal int64
	PeriodRef     string
	Legs          []LegCreate
	RecordedAt    time.Time
}

// LegRead is a read-optimized view of a recorded leg.
type LegRead struct {
	ID               uuid.UUID
	RecipientAddress string
	Amount           int64
	DisplayName      string
	Notification     string
	Degraded         bool
}

// DisbursementRead is a read-optimized view of a recorded disbursement and
// its legs, for queries and reporting.
type DisbursementRead struct {
	TxID          string
	Kind          string
	Status        string
	DeclaredTotal int64
	PeriodRef     string
	Legs          []LegRead
	RecordedAt    time.Time
}
