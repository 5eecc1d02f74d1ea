// Package model defines the persistence models for the disbursement ledger
// and the recipient roster.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Disbursement is the recorded outcome of one reconciliation pass. Rows are
// keyed by the broadcast transaction id and retained as audit records; the
// status column only ever advances.
type Disbursement struct {
	gorm.Model
	TxID          string `gorm:"uniqueIndex;not null;size:128"`
	Kind          string `gorm:"type:varchar(16);not null"`
	Status        string `gorm:"type:varchar(16);not null"`
	DeclaredTotal int64  `gorm:"not null"`
	PeriodRef     string `gorm:"index;size:64"`
	RecordedAt    time.Time
	Legs          []DisbursementLeg `gorm:"foreignKey:DisbursementTxID;references:TxID"`
}

// DisbursementLeg is one recipient's recorded share. The id is the
// deterministic leg identifier, so re-recording after re-expansion conflicts
// onto the same row instead of duplicating it.
type DisbursementLeg struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key"`
	DisbursementTxID string    `gorm:"index;not null;size:128"`
	RecipientAddress string    `gorm:"size:128"`
	Amount           int64     `gorm:"not null"`
	DisplayName      string    `gorm:"size:255"`
	Notification     string    `gorm:"type:varchar(32);not null;default:'not_sent'"`
	Degraded         bool      `gorm:"not null;default:false"`
	CreatedAt        time.Time
}

// Recipient is a payroll roster entry mapping a wallet address to a display
// name and contact.
type Recipient struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	Address      string    `gorm:"uniqueIndex;not null;size:128"`
	DisplayName  string    `gorm:"not null;size:255"`
	ContactEmail string    `gorm:"size:255"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
