package dto

import (
	"github.com/google/uuid"
)

// RecipientCreate registers a payroll recipient in the roster.
type RecipientCreate struct {
	ID           uuid.UUID
	Address      string
	DisplayName  string
	ContactEmail string
}

// RecipientRead is a read-optimized view of a roster entry.
type RecipientRead struct {
	ID           uuid.UUID
	Address      string
	DisplayName  string
	ContactEmail string
}
