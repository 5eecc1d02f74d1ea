// Package disbursement defines the ledger-store contract for recording
// reconciliation outcomes.
package disbursement

import (
	"context"

	"github.com/Wutche/payrail/pkg/dto"
)

// Repository is the append-only ledger store for disbursement outcomes.
// Writes are keyed by transaction id and leg id; the store's own atomic
// insert is the only concurrency control the engine relies on.
type Repository interface {
	// RecordOutcome appends the outcome for a disbursement. Recording the
	// same transaction id again may only move its status forward (a
	// timed-out record followed by a confirmed one); leg rows are
	// inserted once and never rewritten.
	RecordOutcome(ctx context.Context, outcome dto.OutcomeCreate) error

	// Get retrieves a recorded disbursement with its legs.
	Get(ctx context.Context, txID string) (*dto.DisbursementRead, error)

	// ListByPeriod lists recorded disbursements for a pay period.
	ListByPeriod(ctx context.Context, periodRef string) ([]*dto.DisbursementRead, error)
}
