// Package recipient defines the identity-store contract mapping wallet
// addresses to display names and contact emails. The reconciliation engine
// only reads it; roster management belongs to the surrounding application.
package recipient

import (
	"context"

	"github.com/Wutche/payrail/pkg/dto"
)

// Repository is the recipient roster.
type Repository interface {
	// Create registers a roster entry.
	Create(ctx context.Context, create dto.RecipientCreate) error

	// LookupByAddress finds a roster entry by exact address match.
	// Returns nil without error when no entry exists.
	LookupByAddress(ctx context.Context, address string) (*dto.RecipientRead, error)

	// LookupByAddressFold finds a roster entry ignoring address case.
	// Ledger addresses from different event sources may differ only in
	// case. Returns nil without error when no entry exists.
	LookupByAddressFold(ctx context.Context, address string) (*dto.RecipientRead, error)

	// List returns the whole roster.
	List(ctx context.Context) ([]*dto.RecipientRead, error)
}
