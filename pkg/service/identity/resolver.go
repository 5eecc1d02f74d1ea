// Package identity resolves recipient display names and contacts for
// disbursement reporting. Resolution is best-effort by design: it must never
// block settlement reporting, so every failure degrades to a displayable
// fallback instead of an error.
package identity

import (
	"context"
	"log/slog"

	recipientrepo "github.com/Wutche/payrail/pkg/repository/recipient"
)

// truncateLen is how many leading address characters the fallback shows.
const truncateLen = 8

// Resolved is the outcome of identity resolution for one address. A missing
// ContactEmail means the recipient cannot be notified, only reported.
type Resolved struct {
	DisplayName  string
	ContactEmail string
}

// Resolver resolves a recipient's identity through a tiered fallback chain:
// caller-supplied override, exact address match, case-insensitive match,
// truncated address.
type Resolver struct {
	recipients recipientrepo.Repository
	logger     *slog.Logger
}

// NewResolver creates a Resolver over the given roster.
func NewResolver(recipients recipientrepo.Repository, logger *slog.Logger) *Resolver {
	return &Resolver{recipients: recipients, logger: logger}
}

// Resolve returns the display name and contact for an address. A non-empty
// override is used verbatim for the name (the caller already knows the
// recipient from its own roster); the store is still consulted for the
// contact. Resolve never returns an error: store failures and missing
// entries fall through to the truncated-address form.
func (r *Resolver) Resolve(ctx context.Context, address, override string) Resolved {
	resolved := Resolved{DisplayName: override}

	entry, err := r.recipients.LookupByAddress(ctx, address)
	if err == nil && entry == nil {
		entry, err = r.recipients.LookupByAddressFold(ctx, address)
	}
	if err != nil {
		r.logger.Warn("identity lookup failed, falling back to truncated address",
			"address", address, "error", err)
		entry = nil
	}

	if entry != nil {
		resolved.ContactEmail = entry.ContactEmail
		if resolved.DisplayName == "" {
			resolved.DisplayName = entry.DisplayName
		}
	}
	if resolved.DisplayName == "" {
		resolved.DisplayName = Truncate(address)
	}
	return resolved
}

// Truncate renders the fallback display form of an address: the first 8
// characters followed by an ellipsis. Short addresses are returned whole.
func Truncate(address string) string {
	if len(address) <= truncateLen {
		return address
	}
	return address[:truncateLen] + "..."
}
