// Package chain defines the read-only client contract for the public ledger.
// The engine never constructs or signs transactions; it only observes status
// and transfer events for identifiers broadcast by the wallet-signing flow.
package chain

import (
	"context"
)

// Client is the read interface over the public ledger.
type Client interface {
	// GetTransactionStatus returns the currently observed status for the
	// given transaction id. Unknown ids are reported as TxStatusUnknown,
	// which callers treat as not-yet-final (propagation delay), never as
	// failure.
	GetTransactionStatus(ctx context.Context, txID string) (TxStatus, error)

	// GetTransferEvents returns the internal value-transfer events emitted
	// by a confirmed transaction, in emission order.
	GetTransferEvents(ctx context.Context, txID string) ([]TransferEvent, error)
}
