package chain

// TxStatus is the raw transaction status as reported by the ledger.
type TxStatus string

const (
	// TxStatusSuccess is a terminal success; the outcome will not change.
	TxStatusSuccess TxStatus = "success"
	// TxStatusFailed is a terminal abort/rejection.
	TxStatusFailed TxStatus = "failed"
	// TxStatusPending means the transaction is known but not yet final.
	TxStatusPending TxStatus = "pending"
	// TxStatusUnknown means the node has not heard of the transaction id.
	TxStatusUnknown TxStatus = "unknown"
	// TxStatusDropped means the transaction was explicitly evicted from
	// the mempool and will never settle.
	TxStatusDropped TxStatus = "dropped"
)

// Terminal reports whether the status will never change.
func (s TxStatus) Terminal() bool {
	return s == TxStatusSuccess || s == TxStatusFailed || s == TxStatusDropped
}

// TransferEvent is one internal value transfer emitted by an aggregate call.
// Amounts are in the ledger's base unit and are the authoritative source for
// leg expansion.
type TransferEvent struct {
	SenderAddress    string `json:"sender_address"`
	RecipientAddress string `json:"recipient_address"`
	Amount           int64  `json:"amount"`
}
