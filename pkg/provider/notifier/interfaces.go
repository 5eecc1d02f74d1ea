// Package notifier defines the side-effect dispatcher contract for telling a
// recipient their payment has settled. The engine treats it as
// fire-and-forget: a failure is recorded on the leg and never retried here.
package notifier

import (
	"context"
)

// Notifier dispatches a settlement notification to one recipient.
type Notifier interface {
	// NotifyDisbursed sends the notification. It is invoked at most once
	// per leg per confirmation event.
	NotifyDisbursed(ctx context.Context, params DisbursedParams) error
}

// DisbursedParams carries everything the message template needs. AmountUSD
// is display-only, computed from an explicitly supplied exchange rate; the
// base-unit Amount is the authoritative figure.
type DisbursedParams struct {
	RecipientName    string
	RecipientContact string
	Amount           int64
	AmountUSD        string
	TxID             string
	OrganizationName string
}
