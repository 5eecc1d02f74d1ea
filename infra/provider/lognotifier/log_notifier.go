// Package lognotifier is a notifier that only logs. It stands in when no
// SMTP host is configured, so development environments never email anyone.
package lognotifier

import (
	"context"
	"log/slog"

	"github.com/Wutche/payrail/pkg/provider/notifier"
)

// LogNotifier writes each would-be notification to the log.
type LogNotifier struct {
	logger *slog.Logger
}

// New creates a log-only notifier.
func New(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// NotifyDisbursed implements notifier.Notifier.
func (n *LogNotifier) NotifyDisbursed(ctx context.Context, params notifier.DisbursedParams) error {
	n.logger.Info("notification (log only)",
		"recipient", params.RecipientName,
		"contact", params.RecipientContact,
		"amount", params.Amount,
		"amount_usd", params.AmountUSD,
		"tx_id", params.TxID,
		"org", params.OrganizationName,
	)
	return nil
}
