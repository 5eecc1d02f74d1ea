// Package emailnotifier delivers settlement notifications over SMTP.
package emailnotifier

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/Wutche/payrail/pkg/config"
	"github.com/Wutche/payrail/pkg/money"
	"github.com/Wutche/payrail/pkg/provider/notifier"
)

// sendFunc matches smtp.SendMail, injectable for tests.
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailNotifier sends one plain-text message per disbursed leg.
type EmailNotifier struct {
	cfg    *config.Notifier
	send   sendFunc
	logger *slog.Logger
}

// New creates an SMTP notifier from config.
func New(cfg *config.Notifier, logger *slog.Logger) *EmailNotifier {
	return &EmailNotifier{cfg: cfg, send: smtp.SendMail, logger: logger}
}

// NotifyDisbursed implements notifier.Notifier.
func (n *EmailNotifier) NotifyDisbursed(ctx context.Context, params notifier.DisbursedParams) error {
	addr := fmt.Sprintf("%s:%d", n.cfg.SMTPHost, n.cfg.SMTPPort)
	msg := buildMessage(n.cfg.From, params)
	if err := n.send(addr, nil, n.cfg.From, []string{params.RecipientContact}, msg); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	n.logger.Info("notification delivered",
		"tx_id", params.TxID,
		"recipient", params.RecipientName,
	)
	return nil
}

func buildMessage(from string, params notifier.DisbursedParams) []byte {
	subject := fmt.Sprintf("%s sent you a payment", params.OrganizationName)
	figure := money.FormatToken(params.Amount)
	if params.AmountUSD != "" {
		figure += " (" + params.AmountUSD + ")"
	}
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\n%s has paid you %s.\r\nTransaction: %s\r\n",
		params.RecipientName,
		params.OrganizationName,
		figure,
		params.TxID,
	)
	return []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		from, params.RecipientContact, subject, body,
	))
}
