package disbursement

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Wutche/payrail/pkg/provider/chain"
)

// Outcome is the poller's verdict on a broadcast transaction. TimedOut is
// deliberately distinct from Failed: it means the engine does not know the
// result and must neither claim success nor permanently record failure.
type Outcome string

const (
	// OutcomeConfirmed means the chain reported terminal success.
	OutcomeConfirmed Outcome = "confirmed"
	// OutcomeFailed means the chain explicitly rejected or evicted the
	// transaction.
	OutcomeFailed Outcome = "failed"
	// OutcomeTimedOut means the attempt budget ran out while the
	// transaction was still not final. Retryable by a later independent
	// invocation, never by the same poller call.
	OutcomeTimedOut Outcome = "timed_out"
)

// Poller input validation errors.
var (
	ErrEmptyTxID       = errors.New("transaction id must not be empty")
	ErrInvalidAttempts = errors.New("max attempts must be at least 1")
	ErrNegativeBudget  = errors.New("poll interval must not be negative")
)

// Poller waits for a broadcast transaction to reach a terminal on-chain
// state under a bounded attempt/interval budget. It is read-only and has no
// side effects, so redundant invocations are harmless.
type Poller struct {
	client chain.Client
	logger *slog.Logger
}

// NewPoller creates a Poller over the given chain client.
func NewPoller(client chain.Client, logger *slog.Logger) *Poller {
	return &Poller{client: client, logger: logger}
}

// Await polls the chain until the transaction reaches a terminal status or
// the budget is exhausted. Success and explicit failure return immediately.
// A not-yet-final answer consumes one attempt and sleeps interval before the
// next query. Chain client errors are transient-tolerant: they count as
// not-yet-final rather than failure.
//
// The between-attempts sleep is the only suspension point and honors ctx:
// cancellation yields TimedOut, never Failed, because a cancelled poll knows
// nothing about the transaction's fate.
func (p *Poller) Await(
	ctx context.Context,
	txID string,
	maxAttempts int,
	interval time.Duration,
) (Outcome, error) {
	if txID == "" {
		return "", ErrEmptyTxID
	}
	if maxAttempts < 1 {
		return "", ErrInvalidAttempts
	}
	if interval < 0 {
		return "", ErrNegativeBudget
	}

	logger := p.logger.With("tx_id", txID, "max_attempts", maxAttempts)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		status, err := p.client.GetTransactionStatus(ctx, txID)
		switch {
		case err != nil:
			logger.Warn("chain query failed, treating as not yet final",
				"attempt", attempt, "error", err)
		case status == chain.TxStatusSuccess:
			logger.Info("transaction confirmed", "attempt", attempt)
			return OutcomeConfirmed, nil
		case status == chain.TxStatusFailed, status == chain.TxStatusDropped:
			logger.Info("transaction failed on chain", "attempt", attempt, "status", status)
			return OutcomeFailed, nil
		default:
			// pending or unknown: an id the node has never heard of
			// is propagation delay until the node says dropped.
			logger.Debug("transaction not yet final", "attempt", attempt, "status", status)
		}

		if attempt == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			logger.Info("poll cancelled, outcome inconclusive", "attempt", attempt)
			return OutcomeTimedOut, nil
		case <-time.After(interval):
		}
	}

	logger.Info("poll budget exhausted, outcome inconclusive")
	return OutcomeTimedOut, nil
}
