package disbursement

import (
	"context"
	"log/slog"

	"github.com/Wutche/payrail/pkg/domain/disbursement"
	"github.com/Wutche/payrail/pkg/provider/chain"
)

// Expander turns one confirmed aggregate transaction into independent
// per-recipient legs. Leg identity is derived, not stored, so re-expansion
// of the same transaction yields identical legs and may be safely re-run
// after a crash.
type Expander struct {
	client chain.Client
	logger *slog.Logger
}

// NewExpander creates an Expander over the given chain client.
func NewExpander(client chain.Client, logger *slog.Logger) *Expander {
	return &Expander{client: client, logger: logger}
}

// Expand derives the legs of a confirmed disbursement.
//
// Direct disbursements are 1:1 by construction, so the single leg is
// synthesized from the disbursement itself without a chain fetch.
//
// Batch disbursements take recipient and amount from the on-chain transfer
// events, never from the caller's pre-broadcast intent. When the chain
// yields no decodable events for a known batch, or the fetch itself fails,
// Expand degrades to a single flagged leg carrying the declared total so
// the disbursement is still reported rather than silently dropped.
//
// Calling Expand on anything other than a confirmed disbursement is a
// contract violation and returns an error.
func (e *Expander) Expand(
	ctx context.Context,
	d *disbursement.Disbursement,
) ([]disbursement.Leg, error) {
	if d.Status() != disbursement.StatusConfirmed {
		return nil, &disbursement.InvalidTransitionError{
			From: d.Status(),
			To:   disbursement.StatusExpanded,
		}
	}

	if d.Kind == disbursement.KindDirect {
		return []disbursement.Leg{
			disbursement.NewLeg(d.TxID, d.RecipientAddress, d.DeclaredTotal),
		}, nil
	}

	logger := e.logger.With("tx_id", d.TxID)
	events, err := e.client.GetTransferEvents(ctx, d.TxID)
	if err != nil {
		logger.Error("transfer event fetch failed, degrading to aggregate leg", "error", err)
		return []disbursement.Leg{e.degradedLeg(d)}, nil
	}
	if len(events) == 0 {
		logger.Warn("confirmed batch yielded zero transfer events, degrading to aggregate leg")
		return []disbursement.Leg{e.degradedLeg(d)}, nil
	}

	legs := make([]disbursement.Leg, 0, len(events))
	for _, ev := range events {
		legs = append(legs, disbursement.NewLeg(d.TxID, ev.RecipientAddress, ev.Amount))
	}
	return legs, nil
}

// degradedLeg is the leg-count-mismatch fallback: one leg standing in for
// the whole aggregate, carrying the declared total because no on-chain
// figure is available. A batch intent has no single recipient, so the leg
// is keyed to the parent transaction to keep a stable, displayable
// identity on the record.
func (e *Expander) degradedLeg(d *disbursement.Disbursement) disbursement.Leg {
	address := d.RecipientAddress
	if address == "" {
		address = d.TxID
	}
	leg := disbursement.NewLeg(d.TxID, address, d.DeclaredTotal)
	leg.Degraded = true
	return leg
}
