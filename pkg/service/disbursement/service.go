// Package disbursement drives a disbursement end to end: await on-chain
// confirmation under a bounded budget, expand the aggregate into
// per-recipient legs, resolve identities, dispatch notifications, and record
// the outcome in the ledger store.
//
// The critical invariant lives here: no recipient is ever notified of a
// payment that did not settle. On a failed or inconclusive poll the service
// records the outcome and returns without touching the expander, resolver,
// or notifier.
package disbursement

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Wutche/payrail/pkg/config"
	"github.com/Wutche/payrail/pkg/domain/disbursement"
	"github.com/Wutche/payrail/pkg/domain/events"
	"github.com/Wutche/payrail/pkg/eventbus"
	"github.com/Wutche/payrail/pkg/money"
	"github.com/Wutche/payrail/pkg/provider/notifier"
	disbrepo "github.com/Wutche/payrail/pkg/repository/disbursement"
	"github.com/Wutche/payrail/pkg/service/identity"
	"github.com/google/uuid"
)

// ReconcileParams carries per-invocation inputs that are not part of the
// disbursement itself.
type ReconcileParams struct {
	// Overrides maps recipient address to a roster display name the
	// caller already knows, saving the resolver a lookup tier.
	Overrides map[string]string
	// USDRate is the display exchange rate (USD per whole token) at
	// reconciliation time. Pure input: it never affects settlement.
	USDRate float64
}

// Result reports the terminal state of one reconciliation pass.
type Result struct {
	TxID    string
	Status  disbursement.Status
	Outcome Outcome
	Legs    []disbursement.Leg
}

// Service is the disbursement orchestrator.
type Service struct {
	poller   *Poller
	expander *Expander
	resolver *identity.Resolver
	notifier notifier.Notifier
	ledger   disbrepo.Repository
	bus      eventbus.Bus
	logger   *slog.Logger
	cfg      *config.App
}

// NewService creates the orchestrator from the dependency container.
func NewService(deps config.Deps) *Service {
	return &Service{
		poller:   NewPoller(deps.Chain, deps.Logger),
		expander: NewExpander(deps.Chain, deps.Logger),
		resolver: identity.NewResolver(deps.Recipients, deps.Logger),
		notifier: deps.Notifier,
		ledger:   deps.Ledger,
		bus:      deps.Bus,
		logger:   deps.Logger,
		cfg:      deps.Config,
	}
}

// Reconcile drives one freshly broadcast disbursement to a recorded
// outcome. It returns an error only for contract violations or a ledger
// store failure; per-leg identity and notification problems are isolated on
// the legs and never fail the disbursement.
func (s *Service) Reconcile(
	ctx context.Context,
	d *disbursement.Disbursement,
	params ReconcileParams,
) (*Result, error) {
	logger := s.logger.With("tx_id", d.TxID, "kind", d.Kind)

	if err := d.Transition(disbursement.StatusPolling); err != nil {
		return nil, err
	}
	logger.Info("awaiting on-chain confirmation",
		"max_attempts", s.cfg.Poller.MaxAttempts,
		"interval", s.cfg.Poller.Interval,
	)
	outcome, err := s.poller.Await(ctx, d.TxID, s.cfg.Poller.MaxAttempts, s.cfg.Poller.Interval)
	if err != nil {
		return nil, fmt.Errorf("confirmation poll: %w", err)
	}

	switch outcome {
	case OutcomeFailed:
		return s.concludeFailed(ctx, d, logger)
	case OutcomeTimedOut:
		return s.concludeTimedOut(ctx, d, logger)
	}

	if err := d.Transition(disbursement.StatusConfirmed); err != nil {
		return nil, err
	}

	legs, err := s.expander.Expand(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("leg expansion: %w", err)
	}
	if err := d.AttachLegs(legs); err != nil {
		return nil, err
	}
	s.publish(ctx, events.DisbursementConfirmed{
		EventID:       uuid.New(),
		TxID:          d.TxID,
		Kind:          d.Kind,
		ObservedTotal: d.ObservedTotal(),
		LegCount:      len(legs),
		Timestamp:     time.Now(),
	})
	logger.Info("disbursement confirmed",
		"legs", len(legs),
		"observed_total", d.ObservedTotal(),
	)

	s.notifyLegs(ctx, d, params)
	if err := d.Transition(disbursement.StatusNotified); err != nil {
		return nil, err
	}

	if err := s.record(ctx, d); err != nil {
		return nil, err
	}
	return &Result{TxID: d.TxID, Status: d.Status(), Outcome: outcome, Legs: d.Legs()}, nil
}

// notifyLegs attempts the notification side effect for every leg. Legs are
// independent: a failure on one never prevents attempts on the rest, and
// each leg's notification state is advanced exactly once. Legs already
// dispatched by an earlier pass over the same transaction are skipped, so
// a replayed trigger never re-notifies a recipient.
func (s *Service) notifyLegs(
	ctx context.Context,
	d *disbursement.Disbursement,
	params ReconcileParams,
) {
	prior := s.priorNotifications(ctx, d.TxID)
	legs := d.Legs()
	for i := range legs {
		leg := &legs[i]
		if state, ok := prior[leg.ID]; ok && state != disbursement.NotificationNotSent && state != disbursement.NotificationFailed {
			leg.Notification = state
			s.logger.Info("notification already dispatched in an earlier pass, skipping",
				"tx_id", d.TxID, "leg_id", leg.ID, "state", state)
			continue
		}
		resolved := s.resolver.Resolve(ctx, leg.RecipientAddress, params.Overrides[leg.RecipientAddress])
		leg.DisplayName = resolved.DisplayName

		switch {
		case resolved.ContactEmail == "":
			leg.Notification = disbursement.NotificationSkipped
			s.logger.Info("no contact on file, skipping notification",
				"tx_id", d.TxID, "recipient", leg.DisplayName)
		default:
			// USD display is best-effort: without a rate the figure is
			// omitted rather than rendered as $0.00.
			var amountUSD string
			if params.USDRate > 0 {
				amountUSD = money.FormatUSD(leg.Amount, params.USDRate)
			}
			err := s.notifier.NotifyDisbursed(ctx, notifier.DisbursedParams{
				RecipientName:    resolved.DisplayName,
				RecipientContact: resolved.ContactEmail,
				Amount:           leg.Amount,
				AmountUSD:        amountUSD,
				TxID:             d.TxID,
				OrganizationName: s.cfg.Org.Name,
			})
			if err != nil {
				leg.Notification = disbursement.NotificationFailed
				s.logger.Error("notification failed",
					"tx_id", d.TxID, "recipient", leg.DisplayName, "error", err)
			} else {
				leg.Notification = disbursement.NotificationSent
			}
		}

		s.publish(ctx, events.LegNotified{
			EventID:   uuid.New(),
			TxID:      d.TxID,
			LegID:     leg.ID,
			Recipient: leg.RecipientAddress,
			State:     leg.Notification,
			Timestamp: time.Now(),
		})
	}
}

// priorNotifications loads the per-leg notification states recorded by any
// earlier pass over the same transaction. Deterministic leg ids make the
// recorded rows addressable from a fresh expansion. A ledger read failure
// yields no history, which errs on the side of re-sending rather than
// silently dropping a notification.
func (s *Service) priorNotifications(ctx context.Context, txID string) map[uuid.UUID]disbursement.NotificationState {
	record, err := s.ledger.Get(ctx, txID)
	if err != nil {
		s.logger.Warn("could not load prior outcome, notifications may repeat",
			"tx_id", txID, "error", err)
		return nil
	}
	if record == nil {
		return nil
	}
	states := make(map[uuid.UUID]disbursement.NotificationState, len(record.Legs))
	for _, leg := range record.Legs {
		states[leg.ID] = disbursement.NotificationState(leg.Notification)
	}
	return states
}

func (s *Service) concludeFailed(
	ctx context.Context,
	d *disbursement.Disbursement,
	logger *slog.Logger,
) (*Result, error) {
	if err := d.Transition(disbursement.StatusFailed); err != nil {
		return nil, err
	}
	logger.Warn("disbursement failed on chain, no notifications will be sent")
	s.publish(ctx, events.DisbursementFailed{
		EventID:   uuid.New(),
		TxID:      d.TxID,
		Reason:    "chain reported terminal failure",
		Timestamp: time.Now(),
	})
	if err := s.record(ctx, d); err != nil {
		return nil, err
	}
	return &Result{TxID: d.TxID, Status: d.Status(), Outcome: OutcomeFailed}, nil
}

func (s *Service) concludeTimedOut(
	ctx context.Context,
	d *disbursement.Disbursement,
	logger *slog.Logger,
) (*Result, error) {
	if err := d.Transition(disbursement.StatusTimedOut); err != nil {
		return nil, err
	}
	logger.Info("disbursement still verifying, outcome inconclusive")
	s.publish(ctx, events.DisbursementTimedOut{
		EventID:   uuid.New(),
		TxID:      d.TxID,
		Attempts:  s.cfg.Poller.MaxAttempts,
		Timestamp: time.Now(),
	})
	if err := s.record(ctx, d); err != nil {
		return nil, err
	}
	return &Result{TxID: d.TxID, Status: d.Status(), Outcome: OutcomeTimedOut}, nil
}

func (s *Service) record(ctx context.Context, d *disbursement.Disbursement) error {
	if err := s.ledger.RecordOutcome(ctx, mapOutcome(d, time.Now())); err != nil {
		return fmt.Errorf("record outcome: %w", err)
	}
	return nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if err := s.bus.Publish(ctx, event); err != nil {
		s.logger.Warn("event publish failed", "event_type", event.Type(), "error", err)
	}
}
