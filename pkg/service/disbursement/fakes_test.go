package disbursement

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/Wutche/payrail/pkg/config"
	"github.com/Wutche/payrail/pkg/dto"
	"github.com/Wutche/payrail/pkg/eventbus"
	"github.com/Wutche/payrail/pkg/provider/chain"
	"github.com/Wutche/payrail/pkg/provider/notifier"
)

// fakeChain scripts one status answer per poll attempt and a fixed set of
// transfer events.
type fakeChain struct {
	mu          sync.Mutex
	statuses    []chain.TxStatus
	statusErrs  []error
	statusCalls int
	events      []chain.TransferEvent
	eventsErr   error
	eventsCalls int
}

func (f *fakeChain) GetTransactionStatus(ctx context.Context, txID string) (chain.TxStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.statusCalls
	f.statusCalls++
	if i < len(f.statusErrs) && f.statusErrs[i] != nil {
		return "", f.statusErrs[i]
	}
	if i < len(f.statuses) {
		return f.statuses[i], nil
	}
	return chain.TxStatusPending, nil
}

func (f *fakeChain) GetTransferEvents(ctx context.Context, txID string) ([]chain.TransferEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.eventsCalls++
	if f.eventsErr != nil {
		return nil, f.eventsErr
	}
	return f.events, nil
}

// fakeLedger captures recorded outcomes.
type fakeLedger struct {
	outcomes []dto.OutcomeCreate
	err      error
}

func (f *fakeLedger) RecordOutcome(ctx context.Context, outcome dto.OutcomeCreate) error {
	if f.err != nil {
		return f.err
	}
	f.outcomes = append(f.outcomes, outcome)
	return nil
}

func (f *fakeLedger) Get(ctx context.Context, txID string) (*dto.DisbursementRead, error) {
	if f.err != nil {
		return nil, f.err
	}
	// Later outcomes for the same tx win, mirroring the store's upsert.
	var read *dto.DisbursementRead
	for _, outcome := range f.outcomes {
		if outcome.TxID != txID {
			continue
		}
		read = &dto.DisbursementRead{
			TxID:          outcome.TxID,
			Kind:          outcome.Kind,
			Status:        outcome.Status,
			DeclaredTotal: outcome.DeclaredTotal,
			PeriodRef:     outcome.PeriodRef,
			RecordedAt:    outcome.RecordedAt,
		}
		for _, leg := range outcome.Legs {
			read.Legs = append(read.Legs, dto.LegRead{
				ID:               leg.ID,
				RecipientAddress: leg.RecipientAddress,
				Amount:           leg.Amount,
				DisplayName:      leg.DisplayName,
				Notification:     leg.Notification,
				Degraded:         leg.Degraded,
			})
		}
	}
	return read, nil
}

func (f *fakeLedger) ListByPeriod(ctx context.Context, periodRef string) ([]*dto.DisbursementRead, error) {
	return nil, errors.New("not implemented in fake")
}

// fakeNotifier captures dispatched notifications and can fail selectively
// by contact address.
type fakeNotifier struct {
	sent    []notifier.DisbursedParams
	failFor map[string]bool
}

func (f *fakeNotifier) NotifyDisbursed(ctx context.Context, params notifier.DisbursedParams) error {
	f.sent = append(f.sent, params)
	if f.failFor[params.RecipientContact] {
		return errors.New("smtp connection reset")
	}
	return nil
}

// fakeRoster is an in-memory recipient store.
type fakeRoster struct {
	entries map[string]dto.RecipientRead
}

func (f *fakeRoster) Create(ctx context.Context, create dto.RecipientCreate) error {
	return errors.New("read-only fake")
}

func (f *fakeRoster) LookupByAddress(ctx context.Context, address string) (*dto.RecipientRead, error) {
	if e, ok := f.entries[address]; ok {
		return &e, nil
	}
	return nil, nil
}

func (f *fakeRoster) LookupByAddressFold(ctx context.Context, address string) (*dto.RecipientRead, error) {
	for addr, e := range f.entries {
		if strings.EqualFold(addr, address) {
			return &e, nil
		}
	}
	return nil, nil
}

func (f *fakeRoster) List(ctx context.Context) ([]*dto.RecipientRead, error) {
	return nil, nil
}

// testDeps assembles a service over the fakes with a zero-interval poll
// budget so tests never sleep.
func testDeps(ch *fakeChain, ledger *fakeLedger, n *fakeNotifier, roster *fakeRoster) config.Deps {
	return config.Deps{
		Ledger:     ledger,
		Recipients: roster,
		Chain:      ch,
		Notifier:   n,
		Bus:        eventbus.NewSimpleEventBus(),
		Logger:     slog.Default(),
		Config: &config.App{
			Poller: &config.Poller{MaxAttempts: 3, Interval: 0},
			Org:    &config.Org{Name: "Acme Payroll"},
		},
	}
}
