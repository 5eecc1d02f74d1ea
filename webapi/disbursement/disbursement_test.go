package disbursement

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Wutche/payrail/pkg/config"
	"github.com/Wutche/payrail/pkg/dto"
	"github.com/Wutche/payrail/pkg/eventbus"
	"github.com/Wutche/payrail/pkg/provider/chain"
	"github.com/Wutche/payrail/pkg/provider/notifier"
	disbsvc "github.com/Wutche/payrail/pkg/service/disbursement"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChain struct {
	status chain.TxStatus
	events []chain.TransferEvent
}

func (s *stubChain) GetTransactionStatus(ctx context.Context, txID string) (chain.TxStatus, error) {
	return s.status, nil
}

func (s *stubChain) GetTransferEvents(ctx context.Context, txID string) ([]chain.TransferEvent, error) {
	return s.events, nil
}

type stubLedger struct {
	outcomes []dto.OutcomeCreate
	records  map[string]*dto.DisbursementRead
	err      error
}

func (s *stubLedger) RecordOutcome(ctx context.Context, outcome dto.OutcomeCreate) error {
	s.outcomes = append(s.outcomes, outcome)
	return nil
}

func (s *stubLedger) Get(ctx context.Context, txID string) (*dto.DisbursementRead, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.records[txID], nil
}

func (s *stubLedger) ListByPeriod(ctx context.Context, periodRef string) ([]*dto.DisbursementRead, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*dto.DisbursementRead
	for _, r := range s.records {
		if r.PeriodRef == periodRef {
			out = append(out, r)
		}
	}
	return out, nil
}

type stubNotifier struct {
	sent []notifier.DisbursedParams
}

func (s *stubNotifier) NotifyDisbursed(ctx context.Context, params notifier.DisbursedParams) error {
	s.sent = append(s.sent, params)
	return nil
}

type stubRoster struct {
	entries map[string]dto.RecipientRead
}

func (s *stubRoster) Create(ctx context.Context, create dto.RecipientCreate) error {
	return errors.New("read-only stub")
}

func (s *stubRoster) LookupByAddress(ctx context.Context, address string) (*dto.RecipientRead, error) {
	if e, ok := s.entries[address]; ok {
		return &e, nil
	}
	return nil, nil
}

func (s *stubRoster) LookupByAddressFold(ctx context.Context, address string) (*dto.RecipientRead, error) {
	for addr, e := range s.entries {
		if strings.EqualFold(addr, address) {
			return &e, nil
		}
	}
	return nil, nil
}

func (s *stubRoster) List(ctx context.Context) ([]*dto.RecipientRead, error) {
	return nil, nil
}

func newTestApp(ch *stubChain, ledger *stubLedger, n *stubNotifier, roster *stubRoster) *fiber.App {
	deps := config.Deps{
		Ledger:     ledger,
		Recipients: roster,
		Chain:      ch,
		Notifier:   n,
		Bus:        eventbus.NewSimpleEventBus(),
		Logger:     slog.Default(),
		Config: &config.App{
			Poller: &config.Poller{MaxAttempts: 2, Interval: 0},
			Org:    &config.Org{Name: "Acme Payroll"},
		},
	}
	app := fiber.New()
	Routes(app, disbsvc.NewService(deps), ledger)
	return app
}

func TestReconcile_ConfirmedBatch(t *testing.T) {
	ch := &stubChain{
		status: chain.TxStatusSuccess,
		events: []chain.TransferEvent{
			{SenderAddress: "0xorg", RecipientAddress: "0xalice", Amount: 100},
			{SenderAddress: "0xorg", RecipientAddress: "0xbob", Amount: 250},
		},
	}
	ledger := &stubLedger{}
	n := &stubNotifier{}
	roster := &stubRoster{entries: map[string]dto.RecipientRead{
		"0xalice": {Address: "0xalice", DisplayName: "Alice", ContactEmail: "alice@acme.dev"},
	}}
	app := newTestApp(ch, ledger, n, roster)

	raw, err := json.Marshal(ReconcileRequest{Kind: "batch", DeclaredTotal: 400, PeriodRef: "2026-08"})
	require.NoError(t, err)
	req := httptest.NewRequest(fiber.MethodPost, "/disbursements/0xfeed/reconcile", bytes.NewReader(raw))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope struct {
		Data ReconcileResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, "0xfeed", envelope.Data.TxID)
	assert.Equal(t, "notified", envelope.Data.Status)
	assert.Equal(t, "confirmed", envelope.Data.Outcome)
	require.Len(t, envelope.Data.Legs, 2)
	assert.Equal(t, "0.000100", envelope.Data.Legs[0].AmountFormatted)
	assert.Len(t, n.sent, 1)
	require.Len(t, ledger.outcomes, 1)
}

func TestReconcile_ValidationRejectsBadKind(t *testing.T) {
	app := newTestApp(&stubChain{status: chain.TxStatusSuccess}, &stubLedger{}, &stubNotifier{}, &stubRoster{})

	raw := []byte(`{"kind": "refund", "declared_total": 100}`)
	req := httptest.NewRequest(fiber.MethodPost, "/disbursements/0xfeed/reconcile", bytes.NewReader(raw))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestReconcile_DirectRequiresRecipient(t *testing.T) {
	ledger := &stubLedger{}
	app := newTestApp(&stubChain{status: chain.TxStatusSuccess}, ledger, &stubNotifier{}, &stubRoster{})

	raw := []byte(`{"kind": "direct", "declared_total": 100}`)
	req := httptest.NewRequest(fiber.MethodPost, "/disbursements/0xfeed/reconcile", bytes.NewReader(raw))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, ledger.outcomes)
}

func TestReconcile_FailedTransactionNeverNotifies(t *testing.T) {
	n := &stubNotifier{}
	ledger := &stubLedger{}
	app := newTestApp(&stubChain{status: chain.TxStatusFailed}, ledger, n, &stubRoster{})

	raw := []byte(`{"kind": "batch", "declared_total": 100}`)
	req := httptest.NewRequest(fiber.MethodPost, "/disbursements/0xdead/reconcile", bytes.NewReader(raw))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope struct {
		Data ReconcileResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, "failed", envelope.Data.Status)
	assert.Empty(t, envelope.Data.Legs)
	assert.Empty(t, n.sent)
	require.Len(t, ledger.outcomes, 1)
	assert.Equal(t, "failed", ledger.outcomes[0].Status)
}

func TestGetDisbursement(t *testing.T) {
	ledger := &stubLedger{records: map[string]*dto.DisbursementRead{
		"0xfeed": {TxID: "0xfeed", Kind: "batch", Status: "notified", PeriodRef: "2026-08"},
	}}
	app := newTestApp(&stubChain{}, ledger, &stubNotifier{}, &stubRoster{})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/disbursements/0xfeed", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/disbursements/0xmissing", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestListByPeriod(t *testing.T) {
	ledger := &stubLedger{records: map[string]*dto.DisbursementRead{
		"0xfeed": {TxID: "0xfeed", Kind: "batch", Status: "notified", PeriodRef: "2026-08"},
	}}
	app := newTestApp(&stubChain{}, ledger, &stubNotifier{}, &stubRoster{})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/disbursements?period=2026-08", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/disbursements", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
