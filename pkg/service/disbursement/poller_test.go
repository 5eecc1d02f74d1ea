package disbursement

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/Wutche/payrail/pkg/provider/chain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPollerAwait(t *testing.T) {
	ctx := context.Background()

	t.Run("pending three times exhausts the budget", func(t *testing.T) {
		ch := &fakeChain{statuses: []chain.TxStatus{
			chain.TxStatusPending, chain.TxStatusPending, chain.TxStatusPending,
		}}
		outcome, err := NewPoller(ch, slog.Default()).Await(ctx, "0xabc", 3, 0)
		require.NoError(t, err)
		assert.Equal(t, OutcomeTimedOut, outcome)
		assert.Equal(t, 3, ch.statusCalls)
	})

	t.Run("success on first call polls exactly once", func(t *testing.T) {
		ch := &fakeChain{statuses: []chain.TxStatus{chain.TxStatusSuccess}}
		outcome, err := NewPoller(ch, slog.Default()).Await(ctx, "0xabc", 12, 0)
		require.NoError(t, err)
		assert.Equal(t, OutcomeConfirmed, outcome)
		assert.Equal(t, 1, ch.statusCalls)
	})

	t.Run("explicit failure returns immediately", func(t *testing.T) {
		ch := &fakeChain{statuses: []chain.TxStatus{
			chain.TxStatusPending, chain.TxStatusFailed,
		}}
		outcome, err := NewPoller(ch, slog.Default()).Await(ctx, "0xabc", 12, 0)
		require.NoError(t, err)
		assert.Equal(t, OutcomeFailed, outcome)
		assert.Equal(t, 2, ch.statusCalls)
	})

	t.Run("dropped transaction is a failure", func(t *testing.T) {
		ch := &fakeChain{statuses: []chain.TxStatus{chain.TxStatusDropped}}
		outcome, err := NewPoller(ch, slog.Default()).Await(ctx, "0xabc", 3, 0)
		require.NoError(t, err)
		assert.Equal(t, OutcomeFailed, outcome)
	})

	t.Run("unknown id is propagation delay, not failure", func(t *testing.T) {
		ch := &fakeChain{statuses: []chain.TxStatus{
			chain.TxStatusUnknown, chain.TxStatusUnknown, chain.TxStatusSuccess,
		}}
		outcome, err := NewPoller(ch, slog.Default()).Await(ctx, "0xabc", 3, 0)
		require.NoError(t, err)
		assert.Equal(t, OutcomeConfirmed, outcome)
	})

	t.Run("chain errors are tolerated within the budget", func(t *testing.T) {
		ch := &fakeChain{
			statusErrs: []error{errors.New("rpc: connection refused"), nil},
			statuses:   []chain.TxStatus{"", chain.TxStatusSuccess},
		}
		outcome, err := NewPoller(ch, slog.Default()).Await(ctx, "0xabc", 3, 0)
		require.NoError(t, err)
		assert.Equal(t, OutcomeConfirmed, outcome)
	})

	t.Run("chain errors all the way down time out", func(t *testing.T) {
		boom := errors.New("rpc: connection refused")
		ch := &fakeChain{statusErrs: []error{boom, boom, boom}}
		outcome, err := NewPoller(ch, slog.Default()).Await(ctx, "0xabc", 3, 0)
		require.NoError(t, err)
		assert.Equal(t, OutcomeTimedOut, outcome)
	})

	t.Run("cancellation during the sleep is inconclusive", func(t *testing.T) {
		cancelCtx, cancel := context.WithCancel(context.Background())
		cancel()
		ch := &fakeChain{statuses: []chain.TxStatus{chain.TxStatusPending}}
		outcome, err := NewPoller(ch, slog.Default()).Await(cancelCtx, "0xabc", 12, time.Hour)
		require.NoError(t, err)
		assert.Equal(t, OutcomeTimedOut, outcome)
		assert.Equal(t, 1, ch.statusCalls)
	})

	t.Run("validates inputs", func(t *testing.T) {
		p := NewPoller(&fakeChain{}, slog.Default())
		_, err := p.Await(ctx, "", 3, 0)
		assert.ErrorIs(t, err, ErrEmptyTxID)
		_, err = p.Await(ctx, "0xabc", 0, 0)
		assert.ErrorIs(t, err, ErrInvalidAttempts)
		_, err = p.Await(ctx, "0xabc", 3, -time.Second)
		assert.ErrorIs(t, err, ErrNegativeBudget)
	})
}
