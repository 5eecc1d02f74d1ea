// Package mockchain simulates a ledger node for tests and local
// development.
//
// Usage:
//   - Broadcast registers a transaction as pending together with the
//     transfer events it will expose once confirmed.
//   - GetTransactionStatus can be polled; the transaction flips to success
//     after the configured confirmation delay.
//   - This is NOT for production use. A real deployment points the chain
//     client at a ledger node.
package mockchain

import (
	"context"
	"sync"
	"time"

	"github.com/Wutche/payrail/pkg/provider/chain"
)

type mockTx struct {
	status chain.TxStatus
	events []chain.TransferEvent
}

// MockChainClient is an in-memory chain.Client with scriptable outcomes.
type MockChainClient struct {
	mu    sync.Mutex
	txs   map[string]*mockTx
	delay time.Duration
}

// NewMockChainClient creates a simulator whose transactions confirm after
// the given delay.
func NewMockChainClient(delay time.Duration) *MockChainClient {
	return &MockChainClient{
		txs:   make(map[string]*mockTx),
		delay: delay,
	}
}

// Broadcast registers a pending transaction that will confirm with the
// given transfer events.
func (m *MockChainClient) Broadcast(txID string, events []chain.TransferEvent) {
	m.mu.Lock()
	m.txs[txID] = &mockTx{status: chain.TxStatusPending, events: events}
	m.mu.Unlock()
	// Simulate async finality.
	go func() {
		time.Sleep(m.delay)
		m.mu.Lock()
		if tx, ok := m.txs[txID]; ok && tx.status == chain.TxStatusPending {
			tx.status = chain.TxStatusSuccess
		}
		m.mu.Unlock()
	}()
}

// Abort forces a registered transaction to terminal failure.
func (m *MockChainClient) Abort(txID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if tx, ok := m.txs[txID]; ok {
		tx.status = chain.TxStatusFailed
	}
}

// GetTransactionStatus implements chain.Client. Unregistered ids report
// unknown, matching a node that has not seen the transaction yet.
func (m *MockChainClient) GetTransactionStatus(ctx context.Context, txID string) (chain.TxStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tx, ok := m.txs[txID]
	if !ok {
		return chain.TxStatusUnknown, nil
	}
	return tx.status, nil
}

// GetTransferEvents implements chain.Client.
func (m *MockChainClient) GetTransferEvents(ctx context.Context, txID string) ([]chain.TransferEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tx, ok := m.txs[txID]
	if !ok {
		return nil, nil
	}
	events := make([]chain.TransferEvent, len(tx.events))
	copy(events, tx.events)
	return events, nil
}
