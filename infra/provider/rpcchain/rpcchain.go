// Package rpcchain implements the chain read client over a ledger node's
// HTTP JSON API.
package rpcchain

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/Wutche/payrail/pkg/config"
	"github.com/Wutche/payrail/pkg/provider/chain"
)

// Client queries a ledger node over HTTP.
type Client struct {
	endpoint string
	http     *http.Client
	logger   *slog.Logger
}

// New creates a chain client for the configured node endpoint.
func New(cfg *config.Chain, logger *slog.Logger) *Client {
	return &Client{
		endpoint: cfg.Endpoint,
		http:     &http.Client{Timeout: cfg.HTTPTimeout},
		logger:   logger,
	}
}

type statusResponse struct {
	Status string `json:"status"`
}

type eventsResponse struct {
	Events []chain.TransferEvent `json:"events"`
}

// GetTransactionStatus implements chain.Client. An HTTP 404 maps to
// unknown: the node may simply not have seen the transaction yet.
func (c *Client) GetTransactionStatus(ctx context.Context, txID string) (chain.TxStatus, error) {
	var body statusResponse
	err := c.getJSON(ctx, "/v1/transactions/"+url.PathEscape(txID)+"/status", &body)
	if err == errNotFound {
		return chain.TxStatusUnknown, nil
	}
	if err != nil {
		return "", err
	}
	switch status := chain.TxStatus(body.Status); status {
	case chain.TxStatusSuccess, chain.TxStatusFailed, chain.TxStatusPending, chain.TxStatusDropped:
		return status, nil
	default:
		c.logger.Warn("node reported unrecognized status", "tx_id", txID, "status", body.Status)
		return chain.TxStatusUnknown, nil
	}
}

// GetTransferEvents implements chain.Client.
func (c *Client) GetTransferEvents(ctx context.Context, txID string) ([]chain.TransferEvent, error) {
	var body eventsResponse
	err := c.getJSON(ctx, "/v1/transactions/"+url.PathEscape(txID)+"/events", &body)
	if err == errNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return body.Events, nil
}

var errNotFound = fmt.Errorf("not found")

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+path, nil)
	if err != nil {
		return fmt.Errorf("build chain request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("chain request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	c.logger.Debug("chain request", "path", path, "status", resp.StatusCode, "took", time.Since(start))
	if resp.StatusCode == http.StatusNotFound {
		return errNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("chain node returned %d for %s", resp.StatusCode, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode chain response: %w", err)
	}
	return nil
}
