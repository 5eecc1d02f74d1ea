// Package initializer assembles the dependency container from
// configuration: logger, database, repositories, chain client, notifier and
// event bus.
package initializer

import (
	"fmt"
	"time"

	"github.com/Wutche/payrail/infra"
	"github.com/Wutche/payrail/infra/provider/emailnotifier"
	"github.com/Wutche/payrail/infra/provider/lognotifier"
	"github.com/Wutche/payrail/infra/provider/mockchain"
	"github.com/Wutche/payrail/infra/provider/rpcchain"
	infradisb "github.com/Wutche/payrail/infra/repository/disbursement"
	infrarecipient "github.com/Wutche/payrail/infra/repository/recipient"
	"github.com/Wutche/payrail/pkg/config"
	"github.com/Wutche/payrail/pkg/eventbus"
	"github.com/Wutche/payrail/pkg/provider/chain"
	"github.com/Wutche/payrail/pkg/provider/notifier"
)

// InitializeDependencies builds the full dependency container.
func InitializeDependencies(cfg *config.App) (*config.Deps, error) {
	logger := setupLogger(cfg.Log)

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	var chainClient chain.Client
	if cfg.Chain.Endpoint == "" {
		logger.Warn("no chain endpoint configured, using in-memory mock chain")
		chainClient = mockchain.NewMockChainClient(2 * time.Second)
	} else {
		chainClient = rpcchain.New(cfg.Chain, logger)
	}

	var n notifier.Notifier
	if cfg.Notifier.SMTPHost == "" {
		logger.Warn("no SMTP host configured, notifications will only be logged")
		n = lognotifier.New(logger)
	} else {
		n = emailnotifier.New(cfg.Notifier, logger)
	}

	return &config.Deps{
		Ledger:     infradisb.New(db),
		Recipients: infrarecipient.New(db),
		Chain:      chainClient,
		Notifier:   n,
		Bus:        eventbus.NewSimpleEventBus(),
		Logger:     logger,
		Config:     cfg,
	}, nil
}
