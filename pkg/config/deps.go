package config

import (
	"log/slog"

	"github.com/Wutche/payrail/pkg/eventbus"
	"github.com/Wutche/payrail/pkg/provider/chain"
	"github.com/Wutche/payrail/pkg/provider/notifier"
	disbrepo "github.com/Wutche/payrail/pkg/repository/disbursement"
	recipientrepo "github.com/Wutche/payrail/pkg/repository/recipient"
)

// Deps holds all infrastructure dependencies for building the app and
// services.
type Deps struct {
	Ledger     disbrepo.Repository
	Recipients recipientrepo.Repository
	Chain      chain.Client
	Notifier   notifier.Notifier
	Bus        eventbus.Bus
	Logger     *slog.Logger
	Config     *App
}
