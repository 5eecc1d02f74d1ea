// Command payrail runs the disbursement reconciliation engine: an HTTP
// surface over the confirmation poller, leg expander, identity resolver, and
// ledger store.
package main

import (
	"fmt"

	"github.com/Wutche/payrail/infra/initializer"
	"github.com/Wutche/payrail/pkg/config"
	"github.com/Wutche/payrail/webapi"
	log "github.com/charmbracelet/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	fiberApp := webapi.SetupApp(deps)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	deps.Logger.Info("starting server",
		"env", cfg.Env,
		"address", addr,
	)
	return fiberApp.Listen(addr)
}
