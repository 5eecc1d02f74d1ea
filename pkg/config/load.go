package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads configuration from the environment, first merging a .env file
// when one is present.
func Load(envFilePath ...string) (*App, error) {
	logger := slog.Default()
	path := ".env"
	if len(envFilePath) > 0 {
		path = envFilePath[0]
	}
	if err := godotenv.Load(path); err != nil {
		logger.Warn("No .env file found, using system environment variables", "path", path)
	}

	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	logger.Info("App config loaded",
		"env", cfg.Env,
		"db", maskValue(cfg.DB.Url),
		"chain_endpoint", cfg.Chain.Endpoint,
		"poller_max_attempts", cfg.Poller.MaxAttempts,
		"poller_interval", cfg.Poller.Interval,
	)
	return &cfg, nil
}

func maskValue(key string) string {
	if len(key) <= 6 {
		return "****"
	}
	return key[:2] + "****" + key[len(key)-4:]
}
