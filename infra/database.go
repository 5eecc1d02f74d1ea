// Package infra wires the persistence layer.
package infra

import (
	"errors"

	"github.com/Wutche/payrail/infra/repository/model"
	"github.com/Wutche/payrail/pkg/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDBConnection opens the database and migrates the ledger schema.
func NewDBConnection(cfg *config.DB, appEnv string) (*gorm.DB, error) {
	if cfg.Url == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	logMode := logger.Silent
	if appEnv == "development" {
		logMode = logger.Info
	}

	connection, err := gorm.Open(postgres.Open(cfg.Url), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, err
	}
	if err := connection.AutoMigrate(
		&model.Disbursement{},
		&model.DisbursementLeg{},
		&model.Recipient{},
	); err != nil {
		return nil, err
	}
	return connection, nil
}
