package infra

import (
	"errors"
	"fmt"
	"time"

	"github.com/demobank/ledger/infra/repository"
	"github.com/demobank/ledger/pkg/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDBConnection opens the configured database and migrates the ledger schema.
func NewDBConnection(
	cnf *config.DB,
	appEnv string,
) (*gorm.DB, error) {
	if cnf == nil || cnf.Url == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	var logMode logger.LogLevel
	if appEnv == "development" {
		logMode = logger.Info
	} else {
		logMode = logger.Silent
	}

	var dialector gorm.Dialector
	switch cnf.Driver {
	case "", "postgres":
		dialector = postgres.Open(cnf.Url)
	case "sqlite":
		dialector = sqlite.Open(cnf.Url)
	default:
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q", cnf.Driver)
	}

	connection, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logMode),
		SkipDefaultTransaction: true})
	if err != nil {
		return nil, err
	}

	sqlDB, err := connection.DB()
	if err != nil {
		return nil, err
	}
	if cnf.Driver == "sqlite" {
		// sqlite serialises writers; one connection avoids SQLITE_BUSY.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(25)
		sqlDB.SetConnMaxLifetime(1 * time.Hour)
	}

	if err := repository.Migrate(connection); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return connection, nil
}
