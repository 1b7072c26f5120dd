package initializer

import (
	"context"
	"fmt"
	"time"

	"github.com/demobank/ledger/infra"
	infra_lock "github.com/demobank/ledger/infra/lock"
	infra_repository "github.com/demobank/ledger/infra/repository"
	"github.com/demobank/ledger/infra/repository/memory"
	"github.com/demobank/ledger/pkg/app"
	"github.com/demobank/ledger/pkg/config"
	"github.com/demobank/ledger/pkg/lock"
)

// InitializeDependencies initializes all the application dependencies
func InitializeDependencies(cfg *config.App) (
	deps *app.Deps,
	err error,
) {
	deps = &app.Deps{}
	logger := setupLogger(cfg.Log)
	deps.Logger = logger

	// Initialize store and unit of work
	if cfg.DB == nil || cfg.DB.Url == "" {
		logger.Warn("DATABASE_URL is not set, using in-memory store")
		deps.Uow = memory.NewUoW(memory.NewStore())
	} else {
		db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
		if err != nil {
			logger.Error("Failed to initialize database", "error", err)
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		deps.OnClose(sqlDB.Close)
		deps.Uow = infra_repository.NewUoW(db)
		logger.Info("Database initialized", "driver", cfg.DB.Driver)
	}

	// Initialize account locker
	if cfg.Redis != nil && cfg.Redis.URL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), dialTimeout(cfg.Redis))
		defer cancel()
		locker, err := infra_lock.NewRedisFromURL(
			ctx,
			cfg.Redis.URL,
			logger,
			infra_lock.WithPrefix(cfg.Redis.KeyPrefix),
			infra_lock.WithTTL(cfg.Redis.LockTTL),
		)
		if err != nil {
			_ = deps.Close()
			return nil, fmt.Errorf("failed to create Redis locker: %w", err)
		}
		deps.OnClose(locker.Close)
		deps.Locker = locker
	} else {
		deps.Locker = lock.NewKeyed()
	}

	return deps, nil
}

func dialTimeout(cfg *config.Redis) time.Duration {
	if cfg.DialTimeout > 0 {
		return cfg.DialTimeout
	}
	return 5 * time.Second
}
