package fx

import (
	"context"

	"FinControl/config"
	"FinControl/internal/domain/recurring"
	"FinControl/internal/infrastructure"
	"FinControl/internal/logger"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

var InfrastructureModule = fx.Module("infrastructure",
	fx.Provide(
		newDatabase,
		newTransactionRepository,
		newNotificationRepository,
		newRecurringLocker,
	),
)

func newDatabase(lc fx.Lifecycle, cfg *config.Config) (*gorm.DB, error) {
	db, err := infrastructure.NewDb(cfg)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return infrastructure.CloseDb(db)
		},
	})
	return db, nil
}

func newTransactionRepository(db *gorm.DB) *infrastructure.TransactionRepository {
	return infrastructure.NewTransactionRepository(db)
}

func newNotificationRepository(db *gorm.DB) *infrastructure.NotificationRepository {
	return infrastructure.NewNotificationRepository(db)
}

// newRecurringLocker devolve nil quando o lock consultivo está desligado; o
// service segue apenas com a exclusão em processo.
func newRecurringLocker(cfg *config.Config, db *gorm.DB) recurring.Locker {
	if !cfg.Recurrence.AdvisoryLock {
		logger.Info().Msg("Lock consultivo de recorrências desabilitado")
		return nil
	}
	return infrastructure.NewAdvisoryLocker(db, cfg.Recurrence.LockKey)
}
