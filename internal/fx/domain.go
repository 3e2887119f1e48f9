package fx

import (
	"context"

	"FinControl/config"
	"FinControl/internal/domain/notification"
	"FinControl/internal/domain/recurring"
	"FinControl/internal/domain/transaction"
	"FinControl/internal/infrastructure"

	"go.uber.org/fx"
)

// DomainModule fornece os services do domínio
var DomainModule = fx.Module("domain",
	fx.Provide(
		newTransactionService,
		newNotificationService,
		newNotificationDispatcher,
		newRecurringService,
	),
)

func newTransactionService(repo *infrastructure.TransactionRepository) *transaction.Service {
	return transaction.NewService(repo)
}

func newNotificationService(repo *infrastructure.NotificationRepository) *notification.Service {
	return notification.NewService(repo)
}

func newNotificationDispatcher(
	lc fx.Lifecycle,
	cfg *config.Config,
	repo *infrastructure.NotificationRepository,
) *notification.Dispatcher {
	dispatcher := notification.NewDispatcher(repo, cfg.Notification.QueueSize)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			dispatcher.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return dispatcher.Stop(ctx)
		},
	})
	return dispatcher
}

func newRecurringService(
	repo *infrastructure.TransactionRepository,
	dispatcher *notification.Dispatcher,
	locker recurring.Locker,
) *recurring.Service {
	return recurring.NewService(repo, dispatcher, locker)
}
