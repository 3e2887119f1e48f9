package fx

import (
	"context"

	"FinControl/internal/domain/notification"
	"FinControl/internal/domain/recurring"
	"FinControl/internal/domain/transaction"
	"FinControl/internal/routes"
	"FinControl/internal/scheduler"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

var RoutesModule = fx.Module("routes",
	fx.Provide(
		newHandler,
	),
)

func newHandler(
	db *gorm.DB,
	transactionSvc *transaction.Service,
	recurringSvc *recurring.Service,
	notificationSvc *notification.Service,
	sched *scheduler.Scheduler,
) *routes.Handler {
	return &routes.Handler{
		TransactionService:  transactionSvc,
		RecurringService:    recurringSvc,
		NotificationService: notificationSvc,
		Runner:              sched,
		Ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
}
