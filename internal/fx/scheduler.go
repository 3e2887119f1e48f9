package fx

import (
	"context"

	"FinControl/config"
	"FinControl/internal/domain/recurring"
	"FinControl/internal/logger"
	"FinControl/internal/scheduler"

	"go.uber.org/fx"
)

var SchedulerModule = fx.Module("scheduler",
	fx.Provide(
		NewScheduler,
	),
	fx.Invoke(
		registerScheduler,
	),
)

func NewScheduler(cfg *config.Config, svc *recurring.Service) (*scheduler.Scheduler, error) {
	loc, err := cfg.Recurrence.Location()
	if err != nil {
		return nil, err
	}

	return scheduler.New(svc, scheduler.Config{
		ScheduleTime:  cfg.Recurrence.ScheduleTime,
		Location:      loc,
		CheckInterval: cfg.Recurrence.CheckInterval,
		BatchTimeout:  cfg.Recurrence.BatchTimeout,
		RunOnStartup:  cfg.Recurrence.RunOnStartup,
	})
}

// registerScheduler só liga o disparo diário quando habilitado; RunNow continua
// disponível para a rota administrativa e para o cmd/recurring.
func registerScheduler(lc fx.Lifecycle, cfg *config.Config, s *scheduler.Scheduler) {
	if !cfg.Recurrence.Enabled {
		logger.Info().Msg("Agendador de recorrências desabilitado")
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			s.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return s.Stop(ctx)
		},
	})
}
