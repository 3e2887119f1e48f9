package main

import (
	"context"
	"os"
	"time"

	appfx "FinControl/internal/fx"
	"FinControl/internal/logger"
	"FinControl/internal/scheduler"

	"go.uber.org/fx"
)

// Executa um único lote de recorrências vencidas e sai. Pensado para cron externo
// ou execução manual quando o agendador embutido está desligado.
func main() {
	var sched *scheduler.Scheduler

	app := fx.New(
		appfx.CoreModule,
		fx.Provide(appfx.NewScheduler),
		fx.Populate(&sched),
		fx.NopLogger,
	)

	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		logger.Error().Err(err).Msg("Falha ao iniciar processamento de recorrências")
		os.Exit(1)
	}

	generated, runErr := sched.RunNow(context.Background())

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer stopCancel()
	if err := app.Stop(stopCtx); err != nil {
		logger.Warn().Err(err).Msg("Falha ao finalizar recursos")
	}

	if runErr != nil {
		logger.Error().Err(runErr).Int("generated", generated).Msg("Processamento de recorrências falhou")
		os.Exit(1)
	}

	logger.Info().Int("generated", generated).Msg("Processamento de recorrências concluído")
}
