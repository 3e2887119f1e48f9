package fx

import (
	"context"

	"FinControl/config"
	"FinControl/internal/telemetry"

	"go.uber.org/fx"
)

var TelemetryModule = fx.Module("telemetry",
	fx.Invoke(
		initTelemetry,
	),
)

func initTelemetry(lc fx.Lifecycle, cfg *config.Config) error {
	shutdown, err := telemetry.Init(context.Background(), cfg)
	if err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return shutdown(ctx)
		},
	})
	return nil
}
