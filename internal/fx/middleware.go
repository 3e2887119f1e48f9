package fx

import (
	"context"
	"time"

	"FinControl/config"
	"FinControl/internal/middleware"

	"go.uber.org/fx"
)

var MiddlewareModule = fx.Module("middleware",
	fx.Provide(
		newJwtService,
		newRateLimiters,
	),
)

type RateLimiters struct {
	User  *middleware.RateLimiter
	Admin *middleware.RateLimiter
}

func newJwtService(cfg *config.Config) (*middleware.JwtService, error) {
	return middleware.NewJwtService(cfg.JWT)
}

func newRateLimiters(lc fx.Lifecycle) *RateLimiters {
	limiters := &RateLimiters{
		User:  middleware.NewRateLimiter(100, time.Minute),
		Admin: middleware.NewRateLimiter(5, time.Minute),
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			limiters.User.Stop()
			limiters.Admin.Stop()
			return nil
		},
	})
	return limiters
}
