package lock

import (
	"context"
	"log/slog"

	"guardianmed/config"
	"guardianmed/internal/domain/lifecycle"
	"guardianmed/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// LockerParams holds dependencies for AccountLocker, injected by Fx
type LockerParams struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewAccountLocker picks the redis locker when redis.addr is set, otherwise the in-process one.
func NewAccountLocker(params LockerParams) service.AccountLocker {
	cfg := params.Config.Redis
	if cfg == nil || cfg.Addr == "" {
		params.Logger.Info("Redis not configured, using in-process account locker")

		return NewMemoryLocker()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	params.Lc.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := client.Ping(ctx).Err(); err != nil {
				return errors.Wrap(err, "failed to ping redis")
			}

			return nil
		},
		OnStop: func(context.Context) error {
			params.Logger.Info("Closing redis client")

			return errors.WithStack(client.Close())
		},
	})

	params.Logger.Info("Using redis account locker", slog.String("addr", cfg.Addr))

	return NewRedisLocker(client, cfg.LockTTL, cfg.LockRetryInterval, params.Logger)
}
