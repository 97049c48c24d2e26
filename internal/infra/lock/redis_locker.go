// Package lock provides per-account mutual exclusion for the login flow.
package lock

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"guardianmed/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	defaultKeyPrefix   = "guardianmed:lock:account:"
	releaseLockTimeout = time.Second
)

// Deletes the key only while it still holds this holder's token, so a lease
// that expired and was re-acquired by someone else is left alone.
const releaseLockScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`

var releaseLockLua = redis.NewScript(releaseLockScript)

// redisLocker implements AccountLocker with SET NX PX leases.
type redisLocker struct {
	client        redis.UniversalClient
	prefix        string
	ttl           time.Duration
	retryInterval time.Duration
	logger        *slog.Logger
}

// NewRedisLocker creates a lease-based locker. ttl bounds how long a crashed holder blocks others.
func NewRedisLocker(client redis.UniversalClient, ttl, retryInterval time.Duration, logger *slog.Logger) service.AccountLocker {
	return &redisLocker{
		client:        client,
		prefix:        defaultKeyPrefix,
		ttl:           ttl,
		retryInterval: retryInterval,
		logger:        logger,
	}
}

// Lock polls SET NX until it wins or ctx is done.
func (l *redisLocker) Lock(ctx context.Context, key string) (func(), error) {
	redisKey := l.prefix + key
	token := uuid.NewString()

	for {
		acquired, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			return nil, errors.Wrap(err, "failed to acquire account lock")
		}
		if acquired {
			break
		}

		timer := time.NewTimer(l.retryInterval)
		select {
		case <-ctx.Done():
			timer.Stop()

			return nil, errors.Wrap(ctx.Err(), "timed out waiting for account lock")
		case <-timer.C:
		}
	}

	var once sync.Once
	unlock := func() {
		once.Do(func() {
			releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseLockTimeout)
			defer cancel()

			if err := releaseLockLua.Run(releaseCtx, l.client, []string{redisKey}, token).Err(); err != nil {
				l.logger.Warn("Failed to release account lock, lease will expire",
					slog.String("key", redisKey),
					slog.Any("error", err),
				)
			}
		})
	}

	return unlock, nil
}
