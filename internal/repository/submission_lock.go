package repository

import (
	"assessment_backend/pkg/logger"
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrLockBusy is returned when another submission holds the lock past the wait budget.
var ErrLockBusy = errors.New("submission lock busy")

// releaseScript deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisSubmissionLocker struct {
	Client *redis.Client
	TTL    time.Duration
	Wait   time.Duration
	Retry  time.Duration
}

func NewRedisSubmissionLocker(client *redis.Client, ttl time.Duration) *RedisSubmissionLocker {
	return &RedisSubmissionLocker{
		Client: client,
		TTL:    ttl,
		Wait:   ttl,
		Retry:  25 * time.Millisecond,
	}
}

func lockKey(key string) string {
	return "assessment:submission:" + key
}

// Lock spins on SET NX until acquired, ctx is done, or Wait elapses.
func (l *RedisSubmissionLocker) Lock(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	k := lockKey(key)
	deadline := time.Now().Add(l.Wait)

	for {
		ok, err := l.Client.SetNX(ctx, k, token, l.TTL).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			break
		}
		if time.Now().After(deadline) {
			return nil, ErrLockBusy
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.Retry):
		}
	}

	return func() {
		// Released on a fresh context so a cancelled request still frees the key.
		rctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := releaseScript.Run(rctx, l.Client, []string{k}, token).Err(); err != nil {
			logger.Log.Warn("Failed to release submission lock", zap.String("key", k), zap.Error(err))
		}
	}, nil
}
