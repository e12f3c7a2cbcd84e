package persistence

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/quoteshare/quote-service/internal/config"
)

// ErrRedisUnavailable is returned by Publish while the server is marked unreachable.
var ErrRedisUnavailable = errors.New("redis unavailable")

const redisRecheckInterval = 5 * time.Second

// Redis wraps the go-redis client used for quote event fan-out. It remembers
// whether the server answered the last check so publishes fail fast while it
// is down instead of dialing on every event.
type Redis struct {
	Client *redis.Client

	available atomic.Bool
	lastCheck atomic.Int64
	now       func() time.Time
}

// NewRedis builds the client and checks the server once. An unreachable server
// is not fatal: fan-out starts degraded and recovers on a later check.
func NewRedis(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout(),
		MaxRetries:  -1,
	})
	r := &Redis{Client: client, now: time.Now}

	if err := r.Ping(ctx); err != nil {
		logger.Warn("unable to reach redis; quote event fan-out degraded", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}
	return r
}

// Available reports whether the last check or publish reached the server.
func (r *Redis) Available() bool {
	return r != nil && r.Client != nil && r.available.Load()
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity and refreshes Available.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	r.lastCheck.Store(r.now().UnixNano())
	err := r.Client.Ping(ctx).Err()
	r.available.Store(err == nil)
	return err
}

// Publish sends message on channel. While the server is unavailable it returns
// ErrRedisUnavailable without dialing, re-checking at most once per interval.
func (r *Redis) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	if !r.Available() && !r.recheck(ctx) {
		cmd := redis.NewIntCmd(ctx, "publish", channel, message)
		cmd.SetErr(ErrRedisUnavailable)
		return cmd
	}

	cmd := r.Client.Publish(ctx, channel, message)
	if err := cmd.Err(); err != nil && !isServerReply(err) {
		r.available.Store(false)
	}
	return cmd
}

func (r *Redis) recheck(ctx context.Context) bool {
	if r == nil || r.Client == nil {
		return false
	}
	last := time.Unix(0, r.lastCheck.Load())
	if r.now().Sub(last) < redisRecheckInterval {
		return false
	}
	return r.Ping(ctx) == nil
}

// isServerReply distinguishes errors the server sent back from transport failures.
func isServerReply(err error) bool {
	var replyErr redis.Error
	return errors.As(err, &replyErr)
}
