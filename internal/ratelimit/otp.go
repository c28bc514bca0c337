// Package ratelimit throttles OTP issuance per user and purpose in Redis.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/napowa/napowa-server/internal/apierrors"
	"github.com/napowa/napowa-server/internal/config"
	"github.com/napowa/napowa-server/internal/logger"
	"github.com/napowa/napowa-server/internal/model"
)

const keyPrefix = "napowa:otp"

var _ model.OTPLimiter = (*OTPLimiter)(nil)

// OTPLimiter enforces a cooldown between codes and a cap per window. Once the
// cap is exceeded the pair stays blocked for the rest of the window.
type OTPLimiter struct {
	rdb         redis.Cmdable
	cooldown    time.Duration
	window      time.Duration
	maxInWindow int64
	logger      *logger.Logger
}

// New connects to Redis and verifies the connection.
func New(ctx context.Context, cfg config.Redis, otp config.OTP, log *logger.Logger) (*OTPLimiter, *redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return NewOTPLimiter(client, otp, log), client, nil
}

func NewOTPLimiter(rdb redis.Cmdable, otp config.OTP, log *logger.Logger) *OTPLimiter {
	return &OTPLimiter{
		rdb:         rdb,
		cooldown:    otp.Cooldown,
		window:      otp.Window,
		maxInWindow: int64(otp.MaxInWindow),
		logger:      log,
	}
}

// Allow records an issuance attempt. Redis failures let the attempt through.
func (l *OTPLimiter) Allow(ctx context.Context, userID uuid.UUID, purpose model.OTPPurpose) error {
	key := limitKey(userID, purpose)
	blockKey := key + ":blocked"
	cooldownKey := key + ":cooldown"

	blocked, err := l.rdb.Exists(ctx, blockKey).Result()
	if err != nil {
		l.failOpen(err)
		return nil
	}
	if blocked > 0 {
		ttl, _ := l.rdb.TTL(ctx, blockKey).Result()
		return apierrors.NewErrTooManyRequests(fmt.Sprintf("too many codes requested, try again in %s", roundUp(ttl)))
	}

	if l.cooldown > 0 {
		fresh, err := l.rdb.SetNX(ctx, cooldownKey, 1, l.cooldown).Result()
		if err != nil {
			l.failOpen(err)
			return nil
		}
		if !fresh {
			ttl, _ := l.rdb.TTL(ctx, cooldownKey).Result()
			return apierrors.NewErrTooManyRequests(fmt.Sprintf("please wait %s before requesting another code", roundUp(ttl)))
		}
	}

	if l.maxInWindow <= 0 || l.window <= 0 {
		return nil
	}

	count, err := l.countInWindow(ctx, key)
	if err != nil {
		l.failOpen(err)
		return nil
	}
	if count > l.maxInWindow {
		l.rdb.Set(ctx, blockKey, 1, l.window)
		l.logger.Info("OTP limiter: blocked", "user_id", userID, "purpose", purpose, "count", count)
		return apierrors.NewErrTooManyRequests(fmt.Sprintf("too many codes requested, try again in %s", roundUp(l.window)))
	}
	return nil
}

// countInWindow increments the window counter and starts its expiry on the
// first hit. Both commands run in one MULTI so the counter never outlives the
// window.
func (l *OTPLimiter) countInWindow(ctx context.Context, key string) (int64, error) {
	var incr *redis.IntCmd
	_, err := l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, l.window)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count otp requests: %w", err)
	}
	return incr.Val(), nil
}

// Reset clears every counter for the pair. It is called once a code of that
// purpose has been redeemed.
func (l *OTPLimiter) Reset(ctx context.Context, userID uuid.UUID, purpose model.OTPPurpose) error {
	key := limitKey(userID, purpose)
	if err := l.rdb.Del(ctx, key, key+":blocked", key+":cooldown").Err(); err != nil {
		return fmt.Errorf("failed to reset otp limiter: %w", err)
	}
	return nil
}

// Ping checks the Redis connection.
func (l *OTPLimiter) Ping(ctx context.Context) error {
	return l.rdb.Ping(ctx).Err()
}

func (l *OTPLimiter) failOpen(err error) {
	l.logger.Warn("OTP limiter: redis unavailable, allowing request", "error", err.Error())
}

func limitKey(userID uuid.UUID, purpose model.OTPPurpose) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, purpose, userID)
}

func roundUp(d time.Duration) time.Duration {
	if d <= 0 {
		return time.Second
	}
	return d.Round(time.Second)
}
