package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"pitchbridge/internal/config"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	matchListTTL      = 10 * time.Minute
	generationLockTTL = 2 * time.Minute
)

// Redis is an optional cache: when the server is unreachable every
// operation degrades to a bypass instead of failing the request.
type Redis struct {
	client *redis.Client
	logger *zap.Logger

	warnedUnavailable atomic.Bool
}

func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	if logger == nil {
		logger = zap.NewNop()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, bypassing cache", zap.Error(err))
		_ = client.Close()
		return &Redis{client: nil, logger: logger}
	}

	return &Redis{client: client, logger: logger}
}

func (r *Redis) isUnavailable() bool {
	return r == nil || r.client == nil
}

func (r *Redis) warnUnavailableOnce(err error) {
	if r == nil || r.logger == nil {
		return
	}
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		r.logger.Warn("redis unavailable, bypassing cache", zap.Error(err))
	}
}

func (r *Redis) Ping(ctx context.Context) error {
	if r.isUnavailable() {
		return errors.New("redis unavailable")
	}
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	if r.isUnavailable() {
		return nil
	}
	return r.client.Close()
}

func matchListKey(userID uuid.UUID) string {
	return "matches:user:" + userID.String()
}

func generationLockKey(userID uuid.UUID) string {
	return "matches:genlock:" + userID.String()
}

// GetMatchList reads a cached match list for the user. A miss or any
// redis failure reports found=false.
func (r *Redis) GetMatchList(ctx context.Context, userID uuid.UUID, out any) bool {
	if r.isUnavailable() {
		return false
	}
	b, err := r.client.Get(ctx, matchListKey(userID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.warnUnavailableOnce(err)
		}
		return false
	}
	if len(b) == 0 {
		return false
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false
	}
	return true
}

func (r *Redis) SetMatchList(ctx context.Context, userID uuid.UUID, value any) {
	if r.isUnavailable() {
		return
	}
	b, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, matchListKey(userID), b, matchListTTL).Err(); err != nil {
		r.warnUnavailableOnce(err)
	}
}

// InvalidateMatchLists drops the cached match lists of every affected user.
// Called after generation and after outreach status updates.
func (r *Redis) InvalidateMatchLists(ctx context.Context, userIDs ...uuid.UUID) {
	if r.isUnavailable() {
		return
	}
	for _, id := range userIDs {
		if err := r.client.Del(ctx, matchListKey(id)).Err(); err != nil {
			r.warnUnavailableOnce(err)
			return
		}
	}
}

// AcquireGenerationLock takes a short-lived per-subject lock so two
// simultaneous generation requests for the same subject do not both call
// the oracle. Without redis the lock degrades to always-acquired; the
// unique pair constraint still prevents duplicate rows.
func (r *Redis) AcquireGenerationLock(ctx context.Context, userID uuid.UUID) bool {
	if r.isUnavailable() {
		return true
	}
	ok, err := r.client.SetNX(ctx, generationLockKey(userID), "1", generationLockTTL).Result()
	if err != nil {
		r.warnUnavailableOnce(err)
		return true
	}
	return ok
}

func (r *Redis) ReleaseGenerationLock(ctx context.Context, userID uuid.UUID) {
	if r.isUnavailable() {
		return
	}
	if err := r.client.Del(ctx, generationLockKey(userID)).Err(); err != nil {
		r.warnUnavailableOnce(err)
	}
}
