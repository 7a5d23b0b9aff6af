// Package ratelimit ограничивает частоту создания заявок с одного телефона
// или IP. Скользящее окно хранится в Redis, поэтому лимит работает корректно
// и при нескольких экземплярах сервиса.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Clock интерфейс для получения текущего времени (для тестирования)
type Clock interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Limiter скользящее окно поверх Redis sorted set
type Limiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	clock  Clock
	log    Logger
}

// NewLimiter создает limiter: не более limit событий на ключ за window
func NewLimiter(rdb *redis.Client, limit int, window time.Duration, clock Clock, log Logger) *Limiter {
	return &Limiter{
		rdb:    rdb,
		limit:  limit,
		window: window,
		clock:  clock,
		log:    log,
	}
}

// Allow регистрирует событие для ключа и сообщает, укладывается ли оно
// в лимит. При недоступности Redis limiter пропускает запрос (fail-open):
// заявка клиента важнее, чем строгость лимита.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	now := l.clock.Now()
	windowStart := now.Add(-l.window)
	redisKey := "booking_rate:" + key

	pipe := l.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", fmt.Sprintf("%d", windowStart.UnixNano()))
	countCmd := pipe.ZCard(ctx, redisKey)
	pipe.ZAdd(ctx, redisKey, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: now.UnixNano(),
	})
	pipe.Expire(ctx, redisKey, l.window)

	if _, err := pipe.Exec(ctx); err != nil {
		l.log.Warn("ratelimit: redis unavailable, allowing request: %v", err)
		return true, nil
	}

	// countCmd считает события ДО добавления текущего
	return countCmd.Val() < int64(l.limit), nil
}
