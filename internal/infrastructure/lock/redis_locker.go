// Package lock bloqueo de documentos entre instancias con Redis.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

const (
	lockTTL      = 30 * time.Second
	retryBackoff = 50 * time.Millisecond
	maxRetries   = 20
)

// RedisLocker toma un lock por documento ("purchase:<id>", "sale:<id>").
// Si no se obtiene tras ~1s devuelve domain.ErrConflict.
type RedisLocker struct {
	locker *redislock.Client
	log    *logger.Logger
}

// NewRedisLocker construye el locker sobre el cliente de Redis.
func NewRedisLocker(rdb *redis.Client, log *logger.Logger) *RedisLocker {
	if log == nil {
		log = logger.Nop()
	}
	return &RedisLocker{locker: redislock.New(rdb), log: log}
}

// Lock obtiene el lock de key; unlock lo libera.
func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	opts := &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(retryBackoff), maxRetries),
	}
	lk, err := l.locker.Obtain(ctx, "lock:"+key, lockTTL, opts)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, fmt.Errorf("%s: %w", key, domain.ErrConflict)
	}
	if err != nil {
		return nil, domain.NewStorageError("obtain lock", err)
	}
	return func() {
		// contexto propio: el de la petición puede estar cancelado al liberar
		if err := lk.Release(context.Background()); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			l.log.Warn().Err(err).Str("key", key).Msg("no se pudo liberar el lock")
		}
	}, nil
}
