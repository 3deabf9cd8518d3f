// Package cache caché de reportes sobre Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "reports:"
	// keySet conjunto con todas las claves escritas, para invalidarlas sin SCAN.
	keySet = "reports:keys"
)

// invalidateScript lee el conjunto y borra sus claves en un solo paso: Redis ejecuta el
// script de forma atómica, así un Set concurrente queda entero antes o entero después.
// Se borra por lotes para no exceder el límite de argumentos de unpack.
var invalidateScript = redis.NewScript(`
local keys = redis.call('SMEMBERS', KEYS[1])
for i = 1, #keys, 500 do
	redis.call('DEL', unpack(keys, i, math.min(i + 499, #keys)))
end
redis.call('DEL', KEYS[1])
return #keys
`)

// ReportCache guarda reportes en Redis como JSON con TTL.
// Con cliente nil todas las operaciones son no-op (Redis es opcional).
type ReportCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewReportCache construye la caché. rdb puede ser nil.
func NewReportCache(rdb *redis.Client, ttl time.Duration) *ReportCache {
	return &ReportCache{rdb: rdb, ttl: ttl}
}

// Get deserializa en dst el valor de key; false si no está.
func (c *ReportCache) Get(ctx context.Context, key string, dst interface{}) (bool, error) {
	if c == nil || c.rdb == nil {
		return false, nil
	}
	val, err := c.rdb.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := json.Unmarshal(val, dst); err != nil {
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return true, nil
}

// Set serializa v y lo guarda con el TTL configurado.
func (c *ReportCache) Set(ctx context.Context, key string, v interface{}) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	full := keyPrefix + key
	_, err = c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, full, b, c.ttl)
		pipe.SAdd(ctx, keySet, full)
		return nil
	})
	if err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// Invalidate borra todos los reportes guardados. Se llama tras cada movimiento confirmado.
func (c *ReportCache) Invalidate(ctx context.Context) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	if err := invalidateScript.Run(ctx, c.rdb, []string{keySet}).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}
