package cache

import (
	"context"
	"fmt"

	"github.com/mediocregopher/radix/v3"
	"gitlab.com/BIC_Dev/pokedex-interactions/utils/logging"
	"go.uber.org/zap"
)

// Cache struct
type Cache struct {
	Client radix.Client
}

// GetClient instantiates and returns a connection pool
func GetClient(ctx context.Context, host string, port int, poolSize int) (*radix.Pool, *CacheError) {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))

	hostWithPort := fmt.Sprintf("%s:%d", host, port)
	pool, err := radix.NewPool("tcp", hostWithPort, poolSize)

	if err != nil {
		return nil, &CacheError{
			Message: "Unable to create a new cache pool",
			Err:     err,
		}
	}

	logger := logging.Logger(ctx)
	logger.Debug("startup_log", zap.String("redis", hostWithPort))

	return pool, nil
}

// GenerateKey func
func GenerateKey(base string, id interface{}) string {
	return fmt.Sprintf("%s:%s", base, fmt.Sprint(id))
}

// MarkSeen stores key if it is absent and reports whether this call stored it.
// The key expires after ttl seconds when ttl is set.
func (c *Cache) MarkSeen(ctx context.Context, key string, ttl string) (bool, *CacheError) {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))

	var added int
	err := c.Client.Do(radix.Cmd(&added, "SETNX", key, "1"))
	if err != nil {
		return false, &CacheError{
			Err:     err,
			Message: fmt.Sprintf("Unable to SETNX key: %s", key),
		}
	}

	if added == 0 {
		return false, nil
	}

	if ttl != "" {
		exErr := c.Client.Do(radix.Cmd(nil, "EXPIRE", key, ttl))
		if exErr != nil {
			return true, &CacheError{
				Err:     exErr,
				Message: "Unable to set TTL for key",
			}
		}
	}

	return true, nil
}

// Close releases the underlying connections
func (c *Cache) Close() error {
	return c.Client.Close()
}
