package cache

import (
	"context"
	"time"
)

// Cache is a minimal string cache used for read-through caching of external
// lookups. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}
