package adapter

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/kasicash/kasi/internal/domain/port"
	"github.com/kasicash/kasi/internal/domain/valueobject"
	"github.com/kasicash/kasi/internal/infrastructure/cache"
)

// Compile-time interface check.
var _ port.CreditBureau = (*CachedBureau)(nil)

const creditReportKeyPrefix = "credit:report:"

// CachedBureau is a read-through cache in front of a CreditBureau. Cache
// failures degrade to a direct bureau call; they never fail the request.
type CachedBureau struct {
	inner  port.CreditBureau
	cache  cache.Cache
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedBureau wraps inner with a cache.
func NewCachedBureau(inner port.CreditBureau, c cache.Cache, ttl time.Duration, logger *slog.Logger) *CachedBureau {
	return &CachedBureau{inner: inner, cache: c, ttl: ttl, logger: logger}
}

// PullReport serves from cache when possible, falling back to the bureau.
func (b *CachedBureau) PullReport(ctx context.Context, nationalID string) (valueobject.CreditReport, error) {
	key := creditReportKeyPrefix + nationalID

	if raw, ok := b.cache.Get(ctx, key); ok {
		var report valueobject.CreditReport
		if err := json.Unmarshal([]byte(raw), &report); err == nil {
			return report, nil
		}
		b.logger.Warn("discarding unreadable cached credit report", "key", key)
	}

	report, err := b.inner.PullReport(ctx, nationalID)
	if err != nil {
		return valueobject.CreditReport{}, err
	}

	if raw, err := json.Marshal(report); err == nil {
		if err := b.cache.Set(ctx, key, string(raw), b.ttl); err != nil {
			b.logger.Warn("failed to cache credit report", "error", err)
		}
	}
	return report, nil
}
