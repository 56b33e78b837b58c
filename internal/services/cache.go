package services

import (
	"context"
	"fmt"
	"time"
)

// SummaryCache is the subset of the Redis client used for caching computed
// portfolio summaries. A nil cache disables caching entirely.
type SummaryCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

func summaryCacheKey(userID string) string {
	return fmt.Sprintf("summary:%s", userID)
}
