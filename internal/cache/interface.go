package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Cache stores JSON documents under string keys. A miss is reported through
// the found flag, not as an error.
type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	// Delete removes every key in one round trip. Absent keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}

const productKeyPrefix = "product"

func ProductKey(id uuid.UUID) string {
	return productKeyPrefix + ":" + id.String()
}
