package adapter

import (
	"context"
	"time"
)

// CacheStore is the single-slot blob store used for the gateway list and the
// country config. Implementations must allow concurrent readers and take
// exclusive access while replacing a blob; a read-stale-refetch race is
// acceptable (last writer wins).
type CacheStore interface {
	Exists(ctx context.Context, key string) (bool, error)
	ReadAll(ctx context.Context, key string) ([]byte, error)
	WriteAll(ctx context.Context, key string, blob []byte) error
	// LastModified returns the time of the last successful WriteAll for key,
	// or domain.ErrNotFound when the key was never written.
	LastModified(ctx context.Context, key string) (time.Time, error)
}
