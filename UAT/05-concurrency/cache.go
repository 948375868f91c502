package concurrency

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Cache is the dependency shared by concurrent workers.
type Cache interface {
	Get(key string) (string, bool)
	Put(key, value string)
}

// Warm fetches every key from cache on workers goroutines and fills in the
// misses with fill(key). It returns the number of misses.
func Warm(ctx context.Context, cache Cache, keys []string, workers int, fill func(string) string) (int, error) {
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	misses := make(chan struct{}, len(keys))

	for _, key := range keys {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("warm %q: %w", key, err)
			}

			if _, ok := cache.Get(key); ok {
				return nil
			}

			cache.Put(key, fill(key))
			misses <- struct{}{}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return 0, fmt.Errorf("warming cache: %w", err)
	}

	return len(misses), nil
}
