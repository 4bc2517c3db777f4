package query

import (
	"context"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/aulago/aulago/internal/pkg"
)

// Resolver reads list and entity queries through the cache. A fresh entry is
// served as-is; a stale entry is served immediately while a background
// refetch revalidates it; a missing entry blocks on the fetch. Concurrent
// identical fetches for the same key are collapsed into one network call.
type Resolver struct {
	cache    *Cache
	group    singleflight.Group
	logger   *slog.Logger
	onUpdate func(key string)
}

// NewResolver creates a Resolver over the given cache.
func NewResolver(cache *Cache, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{cache: cache, logger: logger}
}

// Cache exposes the underlying cache for mutation side effects
// (invalidate/patch).
func (r *Resolver) Cache() *Cache {
	return r.cache
}

// OnUpdate registers a callback invoked after a background revalidation
// lands a newer value for a key. Screens use it to re-render.
func (r *Resolver) OnUpdate(fn func(key string)) {
	r.onUpdate = fn
}

// Resolve returns the value for key, fetching when needed. The returned
// stale flag is true when the value came from a stale cache entry and a
// background revalidation was started; the caller should render it rather
// than show a loading state.
func Resolve[T any](ctx context.Context, r *Resolver, key string, fetch func(context.Context) (*T, error)) (value *T, stale bool, err error) {
	if v, fresh, ok := r.cache.Get(key); ok {
		cached, castOK := v.(*T)
		if castOK {
			if fresh {
				return cached, false, nil
			}
			r.revalidate(key, func(ctx context.Context) (any, error) {
				return fetch(ctx)
			})
			return cached, true, nil
		}
	}

	// Detach from the initiating caller's cancellation so a shared in-flight
	// call survives one subscriber going away; the transport's own timeout
	// still bounds the request.
	v, gen, err := r.fetchShared(context.WithoutCancel(ctx), key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		return nil, false, err
	}

	result := v.(*T)
	r.cache.SetIfGeneration(key, result, gen)
	return result, false, nil
}

// fetched pairs a fetch result with the generation its request was issued
// under.
type fetched struct {
	value any
	gen   uint64
}

// fetchShared runs fetch through the singleflight group and returns the value
// together with the issue-time generation of the request that produced it.
// The generation must be read inside the shared call: a caller joining an
// already-in-flight fetch after an invalidation would otherwise capture the
// bumped generation and commit the superseded response as current.
func (r *Resolver) fetchShared(ctx context.Context, key string, fetch func(context.Context) (any, error)) (any, uint64, error) {
	v, err, _ := r.group.Do(key, func() (any, error) {
		gen := r.cache.Generation(key)
		value, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		return fetched{value: value, gen: gen}, nil
	})
	if err != nil {
		return nil, 0, err
	}
	f := v.(fetched)
	return f.value, f.gen, nil
}

// revalidate refetches key in the background and commits the result only if
// the key's generation has not moved since the request was issued.
func (r *Resolver) revalidate(key string, fetch func(context.Context) (any, error)) {
	go pkg.Guard(r.logger, "revalidate "+key, func() {
		v, gen, err := r.fetchShared(context.Background(), key, fetch)
		if err != nil {
			// The stale value stays visible; the next read retries.
			r.logger.Debug("revalidation failed",
				slog.String("key", key),
				slog.Any("error", err),
			)
			return
		}
		if r.cache.SetIfGeneration(key, v, gen) && r.onUpdate != nil {
			r.onUpdate(key)
		}
	})
}
