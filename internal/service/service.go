// Package service provides the lookup and create collaborators used by
// reference resolution, backed by the catalog store and fronted by the key
// cache.
package service

import (
	"context"
	"errors"
	"fmt"

	slogcontext "github.com/veqryn/slog-context"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/roach88/ctpsync/internal/cache"
	"github.com/roach88/ctpsync/internal/resolve"
	"github.com/roach88/ctpsync/internal/store"
)

// Backend is the part of the catalog store the service needs.
type Backend interface {
	FetchIDByKey(ctx context.Context, resourceType, key string) (string, bool, error)
	FetchIDsByKeys(ctx context.Context, resourceType string, keys []string) (map[string]string, error)
	CreateKey(ctx context.Context, resourceType, key string) (store.Resource, error)
}

// Options configures a Service.
type Options struct {
	// Cache is shared by every lookup of the run. A fresh cache is used when nil.
	Cache *cache.KeyCache

	// LookupRateLimit caps backend lookups per second. Zero means unlimited.
	LookupRateLimit float64

	// LookupBurst is the limiter burst size; defaults to 1.
	LookupBurst int
}

// Service answers key lookups from the cache, falling back to the backend on
// a miss. Concurrent misses for the same key share one backend call.
type Service struct {
	backend Backend
	cache   *cache.KeyCache
	sf      singleflight.Group
	limiter *rate.Limiter
}

type lookupResult struct {
	id    string
	found bool
}

// New creates a Service over backend.
func New(backend Backend, opts Options) *Service {
	s := &Service{backend: backend, cache: opts.Cache}
	if s.cache == nil {
		s.cache = cache.New()
	}
	if opts.LookupRateLimit > 0 {
		burst := opts.LookupBurst
		if burst <= 0 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(opts.LookupRateLimit), burst)
	}
	return s
}

// Cache returns the key cache the service fills.
func (s *Service) Cache() *cache.KeyCache {
	return s.cache
}

// Lookup returns the cached lookup for one resource type.
func (s *Service) Lookup(resourceType string) resolve.Lookup {
	return s.cache.Lookup(resourceType, s.fetch(resourceType))
}

func (s *Service) fetch(resourceType string) cache.Fetch {
	return func(ctx context.Context, key string) (string, bool, error) {
		if err := ctx.Err(); err != nil {
			return "", false, err
		}

		// The shared call outlives any single caller.
		detached := context.WithoutCancel(ctx)
		ch := s.sf.DoChan(flightKey(resourceType, key), func() (any, error) {
			if s.limiter != nil {
				if err := s.limiter.Wait(detached); err != nil {
					return nil, fmt.Errorf("wait for lookup slot: %w", err)
				}
			}
			id, found, err := s.backend.FetchIDByKey(detached, resourceType, key)
			if err != nil {
				return nil, err
			}
			return lookupResult{id: id, found: found}, nil
		})

		var r singleflight.Result
		select {
		case <-ctx.Done():
			return "", false, ctx.Err()
		case r = <-ch:
		}
		if r.Err != nil {
			return "", false, r.Err
		}

		res := r.Val.(lookupResult)
		slogcontext.FromCtx(ctx).Debug("fetched key",
			"resource", resourceType, "key", key, "found", res.found, "shared", r.Shared)
		return res.id, res.found, nil
	}
}

func flightKey(resourceType, key string) string {
	return resourceType + "\x00" + key
}

// Create returns a create function for one resource type. The created id is
// put into the cache. A key that already exists yields an error matching
// resolve.ErrAlreadyExists, and any lookup of that key still in flight is
// forgotten so the caller's retry reaches the backend again.
func (s *Service) Create(resourceType string) resolve.Create {
	return func(ctx context.Context, key string) (string, error) {
		r, err := s.backend.CreateKey(ctx, resourceType, key)
		if errors.Is(err, store.ErrDuplicateKey) {
			s.sf.Forget(flightKey(resourceType, key))
			return "", fmt.Errorf("%w: %w", resolve.ErrAlreadyExists, err)
		}
		if err != nil {
			return "", err
		}
		slogcontext.FromCtx(ctx).Info("created resource", "resource", resourceType, "key", key, "id", r.ID)
		return s.cache.Put(resourceType, key, r.ID), nil
	}
}

// CreateChannel creates a supply channel with the given key.
func (s *Service) CreateChannel(ctx context.Context, key string) (string, error) {
	return s.Create(store.TypeChannel)(ctx, key)
}

// WarmUp fills the cache for keys with a single bulk query and returns the
// number of keys that were found. Missing keys are left uncached.
func (s *Service) WarmUp(ctx context.Context, resourceType string, keys []string) (int, error) {
	missing := make([]string, 0, len(keys))
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if seen[k] {
			continue
		}
		seen[k] = true
		if _, ok := s.cache.Get(resourceType, k); !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) == 0 {
		return 0, nil
	}

	ids, err := s.backend.FetchIDsByKeys(ctx, resourceType, missing)
	if err != nil {
		return 0, fmt.Errorf("warm up %s cache: %w", resourceType, err)
	}
	for k, id := range ids {
		s.cache.Put(resourceType, k, id)
	}

	slogcontext.FromCtx(ctx).Debug("warmed up key cache",
		"resource", resourceType, "requested", len(missing), "found", len(ids))
	return len(ids), nil
}
