package syncer

import (
	"context"
	"errors"

	slogcontext "github.com/veqryn/slog-context"
	"golang.org/x/sync/errgroup"

	"github.com/roach88/ctpsync/internal/cache"
	"github.com/roach88/ctpsync/internal/draft"
	"github.com/roach88/ctpsync/internal/resolve"
	"github.com/roach88/ctpsync/internal/store"
)

// Writer is the part of the catalog store the sync loop writes to.
type Writer interface {
	Get(ctx context.Context, resourceType, key string) (store.Resource, error)
	Create(ctx context.Context, resourceType, key string, payload any, hash string) (store.Resource, error)
	Update(ctx context.Context, resourceType, id string, payload any, hash string) (bool, error)
}

// Lookups provides the cached lookups and creates that resolvers run on.
// *service.Service implements it.
type Lookups interface {
	Lookup(resourceType string) resolve.Lookup
	Create(resourceType string) resolve.Create
	WarmUp(ctx context.Context, resourceType string, keys []string) (int, error)
	Cache() *cache.KeyCache
}

// Resolver resolves the references of one draft.
type Resolver[D any] func(ctx context.Context, d D) (D, error)

// kind describes one resource type to the generic loop.
type kind[D any] struct {
	resource     string // plural, for reports
	resourceType string // store resource type
	draftName    string
	keyName      string
	domain       string // content hash domain
	key          func(D) string
}

// Sync syncs drafts of one resource type into the catalog.
type Sync[D any] struct {
	kind    kind[D]
	resolve Resolver[D]
	writer  Writer
	cache   *cache.KeyCache
	opts    Options

	// order splits drafts into levels synced one after the other.
	order func([]D) [][]D

	// warmUp prefetches referenced keys before the first batch.
	warmUp func(ctx context.Context, drafts []D)
}

// Sync processes drafts in batches and returns the run's statistics.
//
// Per-draft failures are reported through Options.ErrorCallback and never
// returned. The returned error is non-nil only when ctx is cancelled between
// batches; the statistics then cover the batches that completed.
func (s *Sync[D]) Sync(ctx context.Context, drafts []D) (Statistics, error) {
	runID := s.opts.RunID()
	logger := slogcontext.FromCtx(ctx).With("run_id", runID, "resource", s.kind.resource)
	ctx = slogcontext.NewCtx(ctx, logger)

	var c counters
	seen := make(map[string]bool, len(drafts))
	valid := make([]D, 0, len(drafts))
	for _, d := range drafts {
		c.processed.Add(1)
		key := s.kind.key(d)
		if draft.IsBlank(key) {
			s.fail(ctx, &c, newMissingKeyError(s.kind.draftName, s.kind.keyName))
			continue
		}
		if seen[key] {
			msg := "Skipping " + s.kind.draftName + " with " + s.kind.keyName + ":'" + key +
				"' because a draft with the same " + s.kind.keyName + " was already processed in this run."
			logger.Warn(msg)
			s.opts.WarningCallback(msg)
			continue
		}
		seen[key] = true
		valid = append(valid, d)
	}

	if s.warmUp != nil && len(valid) > 0 {
		s.warmUp(ctx, valid)
	}

	levels := [][]D{valid}
	if s.order != nil {
		levels = s.order(valid)
	}

	batches := 0
	for _, level := range levels {
		for start := 0; start < len(level); start += s.opts.BatchSize {
			if err := ctx.Err(); err != nil {
				return c.snapshot(s.kind.resource, runID), err
			}
			end := min(start+s.opts.BatchSize, len(level))
			s.syncBatch(ctx, level[start:end], &c)
			batches++
		}
	}

	stats := c.snapshot(s.kind.resource, runID)
	logger.Info(stats.ReportMessage(), "batches", batches)
	return stats, nil
}

func (s *Sync[D]) syncBatch(ctx context.Context, batch []D, c *counters) {
	var g errgroup.Group
	g.SetLimit(s.opts.ParallelProcessing)
	for _, d := range batch {
		g.Go(func() error {
			s.syncDraft(ctx, d, c)
			return nil
		})
	}
	_ = g.Wait()
}

func (s *Sync[D]) syncDraft(ctx context.Context, d D, c *counters) {
	key := s.kind.key(d)

	resolved, err := s.resolve(ctx, d)
	if err != nil {
		s.fail(ctx, c, newResolutionError(s.kind.draftName, s.kind.keyName, key, err))
		return
	}

	hash, err := draft.Hash(s.kind.domain, resolved)
	if err != nil {
		s.fail(ctx, c, newWriteError(s.kind.draftName, s.kind.keyName, key, err))
		return
	}

	created, changed, err := s.write(ctx, key, resolved, hash)
	if err != nil {
		s.fail(ctx, c, newWriteError(s.kind.draftName, s.kind.keyName, key, err))
		return
	}
	switch {
	case created:
		c.created.Add(1)
	case changed:
		c.updated.Add(1)
	default:
		slogcontext.FromCtx(ctx).Debug("draft unchanged", s.kind.keyName, key)
	}
}

// write creates the resource or updates it when its hash differs. A create
// that loses a race against a concurrent writer falls back to an update.
func (s *Sync[D]) write(ctx context.Context, key string, resolved D, hash string) (created, changed bool, err error) {
	rt := s.kind.resourceType

	existing, err := s.writer.Get(ctx, rt, key)
	if errors.Is(err, store.ErrNotFound) {
		var r store.Resource
		r, err = s.writer.Create(ctx, rt, key, resolved, hash)
		if err == nil {
			s.remember(key, r.ID)
			return true, true, nil
		}
		if !errors.Is(err, store.ErrDuplicateKey) {
			return false, false, err
		}
		existing, err = s.writer.Get(ctx, rt, key)
	}
	if err != nil {
		return false, false, err
	}

	s.remember(key, existing.ID)
	changed, err = s.writer.Update(ctx, rt, existing.ID, resolved, hash)
	return false, changed, err
}

func (s *Sync[D]) remember(key, id string) {
	if s.cache != nil {
		s.cache.Put(s.kind.resourceType, key, id)
	}
}

func (s *Sync[D]) fail(ctx context.Context, c *counters, err *SyncError) {
	c.failed.Add(1)
	slogcontext.FromCtx(ctx).Error("draft failed to sync", "code", err.Code, "key", err.Key, "error", err.Message)
	s.opts.ErrorCallback(err.Message, err)
}
