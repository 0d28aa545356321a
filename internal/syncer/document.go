package syncer

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/ctpsync/internal/draft"
)

// SyncDocument syncs every section of doc, categories first so that products
// can reference categories created in the same run. Empty sections are
// skipped and produce no statistics.
//
// The returned error is non-nil only when ctx is cancelled; the statistics of
// the sections synced so far are returned with it.
func SyncDocument(ctx context.Context, w Writer, l Lookups, doc *draft.Document, opts Options) ([]Statistics, error) {
	steps := []struct {
		n    int
		sync func() (Statistics, error)
	}{
		{len(doc.Categories), func() (Statistics, error) {
			return NewCategorySync(w, l, opts).Sync(ctx, doc.Categories)
		}},
		{len(doc.InventoryEntries), func() (Statistics, error) {
			return NewInventorySync(w, l, opts).Sync(ctx, doc.InventoryEntries)
		}},
		{len(doc.Products), func() (Statistics, error) {
			return NewProductSync(w, l, opts).Sync(ctx, doc.Products)
		}},
		{len(doc.CartDiscounts), func() (Statistics, error) {
			return NewCartDiscountSync(w, l, opts).Sync(ctx, doc.CartDiscounts)
		}},
	}

	var all []Statistics
	for _, step := range steps {
		if step.n == 0 {
			continue
		}
		stats, err := step.sync()
		all = append(all, stats)
		if err != nil {
			return all, err
		}
	}
	return all, nil
}

// ResolveDocument resolves the references of every draft in doc against the
// catalog as it is, without writing anything. Drafts that fail are left out
// of the returned document and reported as *SyncError values in input order.
// Options.EnsureChannels is ignored: a missing supply channel is reported as
// not found instead of being created.
func ResolveDocument(ctx context.Context, l Lookups, doc *draft.Document, opts Options) (*draft.Document, []error) {
	opts.EnsureChannels = false

	var (
		out  draft.Document
		errs []error
		e    []error
	)
	out.Categories, e = NewCategorySync(nil, l, opts).Resolve(ctx, doc.Categories)
	errs = append(errs, e...)
	out.InventoryEntries, e = NewInventorySync(nil, l, opts).Resolve(ctx, doc.InventoryEntries)
	errs = append(errs, e...)
	out.Products, e = NewProductSync(nil, l, opts).Resolve(ctx, doc.Products)
	errs = append(errs, e...)
	out.CartDiscounts, e = NewCartDiscountSync(nil, l, opts).Resolve(ctx, doc.CartDiscounts)
	errs = append(errs, e...)
	return &out, errs
}

// Resolve resolves the references of drafts without writing them. Resolved
// drafts are returned in input order; failures are returned as *SyncError
// values, also in input order. A nil input yields nil.
func (s *Sync[D]) Resolve(ctx context.Context, drafts []D) ([]D, []error) {
	if drafts == nil {
		return nil, nil
	}

	resolved := make([]D, len(drafts))
	failures := make([]*SyncError, len(drafts))

	var g errgroup.Group
	g.SetLimit(s.opts.ParallelProcessing)
	for i, d := range drafts {
		g.Go(func() error {
			key := s.kind.key(d)
			if draft.IsBlank(key) {
				failures[i] = newMissingKeyError(s.kind.draftName, s.kind.keyName)
				return nil
			}
			r, err := s.resolve(ctx, d)
			if err != nil {
				failures[i] = newResolutionError(s.kind.draftName, s.kind.keyName, key, err)
				return nil
			}
			resolved[i] = r
			return nil
		})
	}
	_ = g.Wait()

	out := make([]D, 0, len(drafts))
	var errs []error
	for i := range drafts {
		if failures[i] != nil {
			errs = append(errs, failures[i])
			continue
		}
		out = append(out, resolved[i])
	}
	return out, errs
}
