package syncer

import (
	"context"

	slogcontext "github.com/veqryn/slog-context"

	"github.com/roach88/ctpsync/internal/draft"
	"github.com/roach88/ctpsync/internal/resolve"
	"github.com/roach88/ctpsync/internal/store"
)

// NewCategorySync returns a sync for category drafts.
//
// Parents are synced before their children: drafts are split into levels by
// their depth within the run, and each level is fully synced before the next
// one starts.
func NewCategorySync(w Writer, l Lookups, opts Options) *Sync[draft.CategoryDraft] {
	r := resolve.NewCategoryResolver(l.Lookup(store.TypeType), l.Lookup(store.TypeCategory))
	return &Sync[draft.CategoryDraft]{
		kind: kind[draft.CategoryDraft]{
			resource:     "categories",
			resourceType: store.TypeCategory,
			draftName:    "CategoryDraft",
			keyName:      "key",
			domain:       draft.DomainCategory,
			key:          func(d draft.CategoryDraft) string { return d.Key },
		},
		resolve: r.ResolveReferences,
		writer:  w,
		cache:   l.Cache(),
		opts:    opts.withDefaults(),
		order:   orderByParent,
		warmUp: func(ctx context.Context, drafts []draft.CategoryDraft) {
			var keys []string
			for _, d := range drafts {
				if key, ok, err := resolve.ParentCategoryKey(d); err == nil && ok {
					keys = append(keys, key)
				}
			}
			warmUp(ctx, l, store.TypeCategory, keys)
		},
	}
}

// orderByParent groups drafts by depth: level 0 holds drafts whose parent is
// not part of the run, level n those whose parent is on level n-1. Input
// order is kept within a level. Drafts on a parent cycle are ordered
// arbitrarily along the cycle and fail resolution.
func orderByParent(drafts []draft.CategoryDraft) [][]draft.CategoryDraft {
	index := make(map[string]int, len(drafts))
	for i, d := range drafts {
		index[d.Key] = i
	}

	const (
		unvisited = -1
		visiting  = -2
	)
	depth := make([]int, len(drafts))
	for i := range depth {
		depth[i] = unvisited
	}

	var visit func(i int) int
	visit = func(i int) int {
		switch depth[i] {
		case visiting:
			return -1
		case unvisited:
		default:
			return depth[i]
		}
		depth[i] = visiting

		d := 0
		if key, ok, err := resolve.ParentCategoryKey(drafts[i]); err == nil && ok {
			if p, inRun := index[key]; inRun && p != i {
				d = visit(p) + 1
			}
		}
		if d < 0 {
			d = 0
		}
		depth[i] = d
		return d
	}

	maxDepth := 0
	for i := range drafts {
		maxDepth = max(maxDepth, visit(i))
	}

	levels := make([][]draft.CategoryDraft, maxDepth+1)
	for i, d := range drafts {
		levels[depth[i]] = append(levels[depth[i]], d)
	}
	return levels
}

func warmUp(ctx context.Context, l Lookups, resourceType string, keys []string) {
	if len(keys) == 0 {
		return
	}
	if _, err := l.WarmUp(ctx, resourceType, keys); err != nil {
		// Lookups fall back to single-key fetches.
		slogcontext.FromCtx(ctx).Warn("cache warm-up failed", "resource", resourceType, "error", err)
	}
}
