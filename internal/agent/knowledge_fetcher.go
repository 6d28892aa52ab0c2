package agent

import (
	"context"
	"sort"

	"riftcoach/internal/pipeline"
	"riftcoach/internal/schema"
	"riftcoach/internal/store"
)

// KnowledgeFetcher loads the patch snapshot and pins the user champion's
// record. A missing snapshot or an unresolvable champion is terminal.
type KnowledgeFetcher struct {
	store *store.Store
}

func NewKnowledgeFetcher(st *store.Store) *KnowledgeFetcher {
	return &KnowledgeFetcher{store: st}
}

func (k *KnowledgeFetcher) Name() string { return "knowledge_fetcher" }

func (k *KnowledgeFetcher) Run(_ context.Context, cc *pipeline.CoachContext) pipeline.StageResult {
	uc, ok := cc.UserContext()
	if !ok {
		return pipeline.Fail(k.Name(), "no user context available")
	}

	champions, err := k.store.Champions(cc.Patch)
	if err != nil {
		return pipeline.Failf(k.Name(), "load champion data for patch %s: %v", cc.Patch, err)
	}
	champion, found := findChampion(champions, uc.UserChampion)
	if !found {
		return pipeline.Failf(k.Name(), "champion %q not found in patch %s data", uc.UserChampion, cc.Patch)
	}
	items, err := k.store.Items(cc.Patch)
	if err != nil {
		return pipeline.Failf(k.Name(), "load item data for patch %s: %v", cc.Patch, err)
	}
	runeTrees, err := k.store.RuneTrees(cc.Patch)
	if err != nil {
		return pipeline.Failf(k.Name(), "load rune data for patch %s: %v", cc.Patch, err)
	}

	cc.SetKnowledge(schema.KnowledgeBundle{
		Patch:     cc.Patch,
		Champion:  champion,
		Items:     sortedItems(items),
		RuneTrees: runeTrees,
	})
	return pipeline.OK(k.Name())
}

// sortedItems flattens the item table into a stable id-ordered list.
func sortedItems(items map[string]schema.ItemRecord) []schema.ItemRecord {
	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]schema.ItemRecord, 0, len(keys))
	for _, k := range keys {
		out = append(out, items[k])
	}
	return out
}
