package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"riftcoach/internal/logger"
	"riftcoach/internal/schema"
	"riftcoach/internal/store"

	"golang.org/x/sync/errgroup"
)

// Ingester runs one snapshot job: fetch the three static-data files for a
// patch in parallel, trim them, and write the snapshot atomically enough
// that the current marker only moves after all files landed.
type Ingester struct {
	client *Client
	store  *store.Store
	// IndexPath, when set, rebuilds the sqlite champion search index
	// after a successful snapshot.
	IndexPath string
}

func NewIngester(client *Client, st *store.Store) *Ingester {
	return &Ingester{client: client, store: st}
}

// Run snapshots the given patch; an empty version means the newest patch
// from the version manifest. Returns the patch that was ingested.
func (ig *Ingester) Run(ctx context.Context, version string) (string, error) {
	if version == "" {
		latest, err := ig.client.LatestVersion(ctx)
		if err != nil {
			return "", err
		}
		version = latest
	}
	logger.Infof("ingesting patch %s", version)

	var (
		champions map[string]schema.ChampionRecord
		items     map[string]schema.ItemRecord
		runeTrees []schema.RuneTreeRecord
	)
	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		raw, err := ig.client.Champions(gctx, version)
		if err != nil {
			return err
		}
		champions, err = TrimChampions(raw)
		return err
	})
	group.Go(func() error {
		raw, err := ig.client.Items(gctx, version)
		if err != nil {
			return err
		}
		items, err = TrimItems(raw)
		return err
	})
	group.Go(func() error {
		raw, err := ig.client.RuneTrees(gctx, version)
		if err != nil {
			return err
		}
		runeTrees, err = TrimRuneTrees(raw)
		return err
	})
	if err := group.Wait(); err != nil {
		return "", fmt.Errorf("ingest patch %s: %w", version, err)
	}

	dir := filepath.Join(ig.store.Dir(), version)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}
	if err := writeJSON(filepath.Join(dir, "champions.json"), champions); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(dir, "items.json"), items); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(dir, "runetrees.json"), runeTrees); err != nil {
		return "", err
	}
	digest := RenderMarkdown(version, champions, items, runeTrees)
	if err := os.WriteFile(filepath.Join(dir, "summary.md"), []byte(digest), 0o644); err != nil {
		return "", fmt.Errorf("write snapshot digest: %w", err)
	}
	if err := ig.store.SetCurrentVersion(version); err != nil {
		return "", err
	}
	logger.Infof("patch %s ingested: %d champions, %d items, %d rune trees",
		version, len(champions), len(items), len(runeTrees))

	if ig.IndexPath != "" {
		if err := RebuildIndex(ig.IndexPath, champions); err != nil {
			logger.Warnf("champion index rebuild failed: %v", err)
		}
	}
	return version, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
