// Package store gives read access to the on-disk knowledge snapshots the
// ingest command produces. A snapshot is one directory per patch holding
// champions.json, items.json, and runetrees.json; a "current" marker file
// names the active patch.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"riftcoach/internal/schema"
)

// ErrNotFound marks a missing patch directory or a missing record inside
// one. Callers match it with errors.Is.
var ErrNotFound = errors.New("not found")

const currentMarker = "current"

// Store reads champion, item, and rune snapshots from a data directory.
type Store struct {
	dir string
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) Dir() string { return s.dir }

// ResolveCurrentVersion returns the patch a request should run against: the
// contents of the "current" marker when present, otherwise the highest
// version directory on disk.
func (s *Store) ResolveCurrentVersion() (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, currentMarker))
	if err == nil {
		v := strings.TrimSpace(string(data))
		if v != "" {
			return v, nil
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("read current marker: %w", err)
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return "", fmt.Errorf("list data dir: %w", err)
	}
	best := ""
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		name := e.Name()
		if versionLess(best, name) {
			best = name
		}
	}
	if best == "" {
		return "", fmt.Errorf("no patch snapshots in %s: %w", s.dir, ErrNotFound)
	}
	return best, nil
}

// HasVersion reports whether a complete snapshot exists for the patch.
func (s *Store) HasVersion(version string) bool {
	for _, f := range []string{"champions.json", "items.json", "runetrees.json"} {
		if _, err := os.Stat(filepath.Join(s.dir, version, f)); err != nil {
			return false
		}
	}
	return true
}

// SetCurrentVersion writes the "current" marker.
func (s *Store) SetCurrentVersion(version string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	path := filepath.Join(s.dir, currentMarker)
	if err := os.WriteFile(path, []byte(version+"\n"), 0o644); err != nil {
		return fmt.Errorf("write current marker: %w", err)
	}
	return nil
}

// Champions loads the champion table for a patch, keyed by champion id.
func (s *Store) Champions(version string) (map[string]schema.ChampionRecord, error) {
	var out map[string]schema.ChampionRecord
	if err := s.readSnapshot(version, "champions.json", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Items loads the item table for a patch, keyed by numeric item id.
func (s *Store) Items(version string) (map[string]schema.ItemRecord, error) {
	var out map[string]schema.ItemRecord
	if err := s.readSnapshot(version, "items.json", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RuneTrees loads the rune tree list for a patch.
func (s *Store) RuneTrees(version string) ([]schema.RuneTreeRecord, error) {
	var out []schema.RuneTreeRecord
	if err := s.readSnapshot(version, "runetrees.json", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) readSnapshot(version, file string, v any) error {
	path := filepath.Join(s.dir, version, file)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("snapshot %s for patch %s: %w", file, version, ErrNotFound)
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// versionLess compares dotted patch strings numerically segment by segment,
// so "14.10.1" sorts above "14.9.1". Non-numeric segments fall back to
// string order.
func versionLess(a, b string) bool {
	if a == "" {
		return b != ""
	}
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		ai, aerr := strconv.Atoi(as[i])
		bi, berr := strconv.Atoi(bs[i])
		if aerr != nil || berr != nil {
			if as[i] != bs[i] {
				return as[i] < bs[i]
			}
			continue
		}
		if ai != bi {
			return ai < bi
		}
	}
	return len(as) < len(bs)
}
