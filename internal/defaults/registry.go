// Package defaults holds the tag/role-keyed build, rune, and skill defaults
// the build resolver draws from. The table ships embedded; an on-disk
// override can be loaded and hot-reloaded instead.
package defaults

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"riftcoach/internal/logger"
	"riftcoach/internal/schema"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var embeddedTable []byte

// Key addresses one defaults bundle: a champion tag paired with a role.
type Key struct {
	Tag  string
	Role schema.Role
}

func (k Key) String() string { return k.Tag + "/" + string(k.Role) }

// Bundle is one complete set of defaults for a (tag, role) pair.
type Bundle struct {
	Build         schema.BuildBlock `yaml:"build"`
	Runes         schema.RuneBlock  `yaml:"runes"`
	SkillOrder    schema.SkillOrder `yaml:"skill_order"`
	LaningTips    []string          `yaml:"laning_tips"`
	TeamfightTips []string          `yaml:"teamfight_tips"`
	ObjectiveTips []string          `yaml:"objective_tips"`
}

type fileConfig struct {
	Bundles   map[string]Bundle `yaml:"bundles"`
	Fallbacks map[string]string `yaml:"fallbacks"`
}

// Registry resolves (tags, role) to a bundle. The table is checked at load
// time: every role must have a fallback key and that key must be present,
// so a missing fallback is caught when the table is authored, not when a
// pipeline invocation hits it.
type Registry struct {
	path string

	mu        sync.RWMutex
	bundles   map[Key]Bundle
	fallbacks map[schema.Role]Key
}

// Load reads the defaults table from path, or the embedded table when path
// is empty.
func Load(path string) (*Registry, error) {
	r := &Registry{path: strings.TrimSpace(path)}
	if err := r.reload(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Registry) reload() error {
	raw := embeddedTable
	source := "embedded"
	if r.path != "" {
		data, err := os.ReadFile(r.path)
		if err != nil {
			return fmt.Errorf("read defaults table: %w", err)
		}
		raw = data
		source = filepath.Base(r.path)
	}
	bundles, fallbacks, err := parseTable(raw)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.bundles = bundles
	r.fallbacks = fallbacks
	r.mu.Unlock()
	logger.Infof("defaults table loaded: %d bundles (%s)", len(bundles), source)
	return nil
}

// Watch reloads the table whenever the backing file changes. It returns
// immediately when the registry uses the embedded table. Close the watcher
// by cancelling the passed stop channel.
func (r *Registry) Watch(stop <-chan struct{}) error {
	if r.path == "" {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("defaults watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(r.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("defaults watcher add: %w", err)
	}
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-stop:
				return
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != filepath.Clean(r.path) {
					continue
				}
				if !evt.Op.Has(fsnotify.Write) && !evt.Op.Has(fsnotify.Create) {
					continue
				}
				if err := r.reload(); err != nil {
					logger.Errorf("defaults reload failed: %v", err)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warnf("defaults watcher: %v", err)
			}
		}
	}()
	return nil
}

// Resolve walks tags in their given order and returns the first bundle whose
// "<tag>/<role>" key is present, falling back to the role's fixed default
// key. A missing fallback signals a defaults-table authoring bug and is an
// error.
func (r *Registry) Resolve(tags []string, role schema.Role) (Bundle, string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, tag := range tags {
		k := Key{Tag: strings.TrimSpace(tag), Role: role}
		if b, ok := r.bundles[k]; ok {
			return b, k.String(), nil
		}
	}
	fk, ok := r.fallbacks[role]
	if !ok {
		return Bundle{}, "", fmt.Errorf("defaults table has no fallback key for role %q", role)
	}
	if b, ok := r.bundles[fk]; ok {
		return b, fk.String(), nil
	}
	return Bundle{}, "", fmt.Errorf("defaults table fallback key %q missing for role %q", fk, role)
}

// Keys returns every bundle key in the table, in no particular order.
func (r *Registry) Keys() []Key {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Key, 0, len(r.bundles))
	for k := range r.bundles {
		out = append(out, k)
	}
	return out
}

// Plan copies a bundle verbatim into the pipeline's BuildPlan shape. Slices
// are copied so the registry's table stays immutable across invocations.
func (b Bundle) Plan() schema.BuildPlan {
	return schema.BuildPlan{
		RecommendedBuild: schema.BuildBlock{
			Starter:     cloneStrings(b.Build.Starter),
			CoreItems:   cloneStrings(b.Build.CoreItems),
			Boots:       b.Build.Boots,
			Situational: cloneStrings(b.Build.Situational),
		},
		RecommendedRunes: schema.RuneBlock{
			PrimaryTree:     b.Runes.PrimaryTree,
			PrimaryKeystone: b.Runes.PrimaryKeystone,
			PrimarySlots:    cloneStrings(b.Runes.PrimarySlots),
			SecondaryTree:   b.Runes.SecondaryTree,
			SecondarySlots:  cloneStrings(b.Runes.SecondarySlots),
		},
		SkillOrder: schema.SkillOrder{
			FirstThree: cloneStrings(b.SkillOrder.FirstThree),
			MaxOrder:   cloneStrings(b.SkillOrder.MaxOrder),
		},
		LaningTips:    cloneStrings(b.LaningTips),
		TeamfightTips: cloneStrings(b.TeamfightTips),
		ObjectiveTips: cloneStrings(b.ObjectiveTips),
	}
}

func parseTable(raw []byte) (map[Key]Bundle, map[schema.Role]Key, error) {
	var cfg fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, nil, fmt.Errorf("parse defaults table: %w", err)
	}
	bundles := make(map[Key]Bundle, len(cfg.Bundles))
	for composite, bundle := range cfg.Bundles {
		key, err := parseKey(composite)
		if err != nil {
			return nil, nil, err
		}
		if err := checkBundle(composite, bundle); err != nil {
			return nil, nil, err
		}
		bundles[key] = bundle
	}
	fallbacks := make(map[schema.Role]Key, len(cfg.Fallbacks))
	for roleName, composite := range cfg.Fallbacks {
		role := schema.Role(strings.TrimSpace(roleName))
		if !role.Valid() {
			return nil, nil, fmt.Errorf("defaults fallbacks: unknown role %q", roleName)
		}
		key, err := parseKey(composite)
		if err != nil {
			return nil, nil, fmt.Errorf("defaults fallbacks[%s]: %w", roleName, err)
		}
		if _, ok := bundles[key]; !ok {
			return nil, nil, fmt.Errorf("defaults fallbacks[%s]: key %q not in bundles", roleName, composite)
		}
		fallbacks[role] = key
	}
	for _, role := range schema.Roles {
		if _, ok := fallbacks[role]; !ok {
			return nil, nil, fmt.Errorf("defaults fallbacks: role %q has no entry", role)
		}
	}
	return bundles, fallbacks, nil
}

func parseKey(composite string) (Key, error) {
	parts := strings.Split(strings.TrimSpace(composite), "/")
	if len(parts) != 2 {
		return Key{}, fmt.Errorf("defaults key %q: want \"<tag>/<role>\"", composite)
	}
	tag := strings.TrimSpace(parts[0])
	role := schema.Role(strings.TrimSpace(parts[1]))
	if tag == "" {
		return Key{}, fmt.Errorf("defaults key %q: empty tag", composite)
	}
	if !role.Valid() {
		return Key{}, fmt.Errorf("defaults key %q: unknown role %q", composite, parts[1])
	}
	return Key{Tag: tag, Role: role}, nil
}

// checkBundle enforces the package-level length constraints at load time so
// every bundle the resolver can return already passes the terminal gate.
func checkBundle(key string, b Bundle) error {
	switch {
	case len(b.Build.Starter) == 0:
		return fmt.Errorf("defaults bundle %q: starter items required", key)
	case len(b.Build.CoreItems) < 2 || len(b.Build.CoreItems) > 4:
		return fmt.Errorf("defaults bundle %q: core_items length must be in [2,4]", key)
	case strings.TrimSpace(b.Build.Boots) == "":
		return fmt.Errorf("defaults bundle %q: boots required", key)
	case b.Runes.PrimaryTree == "" || b.Runes.PrimaryKeystone == "" || b.Runes.SecondaryTree == "":
		return fmt.Errorf("defaults bundle %q: rune trees and keystone required", key)
	case len(b.Runes.PrimarySlots) != 3:
		return fmt.Errorf("defaults bundle %q: primary_slots length must be 3", key)
	case len(b.Runes.SecondarySlots) != 2:
		return fmt.Errorf("defaults bundle %q: secondary_slots length must be 2", key)
	case len(b.SkillOrder.FirstThree) != 3:
		return fmt.Errorf("defaults bundle %q: first_three length must be 3", key)
	case len(b.SkillOrder.MaxOrder) < 3:
		return fmt.Errorf("defaults bundle %q: max_order needs at least 3 entries", key)
	case len(b.LaningTips) == 0 || len(b.TeamfightTips) == 0 || len(b.ObjectiveTips) == 0:
		return fmt.Errorf("defaults bundle %q: every tip list needs at least one entry", key)
	}
	return nil
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
