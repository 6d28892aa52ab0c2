package agent

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"riftcoach/internal/defaults"
	"riftcoach/internal/pipeline"
	"riftcoach/internal/schema"
	"riftcoach/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPatch = "15.17.1"

func writeFixtureStore(t *testing.T) *store.Store {
	t.Helper()
	dir := t.TempDir()
	patchDir := filepath.Join(dir, testPatch)
	require.NoError(t, os.MkdirAll(patchDir, 0o755))

	writeJSON := func(name string, v any) {
		data, err := json.Marshal(v)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(patchDir, name), data, 0o644))
	}
	writeJSON("champions.json", fixtureChampions())
	writeJSON("items.json", map[string]schema.ItemRecord{
		"3074": {ID: "3074", Name: "Ravenous Hydra", Gold: 3300},
		"3153": {ID: "3153", Name: "Blade of the Ruined King", Gold: 3200},
	})
	writeJSON("runetrees.json", []schema.RuneTreeRecord{
		{ID: 8000, Key: "Precision", Name: "Precision"},
		{ID: 8400, Key: "Resolve", Name: "Resolve"},
	})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "current"), []byte(testPatch+"\n"), 0o644))
	return store.New(dir)
}

func newTestRunner(t *testing.T, st *store.Store) *pipeline.Runner {
	t.Helper()
	champions, err := st.Champions(testPatch)
	require.NoError(t, err)
	registry, err := defaults.Load("")
	require.NoError(t, err)
	gate, err := schema.NewValidator()
	require.NoError(t, err)
	return pipeline.NewRunner(
		NewSlotResolver(champions),
		NewContextExtractor(),
		NewRoleInference(champions),
		NewKnowledgeFetcher(st),
		NewBuildPlanner(registry),
		NewValidator(gate),
	)
}

func TestPipelineEndToEnd(t *testing.T) {
	st := writeFixtureStore(t)
	runner := newTestRunner(t, st)

	cc := pipeline.NewContext(schema.CoachRequest{ManualChampions: fixtureTokens()}, testPatch)
	result := runner.Run(context.Background(), cc)

	require.True(t, result.Success, "errors: %v", result.Errors)
	require.NotNil(t, result.Package)
	pkg := result.Package

	assert.Equal(t, "Aatrox", pkg.Champion)
	assert.Equal(t, schema.RoleTop, pkg.Role)
	assert.Equal(t, testPatch, pkg.Patch)
	assert.Len(t, pkg.BlueTeam, 5)
	assert.Len(t, pkg.RedTeam, 5)
	assert.GreaterOrEqual(t, len(pkg.RecommendedBuild.CoreItems), 2)
	assert.LessOrEqual(t, len(pkg.RecommendedBuild.CoreItems), 4)
	assert.Len(t, pkg.RecommendedRunes.PrimarySlots, 3)
	assert.Len(t, pkg.RecommendedRunes.SecondarySlots, 2)

	// user confidence 1.0, role confidence 0.65 for Fighter/Tank
	assert.InDelta(t, 0.83, pkg.Confidence, 1e-9)
	assert.NotEmpty(t, pkg.Warnings, "role confidence under 0.7 must be surfaced")

	_, err := time.Parse(time.RFC3339, pkg.GeneratedAt)
	assert.NoError(t, err)

	role, ok := cc.Role()
	require.True(t, ok)
	assert.InDelta(t, 0.65, role.Confidence, 1e-9)

	assert.Len(t, result.Stages, 6)
	for _, sr := range result.Stages {
		assert.Equal(t, pipeline.StatusOK, sr.Status, sr.Agent)
		assert.Contains(t, result.TimingMS, sr.Agent)
	}
}

func TestPipelineStopsAtKnowledgeFetcherForUnknownChampion(t *testing.T) {
	st := writeFixtureStore(t)
	runner := newTestRunner(t, st)

	tokens := fixtureTokens()
	tokens[0] = "NotAChampion"
	cc := pipeline.NewContext(schema.CoachRequest{ManualChampions: tokens}, testPatch)
	result := runner.Run(context.Background(), cc)

	require.False(t, result.Success)
	assert.Equal(t, "knowledge_fetcher", result.FailedAt)
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "NotAChampion")
	assert.Contains(t, result.Errors[0], testPatch)
	assert.Len(t, result.Stages, 4, "stages after the failure must not run")
	assert.Nil(t, result.Package)
}

func TestPipelineFailsWithoutSnapshots(t *testing.T) {
	st := store.New(t.TempDir())
	registry, err := defaults.Load("")
	require.NoError(t, err)
	gate, err := schema.NewValidator()
	require.NoError(t, err)
	runner := pipeline.NewRunner(
		NewSlotResolver(nil),
		NewContextExtractor(),
		NewRoleInference(nil),
		NewKnowledgeFetcher(st),
		NewBuildPlanner(registry),
		NewValidator(gate),
	)

	cc := pipeline.NewContext(schema.CoachRequest{ManualChampions: fixtureTokens()}, testPatch)
	result := runner.Run(context.Background(), cc)

	require.False(t, result.Success)
	assert.Equal(t, "knowledge_fetcher", result.FailedAt)
}

func TestKnowledgeFetcherBundlesFullCollections(t *testing.T) {
	st := writeFixtureStore(t)
	cc := pipeline.NewContext(schema.CoachRequest{}, testPatch)
	cc.SetUserContext(schema.UserContext{UserChampion: "aatrox", UserTeam: schema.TeamBlue})

	sr := NewKnowledgeFetcher(st).Run(context.Background(), cc)
	require.Equal(t, pipeline.StatusOK, sr.Status, "errors: %v", sr.Errors)

	bundle, ok := cc.Knowledge()
	require.True(t, ok)
	assert.Equal(t, "Aatrox", bundle.Champion.Name, "lookup is case-insensitive")
	assert.Len(t, bundle.Items, 2)
	assert.Len(t, bundle.RuneTrees, 2)
}
