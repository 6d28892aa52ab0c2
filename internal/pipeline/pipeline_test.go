package pipeline

import (
	"context"
	"testing"

	"riftcoach/internal/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStage struct {
	name   string
	result StageResult
	calls  int
	onRun  func(cc *CoachContext)
}

func (s *stubStage) Name() string { return s.name }

func (s *stubStage) Run(_ context.Context, cc *CoachContext) StageResult {
	s.calls++
	if s.onRun != nil {
		s.onRun(cc)
	}
	return s.result
}

func TestRunnerStopsAtFirstFailure(t *testing.T) {
	first := &stubStage{name: "first", result: OK("first")}
	second := &stubStage{name: "second", result: Fail("second", "boom")}
	third := &stubStage{name: "third", result: OK("third")}

	runner := NewRunner(first, second, third)
	cc := NewContext(schema.CoachRequest{}, "15.17.1")
	res := runner.Run(context.Background(), cc)

	require.False(t, res.Success)
	assert.Equal(t, "second", res.FailedAt)
	assert.Equal(t, []string{"boom"}, res.Errors)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
	assert.Zero(t, third.calls, "stages after a failure must not run")
	assert.Len(t, res.Stages, 2)
	assert.Contains(t, res.TimingMS, "first")
	assert.Contains(t, res.TimingMS, "second")
	assert.NotContains(t, res.TimingMS, "third")
}

func TestRunnerRequiresPublishedPackage(t *testing.T) {
	only := &stubStage{name: "only", result: OK("only")}
	res := NewRunner(only).Run(context.Background(), NewContext(schema.CoachRequest{}, "15.17.1"))
	require.False(t, res.Success)
	assert.Contains(t, res.Errors[0], "without publishing")
}

func TestRunnerReturnsPublishedPackage(t *testing.T) {
	publisher := &stubStage{
		name:   "publisher",
		result: OK("publisher"),
		onRun: func(cc *CoachContext) {
			cc.SetPackage(schema.CoachPackage{Champion: "Aatrox", Role: schema.RoleTop})
		},
	}
	res := NewRunner(publisher).Run(context.Background(), NewContext(schema.CoachRequest{}, "15.17.1"))
	require.True(t, res.Success)
	require.NotNil(t, res.Package)
	assert.Equal(t, "Aatrox", res.Package.Champion)
}

func TestRunnerHonorsCancelledContext(t *testing.T) {
	never := &stubStage{name: "never", result: OK("never")}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := NewRunner(never).Run(ctx, NewContext(schema.CoachRequest{}, "15.17.1"))
	require.False(t, res.Success)
	assert.Zero(t, never.calls)
	assert.Equal(t, "never", res.FailedAt)
}

func TestContextCopiesOnRead(t *testing.T) {
	cc := NewContext(schema.CoachRequest{ManualChampions: []string{"Aatrox"}}, "15.17.1")
	require.NotEmpty(t, cc.TraceID)

	cc.SetSlots(schema.SlotResolution{UserChampion: "Aatrox"})
	slots, ok := cc.Slots()
	require.True(t, ok)
	slots.UserChampion = "mutated"
	again, _ := cc.Slots()
	assert.Equal(t, "Aatrox", again.UserChampion)

	cc.AddWarning("  first  ")
	cc.AddWarning("")
	got := cc.Warnings()
	require.Equal(t, []string{"first"}, got)
	got[0] = "mutated"
	assert.Equal(t, []string{"first"}, cc.Warnings())
}

func TestEnvelopeHelpers(t *testing.T) {
	ok := OK("stage")
	assert.Equal(t, StatusOK, ok.Status)
	assert.Empty(t, ok.Errors)

	failed := Failf("stage", "champion %q missing", "Zed")
	assert.Equal(t, StatusFailed, failed.Status)
	require.Len(t, failed.Errors, 1)
	assert.Contains(t, failed.Errors[0], `"Zed"`)
}
