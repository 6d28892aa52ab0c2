package agent

import (
	"context"
	"fmt"

	"riftcoach/internal/pipeline"
	"riftcoach/internal/schema"
)

// ContextExtractor derives team membership and the ally/enemy split from
// the resolved roster.
type ContextExtractor struct{}

func NewContextExtractor() *ContextExtractor { return &ContextExtractor{} }

func (e *ContextExtractor) Name() string { return "context_extractor" }

func (e *ContextExtractor) Run(_ context.Context, cc *pipeline.CoachContext) pipeline.StageResult {
	slots, ok := cc.Slots()
	if !ok {
		return pipeline.Fail(e.Name(), "no slot resolution available")
	}

	blue := slots.BlueNames()
	red := slots.RedNames()
	user := slots.UserChampion

	uc := schema.UserContext{UserChampion: user}
	switch {
	case contains(blue, user):
		uc.UserTeam = schema.TeamBlue
		uc.Allies = exclude(blue, user)
		uc.Enemies = red
		uc.Reasoning = fmt.Sprintf("%s found on blue side", user)
	case contains(red, user):
		uc.UserTeam = schema.TeamRed
		uc.Allies = exclude(red, user)
		uc.Enemies = blue
		uc.Reasoning = fmt.Sprintf("%s found on red side", user)
	default:
		// Roster inconsistency. Assume blue rather than abort.
		uc.UserTeam = schema.TeamBlue
		uc.Allies = exclude(blue, user)
		uc.Enemies = red
		uc.Reasoning = fmt.Sprintf("%s not present in either roster, defaulting to blue side", user)
		cc.AddWarning(uc.Reasoning)
	}

	cc.SetUserContext(uc)
	return pipeline.OK(e.Name())
}

func contains(names []string, target string) bool {
	for _, n := range names {
		if n == target {
			return true
		}
	}
	return false
}

// exclude removes the first occurrence of target, preserving roster order.
func exclude(names []string, target string) []string {
	out := make([]string, 0, len(names))
	removed := false
	for _, n := range names {
		if !removed && n == target {
			removed = true
			continue
		}
		out = append(out, n)
	}
	return out
}
