package agent

import (
	"context"
	"testing"

	"riftcoach/internal/pipeline"
	"riftcoach/internal/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slotsFromNames(blue, red []string, user string) schema.SlotResolution {
	toSlots := func(names []string) []schema.RosterSlot {
		out := make([]schema.RosterSlot, 0, len(names))
		for _, n := range names {
			out = append(out, schema.RosterSlot{Champion: n, Confidence: 1.0})
		}
		return out
	}
	return schema.SlotResolution{
		Blue:           toSlots(blue),
		Red:            toSlots(red),
		UserChampion:   user,
		UserConfidence: 1.0,
	}
}

func TestContextExtractorSplitsBlueSide(t *testing.T) {
	blue := []string{"Aatrox", "Lee Sin", "Syndra", "Jinx", "Thresh"}
	red := []string{"Darius", "Elise", "Ahri", "Caitlyn", "Lulu"}
	cc := pipeline.NewContext(schema.CoachRequest{}, "15.17.1")
	cc.SetSlots(slotsFromNames(blue, red, "Aatrox"))

	sr := NewContextExtractor().Run(context.Background(), cc)
	require.Equal(t, pipeline.StatusOK, sr.Status)

	uc, ok := cc.UserContext()
	require.True(t, ok)
	assert.Equal(t, schema.TeamBlue, uc.UserTeam)
	assert.Equal(t, []string{"Lee Sin", "Syndra", "Jinx", "Thresh"}, uc.Allies)
	assert.Equal(t, red, uc.Enemies)
}

func TestContextExtractorFindsUserOnRedSide(t *testing.T) {
	blue := []string{"Aatrox", "Lee Sin", "Syndra", "Jinx", "Thresh"}
	red := []string{"Darius", "Elise", "Ahri", "Caitlyn", "Lulu"}
	cc := pipeline.NewContext(schema.CoachRequest{}, "15.17.1")
	cc.SetSlots(slotsFromNames(blue, red, "Ahri"))

	sr := NewContextExtractor().Run(context.Background(), cc)
	require.Equal(t, pipeline.StatusOK, sr.Status)

	uc, _ := cc.UserContext()
	assert.Equal(t, schema.TeamRed, uc.UserTeam)
	assert.Equal(t, []string{"Darius", "Elise", "Caitlyn", "Lulu"}, uc.Allies)
	assert.Equal(t, blue, uc.Enemies)
}

func TestContextExtractorDefaultsToBlueOnInconsistency(t *testing.T) {
	blue := []string{"Aatrox", "Lee Sin", "Syndra", "Jinx", "Thresh"}
	red := []string{"Darius", "Elise", "Ahri", "Caitlyn", "Lulu"}
	cc := pipeline.NewContext(schema.CoachRequest{}, "15.17.1")
	cc.SetSlots(slotsFromNames(blue, red, "Zed"))

	sr := NewContextExtractor().Run(context.Background(), cc)
	require.Equal(t, pipeline.StatusOK, sr.Status, "roster inconsistency is a fallback, not an error")

	uc, _ := cc.UserContext()
	assert.Equal(t, schema.TeamBlue, uc.UserTeam)
	assert.Equal(t, blue, uc.Allies, "user is not in the blue roster, so nobody is excluded")
	assert.Equal(t, red, uc.Enemies)
	assert.Contains(t, uc.Reasoning, "defaulting to blue")
	assert.NotEmpty(t, cc.Warnings())
}
