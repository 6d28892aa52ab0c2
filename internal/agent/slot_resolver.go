// Package agent holds the six pipeline stages: slot resolver, context
// extractor, role inference, knowledge fetcher, build planner, and the
// terminal validator.
package agent

import (
	"context"
	"strings"

	"riftcoach/internal/logger"
	"riftcoach/internal/pipeline"
	"riftcoach/internal/schema"
	"riftcoach/internal/vision"
)

// SlotResolver normalizes raw champion tokens into the ten-slot roster.
// With no tokens every slot resolves to the unknown placeholder; with ten
// or more, positions 0-4 fill the blue roster and 5-9 the red.
type SlotResolver struct {
	lookup map[string]string
}

// NewSlotResolver builds the case-insensitive name vocabulary from the
// patch's champion table. Both the display name and the short identifier
// map to the canonical display name.
func NewSlotResolver(champions map[string]schema.ChampionRecord) *SlotResolver {
	lookup := make(map[string]string, len(champions)*2)
	for _, c := range champions {
		if c.Name != "" {
			lookup[strings.ToLower(c.Name)] = c.Name
		}
		if c.ID != "" {
			lookup[strings.ToLower(c.ID)] = c.Name
		}
	}
	return &SlotResolver{lookup: lookup}
}

func (s *SlotResolver) Name() string { return "slot_resolver" }

func (s *SlotResolver) Run(_ context.Context, cc *pipeline.CoachContext) pipeline.StageResult {
	tokens := cc.ManualChampions
	if len(tokens) == 0 && cc.ImagePath != "" {
		names, err := vision.Identify(cc.ImagePath)
		if err != nil {
			// Screenshot-only requests depend on the pixel classifier,
			// which does not exist. Report it as such rather than
			// degrading into a roster of ten unknowns.
			return pipeline.NotImplemented(s.Name(), err.Error())
		}
		tokens = names
	}
	if n := len(tokens); n > 0 && n < vision.SlotCount {
		return pipeline.Failf(s.Name(), "need at least %d champion tokens, got %d", vision.SlotCount, n)
	}

	res := schema.SlotResolution{
		Blue: make([]schema.RosterSlot, 0, schema.TeamSize),
		Red:  make([]schema.RosterSlot, 0, schema.TeamSize),
	}
	for i := 0; i < vision.SlotCount; i++ {
		slot := schema.RosterSlot{Champion: schema.UnknownChampion}
		if i < len(tokens) {
			slot = s.resolveToken(tokens[i])
		}
		if slot.Confidence == 0 {
			res.UnknownSlots = append(res.UnknownSlots, i)
		}
		if i < schema.TeamSize {
			res.Blue = append(res.Blue, slot)
		} else {
			res.Red = append(res.Red, slot)
		}
	}
	res.UserChampion = res.Blue[0].Champion
	res.UserConfidence = res.Blue[0].Confidence

	if len(res.UnknownSlots) > 0 {
		logger.Warnf("[slot_resolver] trace=%s %d unresolved slots: %v",
			cc.TraceID, len(res.UnknownSlots), res.UnknownSlots)
	}
	cc.SetSlots(res)
	return pipeline.OK(s.Name())
}

// resolveToken matches a token against the vocabulary. Unmatched tokens are
// kept verbatim at confidence 0; ambiguity is recorded, not rejected.
func (s *SlotResolver) resolveToken(raw string) schema.RosterSlot {
	token := strings.TrimSpace(raw)
	if token == "" {
		return schema.RosterSlot{Champion: schema.UnknownChampion}
	}
	if canonical, ok := s.lookup[strings.ToLower(token)]; ok {
		return schema.RosterSlot{Champion: canonical, Confidence: 1.0}
	}
	return schema.RosterSlot{Champion: token}
}
