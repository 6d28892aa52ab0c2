package agent

import (
	"context"

	"riftcoach/internal/defaults"
	"riftcoach/internal/logger"
	"riftcoach/internal/pipeline"
)

// BuildPlanner resolves the champion's tags and role against the defaults
// table. The matched bundle is copied verbatim into the plan; no field is
// synthesized here.
type BuildPlanner struct {
	registry *defaults.Registry
}

func NewBuildPlanner(reg *defaults.Registry) *BuildPlanner {
	return &BuildPlanner{registry: reg}
}

func (b *BuildPlanner) Name() string { return "build_planner" }

func (b *BuildPlanner) Run(_ context.Context, cc *pipeline.CoachContext) pipeline.StageResult {
	knowledge, ok := cc.Knowledge()
	if !ok {
		return pipeline.Fail(b.Name(), "no knowledge bundle available")
	}
	role, ok := cc.Role()
	if !ok {
		return pipeline.Fail(b.Name(), "no role result available")
	}

	bundle, matched, err := b.registry.Resolve(knowledge.Champion.Tags, role.Role)
	if err != nil {
		return pipeline.Failf(b.Name(), "resolve defaults for %s as %s: %v",
			knowledge.Champion.Name, role.Role, err)
	}
	logger.Debugf("[build_planner] trace=%s %s/%s matched bundle %s",
		cc.TraceID, knowledge.Champion.Name, role.Role, matched)

	cc.SetPlan(bundle.Plan())
	return pipeline.OK(b.Name())
}
