package agent

import (
	"context"
	"fmt"
	"math"
	"time"

	"riftcoach/internal/pipeline"
	"riftcoach/internal/schema"
)

// lowRoleConfidence is the threshold under which a role-uncertainty warning
// is attached to the package.
const lowRoleConfidence = 0.7

// Validator assembles the coach package from every prior stage's output and
// runs it through the structural gate. A package that fails the gate never
// leaves the pipeline; the stage reports the path-qualified error list
// instead.
type Validator struct {
	gate *schema.Validator
}

func NewValidator(gate *schema.Validator) *Validator {
	return &Validator{gate: gate}
}

func (v *Validator) Name() string { return "validator" }

func (v *Validator) Run(_ context.Context, cc *pipeline.CoachContext) pipeline.StageResult {
	slots, ok := cc.Slots()
	if !ok {
		return pipeline.Fail(v.Name(), "no slot resolution available")
	}
	role, ok := cc.Role()
	if !ok {
		return pipeline.Fail(v.Name(), "no role result available")
	}
	knowledge, ok := cc.Knowledge()
	if !ok {
		return pipeline.Fail(v.Name(), "no knowledge bundle available")
	}
	plan, ok := cc.Plan()
	if !ok {
		return pipeline.Fail(v.Name(), "no build plan available")
	}

	if role.Confidence < lowRoleConfidence {
		cc.AddWarning(fmt.Sprintf("role inference is uncertain (%.2f): %s",
			role.Confidence, role.Reasoning))
	}
	warnings := cc.Warnings()
	if warnings == nil {
		warnings = []string{}
	}

	pkg := schema.CoachPackage{
		Patch:            knowledge.Patch,
		GeneratedAt:      time.Now().UTC().Format(time.RFC3339),
		Champion:         knowledge.Champion.Name,
		Role:             role.Role,
		BlueTeam:         slots.BlueNames(),
		RedTeam:          slots.RedNames(),
		RecommendedBuild: plan.RecommendedBuild,
		RecommendedRunes: plan.RecommendedRunes,
		SkillOrder:       plan.SkillOrder,
		LaningTips:       plan.LaningTips,
		TeamfightTips:    plan.TeamfightTips,
		ObjectiveTips:    plan.ObjectiveTips,
		Confidence:       packageConfidence(slots.UserConfidence, role.Confidence),
		Warnings:         warnings,
	}

	if errs := v.gate.Validate(&pkg); len(errs) > 0 {
		return pipeline.Fail(v.Name(), errs...)
	}
	cc.SetPackage(pkg)
	return pipeline.OK(v.Name())
}

// packageConfidence averages slot and role confidence, rounded to two
// decimals so identical inputs always serialize identically.
func packageConfidence(userConf, roleConf float64) float64 {
	return math.Round((userConf+roleConf)/2*100) / 100
}
