package agent

import (
	"context"
	"fmt"
	"strings"

	"riftcoach/internal/pipeline"
	"riftcoach/internal/schema"
)

// tagRoles maps a champion class tag to the roles it suggests. Sets stay
// small on purpose; the precedence rules in resolveRole break the ties.
var tagRoles = map[string][]schema.Role{
	"Marksman": {schema.RoleADC, schema.RoleMid},
	"Support":  {schema.RoleSupport},
	"Mage":     {schema.RoleMid, schema.RoleSupport},
	"Assassin": {schema.RoleMid, schema.RoleJungle},
	"Fighter":  {schema.RoleTop, schema.RoleJungle},
	"Tank":     {schema.RoleTop, schema.RoleSupport},
}

// RoleInference assigns the user champion a role from its class tags. A
// missing champion record degrades confidence instead of failing.
type RoleInference struct {
	champions map[string]schema.ChampionRecord
}

func NewRoleInference(champions map[string]schema.ChampionRecord) *RoleInference {
	return &RoleInference{champions: champions}
}

func (r *RoleInference) Name() string { return "role_inference" }

func (r *RoleInference) Run(_ context.Context, cc *pipeline.CoachContext) pipeline.StageResult {
	uc, ok := cc.UserContext()
	if !ok {
		return pipeline.Fail(r.Name(), "no user context available")
	}
	var tags []string
	if rec, found := findChampion(r.champions, uc.UserChampion); found {
		tags = rec.Tags
	}
	result := InferRole(uc.UserChampion, tags)
	cc.SetRole(result)
	return pipeline.OK(r.Name())
}

// InferRole resolves a champion's role from its tag list. It is a pure
// function: same tags, same answer.
func InferRole(champion string, tags []string) schema.RoleResult {
	candidates := candidateRoles(tags)
	tagsDesc := "[" + strings.Join(tags, ", ") + "]"

	describe := func(role schema.Role, conf float64, rule string) schema.RoleResult {
		return schema.RoleResult{
			Role:       role,
			Confidence: conf,
			Reasoning:  fmt.Sprintf("%s tags %s: %s", champion, tagsDesc, rule),
		}
	}

	switch {
	case len(candidates) == 0:
		return describe(schema.RoleMid, 0.3, "no role mapping found, defaulting to mid")
	case len(candidates) == 1:
		return describe(candidates[0], 0.95, fmt.Sprintf("unambiguous mapping to %s", candidates[0]))
	case hasRole(candidates, schema.RoleADC):
		return describe(schema.RoleADC, 0.85, "marksman profile favors adc")
	case hasRole(candidates, schema.RoleSupport) && hasTag(tags, "Support"):
		return describe(schema.RoleSupport, 0.80, "explicit support tag")
	case hasRole(candidates, schema.RoleMid) && hasTag(tags, "Assassin"):
		return describe(schema.RoleMid, 0.70, "assassin profile favors mid")
	case hasRole(candidates, schema.RoleTop):
		return describe(schema.RoleTop, 0.65, "top lane preferred among candidates")
	case hasRole(candidates, schema.RoleJungle):
		return describe(schema.RoleJungle, 0.60, "jungle preferred among candidates")
	default:
		return describe(candidates[0], 0.50, fmt.Sprintf("first candidate %s taken", candidates[0]))
	}
}

// candidateRoles unions the role sets of every tag, deduplicated, keeping
// first-seen order so the final fallback branch is deterministic.
func candidateRoles(tags []string) []schema.Role {
	var out []schema.Role
	seen := make(map[schema.Role]bool)
	for _, tag := range tags {
		for _, role := range tagRoles[tag] {
			if seen[role] {
				continue
			}
			seen[role] = true
			out = append(out, role)
		}
	}
	return out
}

func hasRole(roles []schema.Role, target schema.Role) bool {
	for _, r := range roles {
		if r == target {
			return true
		}
	}
	return false
}

func hasTag(tags []string, target string) bool {
	for _, t := range tags {
		if t == target {
			return true
		}
	}
	return false
}

// findChampion matches by case-insensitive display name or short id.
func findChampion(champions map[string]schema.ChampionRecord, name string) (schema.ChampionRecord, bool) {
	for _, rec := range champions {
		if rec.Matches(name) {
			return rec, true
		}
	}
	return schema.ChampionRecord{}, false
}
