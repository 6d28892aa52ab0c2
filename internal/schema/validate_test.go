package schema

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPackage() CoachPackage {
	return CoachPackage{
		Patch:       "15.17.1",
		GeneratedAt: time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC).Format(time.RFC3339),
		Champion:    "Aatrox",
		Role:        RoleTop,
		BlueTeam:    []string{"Aatrox", "Lee Sin", "Syndra", "Jinx", "Thresh"},
		RedTeam:     []string{"Darius", "Elise", "Ahri", "Caitlyn", "Lulu"},
		RecommendedBuild: BuildBlock{
			Starter:     []string{"Doran's Blade", "Health Potion"},
			CoreItems:   []string{"Eclipse", "Black Cleaver", "Death's Dance"},
			Boots:       "Plated Steelcaps",
			Situational: []string{"Guardian Angel"},
		},
		RecommendedRunes: RuneBlock{
			PrimaryTree:     "Precision",
			PrimaryKeystone: "Conqueror",
			PrimarySlots:    []string{"Triumph", "Legend: Haste", "Last Stand"},
			SecondaryTree:   "Resolve",
			SecondarySlots:  []string{"Second Wind", "Unflinching"},
		},
		SkillOrder: SkillOrder{
			FirstThree: []string{"Q", "E", "W"},
			MaxOrder:   []string{"Q", "E", "W"},
		},
		LaningTips:    []string{"Trade around Q cooldowns."},
		TeamfightTips: []string{"Flank from a side lane."},
		ObjectiveTips: []string{"Group for dragon at five."},
		Confidence:    0.82,
		Warnings:      []string{},
	}
}

func newTestValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := NewValidator()
	require.NoError(t, err)
	return v
}

func TestValidatorAcceptsCompletePackage(t *testing.T) {
	v := newTestValidator(t)
	assert.Empty(t, v.Validate(ptr(validPackage())))
}

func TestValidatorRejectsCoreItemCounts(t *testing.T) {
	v := newTestValidator(t)

	tooFew := validPackage()
	tooFew.RecommendedBuild.CoreItems = []string{"Eclipse"}
	errs := v.Validate(&tooFew)
	require.NotEmpty(t, errs)
	assert.True(t, hasPathError(errs, "recommended_build.core_items"), "got %v", errs)

	tooMany := validPackage()
	tooMany.RecommendedBuild.CoreItems = []string{"a", "b", "c", "d", "e"}
	errs = v.Validate(&tooMany)
	require.NotEmpty(t, errs)
	assert.True(t, hasPathError(errs, "recommended_build.core_items"), "got %v", errs)
}

func TestValidatorRejectsShortTeams(t *testing.T) {
	v := newTestValidator(t)
	pkg := validPackage()
	pkg.BlueTeam = pkg.BlueTeam[:4]
	errs := v.Validate(&pkg)
	require.NotEmpty(t, errs)
	assert.True(t, hasPathError(errs, "blue_team"), "got %v", errs)
}

func TestValidatorRejectsBadRole(t *testing.T) {
	v := newTestValidator(t)
	pkg := validPackage()
	pkg.Role = Role("carry")
	errs := v.Validate(&pkg)
	require.NotEmpty(t, errs)
	assert.True(t, hasPathError(errs, "role"), "got %v", errs)
}

func TestValidatorRejectsRuneSlotCounts(t *testing.T) {
	v := newTestValidator(t)
	pkg := validPackage()
	pkg.RecommendedRunes.PrimarySlots = []string{"Triumph"}
	pkg.RecommendedRunes.SecondarySlots = []string{"Second Wind", "Unflinching", "Overgrowth"}
	errs := v.Validate(&pkg)
	require.NotEmpty(t, errs)
	assert.True(t, hasPathError(errs, "recommended_runes.primary_slots"), "got %v", errs)
	assert.True(t, hasPathError(errs, "recommended_runes.secondary_slots"), "got %v", errs)
}

func TestValidatorRejectsConfidenceOutOfRange(t *testing.T) {
	v := newTestValidator(t)
	pkg := validPackage()
	pkg.Confidence = 1.4
	errs := v.Validate(&pkg)
	require.NotEmpty(t, errs)
	assert.True(t, hasPathError(errs, "confidence"), "got %v", errs)
}

func TestValidatorRejectsNonTimestamp(t *testing.T) {
	v := newTestValidator(t)
	pkg := validPackage()
	pkg.GeneratedAt = "yesterday"
	errs := v.Validate(&pkg)
	require.NotEmpty(t, errs)
	assert.True(t, hasPathError(errs, "generated_at"), "got %v", errs)
}

func TestRenderSummaryListsPlanSections(t *testing.T) {
	pkg := validPackage()
	pkg.Warnings = []string{"role inference is uncertain (0.65)"}
	out := RenderSummary(&pkg)
	for _, want := range []string{"Aatrox", "TOP", "BUILD:", "RUNES:", "SKILLS:", "LANE PLAN:", "! role inference is uncertain"} {
		assert.Contains(t, out, want)
	}
}

func hasPathError(errs []string, path string) bool {
	for _, e := range errs {
		if strings.HasPrefix(e, path+":") || strings.HasPrefix(e, path+".") {
			return true
		}
	}
	return false
}

func ptr(p CoachPackage) *CoachPackage { return &p }
