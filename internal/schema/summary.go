package schema

import (
	"fmt"
	"strings"
)

// RenderSummary renders a validated package as a human-readable game plan.
// The output is plain text, suitable for the CLI and for log blocks.
func RenderSummary(pkg *CoachPackage) string {
	if pkg == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "=== %s game plan (%s) ===\n", pkg.Champion, strings.ToUpper(string(pkg.Role)))
	fmt.Fprintf(&b, "Patch %s | confidence %.0f%%\n\n", pkg.Patch, pkg.Confidence*100)

	fmt.Fprintf(&b, "BUILD: %s | boots: %s\n", strings.Join(pkg.RecommendedBuild.CoreItems, " -> "), pkg.RecommendedBuild.Boots)
	fmt.Fprintf(&b, "START: %s\n", strings.Join(pkg.RecommendedBuild.Starter, ", "))
	if len(pkg.RecommendedBuild.Situational) > 0 {
		fmt.Fprintf(&b, "SITUATIONAL: %s\n", strings.Join(pkg.RecommendedBuild.Situational, ", "))
	}
	fmt.Fprintf(&b, "RUNES: %s (%s) + %s\n",
		pkg.RecommendedRunes.PrimaryKeystone,
		pkg.RecommendedRunes.PrimaryTree,
		pkg.RecommendedRunes.SecondaryTree)
	fmt.Fprintf(&b, "SKILLS: start %s, max %s\n\n",
		strings.Join(pkg.SkillOrder.FirstThree, " "),
		strings.Join(pkg.SkillOrder.MaxOrder, " > "))

	writeTips(&b, "LANE PLAN", pkg.LaningTips)
	writeTips(&b, "TEAMFIGHT", pkg.TeamfightTips)
	writeTips(&b, "OBJECTIVES", pkg.ObjectiveTips)

	fmt.Fprintf(&b, "Blue: %s\n", strings.Join(pkg.BlueTeam, ", "))
	fmt.Fprintf(&b, "Red:  %s\n", strings.Join(pkg.RedTeam, ", "))
	if len(pkg.Warnings) > 0 {
		b.WriteString("Warnings:\n")
		for _, w := range pkg.Warnings {
			fmt.Fprintf(&b, "  ! %s\n", w)
		}
	}
	return b.String()
}

func writeTips(b *strings.Builder, title string, tips []string) {
	if len(tips) == 0 {
		return
	}
	fmt.Fprintf(b, "%s:\n", title)
	for _, tip := range tips {
		fmt.Fprintf(b, "  - %s\n", tip)
	}
	b.WriteString("\n")
}
