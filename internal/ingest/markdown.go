package ingest

import (
	"fmt"
	"sort"
	"strings"

	"riftcoach/internal/schema"
)

// RenderMarkdown produces the patch digest written next to a snapshot: one
// champion table sorted by name, plus collection counts. It exists for
// humans checking what a snapshot contains.
func RenderMarkdown(patch string, champions map[string]schema.ChampionRecord,
	items map[string]schema.ItemRecord, trees []schema.RuneTreeRecord) string {

	names := make([]string, 0, len(champions))
	byName := make(map[string]schema.ChampionRecord, len(champions))
	for _, c := range champions {
		names = append(names, c.Name)
		byName[c.Name] = c
	}
	sort.Strings(names)

	var b strings.Builder
	fmt.Fprintf(&b, "# Patch %s snapshot\n\n", patch)
	fmt.Fprintf(&b, "%d champions, %d items, %d rune trees.\n\n",
		len(champions), len(items), len(trees))

	b.WriteString("| Champion | Title | Tags |\n")
	b.WriteString("|---|---|---|\n")
	for _, name := range names {
		c := byName[name]
		fmt.Fprintf(&b, "| %s | %s | %s |\n", c.Name, c.Title, strings.Join(c.Tags, ", "))
	}

	if len(trees) > 0 {
		b.WriteString("\n## Rune trees\n\n")
		for _, tree := range trees {
			fmt.Fprintf(&b, "- %s (%d slots)\n", tree.Name, len(tree.Slots))
		}
	}
	return b.String()
}
