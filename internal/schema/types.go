package schema

import "strings"

// Role is one of the five Summoner's Rift positions.
type Role string

const (
	RoleTop     Role = "top"
	RoleJungle  Role = "jungle"
	RoleMid     Role = "mid"
	RoleADC     Role = "adc"
	RoleSupport Role = "support"
)

// Roles lists every valid role in display order.
var Roles = []Role{RoleTop, RoleJungle, RoleMid, RoleADC, RoleSupport}

// Valid reports whether r is one of the five known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleTop, RoleJungle, RoleMid, RoleADC, RoleSupport:
		return true
	}
	return false
}

// Team identifies a roster side.
type Team string

const (
	TeamBlue Team = "blue"
	TeamRed  Team = "red"
)

// UnknownChampion is the placeholder written into roster slots whose
// identity could not be resolved. It is a pass-through value, not an error.
const UnknownChampion = "Unknown"

// TeamSize is the fixed number of roster slots per side.
const TeamSize = 5

// RosterSlot holds one resolved loading-screen position. Confidence is 1.0
// for a known champion and 0.0 for an unresolved token.
type RosterSlot struct {
	Champion   string  `json:"champion"`
	Confidence float64 `json:"confidence"`
}

// SlotResolution is the slot resolver's output: ten slots split into two
// ordered sides, plus the indices (0-9) whose token did not resolve.
type SlotResolution struct {
	Blue           []RosterSlot `json:"blue"`
	Red            []RosterSlot `json:"red"`
	UserChampion   string       `json:"user_champion"`
	UserConfidence float64      `json:"user_confidence"`
	UnknownSlots   []int        `json:"unknown_slots"`
}

// BlueNames returns the blue-side champion names in roster order.
func (s *SlotResolution) BlueNames() []string { return slotNames(s.Blue) }

// RedNames returns the red-side champion names in roster order.
func (s *SlotResolution) RedNames() []string { return slotNames(s.Red) }

func slotNames(slots []RosterSlot) []string {
	out := make([]string, 0, len(slots))
	for _, sl := range slots {
		out = append(out, sl.Champion)
	}
	return out
}

// UserContext is derived from the roster for one invocation and never
// persisted.
type UserContext struct {
	UserChampion string   `json:"user_champion"`
	UserTeam     Team     `json:"user_team"`
	Allies       []string `json:"allies"`
	Enemies      []string `json:"enemies"`
	Reasoning    string   `json:"reasoning"`
}

// RoleResult is the role inference engine's output. Reasoning names the
// champion, its tags, and the rule that fired; it is part of the contract
// and feeds package warnings downstream.
type RoleResult struct {
	Role       Role    `json:"role"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// ChampionRecord is one trimmed Data Dragon champion entry.
type ChampionRecord struct {
	ID      string   `json:"id"`
	Key     string   `json:"key"`
	Name    string   `json:"name"`
	Title   string   `json:"title,omitempty"`
	Tags    []string `json:"tags"`
	Partype string   `json:"partype,omitempty"`
}

// HasTag reports whether the record carries the given tag (exact match).
func (c ChampionRecord) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Matches reports whether the record's display name or id equals the token,
// case-insensitively.
func (c ChampionRecord) Matches(token string) bool {
	token = strings.ToLower(strings.TrimSpace(token))
	return token != "" &&
		(strings.ToLower(c.Name) == token || strings.ToLower(c.ID) == token)
}

// ItemRecord is one trimmed Data Dragon item entry.
type ItemRecord struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Gold      int      `json:"gold"`
	Tags      []string `json:"tags,omitempty"`
	Plaintext string   `json:"plaintext,omitempty"`
}

// RuneRecord is a single selectable rune.
type RuneRecord struct {
	ID   int    `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
}

// RuneSlotRecord is one row of selectable runes within a tree.
type RuneSlotRecord struct {
	Runes []RuneRecord `json:"runes"`
}

// RuneTreeRecord is one trimmed Data Dragon rune tree (style).
type RuneTreeRecord struct {
	ID    int              `json:"id"`
	Key   string           `json:"key"`
	Name  string           `json:"name"`
	Slots []RuneSlotRecord `json:"slots"`
}

// KnowledgeBundle is the read-only snapshot a pipeline invocation borrows
// from the knowledge store: the single matched champion plus the full item
// and rune-tree collections for one patch.
type KnowledgeBundle struct {
	Patch     string           `json:"patch"`
	Champion  ChampionRecord   `json:"champion"`
	Items     []ItemRecord     `json:"items"`
	RuneTrees []RuneTreeRecord `json:"rune_trees"`
}

// BuildBlock is the recommended item build.
type BuildBlock struct {
	Starter     []string `json:"starter" yaml:"starter"`
	CoreItems   []string `json:"core_items" yaml:"core_items"`
	Boots       string   `json:"boots" yaml:"boots"`
	Situational []string `json:"situational" yaml:"situational"`
}

// RuneBlock is the recommended rune page.
type RuneBlock struct {
	PrimaryTree     string   `json:"primary_tree" yaml:"primary_tree"`
	PrimaryKeystone string   `json:"primary_keystone" yaml:"primary_keystone"`
	PrimarySlots    []string `json:"primary_slots" yaml:"primary_slots"`
	SecondaryTree   string   `json:"secondary_tree" yaml:"secondary_tree"`
	SecondarySlots  []string `json:"secondary_slots" yaml:"secondary_slots"`
}

// SkillOrder is the recommended leveling plan.
type SkillOrder struct {
	FirstThree []string `json:"first_three" yaml:"first_three"`
	MaxOrder   []string `json:"max_order" yaml:"max_order"`
}

// BuildPlan is the build resolver's output, copied verbatim from the
// matched defaults bundle.
type BuildPlan struct {
	RecommendedBuild BuildBlock `json:"recommended_build"`
	RecommendedRunes RuneBlock  `json:"recommended_runes"`
	SkillOrder       SkillOrder `json:"skill_order"`
	LaningTips       []string   `json:"laning_tips"`
	TeamfightTips    []string   `json:"teamfight_tips"`
	ObjectiveTips    []string   `json:"objective_tips"`
}

// CoachPackage is the terminal aggregate returned to the caller. Every
// instance must pass the structural gate in Validator before it leaves the
// pipeline.
type CoachPackage struct {
	Patch            string     `json:"patch"`
	GeneratedAt      string     `json:"generated_at"`
	Champion         string     `json:"champion"`
	Role             Role       `json:"role"`
	BlueTeam         []string   `json:"blue_team"`
	RedTeam          []string   `json:"red_team"`
	RecommendedBuild BuildBlock `json:"recommended_build"`
	RecommendedRunes RuneBlock  `json:"recommended_runes"`
	SkillOrder       SkillOrder `json:"skill_order"`
	LaningTips       []string   `json:"laning_tips"`
	TeamfightTips    []string   `json:"teamfight_tips"`
	ObjectiveTips    []string   `json:"objective_tips"`
	Confidence       float64    `json:"confidence"`
	Warnings         []string   `json:"warnings"`
}

// CoachRequest is the pipeline invocation interface.
type CoachRequest struct {
	ImagePath       string   `json:"image_path"`
	ManualChampions []string `json:"manual_champions,omitempty"`
}
