// Package types provides type definitions for structured data used throughout the resume-intel system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Section names recognized by the analysis stages. Sections map keys produced by the
// extraction layer are normalized to these values.
const (
	SectionContact        = "contact"
	SectionSummary        = "summary"
	SectionSkills         = "skills"
	SectionExperience     = "experience"
	SectionEducation      = "education"
	SectionProjects       = "projects"
	SectionCertifications = "certifications"
	SectionAwards         = "awards"
)

// Tier classifies how prominent a skill is in a candidate's profile.
type Tier string

// Skill tiers, in precedence order.
const (
	TierEmerging  Tier = "emerging"
	TierPrimary   Tier = "primary"
	TierSecondary Tier = "secondary"
)

// RawSkillMention is a token or phrase extracted from resume text.
type RawSkillMention struct {
	Text    string `json:"text"`
	Section string `json:"section"`
	Count   int    `json:"count"`
}

// CanonicalSkill is a skill catalog entry.
type CanonicalSkill struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Aliases  []string `json:"aliases,omitempty"`
	Emerging bool     `json:"emerging,omitempty"`
}

// SkillMentions is the normalizer output for a single canonical skill, before tiering.
type SkillMentions struct {
	Name     string   `json:"name"`
	Count    int      `json:"count"`
	Sections []string `json:"sections"` // sorted, deduplicated
}

// PartialSkillProfile holds normalized mentions keyed by canonical name.
type PartialSkillProfile struct {
	Skills map[string]SkillMentions `json:"skills"`
}

// SkillEntry is the per-skill record in a SkillProfile.
type SkillEntry struct {
	Category     string   `json:"category"`
	Tier         Tier     `json:"tier"`
	MentionCount int      `json:"mention_count"`
	Sections     []string `json:"sections,omitempty"`
}

// SkillProfile is the categorized, tiered skill set of a candidate.
// Keys of Skills are canonical skill names only.
type SkillProfile struct {
	Skills       map[string]SkillEntry `json:"skills"`
	Categories   map[string][]string   `json:"categories"`
	Unrecognized []string              `json:"unrecognized,omitempty"`
}

// Names returns the canonical skill names in the profile.
func (p *SkillProfile) Names() []string {
	if p == nil {
		return nil
	}
	names := make([]string, 0, len(p.Skills))
	for name := range p.Skills {
		names = append(names, name)
	}
	return names
}

// Has reports whether the profile contains the canonical skill name.
func (p *SkillProfile) Has(name string) bool {
	if p == nil {
		return false
	}
	_, ok := p.Skills[name]
	return ok
}

// CountTier returns the number of skills classified in the given tier.
func (p *SkillProfile) CountTier(tier Tier) int {
	if p == nil {
		return 0
	}
	n := 0
	for _, entry := range p.Skills {
		if entry.Tier == tier {
			n++
		}
	}
	return n
}
