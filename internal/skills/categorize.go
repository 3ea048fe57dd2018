package skills

import (
	"sort"

	"github.com/jonathan/resume-intel/internal/catalog"
	"github.com/jonathan/resume-intel/internal/types"
)

// prominentSections are where a skill must appear to qualify as primary.
var prominentSections = []string{types.SectionSkills, types.SectionSummary}

// Categorize assigns each normalized skill its catalog category and a tier.
// Tier precedence: emerging (catalog flag), then primary (mentioned at least
// primaryThreshold times and present in the skills or summary section), then
// secondary. Skills missing from the catalog are dropped. The catalog and the
// input are not modified, and the result depends only on the inputs.
func Categorize(partial *types.PartialSkillProfile, c *catalog.SkillCatalog, primaryThreshold int) *types.SkillProfile {
	profile := &types.SkillProfile{
		Skills:     make(map[string]types.SkillEntry),
		Categories: make(map[string][]string),
	}
	if partial == nil {
		return profile
	}

	for name, mentions := range partial.Skills {
		skill, ok := c.ByName(name)
		if !ok {
			continue
		}

		sections := append([]string(nil), mentions.Sections...)
		sort.Strings(sections)

		profile.Skills[skill.Name] = types.SkillEntry{
			Category:     skill.Category,
			Tier:         tierFor(skill, mentions, primaryThreshold),
			MentionCount: mentions.Count,
			Sections:     sections,
		}
		profile.Categories[skill.Category] = append(profile.Categories[skill.Category], skill.Name)
	}

	for category := range profile.Categories {
		sort.Strings(profile.Categories[category])
	}

	return profile
}

func tierFor(skill types.CanonicalSkill, mentions types.SkillMentions, primaryThreshold int) types.Tier {
	if skill.Emerging {
		return types.TierEmerging
	}
	if mentions.Count >= primaryThreshold && inAnySection(mentions.Sections, prominentSections) {
		return types.TierPrimary
	}
	return types.TierSecondary
}

func inAnySection(sections, wanted []string) bool {
	for _, s := range sections {
		for _, w := range wanted {
			if s == w {
				return true
			}
		}
	}
	return false
}

// PartialFrom rebuilds normalizer output from a categorized profile, so that a
// profile can be re-tiered under a different threshold.
func PartialFrom(profile *types.SkillProfile) *types.PartialSkillProfile {
	partial := &types.PartialSkillProfile{Skills: make(map[string]types.SkillMentions)}
	if profile == nil {
		return partial
	}
	for name, entry := range profile.Skills {
		partial.Skills[name] = types.SkillMentions{
			Name:     name,
			Count:    entry.MentionCount,
			Sections: append([]string(nil), entry.Sections...),
		}
	}
	return partial
}
