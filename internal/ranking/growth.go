package ranking

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-intel/internal/types"
)

// Learning effort per missing skill, in weeks.
const (
	weeksPerCriticalSkill = 3
	weeksPerOtherSkill    = 2
)

// readiness buckets total learning weeks into a label; the first bucket whose
// limit is not exceeded applies.
var readiness = []struct {
	maxWeeks int
	label    string
}{
	{2, "1-2 weeks"},
	{6, "1-2 months"},
	{12, "2-3 months"},
}

const (
	readyNow      = "ready now"
	readyLongTerm = "3+ months"
)

// growthPotential labels how reachable a role is: few missing skills and an
// aligned domain both raise the label.
func growthPotential(missing int, domainAligned bool) types.GrowthPotential {
	points := 0
	switch {
	case missing <= 1:
		points += 2
	case missing <= 3:
		points++
	}
	if domainAligned {
		points++
	}

	switch {
	case points >= 3:
		return types.GrowthHigh
	case points == 2:
		return types.GrowthModerate
	default:
		return types.GrowthLow
	}
}

// TimeToReady estimates how long closing the skill gap takes. Critical skills
// weigh more than the rest of the missing set.
func TimeToReady(missing, critical []string) string {
	if len(missing) == 0 {
		return readyNow
	}

	isCritical := make(map[string]bool, len(critical))
	for _, c := range critical {
		isCritical[c] = true
	}

	weeks := 0
	for _, m := range missing {
		if isCritical[m] {
			weeks += weeksPerCriticalSkill
		} else {
			weeks += weeksPerOtherSkill
		}
	}

	for _, b := range readiness {
		if weeks <= b.maxWeeks {
			return b.label
		}
	}
	return readyLongTerm
}

// generateNotes creates a brief explanation of the match.
func generateNotes(role types.JobRoleDefinition, skillOverlap, experienceFit, keywordOverlap float64, matched []string, domainAligned bool) string {
	var parts []string

	// Skill match description
	if len(matched) > 0 {
		list := strings.Join(matched, ", ")
		if skillOverlap >= 0.7 {
			parts = append(parts, fmt.Sprintf("Strong skill match (%s)", list))
		} else if skillOverlap >= 0.4 {
			parts = append(parts, fmt.Sprintf("Moderate skill match (%s)", list))
		} else {
			parts = append(parts, fmt.Sprintf("Weak skill match (%s)", list))
		}
	} else {
		parts = append(parts, "No skill matches")
	}

	// Level description
	switch {
	case experienceFit >= levelFit[0]:
		parts = append(parts, fmt.Sprintf("Experience level aligns with %s role", role.ExperienceLevel))
	case experienceFit >= levelFit[1]:
		parts = append(parts, fmt.Sprintf("Experience level is one step from %s role", role.ExperienceLevel))
	default:
		parts = append(parts, fmt.Sprintf("Experience level is far from %s role", role.ExperienceLevel))
	}

	if domainAligned {
		parts = append(parts, fmt.Sprintf("Has %s domain experience", role.Domain))
	}

	// Keyword match description
	if keywordOverlap >= 0.5 {
		parts = append(parts, "Good keyword overlap")
	} else if keywordOverlap > 0 {
		parts = append(parts, "Some keyword overlap")
	}

	return strings.Join(parts, ". ")
}
