package ranking

import (
	"fmt"

	"github.com/jonathan/resume-intel/internal/types"
)

// levelMilestones describe what growing into each career level involves.
var levelMilestones = map[types.CareerLevel]struct {
	actions  []string
	timeline string
}{
	types.LevelJunior: {
		actions:  []string{"Ship features end to end with code review", "Learn the team's tooling and release process"},
		timeline: "6-12 months",
	},
	types.LevelMid: {
		actions:  []string{"Own a component from design to production", "Review peers' work"},
		timeline: "1-2 years",
	},
	types.LevelSenior: {
		actions:  []string{"Lead the design of a cross-team feature", "Mentor junior colleagues"},
		timeline: "2-3 years",
	},
	types.LevelLead: {
		actions:  []string{"Run a team's planning and delivery", "Set technical direction for a team"},
		timeline: "2-4 years",
	},
	types.LevelArchitect: {
		actions:  []string{"Define architecture across systems", "Drive technical standards across teams"},
		timeline: "3-5 years",
	},
}

// Role returns the catalog role with the given ID.
func (r *Recommender) Role(id string) (types.JobRoleDefinition, bool) {
	for _, role := range r.roles {
		if role.ID == id {
			return role, true
		}
	}
	return types.JobRoleDefinition{}, false
}

// GapAnalysis compares the candidate's skills with one role. Missing skills
// keep catalog order and are split into the role's critical skills and the
// rest; each gets a learning path.
func (r *Recommender) GapAnalysis(skills *types.SkillProfile, roleID string) (*types.SkillGapAnalysis, error) {
	role, ok := r.Role(roleID)
	if !ok {
		return nil, &UnknownRoleError{ID: roleID}
	}
	return gapAnalysis(role, skills), nil
}

func gapAnalysis(role types.JobRoleDefinition, skills *types.SkillProfile) *types.SkillGapAnalysis {
	matched, missing := skillOverlap(role.RequiredSkills, skills)

	isCritical := make(map[string]bool, len(role.CriticalSkills))
	for _, c := range role.CriticalSkills {
		isCritical[c] = true
	}

	gap := &types.SkillGapAnalysis{
		RoleID:                 role.ID,
		TargetRole:             role.Title,
		MatchedSkills:          matched,
		CriticalMissingSkills:  []string{},
		ImportantMissingSkills: []string{},
		LearningPath:           make([]types.LearningPath, 0, len(missing)),
		TimeToReady:            TimeToReady(missing, role.CriticalSkills),
	}
	if len(role.RequiredSkills) > 0 {
		gap.MatchPercentage = round(float64(len(matched))/float64(len(role.RequiredSkills))*100, 1)
	}

	for _, skill := range missing {
		if isCritical[skill] {
			gap.CriticalMissingSkills = append(gap.CriticalMissingSkills, skill)
		} else {
			gap.ImportantMissingSkills = append(gap.ImportantMissingSkills, skill)
		}
	}
	// Critical skills are learned first.
	for _, skill := range append(append([]string{}, gap.CriticalMissingSkills...), gap.ImportantMissingSkills...) {
		gap.LearningPath = append(gap.LearningPath, LearningPathFor(skill))
	}
	return gap
}

// Roadmap plans the way from the candidate's current level to a role: closing
// critical then remaining skill gaps, one phase per career level still to
// climb, then portfolio building and interview preparation.
func (r *Recommender) Roadmap(skills *types.SkillProfile, experience *types.ExperienceProfile, roleID string) (*types.CareerRoadmap, error) {
	role, ok := r.Role(roleID)
	if !ok {
		return nil, &UnknownRoleError{ID: roleID}
	}

	current := types.LevelFresher
	if experience != nil && experience.CareerLevel.Rank() >= 0 {
		current = experience.CareerLevel
	}
	gap := gapAnalysis(role, skills)

	roadmap := &types.CareerRoadmap{
		RoleID:       role.ID,
		TargetRole:   role.Title,
		CurrentLevel: current,
		TargetLevel:  role.ExperienceLevel,
		TimeToReady:  gap.TimeToReady,
	}

	if len(gap.CriticalMissingSkills) > 0 {
		roadmap.Phases = append(roadmap.Phases, types.RoadmapPhase{
			Phase:    "Immediate priority",
			Actions:  prefixed("Master ", gap.CriticalMissingSkills),
			Timeline: TimeToReady(gap.CriticalMissingSkills, gap.CriticalMissingSkills),
			Outcome:  "Core skill gaps closed",
		})
	}
	if len(gap.ImportantMissingSkills) > 0 {
		roadmap.Phases = append(roadmap.Phases, types.RoadmapPhase{
			Phase:    "Skill building",
			Actions:  prefixed("Learn ", gap.ImportantMissingSkills),
			Timeline: TimeToReady(gap.ImportantMissingSkills, nil),
			Outcome:  "Every required skill covered",
		})
	}

	for rank := current.Rank() + 1; rank <= role.ExperienceLevel.Rank(); rank++ {
		level := types.CareerLevels[rank]
		milestone := levelMilestones[level]
		roadmap.Phases = append(roadmap.Phases, types.RoadmapPhase{
			Phase:    fmt.Sprintf("Grow to %s level", level),
			Actions:  append([]string(nil), milestone.actions...),
			Timeline: milestone.timeline,
			Outcome:  fmt.Sprintf("Working at %s level", level),
		})
	}

	roadmap.Phases = append(roadmap.Phases,
		types.RoadmapPhase{
			Phase: "Portfolio building",
			Actions: []string{
				fmt.Sprintf("Build 2-3 projects showcasing %s skills", role.Title),
				"Contribute to open source",
				"Write up case studies of past work",
			},
			Timeline: "1-2 months",
			Outcome:  "Demonstrable experience",
		},
		types.RoadmapPhase{
			Phase: "Interview preparation",
			Actions: []string{
				"Practice role-specific interview questions",
				"Prepare examples of past impact",
				"Research target companies",
			},
			Timeline: "2-4 weeks",
			Outcome:  "Interview ready",
		},
	)
	return roadmap, nil
}

func prefixed(prefix string, items []string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = prefix + item
	}
	return out
}
