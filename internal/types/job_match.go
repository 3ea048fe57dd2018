// Package types provides type definitions for structured data used throughout the resume-intel system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// GrowthPotential is a qualitative label for how reachable a role is.
type GrowthPotential string

// Growth potential labels.
const (
	GrowthHigh     GrowthPotential = "high"
	GrowthModerate GrowthPotential = "moderate"
	GrowthLow      GrowthPotential = "low"
)

// JobRoleDefinition is a job-role catalog entry.
type JobRoleDefinition struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	RequiredSkills  []string    `json:"required_skills"`
	CriticalSkills  []string    `json:"critical_skills,omitempty"` // subset of RequiredSkills
	ExperienceLevel CareerLevel `json:"experience_level"`
	Keywords        []string    `json:"keywords"`
	Domain          string      `json:"domain,omitempty"`
	Demand          string      `json:"demand,omitempty"` // medium, high, very_high
}

// JobMatch is the result of scoring a candidate against one job role.
type JobMatch struct {
	RoleID               string          `json:"role_id"`
	Title                string          `json:"title"`
	MatchScore           float64         `json:"match_score"`            // 0.0 to 1.0
	SkillMatchPercentage float64         `json:"skill_match_percentage"` // 0 to 100
	ExperienceFit        float64         `json:"experience_fit"`
	KeywordOverlap       float64         `json:"keyword_overlap"`
	MatchedSkills        []string        `json:"matched_skills"`
	MissingSkills        []string        `json:"missing_skills"`
	MatchedKeywords      []string        `json:"matched_keywords"`
	MissingKeywords      []string        `json:"missing_keywords"`
	GrowthPotential      GrowthPotential `json:"growth_potential"`
	DemandLevel          string          `json:"demand_level,omitempty"`
	TimeToReady          string          `json:"time_to_ready"`
	Notes                string          `json:"notes"`
}

// LearningPath suggests how to pick up one missing skill.
type LearningPath struct {
	Skill        string   `json:"skill"`
	Level        string   `json:"level"` // beginner, intermediate, advanced
	Resources    []string `json:"resources"`
	TimeEstimate string   `json:"time_estimate"`
}

// SkillGapAnalysis details what stands between a candidate and one job role.
// Critical missing skills are the role's critical skills the candidate lacks;
// the rest of the missing set is important.
type SkillGapAnalysis struct {
	RoleID                 string         `json:"role_id"`
	TargetRole             string         `json:"target_role"`
	MatchPercentage        float64        `json:"match_percentage"` // 0 to 100
	MatchedSkills          []string       `json:"matched_skills"`
	CriticalMissingSkills  []string       `json:"critical_missing_skills"`
	ImportantMissingSkills []string       `json:"important_missing_skills"`
	LearningPath           []LearningPath `json:"learning_path"`
	TimeToReady            string         `json:"time_to_ready"`
}

// RoadmapPhase is one stage of a career roadmap.
type RoadmapPhase struct {
	Phase    string   `json:"phase"`
	Actions  []string `json:"actions"`
	Timeline string   `json:"timeline"`
	Outcome  string   `json:"outcome"`
}

// CareerRoadmap is an ordered plan from the candidate's current level to a
// target role.
type CareerRoadmap struct {
	RoleID       string         `json:"role_id"`
	TargetRole   string         `json:"target_role"`
	CurrentLevel CareerLevel    `json:"current_level"`
	TargetLevel  CareerLevel    `json:"target_level"`
	Phases       []RoadmapPhase `json:"phases"`
	TimeToReady  string         `json:"time_to_ready"`
}

// JobComparison is the result of checking a resume against a free-text job
// description.
type JobComparison struct {
	MatchPercentage     float64  `json:"match_percentage"` // 0 to 100
	Requirements        []string `json:"requirements"`
	MatchedRequirements []string `json:"matched_requirements"`
	MissingRequirements []string `json:"missing_requirements"`
	Recommendation      string   `json:"recommendation"`
}
