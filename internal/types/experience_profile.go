// Package types provides type definitions for structured data used throughout the resume-intel system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// CareerLevel is an ordered seniority classification.
type CareerLevel string

// Career levels, lowest first.
const (
	LevelFresher   CareerLevel = "fresher"
	LevelJunior    CareerLevel = "junior"
	LevelMid       CareerLevel = "mid"
	LevelSenior    CareerLevel = "senior"
	LevelLead      CareerLevel = "lead"
	LevelArchitect CareerLevel = "architect"
)

// CareerLevels is the shared level ladder used by the experience analyzer and the job recommender.
var CareerLevels = []CareerLevel{
	LevelFresher,
	LevelJunior,
	LevelMid,
	LevelSenior,
	LevelLead,
	LevelArchitect,
}

// Rank returns the position of the level on the ladder, or -1 if unknown.
func (l CareerLevel) Rank() int {
	for i, level := range CareerLevels {
		if level == l {
			return i
		}
	}
	return -1
}

// ExperienceEntry is a single parsed work-history entry.
// A nil EndDate means the position is ongoing.
type ExperienceEntry struct {
	Title        string     `json:"title"`
	Organization string     `json:"organization"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	Description  string     `json:"description"`
}

// Ongoing reports whether the entry is a current position.
func (e ExperienceEntry) Ongoing() bool {
	return e.EndDate == nil
}

// ProgressionStep is one position in the candidate's career progression.
type ProgressionStep struct {
	Title        string `json:"title"`
	Organization string `json:"organization"`
	Level        string `json:"level"` // junior, mid, senior (from the title)
}

// ExperienceProfile aggregates a candidate's work history.
type ExperienceProfile struct {
	TotalYears           float64           `json:"total_years"`
	CareerLevel          CareerLevel       `json:"career_level"`
	DomainExpertise      []string          `json:"domain_expertise"`
	ComplexityScore      float64           `json:"complexity_score"` // 0.0 to 1.0
	EntryCount           int               `json:"entry_count"`
	LeadershipExperience bool              `json:"leadership_experience"`
	RoleSpecialization   string            `json:"role_specialization"`
	Progression          []ProgressionStep `json:"progression,omitempty"`
}

// HasDomain reports whether the profile lists the domain.
func (p *ExperienceProfile) HasDomain(domain string) bool {
	if p == nil {
		return false
	}
	for _, d := range p.DomainExpertise {
		if d == domain {
			return true
		}
	}
	return false
}
