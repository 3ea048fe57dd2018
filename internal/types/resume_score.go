// Package types provides type definitions for structured data used throughout the resume-intel system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Quality dimensions reported in ResumeScore.Breakdown.
const (
	DimensionSkillRelevance       = "skill_relevance"
	DimensionExperienceClarity    = "experience_clarity"
	DimensionKeywordOptimization  = "keyword_optimization"
	DimensionStructureReadability = "structure_readability"
	DimensionCompleteness         = "completeness"
)

// Dimensions lists the quality dimensions in reporting order.
var Dimensions = []string{
	DimensionSkillRelevance,
	DimensionExperienceClarity,
	DimensionKeywordOptimization,
	DimensionStructureReadability,
	DimensionCompleteness,
}

// StructuralSignals describes the layout and completeness of the source document.
type StructuralSignals struct {
	SectionOrder     []string          `json:"section_order"`      // recognized sections in document order
	NonEmptySections []string          `json:"non_empty_sections"` // recognized sections with content
	Entries          []ExperienceEntry `json:"entries"`            // accepted experience entries
	DiscardedEntries int               `json:"discarded_entries"`
	HasEmail         bool              `json:"has_email"`
	HasPhone         bool              `json:"has_phone"`
	HasLinks         bool              `json:"has_links"`
	WordCount        int               `json:"word_count"`
	RawText          string            `json:"-"`
}

// ResumeScore is the overall quality assessment.
type ResumeScore struct {
	OverallScore float64            `json:"overall_score"` // 0 to 100
	Grade        string             `json:"grade"`
	Breakdown    map[string]float64 `json:"breakdown"`
	Strengths    []string           `json:"strengths"`
	Weaknesses   []string           `json:"weaknesses"`
	Suggestions  []string           `json:"suggestions"`
}
