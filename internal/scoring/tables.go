package scoring

import "github.com/jonathan/resume-intel/internal/types"

// coreSections must all be present for full structure points.
var coreSections = []string{
	types.SectionSummary,
	types.SectionSkills,
	types.SectionExperience,
	types.SectionEducation,
}

// sectionRank orders sections for the structure check. Body sections share a rank.
var sectionRank = map[string]int{
	types.SectionContact:        0,
	types.SectionSummary:        1,
	types.SectionSkills:         2,
	types.SectionExperience:     2,
	types.SectionEducation:      2,
	types.SectionProjects:       2,
	types.SectionCertifications: 2,
}

// sectionWeights sum to 85; contact details and links make up the rest of completeness.
var sectionWeights = []struct {
	section string
	weight  float64
}{
	{types.SectionSummary, 15},
	{types.SectionSkills, 15},
	{types.SectionExperience, 20},
	{types.SectionEducation, 15},
	{types.SectionCertifications, 10},
	{types.SectionProjects, 10},
}

// atsKeywords is general vocabulary applicant tracking systems look for.
var atsKeywords = []string{
	"agile", "scrum", "ci/cd", "devops", "microservices", "api", "cloud",
	"leadership", "teamwork", "communication", "problem-solving", "analytical",
	"project management", "stakeholder", "strategy", "innovation",
	"collaboration", "adaptability", "critical thinking", "time management",
	"attention to detail", "organization",
}

var dimensionLabels = map[string]string{
	types.DimensionSkillRelevance:       "skill relevance",
	types.DimensionExperienceClarity:    "experience clarity",
	types.DimensionKeywordOptimization:  "keyword optimization",
	types.DimensionStructureReadability: "structure and readability",
	types.DimensionCompleteness:         "completeness",
}

// dimensionTips holds the suggestion emitted when a dimension scores below threshold.
var dimensionTips = map[string]string{
	types.DimensionSkillRelevance:       "Add more in-demand skills to a dedicated skills section and mention your core skills in the summary",
	types.DimensionExperienceClarity:    "Give every position a title, organization, date range and a description of concrete achievements",
	types.DimensionKeywordOptimization:  "Use keywords from your target role's job descriptions in your summary and experience",
	types.DimensionStructureReadability: "Use standard section headings in a conventional order and include your email, phone and profile links",
	types.DimensionCompleteness:         "Add the missing standard sections such as summary, skills, experience, education, projects and certifications",
}
