package scoring

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-intel/internal/types"
)

const backendPosting = `We are hiring a backend engineer.
Must have Go and PostgreSQL. Experience with distributed systems or message queues.
Familiar with Kubernetes. Requires 5+ years of Go.`

func TestExtractRequirements(t *testing.T) {
	assert.Equal(t,
		[]string{"Go", "PostgreSQL", "distributed systems", "message queues", "Kubernetes"},
		ExtractRequirements(backendPosting))

	assert.Equal(t,
		[]string{"large scale data pipelines"},
		ExtractRequirements("Proficient in large scale data pipelines built on streaming tech"))

	assert.Empty(t, ExtractRequirements("Nice office with snacks."))
}

func TestCompareWithJobDescription(t *testing.T) {
	skills := &types.SkillProfile{Skills: map[string]types.SkillEntry{
		"Go": {Tier: types.TierPrimary, MentionCount: 3},
	}}
	resume := "Built Go services on Kubernetes for a distributed platform."

	cmp := CompareWithJobDescription(resume, backendPosting, skills, []string{"Go", "Kubernetes", "PostgreSQL"})

	assert.Equal(t, []string{"Go", "Kubernetes", "PostgreSQL", "distributed systems", "message queues"}, cmp.Requirements)
	assert.Equal(t, []string{"Go", "Kubernetes", "distributed systems"}, cmp.MatchedRequirements)
	assert.Equal(t, []string{"PostgreSQL", "message queues"}, cmp.MissingRequirements)
	assert.Equal(t, 60.0, cmp.MatchPercentage)
	assert.Contains(t, cmp.Recommendation, "Good match")
}

func TestCompareWithJobDescription_NoRequirements(t *testing.T) {
	cmp := CompareWithJobDescription("Go developer", "Nice office with snacks.", nil, nil)

	assert.Zero(t, cmp.MatchPercentage)
	assert.Empty(t, cmp.Requirements)
	assert.NotNil(t, cmp.MatchedRequirements)
	assert.Equal(t, noRequirements, cmp.Recommendation)
}

func TestCompareWithJobDescription_Bands(t *testing.T) {
	tests := []struct {
		name   string
		resume string
		want   string
	}{
		{"all met", "Go PostgreSQL Kubernetes distributed message queues", "Strong match"},
		{"none met", "Pastry chef", "Low match"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmp := CompareWithJobDescription(tt.resume, backendPosting, nil, []string{"Go", "Kubernetes", "PostgreSQL"})
			assert.Contains(t, cmp.Recommendation, tt.want)
		})
	}
}

func TestCompareWithJobDescription_CapsRequirements(t *testing.T) {
	var jobSkills []string
	for i := 0; i < 20; i++ {
		jobSkills = append(jobSkills, fmt.Sprintf("Skill%d", i))
	}

	cmp := CompareWithJobDescription("", backendPosting, nil, jobSkills)
	require.Len(t, cmp.Requirements, maxRequirements)
	assert.Equal(t, "Skill0", cmp.Requirements[0])
	assert.Zero(t, cmp.MatchPercentage)
}
