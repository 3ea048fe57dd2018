package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-intel/internal/schemas"
	"github.com/jonathan/resume-intel/internal/types"
)

func TestKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Python", "python"},
		{"  React.js  ", "react.js"},
		{"Machine   Learning", "machine learning"},
		{"• Docker,", "docker"},
		{"C++", "c++"},
		{"STRASSE", "strasse"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Key(tt.in))
		})
	}
}

func TestDefault_LoadsConsistentCatalogs(t *testing.T) {
	set, err := Default()
	require.NoError(t, err)

	assert.Greater(t, set.Skills.Len(), 100)
	assert.Greater(t, set.Jobs.Len(), 20)
	assert.NotEmpty(t, set.Domains.All())

	js, ok := set.Skills.ByAlias("js")
	require.True(t, ok)
	assert.Equal(t, "JavaScript", js.Name)
	assert.False(t, js.Emerging)

	rust, ok := set.Skills.ByName("rust")
	require.True(t, ok)
	assert.True(t, rust.Emerging)

	for _, name := range []string{"JavaScript", "React", "Node.js"} {
		s, ok := set.Skills.ByName(name)
		require.True(t, ok, name)
		assert.False(t, s.Emerging, name)
	}
}

func TestNewSkillCatalog_DuplicateName(t *testing.T) {
	_, err := NewSkillCatalog([]types.CanonicalSkill{
		{Name: "Go", Category: "programming_languages"},
		{Name: "go", Category: "programming_languages"},
	})

	var catErr *CatalogError
	require.True(t, errors.As(err, &catErr))
	assert.Equal(t, NameSkills, catErr.Catalog)
	assert.Contains(t, catErr.Message, "duplicate skill name")
}

func TestNewSkillCatalog_AliasCollidesWithName(t *testing.T) {
	_, err := NewSkillCatalog([]types.CanonicalSkill{
		{Name: "Spring", Category: "frameworks_libraries", Aliases: []string{"spring boot"}},
		{Name: "Spring Boot", Category: "frameworks_libraries"},
	})

	var catErr *CatalogError
	require.True(t, errors.As(err, &catErr))
	assert.Contains(t, catErr.Message, "collides with skill name")
}

func TestNewSkillCatalog_AliasClaimedTwice(t *testing.T) {
	_, err := NewSkillCatalog([]types.CanonicalSkill{
		{Name: "Machine Learning", Category: "data_science", Aliases: []string{"ML"}},
		{Name: "Markup Language", Category: "other", Aliases: []string{"ml"}},
	})

	var catErr *CatalogError
	require.True(t, errors.As(err, &catErr))
	assert.Contains(t, catErr.Message, "claimed by both")
}

func TestNewSkillCatalog_CopiesInput(t *testing.T) {
	input := []types.CanonicalSkill{{Name: "Go", Category: "programming_languages", Aliases: []string{"golang"}}}
	c, err := NewSkillCatalog(input)
	require.NoError(t, err)

	input[0].Name = "Changed"
	input[0].Aliases[0] = "changed"

	s, ok := c.ByAlias("golang")
	require.True(t, ok)
	assert.Equal(t, "Go", s.Name)
}

func TestSkillCatalog_Categories(t *testing.T) {
	c, err := NewSkillCatalog([]types.CanonicalSkill{
		{Name: "Go", Category: "programming_languages"},
		{Name: "Docker", Category: "tools_platforms"},
		{Name: "Rust", Category: "programming_languages"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"programming_languages", "tools_platforms"}, c.Categories())
}

func TestNewJobCatalog_UnknownRequiredSkill(t *testing.T) {
	skills, err := NewSkillCatalog([]types.CanonicalSkill{{Name: "Go", Category: "programming_languages", Aliases: []string{"golang"}}})
	require.NoError(t, err)

	_, err = NewJobCatalog([]types.JobRoleDefinition{{
		ID:              "go_dev",
		Title:           "Go Developer",
		RequiredSkills:  []string{"golang"},
		ExperienceLevel: types.LevelMid,
	}}, skills)

	var catErr *CatalogError
	require.True(t, errors.As(err, &catErr))
	assert.Equal(t, NameJobRoles, catErr.Catalog)
	assert.Contains(t, catErr.Message, "requires unknown skill golang")
}

func TestNewJobCatalog_DuplicateID(t *testing.T) {
	skills, err := NewSkillCatalog([]types.CanonicalSkill{{Name: "Go", Category: "programming_languages"}})
	require.NoError(t, err)

	role := types.JobRoleDefinition{ID: "go_dev", Title: "Go Developer", RequiredSkills: []string{"Go"}, ExperienceLevel: types.LevelMid}
	_, err = NewJobCatalog([]types.JobRoleDefinition{role, role}, skills)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate role id go_dev")
}

func TestNewJobCatalog_UnknownLevel(t *testing.T) {
	skills, err := NewSkillCatalog(nil)
	require.NoError(t, err)

	_, err = NewJobCatalog([]types.JobRoleDefinition{{ID: "x", Title: "X", ExperienceLevel: "guru"}}, skills)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown experience level guru")
}

func TestNewJobCatalog_CriticalNotRequired(t *testing.T) {
	skills, err := NewSkillCatalog([]types.CanonicalSkill{
		{Name: "Go", Category: "programming_languages"},
		{Name: "SQL", Category: "databases"},
	})
	require.NoError(t, err)

	_, err = NewJobCatalog([]types.JobRoleDefinition{{
		ID:              "go_dev",
		Title:           "Go Developer",
		RequiredSkills:  []string{"Go"},
		CriticalSkills:  []string{"SQL"},
		ExperienceLevel: types.LevelMid,
	}}, skills)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "marks SQL critical but does not require it")
}

func TestJobCatalog_RequiredBy(t *testing.T) {
	set, err := Default()
	require.NoError(t, err)

	required := set.Jobs.RequiredBy()
	assert.True(t, required["Python"])
	assert.True(t, required["Patient Care"])
	assert.False(t, required["Gatsby"])
}

func TestNewDomainCatalog_Validation(t *testing.T) {
	_, err := NewDomainCatalog([]Domain{{Name: "finance", Keywords: []string{"banking"}}, {Name: "finance", Keywords: []string{"trading"}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate domain finance")

	_, err = NewDomainCatalog([]Domain{{Name: "finance"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no keywords")
}

func TestParseSkills_SchemaViolation(t *testing.T) {
	_, err := ParseSkills([]byte(`{"skills": [{"name": "Go", "category": "programming_languages", "rank": 1}]}`))

	var catErr *CatalogError
	require.True(t, errors.As(err, &catErr))
	assert.Equal(t, "schema validation failed", catErr.Message)

	var validationErr *schemas.ValidationError
	assert.True(t, errors.As(err, &validationErr))
}

func TestLoad_OverridePaths(t *testing.T) {
	dir := t.TempDir()
	skillsPath := filepath.Join(dir, "skills.json")
	jobsPath := filepath.Join(dir, "jobs.json")

	require.NoError(t, os.WriteFile(skillsPath, []byte(`{"skills": [
		{"name": "Go", "category": "programming_languages", "aliases": ["golang"]},
		{"name": "PostgreSQL", "category": "tools_platforms", "aliases": ["postgres"]}
	]}`), 0644))
	require.NoError(t, os.WriteFile(jobsPath, []byte(`{"roles": [
		{"id": "go_dev", "title": "Go Developer", "required_skills": ["Go", "PostgreSQL"], "experience_level": "mid", "keywords": ["backend"]}
	]}`), 0644))

	set, err := Load(Paths{Skills: skillsPath, Jobs: jobsPath})
	require.NoError(t, err)

	assert.Equal(t, 2, set.Skills.Len())
	require.Equal(t, 1, set.Jobs.Len())
	assert.Equal(t, "Go Developer", set.Jobs.All()[0].Title)
	// Domains fall back to the embedded data
	assert.NotEmpty(t, set.Domains.All())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(Paths{Skills: "/nonexistent/skills.json"})

	var catErr *CatalogError
	require.True(t, errors.As(err, &catErr))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
