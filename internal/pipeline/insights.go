package pipeline

import (
	"context"
	"errors"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-intel/internal/extract"
	"github.com/jonathan/resume-intel/internal/ranking"
	"github.com/jonathan/resume-intel/internal/scoring"
	"github.com/jonathan/resume-intel/internal/skills"
	"github.com/jonathan/resume-intel/internal/types"
)

// ErrEmptyJobDescription is returned when Compare is given a blank job description.
var ErrEmptyJobDescription = errors.New("pipeline: empty job description")

const sectionJobDescription = "job_description"

// GapAnalysis analyzes doc and details its skill gap for one catalog role.
// An unknown role fails with *ranking.UnknownRoleError before any analysis runs.
func (e *Engine) GapAnalysis(ctx context.Context, doc *types.Document, roleID string) (*types.SkillGapAnalysis, error) {
	if _, ok := e.recommender.Role(roleID); !ok {
		return nil, &ranking.UnknownRoleError{ID: roleID}
	}
	result, err := e.Analyze(ctx, doc)
	if err != nil {
		return nil, err
	}
	return e.recommender.GapAnalysis(result.SkillProfile, roleID)
}

// Roadmap analyzes doc and plans the way from its career level to one catalog role.
func (e *Engine) Roadmap(ctx context.Context, doc *types.Document, roleID string) (*types.CareerRoadmap, error) {
	if _, ok := e.recommender.Role(roleID); !ok {
		return nil, &ranking.UnknownRoleError{ID: roleID}
	}
	result, err := e.Analyze(ctx, doc)
	if err != nil {
		return nil, err
	}
	return e.recommender.Roadmap(result.SkillProfile, result.ExperienceProfile, roleID)
}

// Compare analyzes doc and checks it against a free-text job description.
// Catalog skills named in the description count as requirements alongside
// the phrases the description introduces with cues like "experience with".
func (e *Engine) Compare(ctx context.Context, doc *types.Document, jobDescription string) (*types.JobComparison, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return nil, ErrEmptyJobDescription
	}
	result, err := e.Analyze(ctx, doc)
	if err != nil {
		return nil, err
	}

	jobSkills := e.skillsIn(jobDescription)
	cmp := scoring.CompareWithJobDescription(extract.Normalize(doc).RawText, jobDescription, result.SkillProfile, jobSkills)
	e.logger.Debug("job description compared",
		zap.String("source", result.Source),
		zap.Int("requirements", len(cmp.Requirements)),
		zap.Float64("match_percentage", cmp.MatchPercentage),
	)
	return cmp, nil
}

// skillsIn returns the canonical names of the catalog skills a text names, sorted.
func (e *Engine) skillsIn(text string) []string {
	mentions := skills.ExtractMentions(map[string]string{sectionJobDescription: text}, e.catalogs.Skills)
	partial, _ := e.normalizer.Normalize(mentions)

	names := make([]string, 0, len(partial.Skills))
	for name := range partial.Skills {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
