// Package ranking scores a candidate against the job-role catalog and ranks the matches.
package ranking

import (
	"math"
	"sort"

	"github.com/jonathan/resume-intel/internal/catalog"
	"github.com/jonathan/resume-intel/internal/config"
	"github.com/jonathan/resume-intel/internal/textmatch"
	"github.com/jonathan/resume-intel/internal/types"
)

// levelFit is the experience fit by distance on the career-level ladder.
// Distances past the end of the table use the last value.
var levelFit = []float64{1.0, 0.6, 0.2}

// Recommender ranks job roles for a candidate. It holds only read-only state
// and is safe for concurrent use.
type Recommender struct {
	roles   []types.JobRoleDefinition
	weights config.RecommenderWeights
	topN    int
}

// NewRecommender creates a recommender over the roles of jobs. topN bounds the
// number of matches returned; values below 1 return every role.
func NewRecommender(jobs *catalog.JobCatalog, weights config.RecommenderWeights, topN int) *Recommender {
	return &Recommender{
		roles:   jobs.All(),
		weights: weights,
		topN:    topN,
	}
}

// Recommend scores every role against the candidate and returns the top matches,
// ordered by match score, then skill match percentage, then catalog order.
// freeText is the candidate's resume text, used for keyword overlap.
func (r *Recommender) Recommend(skills *types.SkillProfile, experience *types.ExperienceProfile, freeText string) []types.JobMatch {
	matches := make([]types.JobMatch, 0, len(r.roles))
	if len(r.roles) == 0 {
		return matches
	}

	folded := textmatch.Fold(freeText)
	level := types.LevelFresher
	if experience != nil && experience.CareerLevel.Rank() >= 0 {
		level = experience.CareerLevel
	}

	for _, role := range r.roles {
		matches = append(matches, r.match(role, skills, experience, level, folded))
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].MatchScore != matches[j].MatchScore {
			return matches[i].MatchScore > matches[j].MatchScore
		}
		return matches[i].SkillMatchPercentage > matches[j].SkillMatchPercentage
	})

	if r.topN > 0 && len(matches) > r.topN {
		matches = matches[:r.topN]
	}
	return matches
}

func (r *Recommender) match(
	role types.JobRoleDefinition,
	skills *types.SkillProfile,
	experience *types.ExperienceProfile,
	level types.CareerLevel,
	folded string,
) types.JobMatch {
	matched, missing := skillOverlap(role.RequiredSkills, skills)
	overlap := 0.0
	if len(role.RequiredSkills) > 0 {
		overlap = float64(len(matched)) / float64(len(role.RequiredSkills))
	}

	fit := ExperienceFit(level, role.ExperienceLevel)

	matchedKw, missingKw := keywordOverlap(role.Keywords, folded)
	kwOverlap := 0.0
	if len(role.Keywords) > 0 {
		kwOverlap = float64(len(matchedKw)) / float64(len(role.Keywords))
	}

	score := r.weights.Skill*overlap + r.weights.Experience*fit + r.weights.Keyword*kwOverlap
	score = math.Max(0, math.Min(score, 1))

	aligned := role.Domain != "" && experience.HasDomain(role.Domain)

	return types.JobMatch{
		RoleID:               role.ID,
		Title:                role.Title,
		MatchScore:           round(score, 3),
		SkillMatchPercentage: round(overlap*100, 1),
		ExperienceFit:        fit,
		KeywordOverlap:       round(kwOverlap, 3),
		MatchedSkills:        matched,
		MissingSkills:        missing,
		MatchedKeywords:      matchedKw,
		MissingKeywords:      missingKw,
		GrowthPotential:      growthPotential(len(missing), aligned),
		DemandLevel:          role.Demand,
		TimeToReady:          TimeToReady(missing, role.CriticalSkills),
		Notes:                generateNotes(role, overlap, fit, kwOverlap, matched, aligned),
	}
}

// ExperienceFit scores the distance between the candidate's level and the
// level a role expects.
func ExperienceFit(candidate, required types.CareerLevel) float64 {
	c, r := candidate.Rank(), required.Rank()
	if c < 0 || r < 0 {
		return levelFit[len(levelFit)-1]
	}
	d := c - r
	if d < 0 {
		d = -d
	}
	if d >= len(levelFit) {
		d = len(levelFit) - 1
	}
	return levelFit[d]
}

// skillOverlap splits required into skills the candidate has and lacks,
// both in catalog order.
func skillOverlap(required []string, skills *types.SkillProfile) ([]string, []string) {
	matched := make([]string, 0, len(required))
	missing := make([]string, 0, len(required))
	for _, name := range required {
		if skills.Has(name) {
			matched = append(matched, name)
		} else {
			missing = append(missing, name)
		}
	}
	return matched, missing
}

func keywordOverlap(keywords []string, folded string) ([]string, []string) {
	matched := make([]string, 0, len(keywords))
	missing := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if folded != "" && textmatch.Contains(folded, textmatch.Fold(kw)) {
			matched = append(matched, kw)
		} else {
			missing = append(missing, kw)
		}
	}
	return matched, missing
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
