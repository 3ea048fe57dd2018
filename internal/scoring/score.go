// Package scoring grades overall resume quality across five weighted dimensions.
package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/resume-intel/internal/catalog"
	"github.com/jonathan/resume-intel/internal/config"
	"github.com/jonathan/resume-intel/internal/textmatch"
	"github.com/jonathan/resume-intel/internal/types"
)

// Thresholds for the strengths and weaknesses lists.
const (
	strengthThreshold = 85.0
	weaknessThreshold = 50.0
)

// Saturation points for count-based signals.
const (
	primarySkillTarget = 5
	entryCountTarget   = 4
	atsKeywordTarget   = 8
)

const (
	detailedEntryWords = 10 // description words for an entry to count as detailed

	// Word counts outside [minReadableWords, maxReadableWords] lose readability points.
	minReadableWords = 150
	maxReadableWords = 1200

	maxGapSkillsInTip   = 5
	roleKeywordShare    = 0.7 // share of keyword_optimization from the best role's keywords
	sectionPresencePart = 12.5
)

// Scorer computes ResumeScore values. It holds only read-only state and is
// safe for concurrent use.
type Scorer struct {
	weights    config.ScorerWeights
	bands      []config.GradeBand
	threshold  float64
	inDemand   map[string]bool
	atsPhrases []string
}

// NewScorer creates a scorer from validated configuration. jobs supplies the
// demand signal: skills required by at least one role count as in demand.
func NewScorer(cfg config.Config, jobs *catalog.JobCatalog) *Scorer {
	phrases := make([]string, len(atsKeywords))
	for i, k := range atsKeywords {
		phrases[i] = textmatch.Fold(k)
	}
	return &Scorer{
		weights:    cfg.ScorerWeights,
		bands:      cfg.SortedBands(),
		threshold:  cfg.SuggestionThreshold,
		inDemand:   jobs.RequiredBy(),
		atsPhrases: phrases,
	}
}

// Score grades a resume. Missing inputs score at the low end; it never fails
// and never modifies its arguments.
func (s *Scorer) Score(
	skills *types.SkillProfile,
	experience *types.ExperienceProfile,
	matches []types.JobMatch,
	signals types.StructuralSignals,
) *types.ResumeScore {
	var top *types.JobMatch
	if len(matches) > 0 {
		top = &matches[0]
	}

	breakdown := map[string]float64{
		types.DimensionSkillRelevance:       s.skillRelevance(skills),
		types.DimensionExperienceClarity:    experienceClarity(experience, signals),
		types.DimensionKeywordOptimization:  s.keywordOptimization(top, signals.RawText),
		types.DimensionStructureReadability: structureReadability(signals),
		types.DimensionCompleteness:         completeness(signals),
	}
	for dim, v := range breakdown {
		breakdown[dim] = round1(clamp(v))
	}

	overall := breakdown[types.DimensionSkillRelevance]*s.weights.SkillRelevance +
		breakdown[types.DimensionExperienceClarity]*s.weights.ExperienceClarity +
		breakdown[types.DimensionKeywordOptimization]*s.weights.KeywordOptimization +
		breakdown[types.DimensionStructureReadability]*s.weights.StructureReadability +
		breakdown[types.DimensionCompleteness]*s.weights.Completeness
	overall = round1(clamp(overall))

	result := &types.ResumeScore{
		OverallScore: overall,
		Grade:        s.Grade(overall),
		Breakdown:    breakdown,
		Strengths:    []string{},
		Weaknesses:   []string{},
		Suggestions:  []string{},
	}

	for _, dim := range types.Dimensions {
		v := breakdown[dim]
		label := dimensionLabels[dim]
		switch {
		case v >= strengthThreshold:
			result.Strengths = append(result.Strengths, "Strong "+label)
		case v < weaknessThreshold:
			result.Weaknesses = append(result.Weaknesses, "Needs improvement in "+label)
		}
		if v < s.threshold {
			result.Suggestions = append(result.Suggestions, dimensionTips[dim])
		}
	}

	if top != nil && len(top.MissingSkills) > 0 {
		gap := top.MissingSkills
		if len(gap) > maxGapSkillsInTip {
			gap = gap[:maxGapSkillsInTip]
		}
		result.Suggestions = append(result.Suggestions,
			fmt.Sprintf("To qualify for %s, develop: %s", top.Title, strings.Join(gap, ", ")))
	}

	return result
}

// Grade maps a score onto the configured bands. Scores below every band take
// the lowest label.
func (s *Scorer) Grade(score float64) string {
	for _, b := range s.bands {
		if score >= b.MinScore {
			return b.Label
		}
	}
	if len(s.bands) == 0 {
		return ""
	}
	return s.bands[len(s.bands)-1].Label
}

// skillRelevance rewards primary-tier skills and skills the job catalog asks for.
func (s *Scorer) skillRelevance(skills *types.SkillProfile) float64 {
	if skills == nil || len(skills.Skills) == 0 {
		return 0
	}

	inDemand := 0
	for name := range skills.Skills {
		if s.inDemand[name] {
			inDemand++
		}
	}

	primary := float64(skills.CountTier(types.TierPrimary))
	return 60*math.Min(primary/primarySkillTarget, 1) +
		40*float64(inDemand)/float64(len(skills.Skills))
}

// experienceClarity rewards a resolvable timeline and entries that carry a
// title, an organization and a real description. Entries dropped for bad
// dates scale the score down.
func experienceClarity(experience *types.ExperienceProfile, signals types.StructuralSignals) float64 {
	n := len(signals.Entries)
	if n == 0 {
		return 0
	}

	identified, detailed := 0, 0
	for _, e := range signals.Entries {
		if e.Title != "" && e.Organization != "" {
			identified++
		}
		if len(strings.Fields(e.Description)) >= detailedEntryWords {
			detailed++
		}
	}

	score := 30*math.Min(float64(n)/entryCountTarget, 1) +
		30*float64(identified)/float64(n) +
		30*float64(detailed)/float64(n)
	if experience != nil && experience.TotalYears > 0 {
		score += 10
	}

	return score * float64(n) / float64(n+signals.DiscardedEntries)
}

// keywordOptimization measures coverage of the best-matching role's keywords,
// topped up by general ATS vocabulary found in the raw text.
func (s *Scorer) keywordOptimization(top *types.JobMatch, rawText string) float64 {
	role := 0.0
	if top != nil {
		if total := len(top.MatchedKeywords) + len(top.MissingKeywords); total > 0 {
			role = float64(len(top.MatchedKeywords)) / float64(total)
		}
	}

	ats := 0.0
	if rawText != "" {
		folded := textmatch.Fold(rawText)
		found := 0
		for _, p := range s.atsPhrases {
			if textmatch.Contains(folded, p) {
				found++
			}
		}
		ats = math.Min(float64(found)/atsKeywordTarget, 1)
	}

	return 100 * (roleKeywordShare*role + (1-roleKeywordShare)*ats)
}

// structureReadability scores core section presence, contact details, section
// order and overall length.
func structureReadability(signals types.StructuralSignals) float64 {
	present := toSet(signals.NonEmptySections)

	score := 0.0
	for _, sec := range coreSections {
		if present[sec] {
			score += sectionPresencePart
		}
	}
	if signals.HasEmail {
		score += 10
	}
	if signals.HasPhone {
		score += 10
	}
	if signals.HasLinks {
		score += 5
	}
	score += 15 * orderScore(signals.SectionOrder)

	switch w := signals.WordCount; {
	case w == 0:
	case w < minReadableWords:
		score += 10 * float64(w) / minReadableWords
	case w > maxReadableWords:
		score += 10 * maxReadableWords / float64(w)
	default:
		score += 10
	}

	return score
}

// orderScore is the fraction of section pairs that appear in conventional
// order: contact first, then summary, then the body sections in any order.
func orderScore(order []string) float64 {
	ranks := make([]int, 0, len(order))
	for _, sec := range order {
		if r, ok := sectionRank[sec]; ok {
			ranks = append(ranks, r)
		}
	}
	switch len(ranks) {
	case 0:
		return 0
	case 1:
		return 1
	}

	pairs, good := 0, 0
	for i := 0; i < len(ranks); i++ {
		for j := i + 1; j < len(ranks); j++ {
			pairs++
			if ranks[i] <= ranks[j] {
				good++
			}
		}
	}
	return float64(good) / float64(pairs)
}

// completeness is the weighted share of expected sections that are present
// and non-empty.
func completeness(signals types.StructuralSignals) float64 {
	present := toSet(signals.NonEmptySections)

	score := 0.0
	for _, sw := range sectionWeights {
		if present[sw.section] {
			score += sw.weight
		}
	}
	if signals.HasEmail || signals.HasPhone {
		score += 10
	}
	if signals.HasLinks {
		score += 5
	}
	return score
}

func toSet(list []string) map[string]bool {
	out := make(map[string]bool, len(list))
	for _, v := range list {
		out[v] = true
	}
	return out
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(v, 100))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
