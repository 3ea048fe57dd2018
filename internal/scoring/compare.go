package scoring

import (
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/resume-intel/internal/textmatch"
	"github.com/jonathan/resume-intel/internal/types"
)

const (
	maxRequirements     = 15
	maxRequirementWords = 4
)

var (
	requirementCue   = regexp.MustCompile(`(?i)\b(?:required|requires|must have|must know|experience (?:with|in)|proficien(?:t|cy) (?:in|with)|familiar(?:ity)? with|knowledge of|skilled (?:in|with)|expertise in)\s*:?\s+([^\n]+?)(?:[.;:!?](?:\s|$)|\n|$)`)
	requirementSplit = regexp.MustCompile(`(?i)\s*(?:,|&|\band\b|\bor\b)\s*`)
)

// fillerWords never carry a requirement on their own.
var fillerWords = map[string]bool{
	"a": true, "an": true, "the": true, "of": true, "in": true, "with": true, "for": true,
	"strong": true, "solid": true, "good": true, "excellent": true, "proven": true,
	"working": true, "hands-on": true, "deep": true, "modern": true, "plus": true,
	"years": true, "year": true, "experience": true, "skills": true, "knowledge": true,
}

// matchRecommendations map a match percentage to advice; the first band
// whose minimum is reached applies.
var matchRecommendations = []struct {
	min  float64
	text string
}{
	{80, "Strong match. Apply with confidence."},
	{60, "Good match. Address the missing requirements in your resume."},
	{40, "Partial match. Close the main skill gaps before applying."},
	{0, "Low match. Consider similar roles that fit your current skills first."},
}

const noRequirements = "No requirements recognized in the job description."

// CompareWithJobDescription checks a resume against a free-text job
// description. Requirements are the catalog skills the description names
// (jobSkills, canonical names) followed by phrases introduced by cues such as
// "experience with" or "must have", capped at 15. A skill requirement is met
// when the candidate has the skill or the resume names it; a phrase is met when
// the resume contains it or at least half of its significant words.
func CompareWithJobDescription(resumeText, jobDescription string, skills *types.SkillProfile, jobSkills []string) *types.JobComparison {
	folded := textmatch.Fold(resumeText)
	isSkill := make(map[string]bool, len(jobSkills))

	var requirements []string
	seen := make(map[string]bool)
	for _, s := range jobSkills {
		key := textmatch.Fold(s)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		isSkill[s] = true
		requirements = append(requirements, s)
	}
	for _, phrase := range ExtractRequirements(jobDescription) {
		key := textmatch.Fold(phrase)
		if seen[key] {
			continue
		}
		seen[key] = true
		requirements = append(requirements, phrase)
	}
	if len(requirements) > maxRequirements {
		requirements = requirements[:maxRequirements]
	}

	cmp := &types.JobComparison{
		Requirements:        requirements,
		MatchedRequirements: []string{},
		MissingRequirements: []string{},
	}
	if len(requirements) == 0 {
		cmp.Requirements = []string{}
		cmp.Recommendation = noRequirements
		return cmp
	}

	for _, req := range requirements {
		var met bool
		if isSkill[req] {
			met = skills.Has(req) || textmatch.Contains(folded, textmatch.Fold(req))
		} else {
			met = phraseMet(folded, req)
		}
		if met {
			cmp.MatchedRequirements = append(cmp.MatchedRequirements, req)
		} else {
			cmp.MissingRequirements = append(cmp.MissingRequirements, req)
		}
	}

	pct := float64(len(cmp.MatchedRequirements)) / float64(len(requirements)) * 100
	cmp.MatchPercentage = math.Round(pct*10) / 10
	for _, band := range matchRecommendations {
		if cmp.MatchPercentage >= band.min {
			cmp.Recommendation = band.text
			break
		}
	}
	return cmp
}

// ExtractRequirements returns the requirement phrases of a job description in
// order of appearance, deduplicated case-insensitively. "Experience with Go
// and distributed systems" yields "Go" and "distributed systems".
func ExtractRequirements(jobDescription string) []string {
	var out []string
	seen := make(map[string]bool)

	for _, m := range requirementCue.FindAllStringSubmatch(jobDescription, -1) {
		for _, item := range requirementSplit.Split(m[1], -1) {
			words := strings.Fields(item)
			for len(words) > 0 && (fillerWords[strings.ToLower(words[0])] || startsWithDigit(words[0])) {
				words = words[1:]
			}
			if len(words) == 0 {
				continue
			}
			if len(words) > maxRequirementWords {
				words = words[:maxRequirementWords]
			}
			phrase := strings.Join(words, " ")
			if key := textmatch.Fold(phrase); !seen[key] && len(significantWords(key)) > 0 {
				seen[key] = true
				out = append(out, phrase)
			}
		}
	}
	return out
}

func phraseMet(folded, phrase string) bool {
	key := textmatch.Fold(phrase)
	if textmatch.Contains(folded, key) {
		return true
	}
	words := significantWords(key)
	if len(words) == 0 {
		return false
	}
	found := 0
	for _, w := range words {
		if textmatch.Contains(folded, w) {
			found++
		}
	}
	return found*2 >= len(words)
}

// significantWords drops filler words from a folded phrase.
func significantWords(key string) []string {
	var out []string
	for _, w := range strings.Fields(key) {
		if !fillerWords[w] {
			out = append(out, w)
		}
	}
	return out
}

func startsWithDigit(word string) bool {
	r, _ := utf8.DecodeRuneInString(word)
	return unicode.IsDigit(r)
}
