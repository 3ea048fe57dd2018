// Package skills resolves raw skill mentions to canonical catalog skills and
// classifies them into tiers.
package skills

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/jonathan/resume-intel/internal/catalog"
	"github.com/jonathan/resume-intel/internal/types"
)

const (
	// minFuzzyRunes is the shortest term that may take part in fuzzy matching.
	minFuzzyRunes = 3

	// Fuzzy signal scores
	stemMatchScore       = 0.95
	containmentBaseScore = 0.6
	containmentSpan      = 0.4
)

// fuzzyTerm is a catalog name or alias prepared for fuzzy comparison.
type fuzzyTerm struct {
	key   string
	stem  string
	words []string
	runes int
	skill int // catalog index
}

// Normalizer maps raw mentions onto a skill catalog. It is safe for concurrent use.
type Normalizer struct {
	catalog        *catalog.SkillCatalog
	fuzzyThreshold float64
	terms          []fuzzyTerm
}

// NewNormalizer prepares a normalizer over the catalog. Mentions whose best fuzzy
// score falls below fuzzyThreshold are reported as unrecognized.
func NewNormalizer(c *catalog.SkillCatalog, fuzzyThreshold float64) *Normalizer {
	n := &Normalizer{catalog: c, fuzzyThreshold: fuzzyThreshold}
	for i := 0; i < c.Len(); i++ {
		s := c.At(i)
		for _, term := range append([]string{s.Name}, s.Aliases...) {
			key := catalog.Key(term)
			runes := utf8.RuneCountInString(key)
			if runes < minFuzzyRunes {
				continue
			}
			n.terms = append(n.terms, fuzzyTerm{
				key:   key,
				stem:  stemPhrase(key),
				words: strings.Fields(key),
				runes: runes,
				skill: i,
			})
		}
	}
	return n
}

// Normalize resolves every mention and aggregates counts per canonical skill.
// Resolution order is exact canonical name, then alias, then fuzzy match.
// Unrecognized mention texts are returned deduplicated in first-seen order.
func Normalize(mentions []types.RawSkillMention, c *catalog.SkillCatalog, fuzzyThreshold float64) (*types.PartialSkillProfile, []string) {
	return NewNormalizer(c, fuzzyThreshold).Normalize(mentions)
}

// Normalize resolves every mention; see the package-level Normalize.
func (n *Normalizer) Normalize(mentions []types.RawSkillMention) (*types.PartialSkillProfile, []string) {
	partial := &types.PartialSkillProfile{Skills: make(map[string]types.SkillMentions)}
	sections := make(map[string]map[string]bool)
	var unrecognized []string
	seenUnrecognized := make(map[string]bool)

	for _, m := range mentions {
		key := catalog.Key(m.Text)
		if key == "" {
			continue
		}

		skill, ok := n.Resolve(m.Text)
		if !ok {
			if !seenUnrecognized[key] {
				seenUnrecognized[key] = true
				unrecognized = append(unrecognized, strings.TrimSpace(m.Text))
			}
			continue
		}

		count := m.Count
		if count < 1 {
			count = 1
		}

		entry := partial.Skills[skill.Name]
		entry.Name = skill.Name
		entry.Count += count
		partial.Skills[skill.Name] = entry

		if m.Section != "" {
			if sections[skill.Name] == nil {
				sections[skill.Name] = make(map[string]bool)
			}
			sections[skill.Name][m.Section] = true
		}
	}

	for name, set := range sections {
		entry := partial.Skills[name]
		entry.Sections = sortedKeys(set)
		partial.Skills[name] = entry
	}

	return partial, unrecognized
}

// Resolve maps a single term to its canonical skill.
func (n *Normalizer) Resolve(text string) (types.CanonicalSkill, bool) {
	key := catalog.Key(text)
	if key == "" {
		return types.CanonicalSkill{}, false
	}

	if s, ok := n.catalog.ByName(key); ok {
		return s, true
	}
	if s, ok := n.catalog.ByAlias(key); ok {
		return s, true
	}
	if utf8.RuneCountInString(key) < minFuzzyRunes {
		return types.CanonicalSkill{}, false
	}

	idx, score := n.bestFuzzy(key)
	if idx < 0 || score < n.fuzzyThreshold {
		return types.CanonicalSkill{}, false
	}
	return n.catalog.At(idx), true
}

// bestFuzzy returns the catalog index with the highest similarity to key.
// Ties go to the longer canonical name, then to the lexically smaller one.
func (n *Normalizer) bestFuzzy(key string) (int, float64) {
	stem := stemPhrase(key)
	words := strings.Fields(key)
	runes := utf8.RuneCountInString(key)

	best, bestScore := -1, 0.0
	for _, t := range n.terms {
		score := similarity(key, stem, words, runes, t)
		if score <= 0 {
			continue
		}
		if best < 0 || score > bestScore || (score == bestScore && preferSkill(n.catalog.At(t.skill).Name, n.catalog.At(best).Name)) {
			best, bestScore = t.skill, score
		}
	}
	return best, bestScore
}

// preferSkill reports whether candidate beats current on a score tie.
func preferSkill(candidate, current string) bool {
	lc, lr := utf8.RuneCountInString(candidate), utf8.RuneCountInString(current)
	if lc != lr {
		return lc > lr
	}
	return candidate < current
}

// similarity is the strongest of the stem, edit-distance and containment signals.
func similarity(key, stem string, words []string, runes int, t fuzzyTerm) float64 {
	score := 0.0
	if stem == t.stem {
		score = stemMatchScore
	}

	longest := runes
	if t.runes > longest {
		longest = t.runes
	}
	if ratio := 1 - float64(levenshtein.ComputeDistance(key, t.key))/float64(longest); ratio > score {
		score = ratio
	}

	if c := containment(words, runes, t.words, t.runes); c > score {
		score = c
	}
	return score
}

// containment scores one phrase appearing inside the other on word boundaries.
// The score grows with the share of the longer phrase that the shorter one covers.
func containment(a []string, aRunes int, b []string, bRunes int) float64 {
	shorter, longer := a, b
	sRunes, lRunes := aRunes, bRunes
	if len(a) > len(b) || (len(a) == len(b) && aRunes > bRunes) {
		shorter, longer = b, a
		sRunes, lRunes = bRunes, aRunes
	}
	if len(shorter) == len(longer) || !containsWords(longer, shorter) {
		return 0
	}
	return containmentBaseScore + containmentSpan*float64(sRunes)/float64(lRunes)
}

func containsWords(haystack, needle []string) bool {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// stemPhrase strips common English inflections from every word.
func stemPhrase(key string) string {
	words := strings.Fields(key)
	for i, w := range words {
		words[i] = stemWord(w)
	}
	return strings.Join(words, " ")
}

func stemWord(w string) string {
	for _, suffix := range []string{"ing", "ies", "s"} {
		if strings.HasSuffix(w, suffix) && utf8.RuneCountInString(w)-len(suffix) >= minFuzzyRunes {
			stem := strings.TrimSuffix(w, suffix)
			if suffix == "ies" {
				stem += "y"
			}
			return stem
		}
	}
	return w
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
