package skills

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-intel/internal/catalog"
	"github.com/jonathan/resume-intel/internal/textmatch"
	"github.com/jonathan/resume-intel/internal/types"
)

// listSections hold explicit skill lists; every other section is scanned as prose.
var listSections = map[string]bool{
	types.SectionSkills: true,
}

// sectionOrder fixes the order mentions are emitted in.
var sectionOrder = []string{
	types.SectionSkills,
	types.SectionSummary,
	types.SectionExperience,
	types.SectionProjects,
	types.SectionCertifications,
	types.SectionEducation,
}

var (
	listDelimiters  = regexp.MustCompile(`[,;|•·▪●\n\t]+`)
	parenthetical   = regexp.MustCompile(`\([^)]*\)|\[[^\]]*\]`)
	listLabelPrefix = regexp.MustCompile(`^[\p{L} &/]{2,40}:\s*`)
)

// ExtractMentions turns document sections into raw skill mentions.
// Skill-list sections are split on list delimiters and each item becomes a
// mention. Other sections are scanned for catalog names and aliases on word
// boundaries; terms shorter than three runes are only recognized in lists.
// The contact section is ignored.
func ExtractMentions(sections map[string]string, c *catalog.SkillCatalog) []types.RawSkillMention {
	var mentions []types.RawSkillMention
	scanner := newTermScanner(c)

	for _, section := range orderedSections(sections) {
		text := sections[section]
		if strings.TrimSpace(text) == "" || section == types.SectionContact {
			continue
		}
		if listSections[section] {
			mentions = append(mentions, scanner.splitList(section, text)...)
			continue
		}
		mentions = append(mentions, scanner.scan(section, text)...)
	}
	return mentions
}

func orderedSections(sections map[string]string) []string {
	known := make(map[string]bool, len(sectionOrder))
	var out []string
	for _, s := range sectionOrder {
		known[s] = true
		if _, ok := sections[s]; ok {
			out = append(out, s)
		}
	}
	var rest []string
	for s := range sections {
		if !known[s] {
			rest = append(rest, s)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// splitList splits an explicit skills list. "Languages: Go, Python" yields Go and
// Python. An item that is not itself a catalog name or alias is scanned like
// prose, so "Proficient in Python and Kubernetes" yields Python and Kubernetes.
// Items holding no catalog term at all are kept whole for fuzzy matching.
func (s *termScanner) splitList(section, text string) []types.RawSkillMention {
	counts := make(map[string]int)
	var order []string
	add := func(text string, n int) {
		key := catalog.Key(text)
		if counts[key] == 0 {
			order = append(order, text)
		}
		counts[key] += n
	}

	for _, line := range strings.Split(text, "\n") {
		line = listLabelPrefix.ReplaceAllString(strings.TrimSpace(line), "")
		line = parenthetical.ReplaceAllString(line, "")
		for _, item := range listDelimiters.Split(line, -1) {
			item = strings.TrimSpace(item)
			if catalog.Key(item) == "" {
				continue
			}
			if !s.known(item) {
				if found := s.scan(section, item); len(found) > 0 {
					for _, m := range found {
						add(m.Text, m.Count)
					}
					continue
				}
			}
			add(item, 1)
		}
	}

	out := make([]types.RawSkillMention, 0, len(order))
	for _, item := range order {
		out = append(out, types.RawSkillMention{Text: item, Section: section, Count: counts[catalog.Key(item)]})
	}
	return out
}

// termScanner finds catalog terms inside prose.
type termScanner struct {
	catalog *catalog.SkillCatalog
	terms   []scanTerm // longest first
}

type scanTerm struct {
	text  string // as written in the catalog
	runes []rune // folded
}

func newTermScanner(c *catalog.SkillCatalog) *termScanner {
	s := &termScanner{catalog: c}
	for _, skill := range c.All() {
		for _, term := range append([]string{skill.Name}, skill.Aliases...) {
			key := catalog.Key(term)
			if utf8.RuneCountInString(key) < minFuzzyRunes {
				continue
			}
			s.terms = append(s.terms, scanTerm{text: term, runes: []rune(key)})
		}
	}
	sort.SliceStable(s.terms, func(i, j int) bool {
		return len(s.terms[i].runes) > len(s.terms[j].runes)
	})
	return s
}

func (s *termScanner) known(term string) bool {
	if _, ok := s.catalog.ByName(term); ok {
		return true
	}
	_, ok := s.catalog.ByAlias(term)
	return ok
}

// scan counts every term occurrence. Matched spans are masked so that a shorter
// term never re-matches inside a longer one ("Node.js" does not also count "node").
func (s *termScanner) scan(section, text string) []types.RawSkillMention {
	buf := []rune(catalog.Key(text))
	var out []types.RawSkillMention

	for _, term := range s.terms {
		count := 0
		for i := 0; i+len(term.runes) <= len(buf); i++ {
			if !matchAt(buf, i, term.runes) {
				continue
			}
			count++
			for j := i; j < i+len(term.runes); j++ {
				buf[j] = ' '
			}
			i += len(term.runes) - 1
		}
		if count > 0 {
			out = append(out, types.RawSkillMention{Text: term.text, Section: section, Count: count})
		}
	}
	return out
}

func matchAt(buf []rune, i int, term []rune) bool {
	for j, r := range term {
		if buf[i+j] != r {
			return false
		}
	}
	if i > 0 && textmatch.IsWordRune(buf[i-1]) {
		return false
	}
	end := i + len(term)
	if end < len(buf) && textmatch.IsWordRune(buf[end]) {
		return false
	}
	return true
}
