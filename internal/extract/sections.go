package extract

import (
	"sort"
	"strings"

	"github.com/jonathan/resume-intel/internal/textmatch"
	"github.com/jonathan/resume-intel/internal/types"
)

// maxHeadingLen bounds the length of a line that may be a bare section heading.
const maxHeadingLen = 50

// headingAliases maps each recognized section to the headings that introduce it.
var headingAliases = []struct {
	section string
	aliases []string
}{
	{types.SectionSummary, []string{
		"summary", "professional summary", "career summary", "profile", "professional profile",
		"objective", "career objective", "about", "about me",
	}},
	{types.SectionExperience, []string{
		"experience", "work experience", "professional experience", "employment", "employment history",
		"work history", "career history",
	}},
	{types.SectionEducation, []string{
		"education", "academic background", "qualifications", "academic qualifications",
	}},
	{types.SectionSkills, []string{
		"skills", "technical skills", "key skills", "core competencies", "competencies", "expertise", "technologies",
	}},
	{types.SectionProjects, []string{"projects", "personal projects", "key projects", "portfolio"}},
	{types.SectionCertifications, []string{
		"certifications", "certificates", "licenses", "licenses and certifications", "certifications and licenses",
	}},
	{types.SectionAwards, []string{"awards", "honors", "achievements", "awards and honors"}},
	{types.SectionContact, []string{"contact", "contact information", "contact details"}},
}

// Recognized lists the canonical section names in conventional document order.
var Recognized = []string{
	types.SectionContact,
	types.SectionSummary,
	types.SectionSkills,
	types.SectionExperience,
	types.SectionProjects,
	types.SectionEducation,
	types.SectionCertifications,
	types.SectionAwards,
}

var aliasIndex = buildAliasIndex()

func buildAliasIndex() map[string]string {
	idx := make(map[string]string)
	for _, h := range headingAliases {
		for _, a := range h.aliases {
			idx[a] = h.section
		}
	}
	return idx
}

// NormalizeSection maps a heading or caller-supplied section key to its
// canonical name. Unknown names are returned folded.
func NormalizeSection(name string) string {
	key := headingKey(name)
	if section, ok := aliasIndex[key]; ok {
		return section
	}
	return key
}

// IsRecognized reports whether name is a canonical section name.
func IsRecognized(name string) bool {
	for _, r := range Recognized {
		if r == name {
			return true
		}
	}
	return false
}

// Parse splits plain resume text into sections. Lines before the first
// heading form the contact section. A heading is either a short line holding
// only a known section name, or a known name followed by a colon and inline
// content ("Skills: Go, SQL"). Repeated headings append to the same section.
func Parse(source, text string) *types.Document {
	doc := &types.Document{
		Source:   source,
		RawText:  text,
		Sections: map[string]string{},
	}

	current := types.SectionContact
	var lines []string
	flush := func() {
		body := strings.TrimSpace(strings.Join(lines, "\n"))
		lines = nil
		if body == "" {
			return
		}
		if prev, ok := doc.Sections[current]; ok && prev != "" {
			body = prev + "\n" + body
		} else {
			doc.Order = appendUnique(doc.Order, current)
		}
		doc.Sections[current] = body
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if section, rest, ok := heading(line); ok {
			flush()
			current = section
			doc.Order = appendUnique(doc.Order, current)
			if rest != "" {
				lines = append(lines, rest)
			}
			continue
		}
		if line != "" {
			lines = append(lines, line)
		}
	}
	flush()

	return doc
}

// Normalize returns a copy of doc whose section keys are canonical. Sections
// that normalize to the same name are joined in their original order. A
// document without raw text gets the concatenated sections instead.
func Normalize(doc *types.Document) *types.Document {
	out := &types.Document{
		Source:   doc.Source,
		RawText:  doc.RawText,
		Sections: make(map[string]string, len(doc.Sections)),
	}

	seen := make(map[string]bool, len(doc.Sections))
	add := func(name string) {
		text, ok := doc.Sections[name]
		if !ok || seen[name] {
			return
		}
		seen[name] = true

		key := NormalizeSection(name)
		if prev, ok := out.Sections[key]; ok && prev != "" {
			out.Sections[key] = prev + "\n" + text
			return
		}
		out.Sections[key] = text
		out.Order = appendUnique(out.Order, key)
	}

	for _, name := range doc.Order {
		if _, ok := doc.Sections[name]; !ok {
			out.Order = appendUnique(out.Order, NormalizeSection(name))
			continue
		}
		add(name)
	}
	// Sections missing from the order follow in key order.
	for _, name := range sortedKeys(doc.Sections) {
		add(name)
	}

	if strings.TrimSpace(out.RawText) == "" {
		parts := make([]string, 0, len(out.Order))
		for _, key := range out.Order {
			if text := out.Sections[key]; text != "" {
				parts = append(parts, text)
			}
		}
		out.RawText = strings.Join(parts, "\n\n")
	}

	return out
}

func heading(line string) (string, string, bool) {
	if line == "" {
		return "", "", false
	}

	label, rest := line, ""
	if i := strings.IndexByte(line, ':'); i >= 0 {
		label, rest = line[:i], strings.TrimSpace(line[i+1:])
	} else if len(line) > maxHeadingLen {
		return "", "", false
	}

	section, ok := aliasIndex[headingKey(label)]
	if !ok {
		return "", "", false
	}
	return section, rest, true
}

// headingKey strips markdown decoration and folds a heading for lookup.
func headingKey(s string) string {
	s = strings.Trim(strings.TrimSpace(s), "#*_=-: \t")
	s = strings.ReplaceAll(s, "&", "and")
	return textmatch.Fold(s)
}

func appendUnique(list []string, v string) []string {
	for _, x := range list {
		if x == v {
			return list
		}
	}
	return append(list, v)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
