package extract

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-intel/internal/types"
)

const sampleResume = `Jane Doe
jane.doe@example.com | (555) 123-4567 | https://github.com/janedoe

## Professional Summary
Full stack engineer building web products.

WORK EXPERIENCE
Software Engineer | Acme Corp
Jan 2018 - Jan 2023
- Built React frontends and Node.js services

Skills: JavaScript, React, Node.js

**Education**
B.S. Computer Science, State University

Experience
Intern | Beta LLC
Jun 2017 - Aug 2017
`

func TestParse_Sections(t *testing.T) {
	doc := Parse("jane.txt", sampleResume)

	assert.Equal(t, "jane.txt", doc.Source)
	assert.Equal(t, sampleResume, doc.RawText)
	assert.Equal(t, []string{"contact", "summary", "experience", "skills", "education"}, doc.Order)

	assert.Equal(t, "Jane Doe\njane.doe@example.com | (555) 123-4567 | https://github.com/janedoe", doc.Sections["contact"])
	assert.Equal(t, "Full stack engineer building web products.", doc.Sections["summary"])
	assert.Equal(t, "JavaScript, React, Node.js", doc.Sections["skills"])
	assert.Equal(t, "B.S. Computer Science, State University", doc.Sections["education"])
	assert.Equal(t, "Software Engineer | Acme Corp\nJan 2018 - Jan 2023\n- Built React frontends and Node.js services\n"+
		"Intern | Beta LLC\nJun 2017 - Aug 2017", doc.Sections["experience"])
}

func TestParse_NoHeadings(t *testing.T) {
	doc := Parse("", "just some text\nwithout headings")

	assert.Equal(t, map[string]string{"contact": "just some text\nwithout headings"}, doc.Sections)
	assert.Equal(t, []string{"contact"}, doc.Order)
}

func TestParse_Empty(t *testing.T) {
	doc := Parse("", "")
	assert.Empty(t, doc.Sections)
	assert.Empty(t, doc.Order)
}

func TestParse_LongLineIsNotHeading(t *testing.T) {
	doc := Parse("", "Summary\nExperience with distributed systems was the focus of most of my career so far")

	assert.Equal(t, []string{"summary"}, doc.Order)
	assert.Contains(t, doc.Sections["summary"], "Experience with distributed systems")
}

func TestNormalizeSection(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Work Experience", "experience"},
		{"TECHNICAL SKILLS", "skills"},
		{"## Profile", "summary"},
		{"Licenses & Certifications", "certifications"},
		{"skills", "skills"},
		{"Hobbies", "hobbies"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeSection(tt.in), tt.in)
	}
}

func TestNormalize(t *testing.T) {
	doc := &types.Document{
		Sections: map[string]string{
			"Work History":            "Engineer at Acme 2019 - 2021",
			"Professional Experience": "Analyst at Beta 2017 - 2019",
			"Technical Skills":        "Go, SQL",
			"Hobbies":                 "Chess",
		},
		Order: []string{"Technical Skills", "Work History", "Professional Experience"},
	}

	out := Normalize(doc)
	assert.Equal(t, []string{"skills", "experience", "hobbies"}, out.Order)
	assert.Equal(t, "Engineer at Acme 2019 - 2021\nAnalyst at Beta 2017 - 2019", out.Sections["experience"])
	assert.Equal(t, "Go, SQL", out.Sections["skills"])
	assert.Equal(t, "Go, SQL\n\nEngineer at Acme 2019 - 2021\nAnalyst at Beta 2017 - 2019\n\nChess", out.RawText)

	// input untouched
	assert.Len(t, doc.Sections, 4)
	assert.Empty(t, doc.RawText)
}

func TestFindContact(t *testing.T) {
	c := FindContact("Reach me at jane.doe@example.com or +1 555-123-4567. " +
		"Profiles: linkedin.com/in/janedoe, https://github.com/janedoe and https://github.com/janedoe.")

	assert.Equal(t, "jane.doe@example.com", c.Email)
	assert.Equal(t, "+1 555-123-4567", c.Phone)
	assert.Equal(t, []string{"linkedin.com/in/janedoe", "https://github.com/janedoe"}, c.Links)
}

func TestFindContact_DateRangesAreNotPhones(t *testing.T) {
	c := FindContact("Engineer 2018 - 2020, Analyst 2019-03 – 2021-11-15")
	assert.Empty(t, c.Phone)
	assert.Empty(t, c.Email)
	assert.Empty(t, c.Links)
}

func TestSignals(t *testing.T) {
	doc := Parse("jane.txt", sampleResume)
	entries := []types.ExperienceEntry{{Title: "Software Engineer", StartDate: time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)}}

	sig := Signals(doc, entries, 1)

	assert.Equal(t, []string{"contact", "summary", "experience", "skills", "education"}, sig.SectionOrder)
	assert.Equal(t, sig.SectionOrder, sig.NonEmptySections)
	assert.Equal(t, entries, sig.Entries)
	assert.Equal(t, 1, sig.DiscardedEntries)
	assert.True(t, sig.HasEmail)
	assert.True(t, sig.HasPhone)
	assert.True(t, sig.HasLinks)
	assert.Greater(t, sig.WordCount, 30)
	assert.Equal(t, sampleResume, sig.RawText)
}

func TestSignals_SkipsUnknownAndEmptySections(t *testing.T) {
	doc := &types.Document{
		Sections: map[string]string{"skills": "  ", "hobbies": "chess", "summary": "hi"},
		Order:    []string{"hobbies", "skills", "summary"},
	}

	sig := Signals(doc, nil, 0)
	assert.Equal(t, []string{"skills", "summary"}, sig.SectionOrder)
	assert.Equal(t, []string{"summary"}, sig.NonEmptySections)
	assert.False(t, sig.HasEmail)
}

func TestSignals_NilDocument(t *testing.T) {
	sig := Signals(nil, nil, 0)
	assert.NotNil(t, sig.SectionOrder)
	assert.Empty(t, sig.NonEmptySections)
	assert.Zero(t, sig.WordCount)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	txt := filepath.Join(dir, "resume.txt")
	require.NoError(t, os.WriteFile(txt, []byte(sampleResume), 0644))
	doc, err := ReadFile(txt)
	require.NoError(t, err)
	assert.Equal(t, "resume.txt", doc.Source)
	assert.Equal(t, "JavaScript, React, Node.js", doc.Sections["skills"])

	js := filepath.Join(dir, "resume.json")
	require.NoError(t, os.WriteFile(js, []byte(`{"raw_text":"x","sections":{"Technical Skills":"Go"}}`), 0644))
	doc, err = ReadFile(js)
	require.NoError(t, err)
	assert.Equal(t, "resume.json", doc.Source)
	assert.Equal(t, map[string]string{"skills": "Go"}, doc.Sections)

	rawOnly := filepath.Join(dir, "raw.json")
	require.NoError(t, os.WriteFile(rawOnly, []byte(`{"source":"cv","raw_text":"Skills: Go"}`), 0644))
	doc, err = ReadFile(rawOnly)
	require.NoError(t, err)
	assert.Equal(t, "cv", doc.Source)
	assert.Equal(t, "Go", doc.Sections["skills"])
}

func TestReadFile_Errors(t *testing.T) {
	_, err := ReadFile("resume.pdf")
	var unsupported *UnsupportedFormatError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, ".pdf", unsupported.Extension)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.txt"))
	var readErr *ReadError
	require.True(t, errors.As(err, &readErr))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0644))
	_, err = ReadFile(bad)
	require.True(t, errors.As(err, &readErr))
	assert.Equal(t, "failed to decode document", readErr.Message)
}

func TestPrepare(t *testing.T) {
	split := Prepare(&types.Document{Source: "api", RawText: "Skills\nGo, SQL\n"})
	assert.Equal(t, "api", split.Source)
	assert.Equal(t, "Go, SQL", split.Sections[types.SectionSkills])

	normalized := Prepare(&types.Document{Sections: map[string]string{"Work History": "Engineer 2019 - 2020"}})
	assert.Contains(t, normalized.Sections, types.SectionExperience)
}
