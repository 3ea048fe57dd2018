package extract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-intel/internal/types"
)

const htmlResume = `<!DOCTYPE html>
<html>
<head><title>Jane Doe</title><style>body { color: red; }</style></head>
<body>
	<nav>Home | Blog</nav>
	<main>
		<h1>Jane Doe</h1>
		<p>jane.doe@example.com<br>(555) 123-4567</p>
		<!-- contact -->
		<h2>Skills</h2>
		<p><b>JavaScript</b>, React, Node.js</p>
		<h2>Experience</h2>
		<div>
			<h3>Software Engineer | Acme Corp</h3>
			<p>Jan 2018 - Dec 2023</p>
			<ul>
				<li>Built services with <em>React</em> and Node.js</li>
				<li>Led a team of four</li>
			</ul>
		</div>
	</main>
	<script>var tracked = true;</script>
</body>
</html>`

func TestParseHTML(t *testing.T) {
	doc, err := ParseHTML("jane.html", strings.NewReader(htmlResume))
	require.NoError(t, err)

	assert.Equal(t, "jane.html", doc.Source)
	assert.Equal(t, "JavaScript, React, Node.js", doc.Sections[types.SectionSkills])

	experience := doc.Sections[types.SectionExperience]
	assert.Contains(t, experience, "Software Engineer | Acme Corp\nJan 2018 - Dec 2023")
	assert.Contains(t, experience, "- Built services with React and Node.js\n- Led a team of four")

	assert.Contains(t, doc.Sections[types.SectionContact], "jane.doe@example.com\n(555) 123-4567")
	assert.NotContains(t, doc.RawText, "Home | Blog")
	assert.NotContains(t, doc.RawText, "tracked")
	assert.NotContains(t, doc.RawText, "contact")
}

func TestParseHTML_NoMainFallsBackToBody(t *testing.T) {
	doc, err := ParseHTML("cv", strings.NewReader(`<body><p>Skills: Go, SQL</p></body>`))
	require.NoError(t, err)
	assert.Equal(t, "Go, SQL", doc.Sections[types.SectionSkills])
}

func TestReadFile_HTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jane.HTML")
	require.NoError(t, os.WriteFile(path, []byte(htmlResume), 0644))

	doc, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "jane.HTML", doc.Source)
	assert.Contains(t, doc.Sections, types.SectionExperience)
}

func TestDecode_ByMIMEType(t *testing.T) {
	doc, err := Decode("remote", "text/html; charset=utf-8", []byte(`<p>Skills: Go</p>`))
	require.NoError(t, err)
	assert.Equal(t, "Go", doc.Sections[types.SectionSkills])

	doc, err = Decode("remote", "application/json", []byte(`{"raw_text":"Skills: SQL"}`))
	require.NoError(t, err)
	assert.Equal(t, "remote", doc.Source)
	assert.Equal(t, "SQL", doc.Sections[types.SectionSkills])

	doc, err = Decode("remote", "text/plain", []byte("Skills\nRust"))
	require.NoError(t, err)
	assert.Equal(t, "Rust", doc.Sections[types.SectionSkills])
}
