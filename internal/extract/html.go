package extract

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/resume-intel/internal/types"
)

// blockElements start and end a line of text.
var blockElements = map[string]bool{
	"address": true, "article": true, "blockquote": true, "dd": true, "div": true,
	"dl": true, "dt": true, "footer": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "header": true, "hr": true, "li": true,
	"main": true, "ol": true, "p": true, "pre": true, "section": true,
	"table": true, "td": true, "th": true, "tr": true, "ul": true,
}

// ParseHTML reads an HTML resume, such as a web page or a document exported
// to HTML, and splits its visible text into sections. Block elements become
// lines and list items become bullets.
func ParseHTML(source string, r io.Reader) (*types.Document, error) {
	page, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	page.Find("script, style, noscript, template, iframe, nav").Remove()

	root := page.Find("main").First()
	if root.Length() == 0 {
		root = page.Find("article").First()
	}
	if root.Length() == 0 {
		root = page.Find("body")
	}

	var text htmlText
	text.walk(root)
	text.flush()

	return Parse(source, strings.Join(text.lines, "\n")), nil
}

type htmlText struct {
	lines []string
	cur   strings.Builder
}

func (t *htmlText) flush() {
	line := strings.Join(strings.Fields(t.cur.String()), " ")
	t.cur.Reset()
	if line != "" {
		t.lines = append(t.lines, line)
	}
}

func (t *htmlText) walk(sel *goquery.Selection) {
	sel.Contents().Each(func(_ int, node *goquery.Selection) {
		name := goquery.NodeName(node)
		switch {
		case name == "#text":
			t.cur.WriteString(node.Text())
		case name == "br":
			t.flush()
		case blockElements[name]:
			t.flush()
			if name == "li" {
				t.cur.WriteString("- ")
			}
			t.walk(node)
			t.flush()
		case strings.HasPrefix(name, "#"):
			// comments and doctype
		default:
			t.walk(node)
		}
	})
}
