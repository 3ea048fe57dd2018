// Package textmatch provides case-insensitive phrase matching on word boundaries.
package textmatch

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// Fold case folds s and collapses every whitespace run to a single space.
// A Caser carries state, so each call builds its own.
func Fold(s string) string {
	return strings.Join(strings.Fields(cases.Fold().String(s)), " ")
}

// IsWordRune reports whether r continues a word. '+' and '#' count as word
// runes so that "C" never matches inside "C++" or "C#".
func IsWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#'
}

// Count returns the number of non-overlapping occurrences of phrase in text that
// start and end on word boundaries. Both arguments must already be folded.
func Count(text, phrase string) int {
	if phrase == "" {
		return 0
	}
	n := 0
	for offset := 0; offset <= len(text)-len(phrase); {
		i := strings.Index(text[offset:], phrase)
		if i < 0 {
			break
		}
		start := offset + i
		end := start + len(phrase)
		if boundaryBefore(text, start) && boundaryAfter(text, end) {
			n++
			offset = end
			continue
		}
		offset = start + 1
	}
	return n
}

// Contains reports whether phrase occurs in text on word boundaries.
// Both arguments must already be folded.
func Contains(text, phrase string) bool {
	return Count(text, phrase) > 0
}

// ContainsAny returns the first phrase that occurs in text, folding the phrases.
func ContainsAny(text string, phrases []string) (string, bool) {
	for _, p := range phrases {
		if Contains(text, Fold(p)) {
			return p, true
		}
	}
	return "", false
}

func boundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !IsWordRune(r)
}

func boundaryAfter(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return !IsWordRune(r)
}
