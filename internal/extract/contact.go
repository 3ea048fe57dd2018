package extract

import (
	"regexp"
	"strings"
)

var (
	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phoneRegex = regexp.MustCompile(`(?:\+\d{1,3}[-.\s]?)?\(?\b\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}\b`)
	linkRegex  = regexp.MustCompile(`(?i)\b(?:https?://|www\.)[^\s,;]+|\b(?:linkedin\.com|github\.com|gitlab\.com)/[^\s,;]+`)
)

// Contact holds contact details found in resume text.
type Contact struct {
	Email string   `json:"email,omitempty"`
	Phone string   `json:"phone,omitempty"`
	Links []string `json:"links,omitempty"`
}

// FindContact returns the first email and phone number in text and every
// distinct web link.
func FindContact(text string) Contact {
	var c Contact
	c.Email = emailRegex.FindString(text)
	c.Phone = strings.TrimSpace(phoneRegex.FindString(text))

	seen := make(map[string]bool)
	for _, link := range linkRegex.FindAllString(text, -1) {
		link = strings.TrimRight(link, ".)")
		if !seen[link] {
			seen[link] = true
			c.Links = append(c.Links, link)
		}
	}
	return c
}
