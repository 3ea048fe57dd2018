package experience

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/resume-intel/internal/types"
)

const (
	monthPattern = `(?:jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*\.?\s+\d{4}`
	datePattern  = `(?:` + monthPattern + `|\d{1,2}/\d{4}|\d{4}-\d{1,2}(?:-\d{1,2})?|\d{4})`
	endPattern   = `(?:` + datePattern + `|present|current|now|ongoing|today)`
)

// MinYear is the earliest year accepted in a work-history date. Ranges outside
// MinYear through the year after the analysis date are read as ordinary text.
const MinYear = 1950

var (
	dateRangeRegex = regexp.MustCompile(`(?i)\b(` + datePattern + `)\s*(?:-|–|—|to|until)\s*(` + endPattern + `)\b`)
	fourDigitRegex = regexp.MustCompile(`\d{4}`)
	monthYearRegex = regexp.MustCompile(`(?i)^([a-z]+)\.?\s+(\d{4})$`)
	slashDateRegex = regexp.MustCompile(`^(\d{1,2})/(\d{4})$`)
	isoDateRegex   = regexp.MustCompile(`^(\d{4})-(\d{1,2})(?:-(\d{1,2}))?$`)
	yearRegex      = regexp.MustCompile(`^\d{4}$`)
	bulletPrefix   = regexp.MustCompile(`^[-*•▪●◦]\s*`)
)

var monthNames = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March, "apr": time.April,
	"may": time.May, "jun": time.June, "jul": time.July, "aug": time.August,
	"sep": time.September, "oct": time.October, "nov": time.November, "dec": time.December,
}

// headingSeparators split a heading into title and organization, tried in order.
var headingSeparators = []string{" | ", " at ", " @ ", " — ", " – ", " - ", ", "}

// draft is an entry under construction while scanning lines.
type draft struct {
	heading string
	start   string
	end     string
	desc    []string
}

// ParseEntries splits an experience section into entries. Every line holding a
// date range opens a new entry; text on that line (or the line just above it)
// is the heading, and following lines up to the next date range form the
// description. Month-year dates resolve to the first of the month and bare
// years to January 1. "Present", "current" and similar end markers leave the
// end date nil. A range whose years fall outside MinYear through the year
// after asOf ("from 1000 to 5000 nodes") is description text, not a date.
// Entries with unparseable dates are skipped and reported as
// *MalformedEntryError.
func ParseEntries(text string, asOf time.Time) ([]types.ExperienceEntry, []error) {
	entries, _, errs := ParseSection(text, asOf)
	return entries, errs
}

// ParseSection is ParseEntries that also returns, for each entry, its position
// among every entry found in the text, the discarded ones included. The
// positions let Renumber give analyzer errors the same numbering as parse errors.
func ParseSection(text string, asOf time.Time) ([]types.ExperienceEntry, []int, []error) {
	var drafts []*draft
	var pending []string
	var cur *draft
	maxYear := asOf.Year() + 1

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		loc := findDateRange(line, maxYear)
		if loc == nil {
			if cur == nil {
				pending = append(pending, line)
			} else {
				cur.desc = append(cur.desc, line)
			}
			continue
		}

		heading := cleanHeading(line[:loc[0]] + " " + line[loc[1]:])
		if heading == "" {
			switch {
			case cur != nil && len(cur.desc) > 0 && !bulletPrefix.MatchString(cur.desc[len(cur.desc)-1]):
				heading = cur.desc[len(cur.desc)-1]
				cur.desc = cur.desc[:len(cur.desc)-1]
			case cur == nil && len(pending) > 0:
				heading = strings.Join(pending, " | ")
			}
		}

		cur = &draft{
			heading: heading,
			start:   line[loc[2]:loc[3]],
			end:     line[loc[4]:loc[5]],
		}
		drafts = append(drafts, cur)
		pending = nil
	}

	var entries []types.ExperienceEntry
	var positions []int
	var errs []error
	for i, d := range drafts {
		title, org := splitHeading(d.heading)

		start, err := parseDate(d.start)
		if err != nil {
			errs = append(errs, &MalformedEntryError{Index: i, Title: title, Message: "invalid start date", Cause: err})
			continue
		}

		var end *time.Time
		if !isOngoing(d.end) {
			t, err := parseDate(d.end)
			if err != nil {
				errs = append(errs, &MalformedEntryError{Index: i, Title: title, Message: "invalid end date", Cause: err})
				continue
			}
			end = &t
		}

		entries = append(entries, types.ExperienceEntry{
			Title:        title,
			Organization: org,
			StartDate:    start,
			EndDate:      end,
			Description:  description(d.desc),
		})
		positions = append(positions, i)
	}

	return entries, positions, errs
}

// Renumber rewrites the Index of every *MalformedEntryError in errs from a
// position in the entries slice to positions[Index].
func Renumber(errs []error, positions []int) {
	for _, err := range errs {
		var malformed *MalformedEntryError
		if errors.As(err, &malformed) && malformed.Index >= 0 && malformed.Index < len(positions) {
			malformed.Index = positions[malformed.Index]
		}
	}
}

// findDateRange returns the submatch indexes of the first date range on the
// line whose years are plausible, or nil.
func findDateRange(line string, maxYear int) []int {
	for _, loc := range dateRangeRegex.FindAllStringSubmatchIndex(line, -1) {
		if plausibleYears(line[loc[2]:loc[3]], maxYear) && plausibleYears(line[loc[4]:loc[5]], maxYear) {
			return loc
		}
	}
	return nil
}

func plausibleYears(token string, maxYear int) bool {
	for _, y := range fourDigitRegex.FindAllString(token, -1) {
		year, _ := strconv.Atoi(y)
		if year < MinYear || year > maxYear {
			return false
		}
	}
	return true
}

func cleanHeading(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.Trim(s, " |,-–—()[]")
}

func splitHeading(heading string) (string, string) {
	for _, sep := range headingSeparators {
		if i := strings.Index(heading, sep); i > 0 {
			return strings.TrimSpace(heading[:i]), strings.TrimSpace(heading[i+len(sep):])
		}
	}
	return heading, ""
}

func description(lines []string) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.TrimSpace(bulletPrefix.ReplaceAllString(l, "")); l != "" {
			parts = append(parts, l)
		}
	}
	return strings.Join(parts, " ")
}

func isOngoing(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "present", "current", "now", "ongoing", "today":
		return true
	}
	return false
}

// parseDate converts one date token to a UTC time.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	if m := monthYearRegex.FindStringSubmatch(s); m != nil {
		name := strings.ToLower(m[1])
		if len(name) < 3 {
			return time.Time{}, fmt.Errorf("unknown month %q", m[1])
		}
		month, ok := monthNames[name[:3]]
		if !ok {
			return time.Time{}, fmt.Errorf("unknown month %q", m[1])
		}
		year, _ := strconv.Atoi(m[2])
		return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), nil
	}

	if m := slashDateRegex.FindStringSubmatch(s); m != nil {
		month, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[2])
		return monthDate(year, month, 1)
	}

	if m := isoDateRegex.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day := 1
		if m[3] != "" {
			day, _ = strconv.Atoi(m[3])
		}
		return monthDate(year, month, day)
	}

	if yearRegex.MatchString(s) {
		year, _ := strconv.Atoi(s)
		return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), nil
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func monthDate(year, month, day int) (time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("month %d out of range", month)
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if day < 1 || t.Day() != day {
		return time.Time{}, fmt.Errorf("day %d out of range for %d-%02d", day, year, month)
	}
	return t, nil
}
