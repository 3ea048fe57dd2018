package experience

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-intel/internal/types"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestParseEntries_HeadingAboveDates(t *testing.T) {
	text := `Software Engineer | Acme Corp
Jan 2018 - Present
- Built services in Go
- Led migration
Junior Developer | Beta LLC
06/2016 - 12/2017
Maintained PHP apps`

	entries, errs := ParseEntries(text, asOf)
	require.Empty(t, errs)
	require.Len(t, entries, 2)

	assert.Equal(t, "Software Engineer", entries[0].Title)
	assert.Equal(t, "Acme Corp", entries[0].Organization)
	assert.Equal(t, date(2018, time.January, 1), entries[0].StartDate)
	assert.True(t, entries[0].Ongoing())
	assert.Equal(t, "Built services in Go Led migration", entries[0].Description)

	assert.Equal(t, "Junior Developer", entries[1].Title)
	assert.Equal(t, "Beta LLC", entries[1].Organization)
	assert.Equal(t, date(2016, time.June, 1), entries[1].StartDate)
	require.NotNil(t, entries[1].EndDate)
	assert.Equal(t, date(2017, time.December, 1), *entries[1].EndDate)
	assert.Equal(t, "Maintained PHP apps", entries[1].Description)
}

func TestParseEntries_InlineDates(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantTitle string
		wantOrg   string
		wantStart time.Time
		wantEnd   *time.Time
	}{
		{
			name:      "years in parentheses",
			line:      "Data Analyst at Initech (2015 - 2017)",
			wantTitle: "Data Analyst",
			wantOrg:   "Initech",
			wantStart: date(2015, time.January, 1),
			wantEnd:   ptr(date(2017, time.January, 1)),
		},
		{
			name:      "iso dates",
			line:      "Platform Lead, Globex 2019-03 – 2021-11-15",
			wantTitle: "Platform Lead",
			wantOrg:   "Globex",
			wantStart: date(2019, time.March, 1),
			wantEnd:   ptr(date(2021, time.November, 15)),
		},
		{
			name:      "to separator",
			line:      "Nurse @ City Hospital Sept. 2010 to current",
			wantTitle: "Nurse",
			wantOrg:   "City Hospital",
			wantStart: date(2010, time.September, 1),
		},
		{
			name:      "compact years",
			line:      "Teacher 2012-2014",
			wantTitle: "Teacher",
			wantStart: date(2012, time.January, 1),
			wantEnd:   ptr(date(2014, time.January, 1)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, errs := ParseEntries(tt.line, asOf)
			require.Empty(t, errs)
			require.Len(t, entries, 1)

			e := entries[0]
			assert.Equal(t, tt.wantTitle, e.Title)
			assert.Equal(t, tt.wantOrg, e.Organization)
			assert.Equal(t, tt.wantStart, e.StartDate)
			assert.Equal(t, tt.wantEnd, e.EndDate)
		})
	}
}

func TestParseEntries_HeadingFromLeadingLines(t *testing.T) {
	text := `Operations Manager
Northwind Traders
March 2015 - May 2019
Oversaw logistics for three warehouses`

	entries, errs := ParseEntries(text, asOf)
	require.Empty(t, errs)
	require.Len(t, entries, 1)
	assert.Equal(t, "Operations Manager", entries[0].Title)
	assert.Equal(t, "Northwind Traders", entries[0].Organization)
	assert.Equal(t, date(2015, time.March, 1), entries[0].StartDate)
	assert.Equal(t, "Oversaw logistics for three warehouses", entries[0].Description)
}

func TestParseEntries_InvalidMonth(t *testing.T) {
	text := `Intern | Foo
13/2018 - 02/2019
Fetched coffee`

	entries, errs := ParseEntries(text, asOf)
	assert.Empty(t, entries)
	require.Len(t, errs, 1)

	var malformed *MalformedEntryError
	require.True(t, errors.As(errs[0], &malformed))
	assert.Equal(t, 0, malformed.Index)
	assert.Equal(t, "Intern", malformed.Title)
	assert.Equal(t, "invalid start date", malformed.Message)
	assert.Contains(t, malformed.Error(), "month 13 out of range")
}

func TestParseEntries_InvalidEndDay(t *testing.T) {
	entries, errs := ParseEntries("Clerk | Shop 2019-01-10 - 2019-02-30", asOf)

	assert.Empty(t, entries)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "invalid end date")
}

func TestParseEntries_NoDates(t *testing.T) {
	entries, errs := ParseEntries("Worked on many things\nwith many people", asOf)
	assert.Empty(t, entries)
	assert.Empty(t, errs)
}

func TestParseEntries_NumericRangeInBulletIsDescription(t *testing.T) {
	text := "Software Engineer | Acme Corp | Jan 2018 - Jan 2023\n- Scaled the cluster from 1000 to 5000 nodes"

	entries, errs := ParseEntries(text, asOf)
	require.Empty(t, errs)
	require.Len(t, entries, 1)
	assert.Equal(t, "Software Engineer", entries[0].Title)
	assert.Equal(t, "Scaled the cluster from 1000 to 5000 nodes", entries[0].Description)

	years := TotalYears(entries, asOf)
	assert.Equal(t, 5.0, years)
	assert.Equal(t, types.LevelMid, CareerLevelFor(years, defaultBreakpoint))
}

func TestParseEntries_YearWindow(t *testing.T) {
	tests := []struct {
		name string
		line string
		want int
	}{
		{"before 1950", "Clerk | Archive 1900 - 1910", 0},
		{"far future", "Planned rollout 2030 - 2035", 0},
		{"next year allowed", "Fellow | Lab 2024 - 2025", 1},
		{"digits inside words", "Model X1000-2000 launch", 0},
		{"second range on the line", "Grew revenue 1000 to 5000, Sales Lead 2019 - 2021", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, errs := ParseEntries(tt.line, asOf)
			assert.Empty(t, errs)
			assert.Len(t, entries, tt.want)
		})
	}
}

func TestParseSection_PositionsAndRenumber(t *testing.T) {
	text := `Chef | Bistro
13/2018 - 02/2019
Cook | Diner
2019 - 2017
Baker | Bakery
2015 - 2018`

	entries, positions, parseErrs := ParseSection(text, asOf)
	require.Len(t, parseErrs, 1)
	require.Len(t, entries, 2)
	assert.Equal(t, []int{1, 2}, positions)

	_, analyzeErrs := newTestAnalyzer(t, 0.25).Analyze(entries, asOf)
	require.Len(t, analyzeErrs, 1)

	Renumber(analyzeErrs, positions)

	var malformed *MalformedEntryError
	require.True(t, errors.As(analyzeErrs[0], &malformed))
	assert.Equal(t, 1, malformed.Index)
	assert.Contains(t, analyzeErrs[0].Error(), "entry 2 (Cook)")

	require.True(t, errors.As(parseErrs[0], &malformed))
	assert.Equal(t, 0, malformed.Index)
}

func TestMalformedEntryError_Error(t *testing.T) {
	cause := errors.New("bad date")
	err := &MalformedEntryError{Index: 2, Title: "Chef", Message: "invalid start date", Cause: cause}

	assert.Equal(t, "malformed experience entry 3 (Chef): invalid start date: bad date", err.Error())
	assert.ErrorIs(t, err, cause)

	noTitle := &MalformedEntryError{Index: 0, Message: "missing start date"}
	assert.Equal(t, "malformed experience entry 1: missing start date", noTitle.Error())
}

func ptr(t time.Time) *time.Time {
	return &t
}
