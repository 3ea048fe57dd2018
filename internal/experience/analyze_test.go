package experience

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-intel/internal/catalog"
	"github.com/jonathan/resume-intel/internal/types"
)

var (
	asOf              = date(2024, time.January, 1)
	defaultBreakpoint = []float64{1, 3, 6, 10, 15}
)

func entry(title string, start time.Time, end *time.Time, desc string) types.ExperienceEntry {
	return types.ExperienceEntry{Title: title, StartDate: start, EndDate: end, Description: desc}
}

func newTestAnalyzer(t *testing.T, minDensity float64) *Analyzer {
	t.Helper()
	domains, err := catalog.NewDomainCatalog([]catalog.Domain{
		{Name: "finance", Keywords: []string{"banking", "trading"}},
		{Name: "healthcare", Keywords: []string{"hospital", "clinical"}},
	})
	require.NoError(t, err)
	return NewAnalyzer(domains, defaultBreakpoint, minDensity)
}

func TestTotalYears(t *testing.T) {
	tests := []struct {
		name    string
		entries []types.ExperienceEntry
		want    float64
	}{
		{
			name: "single closed entry",
			entries: []types.ExperienceEntry{
				entry("Engineer", date(2018, time.January, 1), ptr(date(2023, time.January, 1)), ""),
			},
			want: 5.0,
		},
		{
			name: "disjoint entries add up",
			entries: []types.ExperienceEntry{
				entry("A", date(2018, time.January, 1), ptr(date(2019, time.January, 1)), ""),
				entry("B", date(2020, time.January, 1), ptr(date(2021, time.January, 1)), ""),
			},
			want: 2.0,
		},
		{
			name: "overlap counted once",
			entries: []types.ExperienceEntry{
				entry("A", date(2018, time.January, 1), ptr(date(2020, time.January, 1)), ""),
				entry("B", date(2019, time.January, 1), ptr(date(2021, time.January, 1)), ""),
			},
			want: 3.0,
		},
		{
			name: "nested entry adds nothing",
			entries: []types.ExperienceEntry{
				entry("A", date(2015, time.January, 1), ptr(date(2020, time.January, 1)), ""),
				entry("B", date(2016, time.January, 1), ptr(date(2017, time.January, 1)), ""),
			},
			want: 5.0,
		},
		{
			name: "ongoing entry ends at reference date",
			entries: []types.ExperienceEntry{
				entry("A", date(2022, time.January, 1), nil, ""),
			},
			want: 2.0,
		},
		{
			name: "future entry ignored",
			entries: []types.ExperienceEntry{
				entry("A", date(2025, time.January, 1), nil, ""),
			},
			want: 0,
		},
		{
			name: "spans longer than a time.Duration",
			entries: []types.ExperienceEntry{
				entry("A", date(1600, time.January, 1), ptr(date(2024, time.January, 1)), ""),
			},
			want: 424.0,
		},
		{
			name:    "no entries",
			entries: nil,
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TotalYears(tt.entries, asOf))
		})
	}
}

func TestCareerLevelFor(t *testing.T) {
	tests := []struct {
		years float64
		want  types.CareerLevel
	}{
		{0, types.LevelFresher},
		{0.9, types.LevelFresher},
		{1, types.LevelJunior},
		{2.9, types.LevelJunior},
		{3, types.LevelMid},
		{5, types.LevelMid},
		{6, types.LevelSenior},
		{10, types.LevelLead},
		{15, types.LevelArchitect},
		{40, types.LevelArchitect},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CareerLevelFor(tt.years, defaultBreakpoint), "years=%v", tt.years)
	}
}

func TestCareerLevelFor_Monotone(t *testing.T) {
	prev := -1
	for years := 0.0; years <= 30; years += 0.1 {
		rank := CareerLevelFor(years, defaultBreakpoint).Rank()
		require.GreaterOrEqual(t, rank, prev, "level dropped at %.1f years", years)
		prev = rank
	}
}

func TestAnalyze_Empty(t *testing.T) {
	a := newTestAnalyzer(t, 0.25)

	profile, errs := a.Analyze(nil, asOf)
	require.Empty(t, errs)
	assert.Equal(t, 0.0, profile.TotalYears)
	assert.Equal(t, types.LevelFresher, profile.CareerLevel)
	assert.NotNil(t, profile.DomainExpertise)
	assert.Empty(t, profile.DomainExpertise)
	assert.Equal(t, 0.0, profile.ComplexityScore)
	assert.False(t, profile.LeadershipExperience)
	assert.Equal(t, "general", profile.RoleSpecialization)
}

func TestAnalyze_SingleEngineer(t *testing.T) {
	a := newTestAnalyzer(t, 0.25)
	entries := []types.ExperienceEntry{
		entry("Software Engineer", date(2018, time.January, 1), ptr(date(2023, time.January, 1)),
			"Maintained the billing platform and wrote tests for each release"),
	}

	profile, errs := a.Analyze(entries, asOf)
	require.Empty(t, errs)
	assert.Equal(t, 5.0, profile.TotalYears)
	assert.Equal(t, types.LevelMid, profile.CareerLevel)
	assert.Equal(t, 1, profile.EntryCount)
	assert.Equal(t, "developer", profile.RoleSpecialization)
	assert.False(t, profile.LeadershipExperience)
	// 0.2*(1/5) + 0.3*(10/60) + 0 + 0.25*0.5
	assert.InDelta(t, 0.215, profile.ComplexityScore, 1e-9)
}

func TestAnalyze_MalformedEntriesDiscarded(t *testing.T) {
	a := newTestAnalyzer(t, 0.25)
	entries := []types.ExperienceEntry{
		entry("Backwards", date(2020, time.January, 1), ptr(date(2019, time.January, 1)), ""),
		entry("Undated", time.Time{}, nil, ""),
		entry("Analyst", date(2019, time.January, 1), ptr(date(2021, time.January, 1)), ""),
	}

	profile, errs := a.Analyze(entries, asOf)
	require.Len(t, errs, 2)

	var malformed *MalformedEntryError
	require.True(t, errors.As(errs[0], &malformed))
	assert.Equal(t, 0, malformed.Index)
	assert.Equal(t, "Backwards", malformed.Title)
	assert.Contains(t, malformed.Message, "before start date")

	require.True(t, errors.As(errs[1], &malformed))
	assert.Equal(t, 1, malformed.Index)
	assert.Equal(t, "missing start date", malformed.Message)

	assert.Equal(t, 1, profile.EntryCount)
	assert.Equal(t, 2.0, profile.TotalYears)
	assert.Equal(t, "analyst", profile.RoleSpecialization)
}

func TestAnalyze_ImplausibleStartYear(t *testing.T) {
	a := newTestAnalyzer(t, 0.25)
	entries := []types.ExperienceEntry{
		entry("Scribe", date(1900, time.January, 1), ptr(date(1910, time.January, 1)), ""),
		entry("Analyst", date(2019, time.January, 1), ptr(date(2021, time.January, 1)), ""),
		entry("Pilot", date(2031, time.January, 1), nil, ""),
	}

	profile, errs := a.Analyze(entries, asOf)
	require.Len(t, errs, 2)
	assert.ErrorContains(t, errs[0], "entry 1 (Scribe)")
	assert.ErrorContains(t, errs[0], "outside the plausible range")
	assert.ErrorContains(t, errs[1], "entry 3 (Pilot)")

	assert.Equal(t, 1, profile.EntryCount)
	assert.Equal(t, 2.0, profile.TotalYears)
}

func TestAnalyze_DomainDensity(t *testing.T) {
	entries := []types.ExperienceEntry{
		entry("Developer", date(2014, time.January, 1), ptr(date(2015, time.January, 1)), "Built trading dashboards"),
		entry("Developer", date(2015, time.January, 1), ptr(date(2016, time.January, 1)), "Worked on internal tools"),
		entry("Developer", date(2016, time.January, 1), ptr(date(2017, time.January, 1)), "Maintained a CRM"),
		entry("Developer", date(2017, time.January, 1), ptr(date(2018, time.January, 1)), "Ported reports to the web"),
	}

	profile, _ := newTestAnalyzer(t, 0.25).Analyze(entries, asOf)
	assert.Equal(t, []string{"finance"}, profile.DomainExpertise)

	profile, _ = newTestAnalyzer(t, 0.5).Analyze(entries, asOf)
	assert.Empty(t, profile.DomainExpertise)
}

func TestAnalyze_LeadershipAndProgression(t *testing.T) {
	a := newTestAnalyzer(t, 0.25)
	entries := []types.ExperienceEntry{
		entry("Senior Engineer", date(2020, time.January, 1), nil, "Led a team of five on the clinical records system"),
		entry("Engineer", date(2017, time.January, 1), ptr(date(2020, time.January, 1)), "Shipped features"),
		entry("Junior Developer", date(2015, time.January, 1), ptr(date(2017, time.January, 1)), "Fixed bugs"),
	}

	profile, errs := a.Analyze(entries, asOf)
	require.Empty(t, errs)
	assert.True(t, profile.LeadershipExperience)
	assert.Equal(t, 9.0, profile.TotalYears)
	assert.Equal(t, types.LevelSenior, profile.CareerLevel)
	assert.Equal(t, []string{"healthcare"}, profile.DomainExpertise)

	require.Len(t, profile.Progression, 3)
	assert.Equal(t, "Junior Developer", profile.Progression[0].Title)
	assert.Equal(t, "junior", profile.Progression[0].Level)
	assert.Equal(t, "mid", profile.Progression[1].Level)
	assert.Equal(t, "senior", profile.Progression[2].Level)
}

func TestAnalyze_ComplexityBounds(t *testing.T) {
	a := newTestAnalyzer(t, 0.25)
	long := "Led and mentored engineers while directing the roadmap for distributed systems across regions " +
		"and managed vendor relationships with care and oversaw budgets for infrastructure and hiring in " +
		"three offices while coordinating releases across many teams and time zones every single quarter"

	var entries []types.ExperienceEntry
	for i := 0; i < 8; i++ {
		start := date(2000+2*i, time.January, 1)
		entries = append(entries, entry("Principal Engineer", start, ptr(start.AddDate(2, 0, 0)), long))
	}

	profile, errs := a.Analyze(entries, asOf)
	require.Empty(t, errs)
	assert.LessOrEqual(t, profile.ComplexityScore, 1.0)
	assert.GreaterOrEqual(t, profile.ComplexityScore, 0.85)
	assert.Equal(t, types.LevelArchitect, profile.CareerLevel)
}

func TestNewAnalyzer_CopiesBreakpoints(t *testing.T) {
	domains, err := catalog.NewDomainCatalog([]catalog.Domain{{Name: "finance", Keywords: []string{"banking"}}})
	require.NoError(t, err)

	bps := []float64{1, 3, 6, 10, 15}
	a := NewAnalyzer(domains, bps, 0.25)
	bps[0] = 100

	profile, _ := a.Analyze([]types.ExperienceEntry{
		entry("Clerk", date(2021, time.January, 1), ptr(date(2023, time.January, 1)), ""),
	}, asOf)
	assert.Equal(t, types.LevelJunior, profile.CareerLevel)
}
