package experience

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/jonathan/resume-intel/internal/catalog"
	"github.com/jonathan/resume-intel/internal/textmatch"
	"github.com/jonathan/resume-intel/internal/types"
)

const (
	daysPerYear   = 365.25
	secondsPerDay = 24 * 60 * 60
)

// Complexity weights
const (
	weightEntryCount = 0.20
	weightDetail     = 0.30
	weightLeadership = 0.25
	weightSeniority  = 0.25

	entryCountSaturated = 5.0  // entries at which the count signal saturates
	detailSaturated     = 60.0 // average description words at which detail saturates
)

// Analyzer aggregates experience entries into an ExperienceProfile.
// It holds only immutable configuration and is safe for concurrent use.
type Analyzer struct {
	domains     []catalog.Domain
	breakpoints []float64
	minDensity  float64
}

// NewAnalyzer creates an analyzer. breakpoints are the year thresholds for
// junior, mid, senior, lead and architect; minDensity is the share of entries
// that must mention a domain before it is listed as expertise.
func NewAnalyzer(domains *catalog.DomainCatalog, breakpoints []float64, minDensity float64) *Analyzer {
	return &Analyzer{
		domains:     domains.All(),
		breakpoints: append([]float64(nil), breakpoints...),
		minDensity:  minDensity,
	}
}

// Analyze builds the profile as of asOf, which also resolves ongoing positions.
// Entries ending before they start, without a start date, or starting before
// MinYear or after the year following asOf are discarded and returned as
// *MalformedEntryError values; the rest of the analysis proceeds.
func (a *Analyzer) Analyze(entries []types.ExperienceEntry, asOf time.Time) (*types.ExperienceProfile, []error) {
	var valid []types.ExperienceEntry
	var errs []error

	for i, e := range entries {
		switch {
		case e.StartDate.IsZero():
			errs = append(errs, &MalformedEntryError{Index: i, Title: e.Title, Message: "missing start date"})
		case e.StartDate.Year() < MinYear || e.StartDate.Year() > asOf.Year()+1:
			errs = append(errs, &MalformedEntryError{
				Index:   i,
				Title:   e.Title,
				Message: "start date " + e.StartDate.Format("2006-01-02") + " is outside the plausible range",
			})
		case e.EndDate != nil && e.EndDate.Before(e.StartDate):
			errs = append(errs, &MalformedEntryError{
				Index:   i,
				Title:   e.Title,
				Message: "end date " + e.EndDate.Format("2006-01-02") + " is before start date " + e.StartDate.Format("2006-01-02"),
			})
		default:
			valid = append(valid, e)
		}
	}

	profile := &types.ExperienceProfile{
		DomainExpertise:    []string{},
		EntryCount:         len(valid),
		RoleSpecialization: roleGeneral,
	}

	profile.TotalYears = TotalYears(valid, asOf)
	profile.CareerLevel = CareerLevelFor(profile.TotalYears, a.breakpoints)
	if len(valid) == 0 {
		return profile, errs
	}

	texts := make([]string, len(valid))
	for i, e := range valid {
		texts[i] = textmatch.Fold(e.Title + " " + e.Organization + " " + e.Description)
	}

	profile.DomainExpertise = a.domainExpertise(texts)
	profile.ComplexityScore = complexity(valid, texts)
	profile.LeadershipExperience = hasLeadership(texts)
	profile.RoleSpecialization = specialization(texts)
	profile.Progression = progression(valid)

	return profile, errs
}

// TotalYears returns the length of the union of all entry intervals in years,
// rounded to one decimal. Ongoing entries end at asOf; time after asOf is ignored.
func TotalYears(entries []types.ExperienceEntry, asOf time.Time) float64 {
	type interval struct{ start, end time.Time }

	intervals := make([]interval, 0, len(entries))
	for _, e := range entries {
		end := asOf
		if e.EndDate != nil && e.EndDate.Before(asOf) {
			end = *e.EndDate
		}
		if !end.After(e.StartDate) {
			continue
		}
		intervals = append(intervals, interval{start: e.StartDate, end: end})
	}
	if len(intervals) == 0 {
		return 0
	}

	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].start.Before(intervals[j].start)
	})

	var days float64
	cur := intervals[0]
	for _, iv := range intervals[1:] {
		if !iv.start.After(cur.end) {
			if iv.end.After(cur.end) {
				cur.end = iv.end
			}
			continue
		}
		days += daysBetween(cur.start, cur.end)
		cur = iv
	}
	days += daysBetween(cur.start, cur.end)

	return math.Round(days/daysPerYear*10) / 10
}

// daysBetween counts days through Unix seconds; time.Duration saturates
// after about 292 years.
func daysBetween(start, end time.Time) float64 {
	return float64(end.Unix()-start.Unix()) / secondsPerDay
}

// CareerLevelFor maps years of experience onto the level ladder. breakpoints[i]
// is the minimum years for CareerLevels[i+1].
func CareerLevelFor(years float64, breakpoints []float64) types.CareerLevel {
	level := types.CareerLevels[0]
	for i, bp := range breakpoints {
		if i+1 >= len(types.CareerLevels) || years < bp {
			break
		}
		level = types.CareerLevels[i+1]
	}
	return level
}

func (a *Analyzer) domainExpertise(texts []string) []string {
	out := []string{}
	for _, d := range a.domains {
		hits := 0
		for _, text := range texts {
			if _, ok := textmatch.ContainsAny(text, d.Keywords); ok {
				hits++
			}
		}
		if hits > 0 && float64(hits)/float64(len(texts)) >= a.minDensity {
			out = append(out, d.Name)
		}
	}
	return out
}

// complexity blends entry count, description detail, leadership share and
// title seniority into [0,1].
func complexity(entries []types.ExperienceEntry, texts []string) float64 {
	n := float64(len(entries))

	words, leaders, seniority := 0, 0, 0.0
	for i, e := range entries {
		words += len(strings.Fields(e.Description))
		if _, ok := textmatch.ContainsAny(texts[i], leadershipKeywords); ok {
			leaders++
		}
		switch titleLevel(e.Title) {
		case titleSenior:
			seniority += 1
		case titleMid:
			seniority += 0.5
		}
	}

	score := weightEntryCount*math.Min(n/entryCountSaturated, 1) +
		weightDetail*math.Min(float64(words)/n/detailSaturated, 1) +
		weightLeadership*float64(leaders)/n +
		weightSeniority*seniority/n

	return math.Round(math.Max(0, math.Min(score, 1))*1000) / 1000
}

func hasLeadership(texts []string) bool {
	for _, text := range texts {
		if _, ok := textmatch.ContainsAny(text, leadershipKeywords); ok {
			return true
		}
	}
	return false
}

// specialization returns the first role whose indicators appear, checking
// entries in input order.
func specialization(texts []string) string {
	for _, text := range texts {
		for _, rk := range roleKeywords {
			if _, ok := textmatch.ContainsAny(text, rk.keywords); ok {
				return rk.role
			}
		}
	}
	return roleGeneral
}

// titleLevel classifies a single title as senior, junior or mid.
func titleLevel(title string) string {
	folded := textmatch.Fold(title)
	if _, ok := textmatch.ContainsAny(folded, seniorKeywords); ok {
		return titleSenior
	}
	if _, ok := textmatch.ContainsAny(folded, juniorKeywords); ok {
		return titleJunior
	}
	return titleMid
}

// progression lists positions oldest first.
func progression(entries []types.ExperienceEntry) []types.ProgressionStep {
	sorted := append([]types.ExperienceEntry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartDate.Before(sorted[j].StartDate)
	})

	steps := make([]types.ProgressionStep, 0, len(sorted))
	for _, e := range sorted {
		steps = append(steps, types.ProgressionStep{
			Title:        e.Title,
			Organization: e.Organization,
			Level:        titleLevel(e.Title),
		})
	}
	return steps
}
