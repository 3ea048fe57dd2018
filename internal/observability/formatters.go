// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-intel/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(shorten(line, boxWidth-4), boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintAnalysis prints every section of a result in pipeline order.
func (p *Printer) PrintAnalysis(result *types.AnalysisResult) {
	if result == nil {
		return
	}
	p.PrintSkillProfile(result.SkillProfile)
	p.PrintExperienceProfile(result.ExperienceProfile)
	p.PrintJobMatches(result.JobMatches)
	p.PrintResumeScore(result.ResumeScore)
	p.PrintWarnings(result.Warnings)
}

// PrintSkillProfile outputs skills grouped by tier.
func (p *Printer) PrintSkillProfile(profile *types.SkillProfile) {
	if profile == nil {
		return
	}

	byTier := map[types.Tier][]string{}
	for name, entry := range profile.Skills {
		byTier[entry.Tier] = append(byTier[entry.Tier], name)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Recognized: %d skills in %d categories\n", len(profile.Skills), len(profile.Categories)))

	for _, tier := range []types.Tier{types.TierPrimary, types.TierSecondary, types.TierEmerging} {
		names := byTier[tier]
		if len(names) == 0 {
			continue
		}
		sort.Strings(names)
		sb.WriteString(fmt.Sprintf("\n%s:\n", tierLabel(tier)))
		sb.WriteString(bulletList(names, maxItemsToShow))
	}

	if len(profile.Unrecognized) > 0 {
		sb.WriteString(fmt.Sprintf("\nUnrecognized: %s\n", strings.Join(profile.Unrecognized, ", ")))
	}

	p.printBox("SKILL PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintExperienceProfile outputs the career summary and progression.
func (p *Printer) PrintExperienceProfile(profile *types.ExperienceProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total years:     %.1f\n", profile.TotalYears))
	sb.WriteString(fmt.Sprintf("Career level:    %s\n", profile.CareerLevel))
	sb.WriteString(fmt.Sprintf("Specialization:  %s\n", profile.RoleSpecialization))
	sb.WriteString(fmt.Sprintf("Complexity:      %.2f\n", profile.ComplexityScore))
	if profile.LeadershipExperience {
		sb.WriteString("Leadership:      yes\n")
	}
	if len(profile.DomainExpertise) > 0 {
		sb.WriteString(fmt.Sprintf("Domains:         %s\n", strings.Join(profile.DomainExpertise, ", ")))
	}

	if len(profile.Progression) > 0 {
		sb.WriteString("\nProgression:\n")
		count := min(len(profile.Progression), maxItemsToShow)
		for i := 0; i < count; i++ {
			step := profile.Progression[i]
			line := step.Title
			if step.Organization != "" {
				line += " @ " + step.Organization
			}
			sb.WriteString(fmt.Sprintf("  %d. %s (%s)\n", i+1, line, step.Level))
		}
		if len(profile.Progression) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Progression)-maxItemsToShow))
		}
	}

	p.printBox("EXPERIENCE PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobMatches outputs the ranked roles with scores and gaps.
func (p *Printer) PrintJobMatches(matches []types.JobMatch) {
	if len(matches) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(matches), maxItemsToShow)
	for i := 0; i < count; i++ {
		m := matches[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, m.Title))
		sb.WriteString(fmt.Sprintf("    Score: %.2f  Skills: %.1f%%  Growth: %s\n", m.MatchScore, m.SkillMatchPercentage, m.GrowthPotential))
		if len(m.MissingSkills) > 0 {
			sb.WriteString(fmt.Sprintf("    Missing: %s (%s)\n", strings.Join(m.MissingSkills, ", "), m.TimeToReady))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(matches) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more roles", len(matches)-maxItemsToShow))
	}

	p.printBox("JOB MATCHES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintResumeScore outputs the overall score, the per-dimension breakdown and the suggestions.
func (p *Printer) PrintResumeScore(score *types.ResumeScore) {
	if score == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall: %.1f  Grade: %s\n\n", score.OverallScore, score.Grade))
	for _, dim := range types.Dimensions {
		value, ok := score.Breakdown[dim]
		if !ok {
			continue
		}
		sb.WriteString(fmt.Sprintf("  %-22s %5.1f  %s\n", dim, value, bar(value)))
	}

	if len(score.Suggestions) > 0 {
		sb.WriteString("\nSuggestions:\n")
		sb.WriteString(bulletList(score.Suggestions, 3))
	}

	p.printBox("RESUME SCORE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintWarnings outputs discarded-entry warnings, if any.
func (p *Printer) PrintWarnings(warnings []string) {
	if len(warnings) == 0 {
		return
	}

	var sb strings.Builder
	for _, w := range warnings {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", w))
	}
	p.printBox("WARNINGS", strings.TrimSuffix(sb.String(), "\n"))
}

func tierLabel(tier types.Tier) string {
	switch tier {
	case types.TierPrimary:
		return "Primary"
	case types.TierSecondary:
		return "Secondary"
	default:
		return "Emerging"
	}
}

func bulletList(items []string, limit int) string {
	var sb strings.Builder
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
	return sb.String()
}

// bar renders a 0-100 value as ten cells.
func bar(value float64) string {
	filled := min(max(int(value/10+0.5), 0), 10)
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}

func shorten(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
