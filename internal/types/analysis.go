// Package types provides type definitions for structured data used throughout the resume-intel system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// Document is the output of the extraction layer: the raw text plus loosely
// structured sections keyed by section name.
type Document struct {
	Source   string            `json:"source,omitempty"` // file name or caller label
	RawText  string            `json:"raw_text"`
	Sections map[string]string `json:"sections"`
	Order    []string          `json:"order,omitempty"` // section names in document order, when known
}

// AnalysisResult is the single aggregate produced for one resume.
type AnalysisResult struct {
	ID                uuid.UUID          `json:"id"`
	Source            string             `json:"source,omitempty"`
	AnalyzedAt        time.Time          `json:"analyzed_at"`
	SkillProfile      *SkillProfile      `json:"skill_profile"`
	ExperienceProfile *ExperienceProfile `json:"experience_profile"`
	JobMatches        []JobMatch         `json:"job_matches"`
	ResumeScore       *ResumeScore       `json:"resume_score"`
	Warnings          []string           `json:"warnings,omitempty"`
}
