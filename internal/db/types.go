package db

import (
	"time"

	"github.com/google/uuid"
)

// AnalysisSummary is the indexed part of a stored analysis, enough to list
// results without decoding the full JSON document.
type AnalysisSummary struct {
	ID           uuid.UUID `json:"id"`
	Source       string    `json:"source"`
	AnalyzedAt   time.Time `json:"analyzed_at"`
	CareerLevel  string    `json:"career_level"`
	TotalYears   float64   `json:"total_years"`
	OverallScore float64   `json:"overall_score"`
	Grade        string    `json:"grade"`
	TopRoleID    *string   `json:"top_role_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
