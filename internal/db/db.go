// Package db provides PostgreSQL storage for analysis results.
package db

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/resume-intel/internal/types"
)

//go:embed schema.sql
var schemaSQL string

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the analyses table and its indexes when missing.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// SaveAnalysis stores a result. Saving the same ID again replaces the row.
func (db *DB) SaveAnalysis(ctx context.Context, result *types.AnalysisResult) error {
	if result == nil {
		return errors.New("cannot save nil analysis")
	}
	summary := Summarize(result)

	content, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO analyses (id, source, analyzed_at, career_level, total_years, overall_score, grade, top_role_id, result)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (id) DO UPDATE SET
		   source = $2, analyzed_at = $3, career_level = $4, total_years = $5,
		   overall_score = $6, grade = $7, top_role_id = $8, result = $9`,
		summary.ID, summary.Source, summary.AnalyzedAt, summary.CareerLevel, summary.TotalYears,
		summary.OverallScore, summary.Grade, summary.TopRoleID, content,
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis %s: %w", result.ID, err)
	}
	return nil
}

// GetAnalysis loads a stored result. It returns nil, nil when the ID is unknown.
func (db *DB) GetAnalysis(ctx context.Context, id uuid.UUID) (*types.AnalysisResult, error) {
	var content []byte
	err := db.pool.QueryRow(ctx, `SELECT result FROM analyses WHERE id = $1`, id).Scan(&content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get analysis %s: %w", id, err)
	}

	var result types.AnalysisResult
	if err := json.Unmarshal(content, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analysis %s: %w", id, err)
	}
	return &result, nil
}

// ListAnalyses returns the most recent analyses, newest first.
func (db *DB) ListAnalyses(ctx context.Context, limit int) ([]AnalysisSummary, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, source, analyzed_at, career_level, total_years, overall_score, grade, top_role_id, created_at
		 FROM analyses ORDER BY analyzed_at DESC, created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	summaries := []AnalysisSummary{}
	for rows.Next() {
		var s AnalysisSummary
		if err := rows.Scan(&s.ID, &s.Source, &s.AnalyzedAt, &s.CareerLevel, &s.TotalYears,
			&s.OverallScore, &s.Grade, &s.TopRoleID, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	return summaries, nil
}

// DeleteAnalysis removes a stored result and reports whether it existed.
func (db *DB) DeleteAnalysis(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM analyses WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete analysis %s: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

// Summarize extracts the indexed columns from a result.
func Summarize(result *types.AnalysisResult) AnalysisSummary {
	s := AnalysisSummary{
		ID:         result.ID,
		Source:     result.Source,
		AnalyzedAt: result.AnalyzedAt,
	}
	if result.ExperienceProfile != nil {
		s.CareerLevel = string(result.ExperienceProfile.CareerLevel)
		s.TotalYears = result.ExperienceProfile.TotalYears
	}
	if result.ResumeScore != nil {
		s.OverallScore = result.ResumeScore.OverallScore
		s.Grade = result.ResumeScore.Grade
	}
	if len(result.JobMatches) > 0 {
		top := result.JobMatches[0].RoleID
		s.TopRoleID = &top
	}
	return s
}
