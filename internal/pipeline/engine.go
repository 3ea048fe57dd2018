// Package pipeline wires the analysis stages into a single resume analysis engine.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-intel/internal/catalog"
	"github.com/jonathan/resume-intel/internal/config"
	"github.com/jonathan/resume-intel/internal/experience"
	"github.com/jonathan/resume-intel/internal/extract"
	"github.com/jonathan/resume-intel/internal/logger"
	"github.com/jonathan/resume-intel/internal/ranking"
	"github.com/jonathan/resume-intel/internal/scoring"
	"github.com/jonathan/resume-intel/internal/skills"
	"github.com/jonathan/resume-intel/internal/types"
)

// ErrNilDocument is returned when Analyze is given no document.
var ErrNilDocument = errors.New("pipeline: nil document")

const warningLogLimit = 200

// Engine runs the analysis stages over resume documents. Catalogs and
// configuration are fixed at construction; an Engine is safe for concurrent use.
type Engine struct {
	cfg         config.Config
	catalogs    *catalog.Set
	normalizer  *skills.Normalizer
	analyzer    *experience.Analyzer
	recommender *ranking.Recommender
	scorer      *scoring.Scorer
	logger      *zap.Logger
	now         func() time.Time
	onProgress  ProgressCallback
}

// Option customizes an Engine.
type Option func(*Engine)

// WithClock sets the clock that supplies the analysis date.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithProgress registers a progress callback.
func WithProgress(cb ProgressCallback) Option {
	return func(e *Engine) {
		e.onProgress = cb
	}
}

// New validates cfg and builds an engine over the catalogs. A nil logger
// disables logging.
func New(cfg config.Config, catalogs *catalog.Set, log *zap.Logger, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if catalogs == nil || catalogs.Skills == nil || catalogs.Jobs == nil || catalogs.Domains == nil {
		return nil, errors.New("pipeline: catalogs are required")
	}
	if log == nil {
		log = zap.NewNop()
	}

	e := &Engine{
		cfg:         cfg,
		catalogs:    catalogs,
		normalizer:  skills.NewNormalizer(catalogs.Skills, cfg.FuzzyThreshold),
		analyzer:    experience.NewAnalyzer(catalogs.Domains, cfg.CareerLevelBreakpoints, cfg.DomainMinDensity),
		recommender: ranking.NewRecommender(catalogs.Jobs, cfg.RecommenderWeights, cfg.TopNJobs),
		scorer:      scoring.NewScorer(cfg, catalogs.Jobs),
		logger:      log,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Observe returns a copy of the engine that reports progress to cb instead
// of the callback given at construction.
func (e *Engine) Observe(cb ProgressCallback) *Engine {
	observed := *e
	observed.onProgress = cb
	return &observed
}

// Analyze runs every stage over one document. Malformed experience entries
// do not fail the analysis; they are dropped and listed in Warnings.
func (e *Engine) Analyze(ctx context.Context, doc *types.Document) (*types.AnalysisResult, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	norm := extract.Normalize(doc)
	asOf := e.now().UTC()
	log := e.logger.With(zap.String("source", norm.Source))

	// Skills
	mentions := skills.ExtractMentions(norm.Sections, e.catalogs.Skills)
	partial, unrecognized := e.normalizer.Normalize(mentions)
	skillProfile := skills.Categorize(partial, e.catalogs.Skills, e.cfg.PrimaryTierThreshold)
	skillProfile.Unrecognized = unrecognized
	log.Debug("skills normalized",
		zap.Int("mentions", len(mentions)),
		zap.Int("skills", len(skillProfile.Skills)),
		zap.Int("unrecognized", len(unrecognized)),
	)
	e.emitProgress(StepSkills, norm.Source, fmt.Sprintf("%d skills recognized", len(skillProfile.Skills)), nil)

	// Experience
	entries, positions, parseErrs := experience.ParseSection(norm.Sections[types.SectionExperience], asOf)
	expProfile, analyzeErrs := e.analyzer.Analyze(entries, asOf)
	accepted := acceptedEntries(entries, analyzeErrs)
	experience.Renumber(analyzeErrs, positions)

	var warnings []string
	for _, err := range byEntry(append(parseErrs, analyzeErrs...)) {
		warnings = append(warnings, err.Error())
		log.Warn("experience entry discarded", zap.String("reason", logger.TruncateForLog(err.Error(), warningLogLimit)))
	}
	discarded := len(parseErrs) + len(analyzeErrs)
	log.Debug("experience analyzed",
		zap.Int("entries", len(accepted)),
		zap.Int("discarded", discarded),
		zap.Float64("total_years", expProfile.TotalYears),
		zap.String("career_level", string(expProfile.CareerLevel)),
	)
	e.emitProgress(StepExperience, norm.Source,
		fmt.Sprintf("%.1f years, %s level", expProfile.TotalYears, expProfile.CareerLevel), nil)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Matching
	matches := e.recommender.Recommend(skillProfile, expProfile, norm.RawText)
	if len(matches) > 0 {
		log.Debug("roles matched",
			zap.Int("matches", len(matches)),
			zap.String("top_role", matches[0].RoleID),
			zap.Float64("top_score", matches[0].MatchScore),
		)
	}
	e.emitProgress(StepMatching, norm.Source, fmt.Sprintf("%d roles ranked", len(matches)), nil)

	// Scoring
	signals := extract.Signals(norm, accepted, discarded)
	score := e.scorer.Score(skillProfile, expProfile, matches, signals)
	log.Debug("resume scored", zap.Float64("overall", score.OverallScore), zap.String("grade", score.Grade))
	e.emitProgress(StepScoring, norm.Source, fmt.Sprintf("scored %.1f (%s)", score.OverallScore, score.Grade), nil)

	result := &types.AnalysisResult{
		ID:                uuid.New(),
		Source:            norm.Source,
		AnalyzedAt:        asOf,
		SkillProfile:      skillProfile,
		ExperienceProfile: expProfile,
		JobMatches:        matches,
		ResumeScore:       score,
		Warnings:          warnings,
	}

	log.Info("analysis complete",
		zap.String("result_id", result.ID.String()),
		zap.Duration("elapsed", time.Since(start)),
	)
	if e.onProgress != nil {
		e.onProgress(ProgressEvent{
			Step:     StepComplete,
			Source:   norm.Source,
			Message:  "analysis complete",
			ResultID: result.ID.String(),
			Content:  result.ResumeScore,
		})
	}

	return result, nil
}

// AnalyzeBatch analyzes documents concurrently, at most batch_concurrency at
// a time. Results keep the input order. The first failure cancels the
// documents that have not started yet and is returned.
func (e *Engine) AnalyzeBatch(ctx context.Context, docs []*types.Document) ([]*types.AnalysisResult, error) {
	results := make([]*types.AnalysisResult, len(docs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.BatchConcurrency)

	for i, doc := range docs {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			result, err := e.Analyze(gCtx, doc)
			if err != nil {
				return fmt.Errorf("document %d (%s): %w", i, sourceOf(doc), err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}

	e.logger.Info("batch complete", zap.Int("documents", len(docs)))
	return results, nil
}

// acceptedEntries drops the entries the analyzer rejected.
func acceptedEntries(entries []types.ExperienceEntry, errs []error) []types.ExperienceEntry {
	rejected := make(map[int]bool, len(errs))
	for _, err := range errs {
		var malformed *experience.MalformedEntryError
		if errors.As(err, &malformed) {
			rejected[malformed.Index] = true
		}
	}

	out := make([]types.ExperienceEntry, 0, len(entries))
	for i, entry := range entries {
		if !rejected[i] {
			out = append(out, entry)
		}
	}
	return out
}

// byEntry orders entry errors by their position in the experience section.
func byEntry(errs []error) []error {
	index := func(err error) int {
		var malformed *experience.MalformedEntryError
		if errors.As(err, &malformed) {
			return malformed.Index
		}
		return -1
	}
	sort.SliceStable(errs, func(i, j int) bool { return index(errs[i]) < index(errs[j]) })
	return errs
}

func sourceOf(doc *types.Document) string {
	if doc == nil || doc.Source == "" {
		return "unnamed"
	}
	return doc.Source
}
