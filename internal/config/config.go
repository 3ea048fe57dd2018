// Package config provides configuration loading and validation for the analysis engine.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// weightTolerance is the allowed deviation of a weight set from 1.0.
const weightTolerance = 1e-6

// careerLevelCount is the number of rungs on the career ladder
// (fresher, junior, mid, senior, lead, architect).
const careerLevelCount = 6

// Config is the configuration surface consumed by the analysis engine.
// All values are validated once at load time; an invalid Config never reaches an analysis.
type Config struct {
	PrimaryTierThreshold   int                `json:"primary_tier_threshold" mapstructure:"primary_tier_threshold" validate:"min=1"`
	FuzzyThreshold         float64            `json:"fuzzy_threshold" mapstructure:"fuzzy_threshold" validate:"gt=0,lte=1"`
	CareerLevelBreakpoints []float64          `json:"career_level_breakpoints" mapstructure:"career_level_breakpoints" validate:"len=5,dive,gte=0"`
	DomainMinDensity       float64            `json:"domain_min_density" mapstructure:"domain_min_density" validate:"gt=0,lte=1"`
	RecommenderWeights     RecommenderWeights `json:"recommender_weights" mapstructure:"recommender_weights"`
	ScorerWeights          ScorerWeights      `json:"scorer_weights" mapstructure:"scorer_weights"`
	TopNJobs               int                `json:"top_n_jobs" mapstructure:"top_n_jobs" validate:"min=1"`
	GradeBands             []GradeBand        `json:"grade_bands" mapstructure:"grade_bands" validate:"min=1,dive"`
	SuggestionThreshold    float64            `json:"suggestion_threshold" mapstructure:"suggestion_threshold" validate:"gte=0,lte=100"`
	BatchConcurrency       int                `json:"batch_concurrency" mapstructure:"batch_concurrency" validate:"min=1"`

	// Catalog overrides; empty means the embedded defaults.
	SkillCatalogPath  string `json:"skill_catalog_path,omitempty" mapstructure:"skill_catalog_path"`
	JobCatalogPath    string `json:"job_catalog_path,omitempty" mapstructure:"job_catalog_path"`
	DomainCatalogPath string `json:"domain_catalog_path,omitempty" mapstructure:"domain_catalog_path"`

	DatabaseURL string `json:"database_url,omitempty" mapstructure:"database_url"` // PostgreSQL connection URL
}

// RecommenderWeights blends the three job-match signals. Must sum to 1.0.
type RecommenderWeights struct {
	Skill      float64 `json:"skill" mapstructure:"skill" validate:"gte=0,lte=1"`
	Experience float64 `json:"experience" mapstructure:"experience" validate:"gte=0,lte=1"`
	Keyword    float64 `json:"keyword" mapstructure:"keyword" validate:"gte=0,lte=1"`
}

// Sum returns the total of all weights.
func (w RecommenderWeights) Sum() float64 {
	return w.Skill + w.Experience + w.Keyword
}

// ScorerWeights weights the five quality dimensions. Must sum to 1.0.
type ScorerWeights struct {
	SkillRelevance       float64 `json:"skill_relevance" mapstructure:"skill_relevance" validate:"gte=0,lte=1"`
	ExperienceClarity    float64 `json:"experience_clarity" mapstructure:"experience_clarity" validate:"gte=0,lte=1"`
	KeywordOptimization  float64 `json:"keyword_optimization" mapstructure:"keyword_optimization" validate:"gte=0,lte=1"`
	StructureReadability float64 `json:"structure_readability" mapstructure:"structure_readability" validate:"gte=0,lte=1"`
	Completeness         float64 `json:"completeness" mapstructure:"completeness" validate:"gte=0,lte=1"`
}

// Sum returns the total of all weights.
func (w ScorerWeights) Sum() float64 {
	return w.SkillRelevance + w.ExperienceClarity + w.KeywordOptimization + w.StructureReadability + w.Completeness
}

// GradeBand maps every score at or above MinScore (and below the next band up) to Label.
type GradeBand struct {
	MinScore float64 `json:"min_score" mapstructure:"min_score" validate:"gte=0,lte=100"`
	Label    string  `json:"label" mapstructure:"label" validate:"required"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		PrimaryTierThreshold:   2,
		FuzzyThreshold:         0.8,
		CareerLevelBreakpoints: []float64{1, 3, 6, 10, 15},
		DomainMinDensity:       0.25,
		RecommenderWeights: RecommenderWeights{
			Skill:      0.6,
			Experience: 0.25,
			Keyword:    0.15,
		},
		ScorerWeights: ScorerWeights{
			SkillRelevance:       0.25,
			ExperienceClarity:    0.25,
			KeywordOptimization:  0.20,
			StructureReadability: 0.20,
			Completeness:         0.10,
		},
		TopNJobs: 5,
		GradeBands: []GradeBand{
			{MinScore: 95, Label: "A+"},
			{MinScore: 90, Label: "A"},
			{MinScore: 75, Label: "B+"},
			{MinScore: 65, Label: "B"},
			{MinScore: 55, Label: "C+"},
			{MinScore: 45, Label: "C"},
			{MinScore: 0, Label: "D"},
		},
		SuggestionThreshold: 70,
		BatchConcurrency:    4,
	}
}

// LoadConfig loads configuration from a JSON or YAML file, overlaying the defaults.
// The file format is taken from the extension. DATABASE_URL from the environment
// fills database_url when the file leaves it empty.
// The returned Config is validated.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v, Default())
	if err := v.BindEnv("database_url", "DATABASE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind DATABASE_URL: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults registers every default value so partial files keep the rest.
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("primary_tier_threshold", d.PrimaryTierThreshold)
	v.SetDefault("fuzzy_threshold", d.FuzzyThreshold)
	v.SetDefault("career_level_breakpoints", d.CareerLevelBreakpoints)
	v.SetDefault("domain_min_density", d.DomainMinDensity)
	v.SetDefault("recommender_weights.skill", d.RecommenderWeights.Skill)
	v.SetDefault("recommender_weights.experience", d.RecommenderWeights.Experience)
	v.SetDefault("recommender_weights.keyword", d.RecommenderWeights.Keyword)
	v.SetDefault("scorer_weights.skill_relevance", d.ScorerWeights.SkillRelevance)
	v.SetDefault("scorer_weights.experience_clarity", d.ScorerWeights.ExperienceClarity)
	v.SetDefault("scorer_weights.keyword_optimization", d.ScorerWeights.KeywordOptimization)
	v.SetDefault("scorer_weights.structure_readability", d.ScorerWeights.StructureReadability)
	v.SetDefault("scorer_weights.completeness", d.ScorerWeights.Completeness)
	v.SetDefault("top_n_jobs", d.TopNJobs)
	v.SetDefault("suggestion_threshold", d.SuggestionThreshold)
	v.SetDefault("batch_concurrency", d.BatchConcurrency)

	bands := make([]map[string]any, 0, len(d.GradeBands))
	for _, b := range d.GradeBands {
		bands = append(bands, map[string]any{"min_score": b.MinScore, "label": b.Label})
	}
	v.SetDefault("grade_bands", bands)
}

// Validate checks field ranges and the cross-field rules: weight sets sum to 1.0,
// breakpoints are strictly increasing, and grade bands cover [0,100] without gaps
// or overlaps.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			ve := validationErrors[0]
			return &ConfigurationError{
				Field:   ve.Namespace(),
				Message: fmt.Sprintf("failed %q constraint", ve.Tag()),
				Cause:   err,
			}
		}
		return &ConfigurationError{Message: "invalid configuration", Cause: err}
	}

	if sum := c.RecommenderWeights.Sum(); math.Abs(sum-1.0) > weightTolerance {
		return &ConfigurationError{
			Field:   "recommender_weights",
			Message: fmt.Sprintf("weights must sum to 1.0, got %.4f", sum),
		}
	}
	if sum := c.ScorerWeights.Sum(); math.Abs(sum-1.0) > weightTolerance {
		return &ConfigurationError{
			Field:   "scorer_weights",
			Message: fmt.Sprintf("weights must sum to 1.0, got %.4f", sum),
		}
	}

	if len(c.CareerLevelBreakpoints) != careerLevelCount-1 {
		return &ConfigurationError{
			Field:   "career_level_breakpoints",
			Message: fmt.Sprintf("expected %d breakpoints, got %d", careerLevelCount-1, len(c.CareerLevelBreakpoints)),
		}
	}
	for i := 1; i < len(c.CareerLevelBreakpoints); i++ {
		if c.CareerLevelBreakpoints[i] <= c.CareerLevelBreakpoints[i-1] {
			return &ConfigurationError{
				Field:   "career_level_breakpoints",
				Message: "breakpoints must be strictly increasing",
			}
		}
	}

	return validateGradeBands(c.GradeBands)
}

// validateGradeBands requires bands ordered by descending MinScore, unique
// thresholds and labels, and a lowest band starting at 0. Each band then covers
// [MinScore, previous MinScore) and the top band extends to 100 inclusive.
func validateGradeBands(bands []GradeBand) error {
	if len(bands) == 0 {
		return &ConfigurationError{Field: "grade_bands", Message: "at least one band is required"}
	}

	labels := make(map[string]bool, len(bands))
	for i, band := range bands {
		if labels[band.Label] {
			return &ConfigurationError{
				Field:   fmt.Sprintf("grade_bands[%d].label", i),
				Message: fmt.Sprintf("duplicate label %q", band.Label),
			}
		}
		labels[band.Label] = true

		if i > 0 && band.MinScore >= bands[i-1].MinScore {
			return &ConfigurationError{
				Field:   fmt.Sprintf("grade_bands[%d].min_score", i),
				Message: "bands must be ordered by strictly descending min_score",
			}
		}
	}

	if last := bands[len(bands)-1]; last.MinScore != 0 {
		return &ConfigurationError{
			Field:   fmt.Sprintf("grade_bands[%d].min_score", len(bands)-1),
			Message: "lowest band must start at 0",
		}
	}

	if bands[0].MinScore > 100 {
		return &ConfigurationError{Field: "grade_bands[0].min_score", Message: "top band must start at or below 100"}
	}

	return nil
}

// SortedBands returns a copy of the bands ordered by descending MinScore.
func (c *Config) SortedBands() []GradeBand {
	out := make([]GradeBand, len(c.GradeBands))
	copy(out, c.GradeBands)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MinScore > out[j].MinScore
	})
	return out
}

// MergeWithDefaults fills unset values of c from defaults. A weight set that is
// entirely zero is treated as unset. Explicit values in c take precedence.
func (c *Config) MergeWithDefaults(defaults Config) {
	if c.PrimaryTierThreshold == 0 {
		c.PrimaryTierThreshold = defaults.PrimaryTierThreshold
	}
	if c.FuzzyThreshold == 0 {
		c.FuzzyThreshold = defaults.FuzzyThreshold
	}
	if len(c.CareerLevelBreakpoints) == 0 {
		c.CareerLevelBreakpoints = append([]float64(nil), defaults.CareerLevelBreakpoints...)
	}
	if c.DomainMinDensity == 0 {
		c.DomainMinDensity = defaults.DomainMinDensity
	}
	if c.RecommenderWeights == (RecommenderWeights{}) {
		c.RecommenderWeights = defaults.RecommenderWeights
	}
	if c.ScorerWeights == (ScorerWeights{}) {
		c.ScorerWeights = defaults.ScorerWeights
	}
	if c.TopNJobs == 0 {
		c.TopNJobs = defaults.TopNJobs
	}
	if len(c.GradeBands) == 0 {
		c.GradeBands = append([]GradeBand(nil), defaults.GradeBands...)
	}
	if c.SuggestionThreshold == 0 {
		c.SuggestionThreshold = defaults.SuggestionThreshold
	}
	if c.BatchConcurrency == 0 {
		c.BatchConcurrency = defaults.BatchConcurrency
	}
}
