package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jonathan/resume-intel/internal/catalog"
	"github.com/jonathan/resume-intel/internal/config"
	"github.com/jonathan/resume-intel/internal/db"
	"github.com/jonathan/resume-intel/internal/extract"
	"github.com/jonathan/resume-intel/internal/fetch"
	"github.com/jonathan/resume-intel/internal/logger"
	"github.com/jonathan/resume-intel/internal/pipeline"
	"github.com/jonathan/resume-intel/internal/types"
)

// session holds what every analysis command needs.
type session struct {
	cfg    config.Config
	engine *pipeline.Engine
	logger *zap.Logger
}

// loadConfig reads --config (or RESUME_INTEL_CONFIG) when set; otherwise the
// built-in defaults apply, with DATABASE_URL taken from the environment.
func loadConfig() (config.Config, error) {
	path := viper.GetString("config")
	if path == "" {
		cfg := config.Default()
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
		return cfg, nil
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return config.Config{}, err
	}
	return *cfg, nil
}

func newLogger() (*zap.Logger, error) {
	log, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		return nil, fmt.Errorf("creating a logger: %w", err)
	}
	return log, nil
}

func loadCatalogs(cfg config.Config) (*catalog.Set, error) {
	return catalog.Load(catalog.Paths{
		Skills:  cfg.SkillCatalogPath,
		Jobs:    cfg.JobCatalogPath,
		Domains: cfg.DomainCatalogPath,
	})
}

func newSession(opts ...pipeline.Option) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log, err := newLogger()
	if err != nil {
		return nil, err
	}

	catalogs, err := loadCatalogs(cfg)
	if err != nil {
		return nil, err
	}
	log.Debug("catalogs loaded",
		zap.Int("skills", catalogs.Skills.Len()),
		zap.Int("roles", catalogs.Jobs.Len()),
		zap.Int("domains", len(catalogs.Domains.All())),
	)

	engine, err := pipeline.New(cfg, catalogs, log, opts...)
	if err != nil {
		return nil, err
	}

	return &session{cfg: cfg, engine: engine, logger: log}, nil
}

// openStore connects to the result store named by database_url.
func (s *session) openStore(ctx context.Context) (*db.DB, error) {
	return openStore(ctx, s.cfg.DatabaseURL)
}

func openStore(ctx context.Context, databaseURL string) (*db.DB, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database_url is not set (config file or DATABASE_URL)")
	}

	store, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := store.EnsureSchema(ctx); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

// readResume loads a resume from a file or, for http(s) inputs, from the web.
func readResume(ctx context.Context, input string) (*types.Document, error) {
	if fetch.IsURL(input) {
		return fetch.Document(ctx, input, nil)
	}
	return extract.ReadFile(input)
}

// writeJSON writes v as indented JSON to path, creating parent directories.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}
