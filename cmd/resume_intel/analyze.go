package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-intel/internal/observability"
	"github.com/jonathan/resume-intel/internal/pipeline"
	"github.com/jonathan/resume-intel/internal/schemas"
	"github.com/jonathan/resume-intel/internal/types"
	schemadocs "github.com/jonathan/resume-intel/schemas"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <resume-file-or-url>",
	Short: "Analyze one resume",
	Long: "Analyzes a plain-text, markdown, HTML or JSON document resume, read from a file or an http(s) URL, and writes the AnalysisResult JSON " +
		"(skill profile, experience profile, job matches, quality score) to stdout or --out.",
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

var (
	analyzeOutput  string
	analyzeVerbose bool
	analyzeSave    bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "out", "o", "", "Path to output AnalysisResult JSON file (default stdout)")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print a human-readable summary of each stage")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "Store the result in the database")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	// 1. Read the resume
	doc, err := readResume(ctx, args[0])
	if err != nil {
		return err
	}

	// 2. Analyze
	var opts []pipeline.Option
	if analyzeVerbose {
		opts = append(opts, pipeline.WithProgress(func(event pipeline.ProgressEvent) {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "[%s] %s\n", event.Step, event.Message)
		}))
	}
	rt, err := newSession(opts...)
	if err != nil {
		return err
	}
	defer func() { _ = rt.logger.Sync() }()

	result, err := rt.engine.Analyze(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to analyze %s: %w", args[0], err)
	}

	if analyzeVerbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintAnalysis(result)
	}

	// 3. Output
	if err := emitResult(cmd, result, analyzeOutput); err != nil {
		return err
	}

	// 4. Optional persistence
	if analyzeSave {
		store, err := rt.openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.SaveAnalysis(ctx, result); err != nil {
			return err
		}
		rt.logger.Info("analysis saved", zap.String("result_id", result.ID.String()))
	}

	return nil
}

// emitResult writes the result as JSON to path, or to stdout when path is
// empty, after checking it against the output schema. A schema mismatch is
// reported but does not fail the command.
func emitResult(cmd *cobra.Command, result *types.AnalysisResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal analysis result: %w", err)
	}

	if err := schemas.ValidateDocument(schemadocs.AnalysisResult, data); err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Output validation failed: %v\n", err)
	}

	if path == "" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	if err := writeJSON(path, result); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Analysis of %s written to %s (score %.1f, grade %s)\n",
		result.Source, path, result.ResumeScore.OverallScore, result.ResumeScore.Grade)
	return nil
}
