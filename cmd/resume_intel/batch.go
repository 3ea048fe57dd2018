package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-intel/internal/types"
)

var batchCmd = &cobra.Command{
	Use:   "batch <resume>...",
	Short: "Analyze several resumes concurrently",
	Long: "Analyzes every given resume, at most batch_concurrency at a time, and writes one " +
		"AnalysisResult JSON per resume into --out-dir.",
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

var (
	batchOutputDir string
	batchSave      bool
)

func init() {
	batchCmd.Flags().StringVarP(&batchOutputDir, "out-dir", "o", "", "Directory for the AnalysisResult JSON files (required)")
	batchCmd.Flags().BoolVar(&batchSave, "save", false, "Store every result in the database")

	if err := batchCmd.MarkFlagRequired("out-dir"); err != nil {
		panic(fmt.Sprintf("failed to mark out-dir flag as required: %v", err))
	}

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	docs := make([]*types.Document, 0, len(args))
	for _, path := range args {
		doc, err := readResume(ctx, path)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}

	rt, err := newSession()
	if err != nil {
		return err
	}
	defer func() { _ = rt.logger.Sync() }()

	results, err := rt.engine.AnalyzeBatch(ctx, docs)
	if err != nil {
		return err
	}

	for i, result := range results {
		if err := writeJSON(batchOutputPath(batchOutputDir, args[i]), result); err != nil {
			return err
		}
	}

	if batchSave {
		store, err := rt.openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		for _, result := range results {
			if err := store.SaveAnalysis(ctx, result); err != nil {
				return err
			}
		}
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Analyzed %d resumes into %s\n", len(results), batchOutputDir)
	for i, result := range results {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %-30s %5.1f  %s\n", filepath.Base(args[i]), result.ResumeScore.OverallScore, result.ResumeScore.Grade)
	}
	return nil
}

// batchOutputPath maps resume.txt to <dir>/resume.analysis.json.
func batchOutputPath(dir, input string) string {
	base := filepath.Base(input)
	return filepath.Join(dir, strings.TrimSuffix(base, filepath.Ext(base))+".analysis.json")
}
