package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-intel/internal/observability"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored analyses",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

var showCmd = &cobra.Command{
	Use:   "show <analysis-id>",
	Short: "Print a stored analysis",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var (
	historyLimit int
	showVerbose  bool
)

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of analyses to list")
	showCmd.Flags().BoolVarP(&showVerbose, "verbose", "v", false, "Print the summary boxes instead of JSON")

	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(showCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer store.Close()

	summaries, err := store.ListAnalyses(ctx, historyLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, s := range summaries {
		topRole := "-"
		if s.TopRoleID != nil {
			topRole = *s.TopRoleID
		}
		_, _ = fmt.Fprintf(out, "%s  %s  %-24s %5.1f %-3s %-10s %s\n",
			s.ID, s.AnalyzedAt.Format("2006-01-02 15:04"), s.Source, s.OverallScore, s.Grade, s.CareerLevel, topRole)
	}
	_, _ = fmt.Fprintf(out, "%d analyses\n", len(summaries))
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid analysis id %s: %w", args[0], err)
	}
	ctx := commandContext(cmd)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer store.Close()

	result, err := store.GetAnalysis(ctx, id)
	if err != nil {
		return err
	}
	if result == nil {
		return fmt.Errorf("analysis %s not found", id)
	}

	if showVerbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintAnalysis(result)
		return nil
	}
	return printJSON(cmd, result)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
