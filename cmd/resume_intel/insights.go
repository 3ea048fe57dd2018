package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var gapCmd = &cobra.Command{
	Use:   "gap <resume-file-or-url>",
	Short: "Show the skill gap between a resume and a job role",
	Long: "Analyzes a resume and writes a SkillGapAnalysis JSON for the catalog role named by --role: " +
		"matched skills, critical and important missing skills, a learning path and the time to job readiness.",
	Args: cobra.ExactArgs(1),
	RunE: runGap,
}

var roadmapCmd = &cobra.Command{
	Use:   "roadmap <resume-file-or-url>",
	Short: "Plan a career roadmap towards a job role",
	Long: "Analyzes a resume and writes a CareerRoadmap JSON: phases leading from the candidate's current " +
		"career level to the level and skills the role named by --role expects.",
	Args: cobra.ExactArgs(1),
	RunE: runRoadmap,
}

var compareCmd = &cobra.Command{
	Use:   "compare <resume-file-or-url>",
	Short: "Compare a resume with a job description",
	Long: "Analyzes a resume and checks it against the job description in --job-file, writing a JobComparison JSON " +
		"with the extracted requirements, which of them the resume meets, and a recommendation.",
	Args: cobra.ExactArgs(1),
	RunE: runCompare,
}

var (
	insightRole    string
	insightOutput  string
	compareJobFile string
)

func init() {
	for _, cmd := range []*cobra.Command{gapCmd, roadmapCmd} {
		cmd.Flags().StringVarP(&insightRole, "role", "r", "", "Job role ID from the job catalog (see 'catalog --kind roles')")
		cmd.Flags().StringVarP(&insightOutput, "out", "o", "", "Path to output JSON file (default stdout)")
		_ = cmd.MarkFlagRequired("role")
	}

	compareCmd.Flags().StringVarP(&compareJobFile, "job-file", "j", "", "Path to a plain-text job description")
	compareCmd.Flags().StringVarP(&insightOutput, "out", "o", "", "Path to output JSON file (default stdout)")
	_ = compareCmd.MarkFlagRequired("job-file")

	rootCmd.AddCommand(gapCmd)
	rootCmd.AddCommand(roadmapCmd)
	rootCmd.AddCommand(compareCmd)
}

func runGap(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	doc, err := readResume(ctx, args[0])
	if err != nil {
		return err
	}
	rt, err := newSession()
	if err != nil {
		return err
	}
	defer func() { _ = rt.logger.Sync() }()

	gap, err := rt.engine.GapAnalysis(ctx, doc, insightRole)
	if err != nil {
		return fmt.Errorf("failed to analyze %s: %w", args[0], err)
	}
	return emitJSON(cmd, gap, insightOutput)
}

func runRoadmap(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	doc, err := readResume(ctx, args[0])
	if err != nil {
		return err
	}
	rt, err := newSession()
	if err != nil {
		return err
	}
	defer func() { _ = rt.logger.Sync() }()

	roadmap, err := rt.engine.Roadmap(ctx, doc, insightRole)
	if err != nil {
		return fmt.Errorf("failed to analyze %s: %w", args[0], err)
	}
	return emitJSON(cmd, roadmap, insightOutput)
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	jobDescription, err := os.ReadFile(compareJobFile)
	if err != nil {
		return fmt.Errorf("failed to read job description: %w", err)
	}
	doc, err := readResume(ctx, args[0])
	if err != nil {
		return err
	}
	rt, err := newSession()
	if err != nil {
		return err
	}
	defer func() { _ = rt.logger.Sync() }()

	cmp, err := rt.engine.Compare(ctx, doc, string(jobDescription))
	if err != nil {
		return fmt.Errorf("failed to compare %s: %w", args[0], err)
	}
	return emitJSON(cmd, cmp, insightOutput)
}

// emitJSON writes v as indented JSON to path, or to stdout when path is empty.
func emitJSON(cmd *cobra.Command, v any, path string) error {
	if path == "" {
		return printJSON(cmd, v)
	}
	if err := writeJSON(path, v); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Written to %s\n", path)
	return nil
}
