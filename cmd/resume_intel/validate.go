package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-intel/internal/schemas"
	schemadocs "github.com/jonathan/resume-intel/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a JSON document against one of the built-in schemas",
	Long:  "Validates an analysis report (default) or a catalog file against its embedded JSON Schema.",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

var validateSchema string

var schemaByKind = map[string]string{
	"analysis": schemadocs.AnalysisResult,
	"skills":   schemadocs.SkillCatalog,
	"roles":    schemadocs.JobCatalog,
	"domains":  schemadocs.DomainCatalog,
}

func init() {
	validateCmd.Flags().StringVarP(&validateSchema, "schema", "s", "analysis", "Schema to use: analysis, skills, roles or domains")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	schemaName, ok := schemaByKind[validateSchema]
	if !ok {
		return fmt.Errorf("unknown schema %q (want analysis, skills, roles or domains)", validateSchema)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	if err := schemas.ValidateDocument(schemaName, data); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✅ %s matches %s\n", args[0], schemaName)
	return nil
}
