package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-intel/internal/config"
)

var validateConfigCmd = &cobra.Command{
	Use:   "validate-config <file>",
	Short: "Validate a configuration file",
	Long:  "Loads a JSON or YAML configuration file over the defaults, validates it and checks that the catalogs it names load.",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidateConfig,
}

var validateConfigPrint bool

func init() {
	validateConfigCmd.Flags().BoolVarP(&validateConfigPrint, "print", "p", false, "Print the effective configuration as JSON")

	rootCmd.AddCommand(validateConfigCmd)
}

func runValidateConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(args[0])
	if err != nil {
		return err
	}

	if _, err := loadCatalogs(*cfg); err != nil {
		return err
	}

	if validateConfigPrint {
		printable := *cfg
		if printable.DatabaseURL != "" {
			printable.DatabaseURL = "<set>"
		}
		if err := printJSON(cmd, printable); err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✅ %s is valid\n", args[0])
	return nil
}
