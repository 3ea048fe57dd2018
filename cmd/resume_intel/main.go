// Package main implements the resume_intel CLI: resume analysis, batch runs and catalog tooling.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const app = "resume_intel"

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "Resume intelligence: skills, experience, job matches and quality score",
		Long: "resume_intel analyzes plain-text resumes into a normalized skill profile, an experience profile, " +
			"ranked job-role recommendations and a graded quality score.",
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (JSON or YAML); built-in defaults when unset")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	for _, name := range []string{"config", "debug", "json"} {
		if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			panic(fmt.Sprintf("failed to bind %s flag: %v", name, err))
		}
	}
	if err := viper.BindEnv("config", "RESUME_INTEL_CONFIG"); err != nil {
		panic(fmt.Sprintf("failed to bind RESUME_INTEL_CONFIG: %v", err))
	}
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
