package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the skill, job-role and domain catalogs",
	Long:  "Prints the catalogs in effect (embedded, or overridden through the config file) as a table or as JSON.",
	Args:  cobra.NoArgs,
	RunE:  runCatalog,
}

var (
	catalogKind     string
	catalogCategory string
	catalogJSON     bool
)

func init() {
	catalogCmd.Flags().StringVarP(&catalogKind, "kind", "k", "roles", "Catalog to print: skills, roles or domains")
	catalogCmd.Flags().StringVar(&catalogCategory, "category", "", "Only print skills in this category")
	catalogCmd.Flags().BoolVar(&catalogJSON, "as-json", false, "Print JSON instead of a table")

	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	set, err := loadCatalogs(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch catalogKind {
	case "skills":
		skills := set.Skills.All()
		if catalogCategory != "" {
			filtered := skills[:0]
			for _, s := range skills {
				if s.Category == catalogCategory {
					filtered = append(filtered, s)
				}
			}
			skills = filtered
		}
		if catalogJSON {
			return printJSON(cmd, skills)
		}
		for _, s := range skills {
			marker := ""
			if s.Emerging {
				marker = " *"
			}
			_, _ = fmt.Fprintf(out, "%-28s %-24s %s%s\n", s.Name, s.Category, strings.Join(s.Aliases, ", "), marker)
		}
		_, _ = fmt.Fprintf(out, "\n%d skills (* emerging)\n", len(skills))

	case "roles":
		roles := set.Jobs.All()
		if catalogJSON {
			return printJSON(cmd, roles)
		}
		for _, r := range roles {
			_, _ = fmt.Fprintf(out, "%-28s %-10s %-10s %s\n", r.ID, r.ExperienceLevel, r.Demand, strings.Join(r.RequiredSkills, ", "))
		}
		_, _ = fmt.Fprintf(out, "\n%d roles\n", len(roles))

	case "domains":
		domains := set.Domains.All()
		if catalogJSON {
			return printJSON(cmd, domains)
		}
		for _, d := range domains {
			_, _ = fmt.Fprintf(out, "%-16s %s\n", d.Name, strings.Join(d.Keywords, ", "))
		}

	default:
		return fmt.Errorf("unknown catalog kind %q (want skills, roles or domains)", catalogKind)
	}
	return nil
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
