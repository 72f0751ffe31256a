package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amishk599/skillradar/internal/taxonomy"
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "List the skill taxonomy",
	Long:  "Reads the config and prints every skill with the patterns that count as a mention.",
	RunE:  runSkills,
}

func init() {
	rootCmd.AddCommand(skillsCmd)
}

func runSkills(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)
	cfg := mustLoadConfig(logger)

	fmt.Printf("%-20s %s\n", "Skill", "Patterns")
	fmt.Println(strings.Repeat("─", 60))

	phrases := 0
	for _, s := range cfg.Taxonomy {
		patterns := make([]string, len(s.Patterns))
		for i, p := range s.Patterns {
			if taxonomy.IsPhrase(p) {
				p = fmt.Sprintf("%q", p)
				phrases++
			}
			patterns[i] = p
		}
		fmt.Printf("%-20s %s\n", s.Name, strings.Join(patterns, ", "))
	}

	fmt.Printf("\nTotal: %d skills (%d phrase patterns)\n", len(cfg.Taxonomy), phrases)
	if cfg.TaxonomyFile != "" {
		fmt.Printf("Loaded from %s\n", cfg.TaxonomyFile)
	}
	return nil
}
