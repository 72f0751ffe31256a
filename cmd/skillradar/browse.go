package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/amishk599/skillradar/internal/browse"
	"github.com/amishk599/skillradar/internal/config"
	"github.com/amishk599/skillradar/internal/model"
	"github.com/amishk599/skillradar/internal/tagger"
)

var browseOpts struct {
	in     string
	fromDB bool
	live   bool
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse skills and the jobs that mention them (TUI)",
	Long:  "Shows the skill picker TUI, then a split view of the jobs mentioning the chosen skill.",
	RunE:  runBrowseCmd,
}

func init() {
	f := browseCmd.Flags()
	f.StringVarP(&browseOpts.in, "in", "i", "", "CSV input path (default from config)")
	f.BoolVar(&browseOpts.fromDB, "from-db", false, "read jobs from the database instead of the CSV file")
	f.BoolVar(&browseOpts.live, "live", false, "collect fresh jobs from the board instead of reading saved ones")
	rootCmd.AddCommand(browseCmd)
}

func runBrowseCmd(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)
	cfg := mustLoadConfig(logger)
	if browseOpts.in != "" {
		cfg.Output.CSVPath = browseOpts.in
	}

	jobs, err := browseJobs(cfg)
	if errors.Is(err, model.ErrMissingInput) {
		fmt.Printf("Error: The file '%s' was not found.\n", cfg.Output.CSVPath)
		return nil
	}
	if err != nil {
		fmt.Printf("Error loading jobs: %v\n", err)
		return nil
	}

	// The TUI owns the terminal; log output would corrupt the display.
	silentLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	runBrowse(cfg, filterJobs(cfg, jobs, silentLogger))
	return nil
}

func browseJobs(cfg *config.Config) ([]model.Job, error) {
	if !browseOpts.live {
		jobs, _, err := loadJobs(cfg, browseOpts.fromDB)
		return jobs, err
	}

	ctx, stop := signalContext()
	defer stop()

	silentLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := buildCollector(cfg, silentLogger)
	return browse.RunLoader(ctx, cfg.Source.ListingURL, func(ctx context.Context) ([]model.Job, error) {
		return c.Collect(ctx, cfg.Source.ListingURL)
	})
}

func runBrowse(cfg *config.Config, jobs []model.Job) {
	t := tagger.New(cfg.Taxonomy)
	res := t.Analyze(jobs)
	if res.Valid == 0 {
		fmt.Println("No job descriptions to browse.")
		return
	}

	for {
		choice, err := browse.RunSkillPicker(res)
		if err != nil {
			fmt.Printf("Picker error: %v\n", err)
			return
		}
		if choice < 0 {
			return
		}
		skill := res.Counts[choice].Skill

		wantQuit, err := browse.RunBrowseTUI(skill, t.JobsWithSkill(jobs, skill), t.Tag)
		if err != nil {
			fmt.Printf("TUI error: %v\n", err)
		}
		if wantQuit {
			return
		}
		// else: loop → back to picker
	}
}
