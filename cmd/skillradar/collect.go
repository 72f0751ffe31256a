package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/skillradar/internal/config"
	"github.com/amishk599/skillradar/internal/model"
	"github.com/amishk599/skillradar/internal/report"
	"github.com/amishk599/skillradar/internal/store"
)

// collectOptions are per-run overrides of the config. Zero values keep the config.
type collectOptions struct {
	url     string
	out     string
	db      string
	noDB    bool
	maxJobs int // < 0 keeps the config value
}

var collectOpts = collectOptions{maxJobs: -1}

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Scrape job postings and their descriptions",
	Long:  "Fetches the job board listing and every job's detail page, then saves the jobs to CSV and SQLite.",
	RunE:  runCollectCmd,
}

func init() {
	f := collectCmd.Flags()
	f.StringVar(&collectOpts.url, "url", "", "listing page URL (default from config)")
	f.StringVarP(&collectOpts.out, "out", "o", "", "CSV output path (default from config)")
	f.StringVar(&collectOpts.db, "db", "", "SQLite database path (default from config)")
	f.BoolVar(&collectOpts.noDB, "no-db", false, "do not save jobs to the database")
	f.IntVar(&collectOpts.maxJobs, "max", -1, "maximum number of jobs to collect (0 = all)")
	rootCmd.AddCommand(collectCmd)
}

func runCollectCmd(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)
	cfg := mustLoadConfig(logger)

	ctx, stop := signalContext()
	defer stop()

	_, err := collectJobs(ctx, cfg, collectOpts, logger)
	return err
}

func (o collectOptions) apply(cfg *config.Config) {
	if o.url != "" {
		cfg.Source.ListingURL = o.url
	}
	if o.out != "" {
		cfg.Output.CSVPath = o.out
	}
	if o.db != "" {
		cfg.Output.DBPath = o.db
	}
	if o.maxJobs >= 0 {
		cfg.Collector.MaxJobs = o.maxJobs
	}
}

// collectJobs scrapes the board and persists the result. A board that cannot be
// scraped is reported and yields no jobs without failing the command.
func collectJobs(ctx context.Context, cfg *config.Config, opts collectOptions, logger *slog.Logger) ([]model.Job, error) {
	opts.apply(cfg)

	c := buildCollector(cfg, logger)
	jobs, err := c.Collect(ctx, cfg.Source.ListingURL)
	if err != nil {
		logger.Error("collection failed", "url", cfg.Source.ListingURL, "jobs", len(jobs), "error", err)
		if ctx.Err() == nil {
			jobs = nil
		}
	}
	if len(jobs) == 0 {
		fmt.Println("Could not scrape any jobs.")
		return nil, nil
	}

	if err := store.WriteCSV(cfg.Output.CSVPath, jobs); err != nil {
		return nil, fmt.Errorf("saving jobs: %w", err)
	}

	jobStore, err := openJobStore(cfg.Output.DBPath, opts.noDB)
	if err != nil {
		logger.Warn("failed to open database", "path", cfg.Output.DBPath, "error", err)
	} else {
		defer jobStore.Close()
		if err := jobStore.SaveJobs(jobs); err != nil {
			logger.Warn("failed to save jobs to database", "path", cfg.Output.DBPath, "error", err)
		}
	}

	fmt.Printf("\nSuccessfully scraped %d full job descriptions.\n", countDescribed(jobs))
	fmt.Printf("Data saved to %s\n", cfg.Output.CSVPath)
	fmt.Println("\n--- First 5 Jobs with Descriptions ---")
	if err := report.PrintJobs(os.Stdout, jobs, 5); err != nil {
		return nil, err
	}
	return jobs, nil
}

// openJobStore returns the SQLite store at path, or a NopStore when the
// database is disabled.
func openJobStore(path string, disabled bool) (model.JobStore, error) {
	if disabled {
		return store.NewNopStore(), nil
	}
	s, err := store.NewSQLiteStore(path)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func countDescribed(jobs []model.Job) int {
	n := 0
	for _, j := range jobs {
		if j.HasDescription() {
			n++
		}
	}
	return n
}
