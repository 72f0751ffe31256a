package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/skillradar/internal/config"
	"github.com/amishk599/skillradar/internal/filter"
	"github.com/amishk599/skillradar/internal/model"
	"github.com/amishk599/skillradar/internal/report"
	"github.com/amishk599/skillradar/internal/store"
	"github.com/amishk599/skillradar/internal/tagger"
)

// analyzeOptions are per-run overrides of the config. Zero values keep the config.
type analyzeOptions struct {
	in      string
	chart   string
	db      string
	fromDB  bool
	noChart bool
	noDB    bool
	bars    bool
	last    bool
	titles  []string
	types   []string
}

var analyzeOpts analyzeOptions

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Count skill mentions in collected job descriptions",
	Long:  "Reads collected jobs, counts how many descriptions mention each skill, prints a table and saves a bar chart.",
	RunE:  runAnalyzeCmd,
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVarP(&analyzeOpts.in, "in", "i", "", "CSV input path (default from config)")
	f.StringVar(&analyzeOpts.chart, "chart", "", "chart output path; extension picks the format (default from config)")
	f.StringVar(&analyzeOpts.db, "db", "", "SQLite database path (default from config)")
	f.BoolVar(&analyzeOpts.fromDB, "from-db", false, "read jobs from the database instead of the CSV file")
	f.BoolVar(&analyzeOpts.noChart, "no-chart", false, "skip rendering the chart")
	f.BoolVar(&analyzeOpts.noDB, "no-db", false, "do not record the run in the database")
	f.BoolVar(&analyzeOpts.bars, "bars", false, "also draw the counts as terminal bars")
	f.BoolVar(&analyzeOpts.last, "last", false, "print the most recent recorded run instead of analyzing")
	f.StringSliceVar(&analyzeOpts.titles, "title", nil, "only analyze jobs whose title contains this keyword (repeatable)")
	f.StringSliceVar(&analyzeOpts.types, "type", nil, "only analyze jobs whose job type contains this keyword (repeatable)")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)
	cfg := mustLoadConfig(logger)
	return analyzeJobs(cfg, analyzeOpts, logger)
}

func (o analyzeOptions) apply(cfg *config.Config) {
	if o.in != "" {
		cfg.Output.CSVPath = o.in
	}
	if o.chart != "" {
		cfg.Output.ChartPath = o.chart
	}
	if o.db != "" {
		cfg.Output.DBPath = o.db
	}
	if len(o.titles) > 0 {
		cfg.Filters.TitleKeywords = o.titles
	}
	if len(o.types) > 0 {
		cfg.Filters.JobTypes = o.types
	}
}

func analyzeJobs(cfg *config.Config, opts analyzeOptions, logger *slog.Logger) error {
	opts.apply(cfg)

	if opts.last {
		return printLastRun(cfg.Output.DBPath)
	}

	jobs, source, err := loadJobs(cfg, opts.fromDB)
	if errors.Is(err, model.ErrMissingInput) {
		fmt.Printf("Error: The file '%s' was not found.\n", cfg.Output.CSVPath)
		return nil
	}
	if err != nil {
		return err
	}

	jobs = filterJobs(cfg, jobs, logger)

	res := tagger.New(cfg.Taxonomy).Analyze(jobs)
	logger.Debug("analysis complete", "source", source, "valid", res.Valid, "discarded", res.Discarded)

	if err := report.PrintTable(os.Stdout, res); err != nil {
		return err
	}
	if opts.bars {
		fmt.Println()
		if err := report.PrintBars(os.Stdout, res.Counts); err != nil {
			return err
		}
	}

	if !opts.noChart {
		err := report.RenderChart(cfg.Output.ChartPath, res.Counts, report.ChartOptions{})
		switch {
		case errors.Is(err, report.ErrNoCounts):
			logger.Warn("no skills to chart")
		case err != nil:
			return fmt.Errorf("rendering chart: %w", err)
		default:
			fmt.Printf("\nChart has been saved as '%s'\n", cfg.Output.ChartPath)
		}
	}

	if !opts.noDB {
		recordRun(cfg.Output.DBPath, source, res, logger)
	}
	return nil
}

// loadJobs reads jobs from the CSV file, or from the database when fromDB is
// set. It also returns a label for where the jobs came from.
func loadJobs(cfg *config.Config, fromDB bool) ([]model.Job, string, error) {
	if !fromDB {
		jobs, err := store.ReadCSV(cfg.Output.CSVPath)
		return jobs, cfg.Output.CSVPath, err
	}

	s, err := store.NewSQLiteStore(cfg.Output.DBPath)
	if err != nil {
		return nil, "", err
	}
	defer s.Close()

	jobs, err := s.LoadJobs()
	return jobs, "sqlite:" + cfg.Output.DBPath, err
}

func filterJobs(cfg *config.Config, jobs []model.Job, logger *slog.Logger) []model.Job {
	if len(cfg.Filters.TitleKeywords) == 0 && len(cfg.Filters.JobTypes) == 0 {
		return jobs
	}
	kept := filter.Apply(filter.NewTitleAndTypeFilter(cfg.Filters.TitleKeywords, cfg.Filters.JobTypes), jobs)
	logger.Info("filtered jobs", "kept", len(kept), "total", len(jobs))
	return kept
}

func recordRun(dbPath, source string, res tagger.Result, logger *slog.Logger) {
	s, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		logger.Warn("failed to open database", "path", dbPath, "error", err)
		return
	}
	defer s.Close()

	id, err := s.SaveRun(source, res)
	if err != nil {
		logger.Warn("failed to record analysis run", "path", dbPath, "error", err)
		return
	}
	logger.Debug("recorded analysis run", "run_id", id)
}

func printLastRun(dbPath string) error {
	s, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	run, err := s.LatestRun()
	if err != nil {
		return err
	}
	if run == nil {
		fmt.Printf("No analysis runs recorded in '%s'.\n", dbPath)
		return nil
	}

	fmt.Printf("Run %d at %s from %s\n\n", run.ID, run.At.Format("2006-01-02 15:04 MST"), run.Source)
	return report.PrintTable(os.Stdout, run.Result)
}
