package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/amishk599/skillradar/internal/collector"
	"github.com/amishk599/skillradar/internal/config"
	"github.com/amishk599/skillradar/internal/model"
	"github.com/amishk599/skillradar/internal/ratelimit"
	"github.com/amishk599/skillradar/internal/retry"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "skillradar",
	Short: "Job board skill demand analyzer",
	Long:  "skillradar collects job postings from a job board and reports which technical skills they ask for.",
	// With no subcommand, run the full collect then analyze flow.
	RunE:         runAll,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: SKILLRADAR_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > SKILLRADAR_CONFIG env var > "./config.yaml" > built-in defaults.
// A .env file in the working directory is loaded first so the config can reference its variables.
func loadConfig(path string) (*config.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	if path == "" {
		if env := os.Getenv("SKILLRADAR_CONFIG"); env != "" {
			path = env
		} else if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		} else {
			return config.Default(), nil
		}
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

// mustLoadConfig loads the config or exits, logging the failure.
func mustLoadConfig(logger *slog.Logger) *config.Config {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	return cfg
}

// buildCollector wires the page fetcher chain: HTTP, then retries, then pacing.
func buildCollector(cfg *config.Config, logger *slog.Logger) *collector.Collector {
	httpClient := &http.Client{Timeout: cfg.Source.Timeout}

	var fetcher model.PageFetcher = collector.NewHTTPFetcher(httpClient, cfg.Source.UserAgent)
	fetcher = retry.NewRetryFetcher(fetcher, cfg.Collector.MaxRetries, cfg.Collector.RetryBaseDelay, logger)
	fetcher = ratelimit.NewPacedFetcher(fetcher, ratelimit.NewPacer(cfg.Collector.PacingDelay))

	logger.Debug("collector configured",
		"url", cfg.Source.ListingURL,
		"pacing_delay", cfg.Collector.PacingDelay.String(),
		"max_retries", cfg.Collector.MaxRetries,
		"max_jobs", cfg.Collector.MaxJobs,
	)
	return collector.NewCollector(fetcher, cfg.Source.Selectors, cfg.Collector.MaxJobs, logger)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func runAll(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)
	cfg := mustLoadConfig(logger)

	ctx, stop := signalContext()
	defer stop()

	jobs, err := collectJobs(ctx, cfg, collectOptions{maxJobs: -1}, logger)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		return nil
	}

	fmt.Println()
	return analyzeJobs(cfg, analyzeOptions{}, logger)
}
