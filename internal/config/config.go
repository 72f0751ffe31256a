package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/amishk599/skillradar/internal/collector"
	"github.com/amishk599/skillradar/internal/taxonomy"
)

// Config is the root configuration for skillradar.
type Config struct {
	Source       SourceConfig
	Collector    CollectorConfig
	Output       OutputConfig
	Filters      FilterConfig
	TaxonomyFile string            // set when the taxonomy came from a separate file
	Taxonomy     taxonomy.Taxonomy // resolved: taxonomy_file, inline taxonomy, or the default
}

// SourceConfig describes the job board to collect from.
type SourceConfig struct {
	ListingURL string
	UserAgent  string
	Timeout    time.Duration // per-request HTTP timeout
	Selectors  collector.Selectors
}

// CollectorConfig controls request pacing and retries.
type CollectorConfig struct {
	PacingDelay    time.Duration // fixed gap between requests to the board
	MaxRetries     int
	RetryBaseDelay time.Duration
	MaxJobs        int // 0 = no limit
}

// OutputConfig holds the default file locations.
type OutputConfig struct {
	CSVPath   string
	ChartPath string
	DBPath    string
}

// FilterConfig narrows the jobs that are analyzed.
type FilterConfig struct {
	TitleKeywords []string
	JobTypes      []string
}

const (
	DefaultListingURL = "https://www.python.org/jobs/"
	DefaultCSVPath    = "python_jobs_with_descriptions.csv"
	DefaultChartPath  = "skill_demand_chart.png"
	DefaultDBPath     = "skillradar.db"
)

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			ListingURL: DefaultListingURL,
			UserAgent:  collector.DefaultUserAgent,
			Timeout:    30 * time.Second,
			Selectors:  collector.PythonJobsSelectors(),
		},
		Collector: CollectorConfig{
			PacingDelay:    1 * time.Second,
			MaxRetries:     2,
			RetryBaseDelay: 2 * time.Second,
		},
		Output: OutputConfig{
			CSVPath:   DefaultCSVPath,
			ChartPath: DefaultChartPath,
			DBPath:    DefaultDBPath,
		},
		Taxonomy: taxonomy.Default(),
	}
}

// rawConfig is used for YAML unmarshaling (snake_case fields and duration as string).
type rawConfig struct {
	Source       rawSourceConfig    `yaml:"source"`
	Collector    rawCollectorConfig `yaml:"collector"`
	Output       rawOutputConfig    `yaml:"output"`
	Filters      rawFilterConfig    `yaml:"filters"`
	TaxonomyFile string             `yaml:"taxonomy_file"`
	Taxonomy     []taxonomy.Skill   `yaml:"taxonomy"`
}

type rawSourceConfig struct {
	ListingURL string       `yaml:"listing_url"`
	UserAgent  string       `yaml:"user_agent"`
	Timeout    string       `yaml:"timeout"`
	Selectors  rawSelectors `yaml:"selectors"`
}

type rawSelectors struct {
	Listing     string `yaml:"listing"`
	Entry       string `yaml:"entry"`
	Title       string `yaml:"title"`
	Company     string `yaml:"company"`
	JobType     string `yaml:"job_type"`
	PostDate    string `yaml:"post_date"`
	Description string `yaml:"description"`
}

type rawCollectorConfig struct {
	PacingDelay    string `yaml:"pacing_delay"`
	MaxRetries     *int   `yaml:"max_retries"`
	RetryBaseDelay string `yaml:"retry_base_delay"`
	MaxJobs        int    `yaml:"max_jobs"`
}

type rawOutputConfig struct {
	CSVPath   string `yaml:"csv_path"`
	ChartPath string `yaml:"chart_path"`
	DBPath    string `yaml:"db_path"`
}

type rawFilterConfig struct {
	TitleKeywords []string `yaml:"title_keywords"`
	JobTypes      []string `yaml:"job_types"`
}

// Load reads and parses the YAML config file at path, validates it, and returns Config.
// Unset keys keep their Default values. A relative taxonomy_file is resolved
// against the config file's directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()

	if raw.Source.ListingURL != "" {
		cfg.Source.ListingURL = raw.Source.ListingURL
	}
	if raw.Source.UserAgent != "" {
		cfg.Source.UserAgent = raw.Source.UserAgent
	}
	if err := parseDuration("source.timeout", raw.Source.Timeout, &cfg.Source.Timeout); err != nil {
		return nil, err
	}
	cfg.Source.Selectors = collector.Selectors{
		Listing:     raw.Source.Selectors.Listing,
		Entry:       raw.Source.Selectors.Entry,
		Title:       raw.Source.Selectors.Title,
		Company:     raw.Source.Selectors.Company,
		JobType:     raw.Source.Selectors.JobType,
		PostDate:    raw.Source.Selectors.PostDate,
		Description: raw.Source.Selectors.Description,
	}.WithDefaults()

	if err := parseDuration("collector.pacing_delay", raw.Collector.PacingDelay, &cfg.Collector.PacingDelay); err != nil {
		return nil, err
	}
	if err := parseDuration("collector.retry_base_delay", raw.Collector.RetryBaseDelay, &cfg.Collector.RetryBaseDelay); err != nil {
		return nil, err
	}
	if raw.Collector.MaxRetries != nil {
		cfg.Collector.MaxRetries = *raw.Collector.MaxRetries
	}
	cfg.Collector.MaxJobs = raw.Collector.MaxJobs

	if raw.Output.CSVPath != "" {
		cfg.Output.CSVPath = raw.Output.CSVPath
	}
	if raw.Output.ChartPath != "" {
		cfg.Output.ChartPath = raw.Output.ChartPath
	}
	if raw.Output.DBPath != "" {
		cfg.Output.DBPath = raw.Output.DBPath
	}

	cfg.Filters = FilterConfig{
		TitleKeywords: raw.Filters.TitleKeywords,
		JobTypes:      raw.Filters.JobTypes,
	}

	switch {
	case raw.TaxonomyFile != "" && len(raw.Taxonomy) > 0:
		return nil, fmt.Errorf("taxonomy_file and taxonomy are mutually exclusive")
	case raw.TaxonomyFile != "":
		taxPath := raw.TaxonomyFile
		if !filepath.IsAbs(taxPath) {
			taxPath = filepath.Join(filepath.Dir(path), taxPath)
		}
		tax, err := taxonomy.Load(taxPath)
		if err != nil {
			return nil, err
		}
		cfg.TaxonomyFile = taxPath
		cfg.Taxonomy = tax
	case len(raw.Taxonomy) > 0:
		cfg.Taxonomy = taxonomy.Taxonomy(raw.Taxonomy)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// parseDuration overwrites *dst when value is set.
func parseDuration(key, value string, dst *time.Duration) error {
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s %q: %w", key, value, err)
	}
	*dst = d
	return nil
}

func validate(cfg *Config) error {
	u, err := url.Parse(cfg.Source.ListingURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("source.listing_url must be an absolute http(s) URL, got %q", cfg.Source.ListingURL)
	}
	if cfg.Source.Timeout <= 0 {
		return fmt.Errorf("source.timeout must be positive, got %v", cfg.Source.Timeout)
	}
	if err := cfg.Source.Selectors.Validate(); err != nil {
		return fmt.Errorf("source.selectors: %w", err)
	}

	if cfg.Collector.PacingDelay < 0 {
		return fmt.Errorf("collector.pacing_delay must not be negative, got %v", cfg.Collector.PacingDelay)
	}
	if cfg.Collector.RetryBaseDelay < 0 {
		return fmt.Errorf("collector.retry_base_delay must not be negative, got %v", cfg.Collector.RetryBaseDelay)
	}
	if cfg.Collector.MaxRetries < 0 {
		return fmt.Errorf("collector.max_retries must not be negative, got %d", cfg.Collector.MaxRetries)
	}
	if cfg.Collector.MaxJobs < 0 {
		return fmt.Errorf("collector.max_jobs must not be negative, got %d", cfg.Collector.MaxJobs)
	}

	if err := cfg.Taxonomy.Validate(); err != nil {
		return fmt.Errorf("taxonomy: %w", err)
	}

	return nil
}
