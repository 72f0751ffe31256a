// Package collector scrapes a job board listing page and the detail page of
// every posting into model.Job records.
package collector

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/amishk599/skillradar/internal/model"
)

var _ model.JobSource = (*Collector)(nil)

// Collector walks a listing page and its detail pages one request at a time.
// Pacing and retries are the job of the PageFetcher it is given.
type Collector struct {
	fetcher   model.PageFetcher
	selectors Selectors
	maxJobs   int
	logger    *slog.Logger
}

// NewCollector creates a collector. maxJobs <= 0 means no limit.
func NewCollector(fetcher model.PageFetcher, selectors Selectors, maxJobs int, logger *slog.Logger) *Collector {
	return &Collector{
		fetcher:   fetcher,
		selectors: selectors,
		maxJobs:   maxJobs,
		logger:    logger,
	}
}

// Collect fetches listingURL, extracts every entry, and fetches each entry's
// detail page for its description. A listing that cannot be fetched or parsed
// yields no records and an error. Detail failures never abort the run; they
// are recorded on the job's description status. If ctx is cancelled midway
// the jobs collected so far are returned along with the context error.
func (c *Collector) Collect(ctx context.Context, listingURL string) ([]model.Job, error) {
	base, err := url.Parse(listingURL)
	if err != nil {
		return nil, &FetchError{URL: listingURL, Err: err}
	}

	c.logger.Info("scraping job listing", "url", listingURL)
	body, err := c.fetcher.Fetch(ctx, listingURL)
	if err != nil {
		return nil, err
	}

	entries, err := parseListing(body, base, c.selectors)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", listingURL, err)
	}
	if c.maxJobs > 0 && len(entries) > c.maxJobs {
		entries = entries[:c.maxJobs]
	}
	c.logger.Info("found jobs, scraping descriptions", "jobs", len(entries))

	jobs := make([]model.Job, 0, len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return jobs, fmt.Errorf("collect cancelled: %w", err)
		}

		job := model.Job{
			Title:    e.Title,
			Company:  e.Company,
			JobType:  e.JobType,
			PostDate: e.PostDate,
			Link:     e.Link,
			Status:   model.DescriptionMissing,
		}
		if e.Link != "" {
			c.logger.Debug("scraping description", "title", e.Title, "url", e.Link)
			job.Description, job.Status = c.describe(ctx, e.Link)
			if job.Status == model.DescriptionUnavailable && ctx.Err() != nil {
				return jobs, fmt.Errorf("collect cancelled: %w", ctx.Err())
			}
		}
		jobs = append(jobs, job)
	}

	return jobs, nil
}

// describe fetches one detail page and extracts its description.
func (c *Collector) describe(ctx context.Context, link string) (string, model.DescriptionStatus) {
	body, err := c.fetcher.Fetch(ctx, link)
	if err != nil {
		c.logger.Warn("could not fetch job description", "url", link, "error", err)
		return "", model.DescriptionUnavailable
	}

	text, found, err := parseDescription(body, c.selectors)
	if err != nil {
		c.logger.Warn("could not parse job description", "url", link, "error", err)
		return "", model.DescriptionNotFound
	}
	if !found {
		c.logger.Warn("job description not found", "url", link)
		return "", model.DescriptionNotFound
	}
	return text, model.DescriptionOK
}
