package model

import "context"

// PageFetcher retrieves the raw body of a web page.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// JobSource produces job records from a listing page.
type JobSource interface {
	Collect(ctx context.Context, listingURL string) ([]Job, error)
}

// JobFilter decides whether a job should take part in an analysis.
type JobFilter interface {
	Match(job Job) bool
}

// JobStore persists collected jobs.
type JobStore interface {
	SaveJobs(jobs []Job) error
	LoadJobs() ([]Job, error)
	Close() error
}
