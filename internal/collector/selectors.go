package collector

import "fmt"

// Selectors are the CSS selectors describing one job board's markup. Changing
// the board layout only requires a new Selectors value.
type Selectors struct {
	Listing     string // container of all entries
	Entry       string // one job within Listing
	Title       string // anchor carrying title text and detail href
	Company     string
	JobType     string
	PostDate    string
	Description string // main text container on the detail page
}

// PythonJobsSelectors matches the python.org job board.
func PythonJobsSelectors() Selectors {
	return Selectors{
		Listing:     "ol.list-recent-jobs",
		Entry:       "li",
		Title:       "h2 a",
		Company:     "span.listing-company",
		JobType:     "span.listing-job-type",
		PostDate:    "time",
		Description: "article.text",
	}
}

// WithDefaults fills every empty selector from PythonJobsSelectors.
func (s Selectors) WithDefaults() Selectors {
	d := PythonJobsSelectors()
	if s.Listing == "" {
		s.Listing = d.Listing
	}
	if s.Entry == "" {
		s.Entry = d.Entry
	}
	if s.Title == "" {
		s.Title = d.Title
	}
	if s.Company == "" {
		s.Company = d.Company
	}
	if s.JobType == "" {
		s.JobType = d.JobType
	}
	if s.PostDate == "" {
		s.PostDate = d.PostDate
	}
	if s.Description == "" {
		s.Description = d.Description
	}
	return s
}

// Validate checks that the selectors needed to find jobs are present.
func (s Selectors) Validate() error {
	if s.Listing == "" || s.Entry == "" || s.Title == "" || s.Description == "" {
		return fmt.Errorf("selectors listing, entry, title and description are required")
	}
	return nil
}
