package filter

import (
	"strings"

	"github.com/amishk599/skillradar/internal/model"
)

// TitleAndTypeFilter keeps jobs whose title contains any of the title keywords
// and whose job type contains any of the job type keywords. Matching is
// case-insensitive. Empty keyword lists match everything.
type TitleAndTypeFilter struct {
	titleKeywords []string
	jobTypes      []string
}

func NewTitleAndTypeFilter(titleKeywords []string, jobTypes []string) *TitleAndTypeFilter {
	return &TitleAndTypeFilter{
		titleKeywords: lowerAll(titleKeywords),
		jobTypes:      lowerAll(jobTypes),
	}
}

// Match reports whether job passes both keyword lists.
func (f *TitleAndTypeFilter) Match(job model.Job) bool {
	return containsAny(job.Title, f.titleKeywords) && containsAny(job.JobType, f.jobTypes)
}

// Apply returns the jobs that match f, in their original order.
func Apply(f model.JobFilter, jobs []model.Job) []model.Job {
	out := make([]model.Job, 0, len(jobs))
	for _, j := range jobs {
		if f.Match(j) {
			out = append(out, j)
		}
	}
	return out
}

func containsAny(s string, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	s = strings.ToLower(s)
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, strings.ToLower(s))
		}
	}
	return out
}
