package filter

import (
	"testing"

	"github.com/amishk599/skillradar/internal/model"
)

func job(title, jobType string) model.Job {
	return model.Job{Title: title, JobType: jobType}
}

func TestTitleAndTypeFilter_Match(t *testing.T) {
	tests := []struct {
		name          string
		titleKeywords []string
		jobTypes      []string
		job           model.Job
		wantMatch     bool
	}{
		{
			name:          "matches both title and type",
			titleKeywords: []string{"backend", "django"},
			jobTypes:      []string{"remote"},
			job:           job("Senior Backend Engineer", "Back end, Remote"),
			wantMatch:     true,
		},
		{
			name:          "title match but type miss",
			titleKeywords: []string{"backend"},
			jobTypes:      []string{"remote"},
			job:           job("Backend Engineer", "Back end"),
			wantMatch:     false,
		},
		{
			name:          "case insensitive matching",
			titleKeywords: []string{"DJANGO"},
			jobTypes:      []string{"Testing"},
			job:           job("django developer", "QA/TESTING"),
			wantMatch:     true,
		},
		{
			name:          "no keywords match",
			titleKeywords: []string{"devops", "sre"},
			job:           job("Frontend Engineer", "Front end"),
			wantMatch:     false,
		},
		{
			name:          "blank keywords ignored",
			titleKeywords: []string{"", "  "},
			job:           job("Any Role", ""),
			wantMatch:     true,
		},
		{
			name:      "empty keyword lists pass all",
			job:       job("Any Role", "Anything"),
			wantMatch: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewTitleAndTypeFilter(tt.titleKeywords, tt.jobTypes)
			got := f.Match(tt.job)
			if got != tt.wantMatch {
				t.Errorf("Match() = %v, want %v", got, tt.wantMatch)
			}
		})
	}
}

func TestApplyKeepsOrder(t *testing.T) {
	jobs := []model.Job{
		job("Django Dev", ""),
		job("Frontend Dev", ""),
		job("Flask and Django", ""),
	}
	got := Apply(NewTitleAndTypeFilter([]string{"django"}, nil), jobs)
	if len(got) != 2 {
		t.Fatalf("got %d jobs, want 2", len(got))
	}
	if got[0].Title != "Django Dev" || got[1].Title != "Flask and Django" {
		t.Errorf("unexpected order: %q, %q", got[0].Title, got[1].Title)
	}
}
