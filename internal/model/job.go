package model

import "strings"

// Sentinels used only when a Job is written out or displayed. In memory an
// absent field is the empty string and the description carries a status.
const (
	NotAvailable           = "N/A"
	DescriptionNotFoundMsg = "Description not found."
	DescriptionErrorMsg    = "Could not retrieve description."
)

// DescriptionStatus records why a Job does or does not have description text.
type DescriptionStatus int

const (
	DescriptionMissing     DescriptionStatus = iota // no detail link to follow
	DescriptionOK                                   // text extracted from the detail page
	DescriptionNotFound                             // page fetched, content container absent
	DescriptionUnavailable                          // detail page could not be fetched
)

func (s DescriptionStatus) String() string {
	switch s {
	case DescriptionOK:
		return "ok"
	case DescriptionNotFound:
		return "not_found"
	case DescriptionUnavailable:
		return "unavailable"
	default:
		return "missing"
	}
}

// Job is a single posting scraped from a job board listing.
type Job struct {
	Title       string
	Company     string
	JobType     string
	PostDate    string // raw text as shown on the listing
	Link        string // absolute detail page URL
	Description string
	Status      DescriptionStatus
}

// HasDescription reports whether the job carries usable description text.
func (j Job) HasDescription() bool {
	return j.Status == DescriptionOK && strings.TrimSpace(j.Description) != ""
}

// DescriptionText returns the description as it should be persisted or shown,
// substituting the sentinel for every non-OK status.
func (j Job) DescriptionText() string {
	switch j.Status {
	case DescriptionOK:
		if strings.TrimSpace(j.Description) == "" {
			return NotAvailable
		}
		return j.Description
	case DescriptionNotFound:
		return DescriptionNotFoundMsg
	case DescriptionUnavailable:
		return DescriptionErrorMsg
	default:
		return NotAvailable
	}
}

// ParseDescription maps persisted description text back to a text/status pair.
func ParseDescription(text string) (string, DescriptionStatus) {
	trimmed := strings.TrimSpace(text)
	switch trimmed {
	case "", NotAvailable:
		return "", DescriptionMissing
	case DescriptionNotFoundMsg:
		return "", DescriptionNotFound
	case DescriptionErrorMsg:
		return "", DescriptionUnavailable
	}
	return trimmed, DescriptionOK
}

// OrNA returns s, or the "N/A" sentinel when s is blank.
func OrNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	return s
}

// FromNA is the inverse of OrNA.
func FromNA(s string) string {
	s = strings.TrimSpace(s)
	if s == NotAvailable {
		return ""
	}
	return s
}
