package collector

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// entry is the metadata extracted from one listing item. Absent fields are "".
type entry struct {
	Title    string
	Company  string
	JobType  string
	PostDate string
	Link     string
}

// parseListing extracts entries from a listing page. Relative detail links are
// resolved against base.
func parseListing(body []byte, base *url.URL, sel Selectors) ([]entry, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse listing html: %w", err)
	}

	listing := doc.Find(sel.Listing).First()
	if listing.Length() == 0 {
		return nil, ErrListingNotFound
	}

	var entries []entry
	listing.Find(sel.Entry).Each(func(_ int, s *goquery.Selection) {
		titleSel := s.Find(sel.Title).First()
		e := entry{
			Title:    collapse(titleSel.Text()),
			Company:  childText(s, sel.Company),
			JobType:  childText(s, sel.JobType),
			PostDate: childText(s, sel.PostDate),
		}
		if href, ok := titleSel.Attr("href"); ok && strings.TrimSpace(href) != "" {
			e.Link = resolve(base, strings.TrimSpace(href))
		}
		entries = append(entries, e)
	})
	return entries, nil
}

// parseDescription returns the main text of a detail page. found is false when
// the description container is absent.
func parseDescription(body []byte, sel Selectors) (text string, found bool, err error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", false, fmt.Errorf("parse detail html: %w", err)
	}

	container := doc.Find(sel.Description).First()
	if container.Length() == 0 {
		return "", false, nil
	}
	container.Find("script, style, noscript").Remove()
	return cleanLines(container.Text()), true, nil
}

func childText(s *goquery.Selection, selector string) string {
	if selector == "" {
		return ""
	}
	return collapse(s.Find(selector).First().Text())
}

func resolve(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	if base == nil {
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}

// collapse joins all whitespace runs into single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// cleanLines trims every line and drops blank ones, keeping paragraph breaks
// as single newlines.
func cleanLines(s string) string {
	lines := strings.Split(s, "\n")
	cleaned := lines[:0]
	for _, line := range lines {
		line = collapse(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
