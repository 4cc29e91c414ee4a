package listing

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Listing is a single job posting. The URL is the sole identity: two listings
// with the same URL are the same posting for deduplication and ledger purposes.
// A Listing is never mutated after it leaves its source.
type Listing struct {
	Title         string   `json:"title"`
	Company       string   `json:"company,omitempty"`
	Location      string   `json:"location,omitempty"`
	Description   string   `json:"description,omitempty"`
	URL           string   `json:"url"`
	SalaryMin     *int     `json:"salary_min,omitempty"`
	SalaryMax     *int     `json:"salary_max,omitempty"`
	CompanyRating *float64 `json:"company_rating,omitempty"`
	Benefits      []string `json:"benefits,omitempty"`
	Source        string   `json:"source,omitempty"`
}

// CombinedText returns the lowercased title and description joined with a
// space. Scoring and document selection match keywords against this text.
func (l *Listing) CombinedText() string {
	return strings.ToLower(l.Title + " " + l.Description)
}

type Listings struct {
	Items []*Listing
}

func (ls *Listings) Len() int {
	return len(ls.Items)
}

func (ls *Listings) URLs() []string {
	urls := make([]string, 0, len(ls.Items))
	for _, l := range ls.Items {
		urls = append(urls, l.URL)
	}
	return urls
}

func (ls *Listings) FindByURL(url string) *Listing {
	for _, l := range ls.Items {
		if l.URL == url {
			return l
		}
	}
	return nil
}

// Append adds items from another list.
func (ls *Listings) Append(other *Listings) {
	ls.Items = append(ls.Items, other.Items...)
}

// Dedupe removes listings sharing a URL with an earlier one. The first
// occurrence wins and fetch order is preserved.
func (ls *Listings) Dedupe() []string {
	seen := make(map[string]struct{}, len(ls.Items))
	kept := make([]*Listing, 0, len(ls.Items))
	var removed []string

	for _, l := range ls.Items {
		if _, ok := seen[l.URL]; ok {
			removed = append(removed, l.URL)
			continue
		}
		seen[l.URL] = struct{}{}
		kept = append(kept, l)
	}

	ls.Items = kept
	return removed
}

// Exclude removes listings whose URL is in targets, preserving the order of
// the remaining items. It returns the URLs actually removed.
func (ls *Listings) Exclude(targets []string) []string {
	if len(targets) == 0 {
		return nil
	}

	drop := make(map[string]struct{}, len(targets))
	for _, t := range targets {
		drop[t] = struct{}{}
	}

	kept := make([]*Listing, 0, len(ls.Items))
	var removed []string
	for _, l := range ls.Items {
		if _, ok := drop[l.URL]; ok {
			removed = append(removed, l.URL)
			continue
		}
		kept = append(kept, l)
	}

	ls.Items = kept
	return removed
}

// ReportByCompany groups brief listing descriptions by company name.
func (ls *Listings) ReportByCompany() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, l := range ls.Items {
		entry := map[string]string{
			"title":    l.Title,
			"url":      l.URL,
			"location": l.Location,
			"source":   l.Source,
		}
		if l.SalaryMin != nil || l.SalaryMax != nil {
			entry["salary"] = fmt.Sprintf("%d-%d", deref(l.SalaryMin), deref(l.SalaryMax))
		}
		report[l.Company] = append(report[l.Company], entry)
	}
	return report
}

func (ls *Listings) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "listings_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ls); err != nil {
		return "", err
	}
	return file.Name(), nil
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
