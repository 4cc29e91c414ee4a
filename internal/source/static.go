package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"jobpilot/internal/listing"
	"jobpilot/internal/utils"
)

// Static fabricates representative per-board records. It stands in for real
// board scraping, which is an external concern, while exercising the full
// pipeline: per-board fetch, inter-board delay, URL dedupe.
type Static struct {
	logger *zap.Logger

	// delay between boards, rate limiting against real boards
	boardDelay time.Duration
}

func NewStatic(boardDelay time.Duration, logger *zap.Logger) *Static {
	return &Static{logger: logger, boardDelay: boardDelay}
}

func (s *Static) Fetch(ctx context.Context, q Query) (*listing.Listings, error) {
	all := &listing.Listings{}

	for i, board := range q.Boards {
		if i > 0 {
			if err := utils.WaitFor(ctx, s.boardDelay); err != nil {
				return nil, err
			}
		}

		var fetched *listing.Listings
		switch strings.ToLower(board) {
		case "indeed":
			fetched = s.indeedListings(q)
		case "linkedin":
			fetched = s.linkedinListings(q)
		default:
			s.logger.Warn("unknown job board, skipping", zap.String("board", board))
			continue
		}

		s.logger.Info("fetched listings from board",
			zap.String("board", board),
			zap.Int("count", fetched.Len()),
		)
		all.Append(fetched)
	}

	if removed := all.Dedupe(); len(removed) > 0 {
		s.logger.Debug("dropped duplicate listings", zap.Strings("urls", removed))
	}

	return all, nil
}

func (s *Static) indeedListings(q Query) *listing.Listings {
	ls := &listing.Listings{}
	for _, keyword := range q.Keywords {
		for _, location := range q.Locations {
			salaryMin, salaryMax, rating := 90000, 130000, 4.2
			ls.Items = append(ls.Items, &listing.Listing{
				Title:    keyword + " - Sample Position",
				Company:  "Sample Company",
				Location: location,
				Description: fmt.Sprintf("Looking for %s with Python experience. "+
					"Remote work available. Health insurance, 401k, stock options.", keyword),
				URL:           fmt.Sprintf("https://indeed.com/job/%s-%s", slugify(keyword), slugify(location)),
				SalaryMin:     &salaryMin,
				SalaryMax:     &salaryMax,
				CompanyRating: &rating,
				Benefits:      []string{"Health Insurance", "401k", "Remote Work"},
				Source:        "indeed",
			})
		}
	}
	return ls
}

func (s *Static) linkedinListings(q Query) *listing.Listings {
	ls := &listing.Listings{}
	for _, keyword := range q.Keywords {
		for _, location := range q.Locations {
			salaryMin, salaryMax, rating := 100000, 150000, 4.5
			ls.Items = append(ls.Items, &listing.Listing{
				Title:    "Senior " + keyword,
				Company:  "Tech Corp",
				Location: location,
				Description: fmt.Sprintf("Seeking experienced %s. Must know Python, Django, "+
					"REST API, Docker. Great benefits and work-life balance.", keyword),
				URL:           fmt.Sprintf("https://linkedin.com/jobs/view/%s-position", slugify(keyword)),
				SalaryMin:     &salaryMin,
				SalaryMax:     &salaryMax,
				CompanyRating: &rating,
				Benefits:      []string{"Health Insurance", "Dental", "Vision", "PTO", "Equity"},
				Source:        "linkedin",
			})
		}
	}
	return ls
}

func slugify(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "-")
}
