// Package source abstracts where raw job listings come from. The pipeline
// only depends on the Source interface; real scraping or board API mechanics
// live behind it.
package source

import (
	"context"

	"jobpilot/internal/listing"
)

// Query describes one fetch: what to search and on which boards.
type Query struct {
	Keywords  []string
	Locations []string
	Boards    []string
}

// Source produces the raw listings for a run: one finite fetch per run, not a
// stream. Implementations deduplicate by URL before returning.
type Source interface {
	Fetch(ctx context.Context, q Query) (*listing.Listings, error)
}
