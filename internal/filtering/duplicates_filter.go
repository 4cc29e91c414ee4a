package filtering

import (
	"context"

	"jobpilot/internal/listing"
)

type duplicatesFilter struct{}

// NewDuplicates creates a filter that removes listings sharing a URL with an
// earlier one. Sources are expected to dedupe already; this step is the
// safety net when several boards return the same posting.
func NewDuplicates() Filter {
	return &duplicatesFilter{}
}

func (f *duplicatesFilter) Name() string { return "duplicates" }

func (f *duplicatesFilter) Disable(string) {}

func (f *duplicatesFilter) IsEnabled() bool { return true }

func (f *duplicatesFilter) Validate() error { return nil }

func (f *duplicatesFilter) Apply(_ context.Context, ls *listing.Listings) (*listing.Listings, Step, error) {
	initial := ls.Len()
	removed := ls.Dedupe()

	return ls, Step{Initial: initial, Dropped: len(removed), Left: ls.Len()}, nil
}
