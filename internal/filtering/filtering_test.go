package filtering

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"jobpilot/internal/listing"
)

type fakeLedger struct {
	urls []string
	err  error
}

func (f *fakeLedger) AppliedURLs(context.Context) ([]string, error) {
	return f.urls, f.err
}

func newListings(urls ...string) *listing.Listings {
	ls := &listing.Listings{}
	for _, u := range urls {
		ls.Items = append(ls.Items, &listing.Listing{Title: "Job", URL: u})
	}
	return ls
}

func TestDuplicatesFilter(t *testing.T) {
	f := NewDuplicates()
	require.NoError(t, f.Validate())

	ls := newListings("https://a", "https://b", "https://a")
	out, step, err := f.Apply(context.Background(), ls)
	require.NoError(t, err)

	assert.Equal(t, Step{Initial: 3, Dropped: 1, Left: 2}, step)
	assert.Equal(t, []string{"https://a", "https://b"}, out.URLs())
}

func TestAppliedHistoryFilter(t *testing.T) {
	deps := &AppliedHistoryDeps{
		Ledger: &fakeLedger{urls: []string{"https://b"}},
		Logger: zap.NewNop(),
	}
	f := NewAppliedHistory(&AppliedHistoryConfig{}, deps)
	require.NoError(t, f.Validate())

	ls := newListings("https://a", "https://b", "https://c")
	out, step, err := f.Apply(context.Background(), ls)
	require.NoError(t, err)

	assert.Equal(t, Step{Initial: 3, Dropped: 1, Left: 2}, step)
	assert.Equal(t, []string{"https://a", "https://c"}, out.URLs())
}

func TestAppliedHistoryFilterIgnore(t *testing.T) {
	deps := &AppliedHistoryDeps{
		Ledger: &fakeLedger{urls: []string{"https://a"}, err: errors.New("must not be called")},
		Logger: zap.NewNop(),
	}
	f := NewAppliedHistory(&AppliedHistoryConfig{Ignore: true}, deps)

	ls := newListings("https://a", "https://b")
	out, step, err := f.Apply(context.Background(), ls)
	require.NoError(t, err)

	assert.Equal(t, Step{Initial: 2, Dropped: 0, Left: 2}, step)
	assert.Equal(t, 2, out.Len())
}

func TestAppliedHistoryFilterValidate(t *testing.T) {
	f := NewAppliedHistory(nil, &AppliedHistoryDeps{Logger: zap.NewNop()})
	assert.Error(t, f.Validate())

	f = NewAppliedHistory(nil, &AppliedHistoryDeps{Ledger: &fakeLedger{}})
	assert.Error(t, f.Validate())
}

func TestRunFiltersValidatesBeforeApplying(t *testing.T) {
	// broken filter must fail the whole run before any step executes
	broken := NewAppliedHistory(nil, &AppliedHistoryDeps{})
	f := New([]Filter{NewDuplicates(), broken}, zap.NewNop())

	ls := newListings("https://a", "https://a")
	_, err := f.RunFilters(context.Background(), ls)
	require.Error(t, err)
	assert.Equal(t, 2, ls.Len(), "no filter should have run")
}

func TestRunFiltersSequence(t *testing.T) {
	deps := &AppliedHistoryDeps{
		Ledger: &fakeLedger{urls: []string{"https://b"}},
		Logger: zap.NewNop(),
	}
	f := New([]Filter{
		NewDuplicates(),
		NewAppliedHistory(&AppliedHistoryConfig{}, deps),
	}, zap.NewNop())

	ls := newListings("https://a", "https://a", "https://b", "https://c")
	out, err := f.RunFilters(context.Background(), ls)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a", "https://c"}, out.URLs())
}
