package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStaticFetch(t *testing.T) {
	s := NewStatic(0, zap.NewNop())

	ls, err := s.Fetch(context.Background(), Query{
		Keywords:  []string{"Go Developer"},
		Locations: []string{"Remote", "Berlin"},
		Boards:    []string{"indeed", "linkedin"},
	})
	require.NoError(t, err)

	// indeed produces one listing per keyword/location pair; linkedin's URLs
	// ignore location, so its two records collapse into one after dedupe
	assert.Equal(t, 3, ls.Len())
	assert.NotNil(t, ls.FindByURL("https://indeed.com/job/go-developer-remote"))
	assert.NotNil(t, ls.FindByURL("https://indeed.com/job/go-developer-berlin"))
	assert.NotNil(t, ls.FindByURL("https://linkedin.com/jobs/view/go-developer-position"))

	for _, l := range ls.Items {
		assert.NotEmpty(t, l.Title)
		assert.NotEmpty(t, l.Company)
		assert.NotNil(t, l.SalaryMin)
		assert.NotNil(t, l.SalaryMax)
		assert.NotNil(t, l.CompanyRating)
	}
}

func TestStaticFetchSkipsUnknownBoard(t *testing.T) {
	s := NewStatic(0, zap.NewNop())

	ls, err := s.Fetch(context.Background(), Query{
		Keywords:  []string{"Go Developer"},
		Locations: []string{"Remote"},
		Boards:    []string{"monster"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, ls.Len())
}

func TestFileFetch(t *testing.T) {
	// salary as float and rating as string: external dumps are loosely typed
	content := `[
		{"title": "Go Developer", "company": "Acme", "url": "https://example.com/1",
		 "salary_min": 90000.0, "salary_max": 120000, "company_rating": "4.5",
		 "benefits": ["remote", "401k"]},
		{"title": "No URL Job", "company": "Ghost"},
		{"title": "Go Developer", "company": "Acme", "url": "https://example.com/1"},
		{"title": "Platform Engineer", "url": "https://example.com/2"}
	]`
	path := filepath.Join(t.TempDir(), "listings.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	f := NewFile(path, zap.NewNop())
	ls, err := f.Fetch(context.Background(), Query{})
	require.NoError(t, err)

	require.Equal(t, 2, ls.Len(), "record without url skipped, duplicate dropped")

	first := ls.FindByURL("https://example.com/1")
	require.NotNil(t, first)
	assert.Equal(t, "Go Developer", first.Title)
	require.NotNil(t, first.SalaryMin)
	assert.Equal(t, 90000, *first.SalaryMin)
	require.NotNil(t, first.CompanyRating)
	assert.Equal(t, 4.5, *first.CompanyRating)
	assert.Equal(t, []string{"remote", "401k"}, first.Benefits)

	assert.NotNil(t, ls.FindByURL("https://example.com/2"))
}

func TestFileFetchMissingFile(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "nope.json"), zap.NewNop())
	_, err := f.Fetch(context.Background(), Query{})
	assert.Error(t, err)
}

func TestFileFetchMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	f := NewFile(path, zap.NewNop())
	_, err := f.Fetch(context.Background(), Query{})
	assert.Error(t, err)
}
