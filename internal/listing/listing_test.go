package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(urls ...string) *Listings {
	ls := &Listings{}
	for _, u := range urls {
		ls.Items = append(ls.Items, &Listing{Title: "t-" + u, URL: u})
	}
	return ls
}

func TestDedupePreservesOrder(t *testing.T) {
	ls := sample("a", "b", "a", "c", "b")

	removed := ls.Dedupe()

	assert.Equal(t, []string{"a", "b"}, removed)
	assert.Equal(t, []string{"a", "b", "c"}, ls.URLs())
}

func TestExclude(t *testing.T) {
	ls := sample("a", "b", "c", "d")

	removed := ls.Exclude([]string{"b", "d", "zz"})

	assert.Equal(t, []string{"b", "d"}, removed)
	assert.Equal(t, []string{"a", "c"}, ls.URLs(), "remaining order must be preserved")

	assert.Empty(t, ls.Exclude(nil))
}

func TestFindByURL(t *testing.T) {
	ls := sample("a", "b")

	require.NotNil(t, ls.FindByURL("b"))
	assert.Equal(t, "t-b", ls.FindByURL("b").Title)
	assert.Nil(t, ls.FindByURL("missing"))
}

func TestCombinedText(t *testing.T) {
	l := &Listing{Title: "Go Developer", Description: "Build REST APIs"}
	assert.Equal(t, "go developer build rest apis", l.CombinedText())
}

func TestReportByCompany(t *testing.T) {
	min, max := 100, 200
	ls := &Listings{Items: []*Listing{
		{Title: "one", Company: "Acme", URL: "u1", SalaryMin: &min, SalaryMax: &max},
		{Title: "two", Company: "Acme", URL: "u2"},
		{Title: "three", Company: "Globex", URL: "u3"},
	}}

	report := ls.ReportByCompany()

	require.Len(t, report["Acme"], 2)
	require.Len(t, report["Globex"], 1)
	assert.Equal(t, "100-200", report["Acme"][0]["salary"])
	_, ok := report["Acme"][1]["salary"]
	assert.False(t, ok, "salary omitted when unknown")
}
