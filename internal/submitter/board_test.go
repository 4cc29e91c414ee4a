package submitter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"jobpilot/internal/listing"
)

func TestBoardSubmit(t *testing.T) {
	var got boardPayload
	var auth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	b := NewBoard(srv.URL, "t0ken", zap.NewNop())
	l := &listing.Listing{Title: "Go Developer", Company: "Acme", URL: "https://example.com/job"}

	require.NoError(t, b.Submit(context.Background(), l, "resume_backend.pdf", "cover_letter_generic.pdf"))

	assert.Equal(t, "Bearer t0ken", auth)
	assert.Equal(t, "https://example.com/job", got.URL)
	assert.Equal(t, "Go Developer", got.Title)
	assert.Equal(t, "resume_backend.pdf", got.Resume)
	assert.Equal(t, "cover_letter_generic.pdf", got.CoverLetter)
}

func TestBoardSubmitNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	b := NewBoard(srv.URL, "", zap.NewNop())
	l := &listing.Listing{Title: "Go Developer", URL: "https://example.com/job"}

	err := b.Submit(context.Background(), l, "resume.pdf", "")
	assert.ErrorContains(t, err, "unexpected status")
}

func TestSimulatedSubmitAlwaysSucceeds(t *testing.T) {
	s := NewSimulated(zap.NewNop())
	l := &listing.Listing{Title: "Go Developer", URL: "https://example.com/job"}
	assert.NoError(t, s.Submit(context.Background(), l, "resume.pdf", "cover.pdf"))
}
