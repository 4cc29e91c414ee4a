package submitter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"jobpilot/internal/listing"
)

// Board submits applications to an external board endpoint over HTTP. The
// endpoint is expected to accept a JSON application payload and answer 2xx on
// success.
type Board struct {
	endpoint string
	token    string
	logger   *zap.Logger

	HTTPClient *http.Client
}

type boardPayload struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Company     string `json:"company,omitempty"`
	Resume      string `json:"resume"`
	CoverLetter string `json:"cover_letter,omitempty"`
}

func NewBoard(endpoint, token string, logger *zap.Logger) *Board {
	return &Board{
		endpoint: endpoint,
		token:    token,
		logger:   logger,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (b *Board) Submit(ctx context.Context, l *listing.Listing, resume, coverLetter string) error {
	payload, err := json.Marshal(boardPayload{
		URL:         l.URL,
		Title:       l.Title,
		Company:     l.Company,
		Resume:      resume,
		CoverLetter: coverLetter,
	})
	if err != nil {
		return fmt.Errorf("marshal application payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build submission request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if b.token != "" {
		req.Header.Set("Authorization", "Bearer "+b.token)
	}

	resp, err := b.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("submit application for %s: %w", l.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("submit application for %s: unexpected status %s", l.URL, resp.Status)
	}

	b.logger.Info("application submitted",
		zap.String("url", l.URL),
		zap.String("title", l.Title),
	)
	return nil
}
