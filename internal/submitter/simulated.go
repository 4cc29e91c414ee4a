package submitter

import (
	"context"

	"go.uber.org/zap"

	"jobpilot/internal/listing"
)

// Simulated logs the submission and reports success without any external side
// effect. It stands in for real browser automation or a board API.
type Simulated struct {
	logger *zap.Logger
}

func NewSimulated(logger *zap.Logger) *Simulated {
	return &Simulated{logger: logger}
}

func (s *Simulated) Submit(_ context.Context, l *listing.Listing, resume, coverLetter string) error {
	s.logger.Info("submitting application (simulated)",
		zap.String("url", l.URL),
		zap.String("title", l.Title),
		zap.String("company", l.Company),
		zap.String("resume", resume),
		zap.String("cover_letter", coverLetter),
	)
	return nil
}
