// Package pipeline drives one batch run: fetch listings, filter, score,
// gate each candidate against the ledger, select documents, submit, report.
// Runs are strictly sequential; the ledger is the only mutable state touched
// and only confirmed successes are committed to it, so partial progress from
// an interrupted run is always safe.
package pipeline

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"jobpilot/internal/filtering"
	"jobpilot/internal/ledger"
	"jobpilot/internal/listing"
	"jobpilot/internal/logger"
	"jobpilot/internal/scorer"
	"jobpilot/internal/source"
	"jobpilot/internal/submitter"
	"jobpilot/internal/utils"
)

// Per-listing outcomes.
const (
	StatusApplied        = "applied"
	StatusAlreadyApplied = "already applied"
	StatusQuotaExceeded  = "quota exceeded"
	StatusNoResume       = "no resume"
	StatusManualReview   = "manual review required"
	StatusSubmitFailed   = "submission failed"
)

// Gatekeeper is the ledger surface the pipeline depends on.
type Gatekeeper interface {
	HasApplied(ctx context.Context, url string) (bool, error)
	ApplicationsToday(ctx context.Context) (int, error)
	CanApply(ctx context.Context, url string) (bool, error)
	Record(ctx context.Context, entry *ledger.Entry) error
	Total(ctx context.Context) (int, error)
	MaxPerDay() int
}

// Selector picks the documents to attach to an application.
type Selector interface {
	Select(l *listing.Listing) (resume, coverLetter string)
}

// Config holds the run parameters.
type Config struct {
	ScoreThreshold   float64
	AutoApply        bool
	DryRun           bool
	ApplicationDelay time.Duration
}

type Pipeline struct {
	source    source.Source
	filters   *filtering.Filtering
	scorer    *scorer.Scorer
	selector  Selector
	ledger    Gatekeeper
	submitter submitter.Submitter
	cfg       Config
	logger    *zap.Logger

	// wait is swapped in tests
	wait func(ctx context.Context, d time.Duration) error
}

func New(src source.Source, filters *filtering.Filtering, sc *scorer.Scorer, sel Selector,
	gate Gatekeeper, sub submitter.Submitter, cfg Config, logger *zap.Logger,
) *Pipeline {
	return &Pipeline{
		source:    src,
		filters:   filters,
		scorer:    sc,
		selector:  sel,
		ledger:    gate,
		submitter: sub,
		cfg:       cfg,
		logger:    logger,
		wait:      utils.WaitFor,
	}
}

// Batch is the scored output of one fetch, in fetch order.
type Batch struct {
	Fetched int
	Scored  []*scorer.Scored
}

// Status is one per-listing outcome line.
type Status struct {
	URL     string
	Title   string
	Company string
	Score   float64
	Outcome string
}

func (s Status) String() string {
	return fmt.Sprintf("[%.2f/10] %s at %s: %s", s.Score, s.Title, s.Company, s.Outcome)
}

// Summary is the run report exposed to the caller.
type Summary struct {
	JobsFetched       int
	HighScoring       int
	Submitted         int
	ApplicationsToday int
	ApplicationsTotal int
}

// Result pairs the summary with the per-listing statuses.
type Result struct {
	Summary  Summary
	Statuses []Status
}

// Collect fetches, filters, and scores listings without applying to anything.
func (p *Pipeline) Collect(ctx context.Context, q source.Query) (*Batch, error) {
	fetched, err := p.source.Fetch(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("fetch listings: %w", err)
	}

	total := fetched.Len()
	p.logger.Info("fetched listings", zap.Int("count", total))

	filtered, err := p.filters.RunFilters(ctx, fetched)
	if err != nil {
		return nil, fmt.Errorf("filter listings: %w", err)
	}

	scored := p.scorer.ScoreAll(filtered)
	for _, s := range scored {
		p.logger.Debug("scored listing",
			zap.String("url", s.Listing.URL),
			zap.Float64("score", s.Score),
			zap.String("description", logger.TruncateForLog(s.Listing.Description, 120)),
		)
	}

	return &Batch{
		Fetched: total,
		Scored:  scored,
	}, nil
}

// Apply walks the above-threshold listings in descending score order and
// applies to each eligible one; once the daily quota is consumed the
// remaining candidates are reported as quota exceeded.
func (p *Pipeline) Apply(ctx context.Context, batch *Batch) (*Result, error) {
	above := make([]*scorer.Scored, 0, len(batch.Scored))
	for _, s := range batch.Scored {
		if s.Score > p.cfg.ScoreThreshold {
			above = append(above, s)
		}
	}

	// stable: ties keep fetch order
	sort.SliceStable(above, func(i, j int) bool { return above[i].Score > above[j].Score })

	p.logger.Info("scored listings",
		zap.Int("total", len(batch.Scored)),
		zap.Int("above_threshold", len(above)),
		zap.Float64("threshold", p.cfg.ScoreThreshold),
	)

	result := &Result{
		Summary: Summary{
			JobsFetched: batch.Fetched,
			HighScoring: len(above),
		},
	}

	submitted := 0
	limitLogged := false
	for _, candidate := range above {
		var status Status
		// the run-scoped counter covers dry runs too, where nothing reaches
		// the ledger and its quota never moves
		if submitted >= p.ledger.MaxPerDay() {
			if !limitLogged {
				p.logger.Info("daily application limit reached", zap.Int("submitted", submitted))
				limitLogged = true
			}
			status = Status{
				URL:     candidate.Listing.URL,
				Title:   candidate.Listing.Title,
				Company: candidate.Listing.Company,
				Score:   candidate.Score,
				Outcome: StatusQuotaExceeded,
			}
		} else {
			var err error
			status, err = p.processListing(ctx, candidate)
			if err != nil {
				return nil, err
			}
		}

		result.Statuses = append(result.Statuses, status)
		p.logger.Info("listing processed",
			zap.String("url", status.URL),
			zap.Float64("score", status.Score),
			zap.String("outcome", status.Outcome),
		)

		if status.Outcome == StatusApplied {
			submitted++
		}
	}
	result.Summary.Submitted = submitted

	today, err := p.ledger.ApplicationsToday(ctx)
	if err != nil {
		return nil, fmt.Errorf("read today's applications: %w", err)
	}
	total, err := p.ledger.Total(ctx)
	if err != nil {
		return nil, fmt.Errorf("read total applications: %w", err)
	}
	result.Summary.ApplicationsToday = today
	result.Summary.ApplicationsTotal = total

	return result, nil
}

// Run executes the whole pipeline: Collect followed by Apply.
func (p *Pipeline) Run(ctx context.Context, q source.Query) (*Result, error) {
	batch, err := p.Collect(ctx, q)
	if err != nil {
		return nil, err
	}
	return p.Apply(ctx, batch)
}

// processListing decides one listing's fate. Ineligibility is an outcome, not
// an error; only ledger failures propagate.
func (p *Pipeline) processListing(ctx context.Context, candidate *scorer.Scored) (Status, error) {
	l := candidate.Listing
	status := Status{
		URL:     l.URL,
		Title:   l.Title,
		Company: l.Company,
		Score:   candidate.Score,
	}

	applied, err := p.ledger.HasApplied(ctx, l.URL)
	if err != nil {
		return status, err
	}
	if applied {
		status.Outcome = StatusAlreadyApplied
		return status, nil
	}

	// quota is consumed as the run progresses, re-checked per listing
	ok, err := p.ledger.CanApply(ctx, l.URL)
	if err != nil {
		return status, err
	}
	if !ok {
		status.Outcome = StatusQuotaExceeded
		return status, nil
	}

	if !p.cfg.AutoApply {
		// documents are not selected for listings awaiting manual review
		status.Outcome = StatusManualReview
		return status, nil
	}

	resume, coverLetter := p.selector.Select(l)
	if resume == "" {
		status.Outcome = StatusNoResume
		return status, nil
	}

	if p.cfg.DryRun {
		p.logger.Info("dry run: would apply",
			zap.String("url", l.URL),
			zap.String("title", l.Title),
			zap.String("resume", resume),
			zap.String("cover_letter", coverLetter),
		)
		status.Outcome = StatusApplied
		return status, nil
	}

	if err := p.submitter.Submit(ctx, l, resume, coverLetter); err != nil {
		// terminal for this listing in this run; it stays unrecorded and
		// will be reconsidered next run
		p.logger.Warn("submission failed", zap.String("url", l.URL), zap.Error(err))
		status.Outcome = StatusSubmitFailed
		return status, nil
	}

	entry := &ledger.Entry{
		URL:             l.URL,
		Title:           l.Title,
		Company:         l.Company,
		Location:        l.Location,
		Score:           candidate.Score,
		ResumeUsed:      resume,
		CoverLetterUsed: coverLetter,
	}
	if err := p.ledger.Record(ctx, entry); err != nil {
		return status, fmt.Errorf("record application: %w", err)
	}

	status.Outcome = StatusApplied

	if err := p.wait(ctx, p.cfg.ApplicationDelay); err != nil {
		return status, err
	}

	return status, nil
}
