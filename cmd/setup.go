package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"jobpilot/internal/config"
	"jobpilot/internal/documents"
	"jobpilot/internal/filtering"
	"jobpilot/internal/ledger"
	"jobpilot/internal/pipeline"
	"jobpilot/internal/scorer"
	"jobpilot/internal/secrets"
	"jobpilot/internal/source"
	"jobpilot/internal/submitter"
)

// components holds everything a pipeline run needs, wired once per command.
type components struct {
	ledger   *ledger.Ledger
	pipeline *pipeline.Pipeline
	query    source.Query
}

func (c *components) close() {
	c.ledger.Close()
}

type buildOptions struct {
	dryRun              bool // force dry run regardless of config
	doNotExcludeApplied bool
}

func buildComponents(ctx context.Context, cfg *config.Config, opts buildOptions, logger *zap.Logger) (*components, error) {
	ldg, err := ledger.Open(ctx, cfg.Application.LedgerFile, cfg.Application.MaxApplicationsPerDay)
	if err != nil {
		return nil, fmt.Errorf("opening ledger %s: %w", cfg.Application.LedgerFile, err)
	}

	selector := documents.NewSelector(cfg.Documents, logger)
	for _, err := range selector.Validate() {
		logger.Warn("document catalog problem", zap.Error(err))
	}

	src, err := buildSource(cfg, logger)
	if err != nil {
		ldg.Close()
		return nil, err
	}

	sub, err := buildSubmitter(cfg, logger)
	if err != nil {
		ldg.Close()
		return nil, err
	}

	filters := filtering.New([]filtering.Filter{
		filtering.NewDuplicates(),
		filtering.NewAppliedHistory(
			&filtering.AppliedHistoryConfig{Ignore: opts.doNotExcludeApplied},
			&filtering.AppliedHistoryDeps{Ledger: ldg, Logger: logger},
		),
	}, logger)

	pipeCfg := pipeline.Config{
		ScoreThreshold:   cfg.ScoreThreshold,
		AutoApply:        cfg.Application.AutoApply,
		DryRun:           cfg.Application.DryRun || opts.dryRun,
		ApplicationDelay: cfg.RateLimiting.ApplicationDelay(),
	}

	pipe := pipeline.New(src, filters, scorer.New(cfg.ScoringWeights, cfg.Preferences),
		selector, ldg, sub, pipeCfg, logger)

	return &components{
		ledger:   ldg,
		pipeline: pipe,
		query: source.Query{
			Keywords:  cfg.JobSearch.Keywords,
			Locations: cfg.JobSearch.Locations,
			Boards:    cfg.JobSearch.Boards,
		},
	}, nil
}

func buildSource(cfg *config.Config, logger *zap.Logger) (source.Source, error) {
	switch cfg.Source.Mode {
	case "file":
		return source.NewFile(cfg.Source.File, logger), nil
	case "static":
		return source.NewStatic(cfg.RateLimiting.BoardDelay(), logger), nil
	default:
		return nil, fmt.Errorf("unsupported source mode: %s", cfg.Source.Mode)
	}
}

func buildSubmitter(cfg *config.Config, logger *zap.Logger) (submitter.Submitter, error) {
	switch cfg.Submitter.Mode {
	case "board":
		token, err := secrets.Load(secrets.Source{
			Name: "board token",
			File: cfg.Submitter.TokenFile,
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set submitter.token-file or JOBPILOT_TOKEN_FILE)", err)
		}
		return submitter.NewBoard(cfg.Submitter.Endpoint, token, logger), nil
	case "simulated":
		return submitter.NewSimulated(logger), nil
	default:
		return nil, fmt.Errorf("unsupported submitter mode: %s", cfg.Submitter.Mode)
	}
}
