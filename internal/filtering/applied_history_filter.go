package filtering

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"jobpilot/internal/listing"
)

const forceFlagSetMsg = "force flag is set"

// LedgerReader is the ledger surface the applied history filter needs.
type LedgerReader interface {
	AppliedURLs(ctx context.Context) ([]string, error)
}

type appliedHistoryFilter struct {
	deps   *AppliedHistoryDeps
	ignore bool
}

type AppliedHistoryDeps struct {
	Ledger LedgerReader
	Logger *zap.Logger
}

type AppliedHistoryConfig struct {
	Ignore bool
}

// NewAppliedHistory creates a filter that removes listings already present in
// the application ledger.
func NewAppliedHistory(cfg *AppliedHistoryConfig, deps *AppliedHistoryDeps) Filter {
	ignore := false
	if cfg != nil {
		ignore = cfg.Ignore
	}

	return &appliedHistoryFilter{
		deps:   deps,
		ignore: ignore,
	}
}

func (f *appliedHistoryFilter) Name() string { return "applied_history" }

func (f *appliedHistoryFilter) Disable(string) {}

func (f *appliedHistoryFilter) IsEnabled() bool { return true }

func (f *appliedHistoryFilter) Validate() error {
	if f.deps == nil || f.deps.Ledger == nil {
		return fmt.Errorf("ledger is required")
	}

	if f.deps.Logger == nil {
		return fmt.Errorf("logger is required")
	}

	return nil
}

func (f *appliedHistoryFilter) Apply(ctx context.Context, ls *listing.Listings) (*listing.Listings, Step, error) {
	initial := ls.Len()
	if f.ignore {
		f.deps.Logger.Info("ignoring already applied listings", zap.String("reason", forceFlagSetMsg))
		return ls, Step{Initial: initial, Dropped: 0, Left: ls.Len()}, nil
	}

	applied, err := f.deps.Ledger.AppliedURLs(ctx)
	if err != nil {
		return ls, Step{}, fmt.Errorf("get applied urls: %w", err)
	}

	excluded := ls.Exclude(applied)
	if len(excluded) > 0 {
		f.deps.Logger.Info("excluding listings already applied to",
			zap.Strings("excluded_listings", excluded),
			zap.Int("listings_left", ls.Len()),
		)
	}

	return ls, Step{Initial: initial, Dropped: len(excluded), Left: ls.Len()}, nil
}
