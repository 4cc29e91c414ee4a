package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"jobpilot/internal/listing"
	"jobpilot/internal/logger"
	"jobpilot/internal/pipeline"
)

const (
	PromptYes             = "Yes"
	PromptNo              = "No"
	PromptReportByCompany = "Report by company"
	PromptListingsToFile  = "Dump scored listings to file"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "Proceed?",
	Items: []string{PromptYes, PromptNo, PromptReportByCompany, PromptListingsToFile},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the jobpilot main command",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("do-not-exclude-applied", "f", false, "do not exclude listings if already applied")
	runCmd.Flags().BoolP("auto-aprove", "y", false, "do not ask for confirmation before applying")
	runCmd.Flags().Bool("dry-run", false, "simulate applications without submitting or recording anything")
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting jobpilot", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	opts := buildOptions{
		dryRun:              flagSet(cmd, "dry-run"),
		doNotExcludeApplied: flagSet(cmd, "do-not-exclude-applied"),
	}

	comps, err := buildComponents(ctx, config, opts, logger)
	if err != nil {
		logger.Fatal("building components", zap.Error(err))
	}
	defer comps.close()

	today, err := comps.ledger.ApplicationsToday(ctx)
	if err != nil {
		logger.Fatal("reading the ledger", zap.Error(err))
	}

	total, err := comps.ledger.Total(ctx)
	if err != nil {
		logger.Fatal("reading the ledger", zap.Error(err))
	}

	limit := comps.ledger.MaxPerDay()
	logger.Info("application ledger",
		zap.Int("applications_total", total),
		zap.Int("applications_today", today),
		zap.Int("daily_limit", limit),
	)

	if today >= limit {
		logger.Info("exiting", zap.String("reason", "daily application limit already reached"))
		return
	}

	logger.Info("starting the search",
		zap.Strings("keywords", comps.query.Keywords),
		zap.Strings("boards", comps.query.Boards),
	)

	batch, err := comps.pipeline.Collect(ctx, comps.query)
	if err != nil {
		logger.Fatal("collecting listings", zap.Error(err))
	}

	if len(batch.Scored) == 0 {
		logger.Info("exiting", zap.String("reason", "no listings left after filters"))
		return
	}

	action := PromptYes
	for {
		if !flagSet(cmd, "auto-aprove") {
			_, action, err = prompt.Run()
			if err != nil {
				logger.Fatal("exiting", zap.Error(err))
			}
		}

		logger.Info("current list of listings", zap.Int("count", len(batch.Scored)))

		if err := handleAction(ctx, action, comps, batch, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(ctx context.Context, action string, comps *components, batch *pipeline.Batch, logger *zap.Logger) error {
	switch action {
	case PromptYes:
		result, err := comps.pipeline.Apply(ctx, batch)
		if err != nil {
			return err
		}
		report(result, logger)
		return errExit
	case PromptNo:
		logger.Info("exiting", zap.String("reason", "got no from prompt"))
		return errExit
	case PromptReportByCompany:
		pretty, _ := json.MarshalIndent(batchListings(batch).ReportByCompany(), "", "  ")
		logger.Info(string(pretty), zap.Int("listings count", len(batch.Scored)))
		return nil
	case PromptListingsToFile:
		filename, err := batchListings(batch).DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func report(result *pipeline.Result, logger *zap.Logger) {
	for _, status := range result.Statuses {
		fmt.Println(status.String())
	}

	logger.Info("run complete",
		zap.Int("jobs_scraped", result.Summary.JobsFetched),
		zap.Int("high_scoring", result.Summary.HighScoring),
		zap.Int("submitted_this_run", result.Summary.Submitted),
		zap.Int("applications_today", result.Summary.ApplicationsToday),
		zap.Int("applications_total", result.Summary.ApplicationsTotal),
	)
}

func batchListings(batch *pipeline.Batch) *listing.Listings {
	ls := &listing.Listings{Items: make([]*listing.Listing, 0, len(batch.Scored))}
	for _, s := range batch.Scored {
		ls.Items = append(ls.Items, s.Listing)
	}
	return ls
}

func flagSet(cmd *cobra.Command, name string) bool {
	flag := cmd.Flag(name)
	return flag != nil && strings.EqualFold(flag.Value.String(), "true")
}
