package cmd

import (
	"context"
	"log"
	"os/signal"
	"sync"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"jobpilot/internal/logger"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the pipeline repeatedly on a cron schedule",
	Run: func(cmd *cobra.Command, _ []string) {
		schedule(cmd)
	},
}

func init() {
	rootCmd.AddCommand(scheduleCmd)

	scheduleCmd.Flags().String("cron", "@every 6h", "cron spec for pipeline runs")
	scheduleCmd.Flags().Bool("dry-run", false, "simulate applications without submitting or recording anything")
}

func schedule(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	opts := buildOptions{dryRun: flagSet(cmd, "dry-run")}

	comps, err := buildComponents(ctx, config, opts, logger)
	if err != nil {
		logger.Fatal("building components", zap.Error(err))
	}
	defer comps.close()

	// runs against the shared ledger are serialized; overlapping runs would
	// break the per-day quota accounting
	var runMu sync.Mutex
	runOnce := func() {
		runMu.Lock()
		defer runMu.Unlock()

		result, err := comps.pipeline.Run(ctx, comps.query)
		if err != nil {
			logger.Error("scheduled run failed", zap.Error(err))
			return
		}
		report(result, logger)
	}

	spec, _ := cmd.Flags().GetString("cron")

	c := cron.New()
	if _, err := c.AddFunc(spec, runOnce); err != nil {
		logger.Fatal("registering cron job", zap.String("spec", spec), zap.Error(err))
	}

	c.Start()
	logger.Info("scheduler started", zap.String("spec", spec))

	// run immediately so the first results do not wait for the first tick
	go runOnce()

	<-ctx.Done()

	logger.Info("shutting down scheduler")
	<-c.Stop().Done()
}
