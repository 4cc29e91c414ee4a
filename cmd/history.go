package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"jobpilot/internal/ledger"
	"jobpilot/internal/logger"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the application ledger summary and recent applications",
	Run: func(cmd *cobra.Command, _ []string) {
		history(cmd)
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntP("limit", "n", 20, "number of recent applications to show")
}

func history(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	ldg, err := ledger.Open(ctx, config.Application.LedgerFile, config.Application.MaxApplicationsPerDay)
	if err != nil {
		logger.Fatal("opening ledger", zap.Error(err))
	}
	defer ldg.Close()

	today, err := ldg.ApplicationsToday(ctx)
	if err != nil {
		logger.Fatal("reading the ledger", zap.Error(err))
	}

	total, err := ldg.Total(ctx)
	if err != nil {
		logger.Fatal("reading the ledger", zap.Error(err))
	}

	remaining := ldg.MaxPerDay() - today
	if remaining < 0 {
		remaining = 0
	}

	logger.Info("application ledger",
		zap.Int("applications_total", total),
		zap.Int("applications_today", today),
		zap.Int("daily_limit", ldg.MaxPerDay()),
		zap.Int("remaining_today", remaining),
	)

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := ldg.Recent(ctx, limit)
	if err != nil {
		logger.Fatal("listing recent applications", zap.Error(err))
	}

	for _, entry := range entries {
		fmt.Printf("%s  [%.2f/10] %s at %s  %s\n",
			entry.AppliedAt.Local().Format("2006-01-02 15:04"),
			entry.Score, entry.Title, entry.Company, entry.URL,
		)
	}
}
