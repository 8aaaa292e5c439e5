/*
Copyright © 2025 thedailylaw
*/
package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/thedailylaw/dailylaw-be/config"
	"github.com/thedailylaw/dailylaw-be/database"
	"github.com/thedailylaw/dailylaw-be/repository"
	"github.com/thedailylaw/dailylaw-be/service"
	"github.com/thedailylaw/dailylaw-be/types"
)

// buildPipeline wires the bill store and the external collaborators into an
// IngestService. The article backend comes from ai_provider; "none" keeps
// synthesis deferred and inserts placeholder records.
func buildPipeline(cfg *config.Config) (service.IngestService, repository.BillRepo, error) {
	mongoClient := database.DefaultMongoClient
	if err := mongoClient.Ping(context.Background(), nil); err != nil {
		return nil, nil, fmt.Errorf("connect to MongoDB: %w", err)
	}
	mongoDb := mongoClient.Database(cfg.MongoDatabase)

	billRepo := repository.NewBillRepo(mongoDb)
	congressService := service.NewCongressService(cfg.CongressAPIBase, cfg.CongressAPIKey)
	fundingService := service.NewOpenFECService(cfg.OpenFECAPIBase, cfg.OpenFECAPIKey)

	var articleService service.ArticleService
	switch cfg.AIProvider {
	case "openai":
		articleService = service.NewOpenAIArticleService(cfg.AIEndpoint, cfg.OpenAIAPIKey, cfg.Model)
	case "gemini":
		geminiService, err := service.NewGeminiArticleService(cfg.GeminiKeys(), cfg.Model)
		if err != nil {
			return nil, nil, fmt.Errorf("init Gemini service: %w", err)
		}
		articleService = geminiService
	case "none", "":
		articleService = nil
	default:
		return nil, nil, fmt.Errorf("unknown ai_provider %q", cfg.AIProvider)
	}

	ingestService := service.NewIngestService(billRepo, congressService, fundingService, articleService, service.IngestConfig{
		Limit:         cfg.IngestLimit,
		ChamberFilter: cfg.ChamberFilter,
	})
	return ingestService, billRepo, nil
}

func runJob(cmd *cobra.Command, job func(service.IngestService, context.Context) (*types.BatchReport, error)) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ingestService, _, err := buildPipeline(cfg)
	if err != nil {
		log.Fatalf("Failed to build pipeline: %v", err)
	}

	report, err := job(ingestService, cmd.Context())
	if err != nil {
		log.Fatalf("Job failed: %v", err)
	}

	fmt.Printf("Run %s (%s): %d bills processed\n", report.RunID, report.Job, len(report.Results))
	for _, res := range report.Results {
		if res.Error != "" {
			fmt.Printf("  %s: %s (%s)\n", res.BillID, res.Action, res.Error)
		}
	}
}

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Fetch recent bills and insert the ones not yet stored",
	Run: func(cmd *cobra.Command, args []string) {
		runJob(cmd, func(s service.IngestService, ctx context.Context) (*types.BatchReport, error) {
			return s.IngestNewBills(ctx)
		})
	},
}

var checkUpdatesCmd = &cobra.Command{
	Use:   "check-updates",
	Short: "Diff stored bills against a fresh fetch and append update notices",
	Run: func(cmd *cobra.Command, args []string) {
		runJob(cmd, func(s service.IngestService, ctx context.Context) (*types.BatchReport, error) {
			return s.CheckUpdates(ctx)
		})
	},
}

var backfillArticlesCmd = &cobra.Command{
	Use:   "backfill-articles",
	Short: "Synthesize full articles for bills still carrying the placeholder body",
	Run: func(cmd *cobra.Command, args []string) {
		runJob(cmd, func(s service.IngestService, ctx context.Context) (*types.BatchReport, error) {
			return s.RegenerateTrackedArticles(ctx)
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{ingestCmd, checkUpdatesCmd, backfillArticlesCmd} {
		c.Flags().StringP("config", "c", "config/config.yaml", "config file")
		rootCmd.AddCommand(c)
	}
}
