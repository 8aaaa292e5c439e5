/*
Copyright © 2025 thedailylaw
*/
package cmd

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"github.com/thedailylaw/dailylaw-be/config"
	"github.com/thedailylaw/dailylaw-be/handler"
	"github.com/thedailylaw/dailylaw-be/middleware"
	"github.com/thedailylaw/dailylaw-be/service"
	"github.com/thedailylaw/dailylaw-be/types"
)

// startServerCmd represents the startServer command
var startServerCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the pipeline server",
	Long:  `Starts the HTTP server with the trigger endpoints, read endpoints and the in-process job schedule.`,
	Run: func(cmd *cobra.Command, args []string) {

		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		ingestService, billRepo, err := buildPipeline(cfg)
		if err != nil {
			log.Fatalf("Failed to build pipeline: %v", err)
		}

		categorizer := service.NewCategorizer(types.DefaultCategories, nil)

		// Initialize handlers
		corsHandler := handler.NewCorsHandler()
		cronHandler := handler.NewCronHandler(ingestService, cfg.SiteURL, cfg.CronSecret)
		billHandler := handler.NewBillHandler(billRepo, categorizer)

		// Setup Gin router
		router := gin.Default()

		// Apply global middleware
		router.Use(corsHandler.CorsMiddleware)

		// Public read routes
		apiV1 := router.Group("/api/v1")
		{
			apiV1.GET("/bills", billHandler.HandleListBills)
			apiV1.GET("/bills/:slug", billHandler.HandleGetBill)
			apiV1.GET("/categories", billHandler.HandleListCategories)
			apiV1.GET("/categories/:id/bills", billHandler.HandleBillsByCategory)
		}

		// Trigger routes - require the cron bearer credential
		cronRoutes := router.Group("/api/cron")
		cronRoutes.Use(middleware.CronAuthMiddleware(cfg.CronSecret))
		{
			cronRoutes.POST("/ingest", cronHandler.HandleIngest)
			cronRoutes.POST("/bill-updates", cronHandler.HandleBillUpdates)
			cronRoutes.POST("/5-hour-updates", cronHandler.HandleFiveHourUpdates)
		}

		// In-process schedule alongside the externally triggerable endpoints.
		scheduler := cron.New()
		if _, err := scheduler.AddFunc(cfg.IngestSchedule, func() {
			if _, err := ingestService.IngestNewBills(cmd.Context()); err != nil {
				log.Printf("Scheduled ingestion failed: %v", err)
			}
		}); err != nil {
			log.Fatalf("Invalid ingest schedule %q: %v", cfg.IngestSchedule, err)
		}
		if _, err := scheduler.AddFunc(cfg.UpdateSchedule, func() {
			if _, err := ingestService.CheckUpdates(cmd.Context()); err != nil {
				log.Printf("Scheduled update check failed: %v", err)
			}
		}); err != nil {
			log.Fatalf("Invalid update schedule %q: %v", cfg.UpdateSchedule, err)
		}
		scheduler.Start()
		defer scheduler.Stop()

		log.Printf("Starting server on port %s...\n", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Server error:", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(startServerCmd)
	startServerCmd.Flags().StringP("config", "c", "config/config.yaml", "config file")
}
